// Package user реализует регистрацию с модерацией, вход и выдачу токенов.
package user

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/odyostore/backoffice/internal/auth"
	"github.com/odyostore/backoffice/internal/domain"
)

// RegisterInput — поля регистрационной формы. Файл лицензии принимается
// как URL: механика загрузки файлов вне зоны ответственности сервиса.
type RegisterInput struct {
	Email          string
	Password       string
	CompanyName    string
	City           string
	CompanyType    string
	TaxNumber      string
	TaxOffice      string
	RegistryNumber string
	LicenseURL     string
}

// LoginResult — токен и безопасная проекция пользователя.
type LoginResult struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// Service — операции над учётными записями.
type Service struct {
	users  domain.UserRepository
	tokens *auth.Manager
	logger *log.Entry
}

// NewService конструирует сервис пользователей.
func NewService(users domain.UserRepository, tokens *auth.Manager, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "user-service")
	}
	return &Service{users: users, tokens: tokens, logger: logger}
}

// Register создаёт учётную запись в статусе "ожидает одобрения".
func (s *Service) Register(input RegisterInput) (domain.User, error) {
	if input.Email == "" || input.Password == "" || input.CompanyName == "" || input.City == "" {
		return domain.User{}, fmt.Errorf("%w: email, password, company name and city are required", domain.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.WithError(err).Error("failed to hash password")
		return domain.User{}, err
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:             uuid.NewString(),
		Email:          input.Email,
		PasswordHash:   string(hash),
		CompanyName:    input.CompanyName,
		City:           input.City,
		CompanyType:    input.CompanyType,
		TaxNumber:      input.TaxNumber,
		TaxOffice:      input.TaxOffice,
		RegistryNumber: input.RegistryNumber,
		LicenseURL:     input.LicenseURL,
		Role:           domain.RoleCenter,
		Approval:       domain.ApprovalPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.users.Create(user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// Login проверяет пару email/пароль и выдаёт токен. Неодобренные учётные
// записи не допускаются.
func (s *Service) Login(email, password string) (LoginResult, error) {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		return LoginResult{}, err
	}

	if user.Approval != domain.ApprovalApproved {
		return LoginResult{}, domain.ErrNotApproved
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return LoginResult{}, domain.ErrBadCredentials
	}

	// Учётные записи, прошедшие через регистрацию и модерацию, получают
	// укороченный токен; общий 7-дневный срок остаётся за администратором.
	ttl := auth.RegistrationTTL
	if user.Role == domain.RoleAdmin {
		ttl = auth.LoginTTL
	}
	token, err := s.tokens.Issue(user.ID, user.Role, ttl)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", user.ID).Error("failed to issue token")
		return LoginResult{}, err
	}

	return LoginResult{Token: token, User: user}, nil
}

// Profile возвращает пользователя по идентификатору из токена.
func (s *Service) Profile(userID string) (domain.User, error) {
	return s.users.Get(userID)
}

// ListPending возвращает регистрации, ожидающие одобрения.
func (s *Service) ListPending() ([]domain.User, error) {
	return s.users.ListByApproval(domain.ApprovalPending)
}

// Approve одобряет регистрацию; непустая роль перекрывает роль по умолчанию.
// Администраторскую роль через одобрение назначить нельзя.
func (s *Service) Approve(userID string, role domain.Role) (domain.User, error) {
	if role != "" {
		if !domain.ValidRole(role) || role == domain.RoleAdmin {
			return domain.User{}, domain.ErrInvalidRole
		}
	}
	return s.users.SetApproval(userID, domain.ApprovalApproved, role)
}

// Reject отклоняет регистрацию и удаляет учётную запись.
func (s *Service) Reject(userID string) error {
	return s.users.Delete(userID)
}

// SeedAdmin создаёт администратора по умолчанию, если ни одного ещё нет.
func (s *Service) SeedAdmin(email, password string) error {
	has, err := s.users.HasAdmin()
	if err != nil {
		return err
	}
	if has {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	admin := domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CompanyName:  "Admin",
		Role:         domain.RoleAdmin,
		Approval:     domain.ApprovalApproved,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(admin); err != nil {
		return err
	}

	s.logger.WithField("email", email).Info("default admin account created")
	return nil
}
