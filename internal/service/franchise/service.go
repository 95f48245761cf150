// Package franchise реализует подачу и модерацию заявок на франшизу.
package franchise

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/odyostore/backoffice/internal/domain"
)

// ApplyInput — поля заявки.
type ApplyInput struct {
	CompanyName string `json:"companyName"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
}

// Service — операции над заявками на франшизу.
type Service struct {
	applications domain.FranchiseRepository
	users        domain.UserRepository
	logger       *log.Entry
}

// NewService конструирует сервис франшизы.
func NewService(applications domain.FranchiseRepository, users domain.UserRepository, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "franchise-service")
	}
	return &Service{applications: applications, users: users, logger: logger}
}

// Apply подаёт заявку от имени аутентифицированного пользователя.
func (s *Service) Apply(userID string, input ApplyInput) (domain.FranchiseApplication, error) {
	if input.CompanyName == "" {
		return domain.FranchiseApplication{}, fmt.Errorf("%w: company name is required", domain.ErrValidation)
	}

	app := domain.FranchiseApplication{
		ID:          uuid.NewString(),
		UserID:      userID,
		CompanyName: input.CompanyName,
		Address:     input.Address,
		Phone:       input.Phone,
		Status:      domain.ApplicationPending,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.applications.Create(app); err != nil {
		s.logger.WithError(err).Error("failed to create franchise application")
		return domain.FranchiseApplication{}, err
	}
	return app, nil
}

// List возвращает заявки с присоединёнными данными заявителей.
func (s *Service) List() ([]domain.ApplicationView, error) {
	apps, err := s.applications.List()
	if err != nil {
		return nil, err
	}

	views := make([]domain.ApplicationView, 0, len(apps))
	for _, app := range apps {
		view := domain.ApplicationView{FranchiseApplication: app}
		if user, err := s.users.Get(app.UserID); err == nil {
			view.ApplicantEmail = user.Email
			view.ApplicantCompany = user.CompanyName
		}
		views = append(views, view)
	}
	return views, nil
}

// Approve одобряет заявку.
func (s *Service) Approve(id string) (domain.FranchiseApplication, error) {
	return s.applications.SetStatus(id, domain.ApplicationApproved)
}

// Reject отклоняет заявку.
func (s *Service) Reject(id string) (domain.FranchiseApplication, error) {
	return s.applications.SetStatus(id, domain.ApplicationRejected)
}
