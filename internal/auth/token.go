// Package auth выпускает и проверяет bearer-токены бэк-офиса.
// Проверка чистая: никаких обращений к хранилищу, только подпись и срок.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/odyostore/backoffice/internal/domain"
)

const (
	// LoginTTL — срок жизни токена, выданного при входе.
	LoginTTL = 7 * 24 * time.Hour
	// RegistrationTTL — укороченный срок для токенов регистрационного потока.
	RegistrationTTL = 2 * 24 * time.Hour
)

// Identity — личность, извлечённая из проверенного токена.
type Identity struct {
	Subject string
	Role    domain.Role
}

// Manager подписывает и проверяет токены общим секретом (HS256).
type Manager struct {
	secret []byte
}

// NewManager создаёт менеджер токенов. Секрет обязателен.
func NewManager(secret string) (*Manager, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	return &Manager{secret: []byte(secret)}, nil
}

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Issue выпускает токен для пользователя с заданным сроком жизни.
func (m *Manager) Issue(userID string, role domain.Role, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify проверяет подпись и срок действия токена и возвращает личность.
// Роль вне закрытого набора отклоняется на этой границе.
func (m *Manager) Verify(raw string) (Identity, error) {
	if raw == "" {
		return Identity{}, domain.ErrMissingToken
	}

	var parsed claims
	_, err := jwt.ParseWithClaims(raw, &parsed, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return Identity{}, errors.Join(domain.ErrInvalidToken, err)
	}

	role := domain.Role(parsed.Role)
	if !domain.ValidRole(role) {
		return Identity{}, domain.ErrInvalidToken
	}
	if parsed.Subject == "" {
		return Identity{}, domain.ErrInvalidToken
	}

	return Identity{Subject: parsed.Subject, Role: role}, nil
}

// RequireAdmin проверяет, что личность принадлежит администратору.
func RequireAdmin(id Identity) error {
	if id.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	return nil
}
