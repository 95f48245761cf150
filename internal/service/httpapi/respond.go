package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/odyostore/backoffice/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.WithError(err).Warn("failed to encode response")
	}
}

// writeError переводит доменные ошибки в HTTP-статусы. Доменные нарушения
// отдаются как есть, всё неожиданное схлопывается в 500 с общим текстом.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrMissingToken),
		errors.Is(err, domain.ErrBadCredentials):
		s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrNotApproved):
		s.writeJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})
	case domain.IsNotFound(err):
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case isValidation(err):
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		s.logger.WithError(err).WithFields(map[string]any{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Error("request failed")
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "unexpected server error"})
	}
}

// isValidation относит ошибку к классу 400: некорректный вход либо
// конфликт состояния при отмене.
func isValidation(err error) bool {
	return errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrItemsRequired) ||
		errors.Is(err, domain.ErrItemProductRequired) ||
		errors.Is(err, domain.ErrItemQtyInvalid) ||
		errors.Is(err, domain.ErrTotalNegative) ||
		errors.Is(err, domain.ErrUserRequired) ||
		errors.Is(err, domain.ErrInvalidStatus) ||
		errors.Is(err, domain.ErrInvalidPayment) ||
		errors.Is(err, domain.ErrInvalidRole) ||
		errors.Is(err, domain.ErrEmailTaken) ||
		errors.Is(err, domain.ErrOrderNotPending)
}

// decodeJSON разбирает тело запроса; ошибки парсинга — это 400.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.Join(domain.ErrValidation, err)
	}
	return nil
}
