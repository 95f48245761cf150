package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/odyostore/backoffice/internal/auth"
	"github.com/odyostore/backoffice/internal/domain"
)

type contextKey struct{}

var identityKey contextKey

// identityFromContext достаёт личность, положенную middleware.
func identityFromContext(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(identityKey).(auth.Identity)
	return id, ok
}

// withAuth проверяет bearer-токен из заголовка Authorization и кладёт
// личность в контекст запроса.
func (s *Server) withAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, err := s.authenticate(r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), identityKey, identity)))
	}
}

// withAdmin дополнительно требует роль администратора.
func (s *Server) withAdmin(next http.HandlerFunc) http.HandlerFunc {
	return s.withAuth(func(w http.ResponseWriter, r *http.Request) {
		identity, _ := identityFromContext(r.Context())
		if err := auth.RequireAdmin(identity); err != nil {
			s.writeError(w, r, err)
			return
		}
		next(w, r)
	})
}

func (s *Server) authenticate(r *http.Request) (auth.Identity, error) {
	header := r.Header.Get("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return auth.Identity{}, domain.ErrMissingToken
	}
	return s.tokens.Verify(strings.TrimPrefix(header, "Bearer "))
}

// instrument записывает длительность запроса в гистограмму по маршруту.
func (s *Server) instrument(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next(w, r)
		s.metrics.ObserveRequest(route, time.Since(start))
	}
}
