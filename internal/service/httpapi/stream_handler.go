package httpapi

import (
	"net/http"

	"github.com/odyostore/backoffice/internal/auth"
)

// Подсказка клиенту: интервал переподключения SSE в миллисекундах.
const streamRetryHint = "retry: 10000\n\n"

// handleOrderStream открывает долгоживущий SSE-канал для админки.
// Токен приходит query-параметром: EventSource не умеет ставить заголовки.
func (s *Server) handleOrderStream(w http.ResponseWriter, r *http.Request) {
	identity, err := s.tokens.Verify(r.URL.Query().Get("token"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := auth.RequireAdmin(identity); err != nil {
		s.writeError(w, r, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "streaming is not supported"})
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write([]byte(streamRetryHint)); err != nil {
		return
	}
	flusher.Flush()

	// Подписка снимается ровно один раз: либо здесь при выходе,
	// либо это no-op, если hub уже закрыт.
	signals, unsubscribe := s.hub.Subscribe()
	defer unsubscribe()

	s.logger.WithField("admin_id", identity.Subject).Debug("admin stream connected")

	for {
		select {
		case <-r.Context().Done():
			// Закрытие соединения клиентом — единственный сигнал отмены.
			s.logger.WithField("admin_id", identity.Subject).Debug("admin stream disconnected")
			return
		case _, open := <-signals:
			if !open {
				// Hub остановлен при завершении процесса.
				return
			}
			if _, err := w.Write([]byte("data: update\n\n")); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
