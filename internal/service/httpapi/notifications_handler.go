package httpapi

import "net/http"

type notification struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// handleNotifications отдаёт статический список системных объявлений.
// Динамический контент здесь пока не предусмотрен.
func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, []notification{
		{ID: 1, Title: "Hos geldiniz", Message: "Odyo Store bayi paneline hos geldiniz."},
		{ID: 2, Title: "Kampanya", Message: "Kampanyali urunler katalogda isaretlenmistir."},
	})
}
