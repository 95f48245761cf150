package httpapi

import (
	"net/http"

	franchisesvc "github.com/odyostore/backoffice/internal/service/franchise"
)

func (s *Server) handleFranchiseApply(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromContext(r.Context())

	var input franchisesvc.ApplyInput
	if err := decodeJSON(r, &input); err != nil {
		s.writeError(w, r, err)
		return
	}

	app, err := s.franchise.Apply(identity.Subject, input)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, app)
}

func (s *Server) handleFranchiseList(w http.ResponseWriter, r *http.Request) {
	views, err := s.franchise.List()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleFranchiseApprove(w http.ResponseWriter, r *http.Request) {
	app, err := s.franchise.Approve(r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, app)
}

func (s *Server) handleFranchiseReject(w http.ResponseWriter, r *http.Request) {
	app, err := s.franchise.Reject(r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, app)
}
