package httpapi

import (
	"net/http"

	"github.com/odyostore/backoffice/internal/domain"
	usersvc "github.com/odyostore/backoffice/internal/service/user"
)

type registerRequest struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	CompanyName    string `json:"companyName"`
	City           string `json:"city"`
	CompanyType    string `json:"companyType"`
	TaxNumber      string `json:"taxNumber"`
	TaxOffice      string `json:"taxOffice"`
	RegistryNumber string `json:"registryNumber"`
	LicenseURL     string `json:"licenseUrl"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	user, err := s.users.Register(usersvc.RegisterInput{
		Email:          req.Email,
		Password:       req.Password,
		CompanyName:    req.CompanyName,
		City:           req.City,
		CompanyType:    req.CompanyType,
		TaxNumber:      req.TaxNumber,
		TaxOffice:      req.TaxOffice,
		RegistryNumber: req.RegistryNumber,
		LicenseURL:     req.LicenseURL,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, struct {
		Message string      `json:"message"`
		User    domain.User `json:"user"`
	}{
		Message: "registration accepted, awaiting approval",
		User:    user,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.users.Login(req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromContext(r.Context())

	user, err := s.users.Profile(identity.Subject)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleListPending(w http.ResponseWriter, r *http.Request) {
	pending, err := s.users.ListPending()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, pending)
}

type approveUserRequest struct {
	Role domain.Role `json:"role"`
}

func (s *Server) handleApproveUser(w http.ResponseWriter, r *http.Request) {
	// Тело опционально: без него роль остаётся по умолчанию.
	var req approveUserRequest
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	user, err := s.users.Approve(r.PathValue("id"), req.Role)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleRejectUser(w http.ResponseWriter, r *http.Request) {
	if err := s.users.Reject(r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, messageResponse{Message: "registration rejected"})
}
