package httpapi

import (
	"fmt"
	"net/http"

	"github.com/odyostore/backoffice/internal/domain"
	ordersvc "github.com/odyostore/backoffice/internal/service/order"
)

type createOrderRequest struct {
	Items           []domain.OrderItem   `json:"items"`
	ShippingAddress string               `json:"shippingAddress"`
	PaymentMethod   domain.PaymentMethod `json:"paymentMethod"`
	TotalPrice      int64                `json:"totalPrice"`
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromContext(r.Context())

	var req createOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	order, err := s.orders.Create(identity.Subject, ordersvc.CreateInput{
		Items:           req.Items,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		TotalPriceMinor: req.TotalPrice,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, order)
}

func (s *Server) handleListOwnOrders(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromContext(r.Context())

	orders, err := s.orders.ListOwn(identity.Subject)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, orders)
}

func (s *Server) handleListAllOrders(w http.ResponseWriter, r *http.Request) {
	views, err := s.orders.ListAll()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	view, err := s.orders.Get(r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, view)
}

type setStatusRequest struct {
	Status domain.OrderStatus `json:"status"`
}

func (s *Server) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	var req setStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	order, err := s.orders.SetStatus(r.PathValue("id"), req.Status)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, order)
}

type setShippingRequest struct {
	Company        string `json:"company"`
	TrackingNumber string `json:"trackingNumber"`
}

func (s *Server) handleSetShipping(w http.ResponseWriter, r *http.Request) {
	var req setShippingRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	order, err := s.orders.SetShipping(r.PathValue("id"), req.Company, req.TrackingNumber)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, order)
}

func (s *Server) handleCancelOrder(w http.ResponseWriter, r *http.Request) {
	if _, err := s.orders.Cancel(r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, messageResponse{Message: "order cancelled"})
}

func (s *Server) handleInvoice(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	pdf, err := s.orders.Invoice(id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="Fatura_%s.pdf"`, id))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		s.logger.WithError(err).Warn("failed to write invoice response")
	}
}
