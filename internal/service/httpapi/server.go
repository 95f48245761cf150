// Package httpapi реализует HTTP/JSON-транспорт бэк-офиса поверх доменных
// сервисов: маршрутизацию, аутентификацию и SSE-стрим обновлений заказов.
package httpapi

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/odyostore/backoffice/internal/auth"
	"github.com/odyostore/backoffice/internal/metrics"
	"github.com/odyostore/backoffice/internal/notify"
	catalogsvc "github.com/odyostore/backoffice/internal/service/catalog"
	franchisesvc "github.com/odyostore/backoffice/internal/service/franchise"
	ordersvc "github.com/odyostore/backoffice/internal/service/order"
	usersvc "github.com/odyostore/backoffice/internal/service/user"
)

// Server агрегирует зависимости HTTP-обработчиков.
type Server struct {
	orders    *ordersvc.Service
	users     *usersvc.Service
	catalog   *catalogsvc.Service
	franchise *franchisesvc.Service
	tokens    *auth.Manager
	hub       *notify.Hub
	metrics   *metrics.APIMetrics
	logger    *log.Entry
}

// NewServer конструирует транспорт. metrics может быть nil.
func NewServer(
	orders *ordersvc.Service,
	users *usersvc.Service,
	catalog *catalogsvc.Service,
	franchise *franchisesvc.Service,
	tokens *auth.Manager,
	hub *notify.Hub,
	m *metrics.APIMetrics,
	logger *log.Entry,
) *Server {
	if logger == nil {
		logger = log.New().WithField("component", "http-api")
	}
	return &Server{
		orders:    orders,
		users:     users,
		catalog:   catalog,
		franchise: franchise,
		tokens:    tokens,
		hub:       hub,
		metrics:   m,
		logger:    logger,
	}
}

// Routes собирает маршрутизатор. Используются шаблоны метод+путь стандартного
// ServeMux; литеральный сегмент stream специфичнее {id} и матчится первым.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	// Аутентификация и модерация регистраций.
	mux.HandleFunc("POST /api/auth/register", s.instrument("auth_register", s.handleRegister))
	mux.HandleFunc("POST /api/auth/login", s.instrument("auth_login", s.handleLogin))
	mux.HandleFunc("GET /api/auth/me", s.instrument("auth_me", s.withAuth(s.handleProfile)))
	mux.HandleFunc("GET /api/auth/pending", s.instrument("auth_pending", s.withAdmin(s.handleListPending)))
	mux.HandleFunc("POST /api/auth/pending/{id}/approve", s.instrument("auth_approve", s.withAdmin(s.handleApproveUser)))
	mux.HandleFunc("POST /api/auth/pending/{id}/reject", s.instrument("auth_reject", s.withAdmin(s.handleRejectUser)))

	// Каталог.
	mux.HandleFunc("GET /api/products", s.instrument("products_list", s.handleListProducts))
	mux.HandleFunc("GET /api/products/{id}", s.instrument("products_get", s.handleGetProduct))
	mux.HandleFunc("POST /api/products", s.instrument("products_create", s.withAdmin(s.handleCreateProduct)))
	mux.HandleFunc("PUT /api/products/{id}", s.instrument("products_update", s.withAdmin(s.handleUpdateProduct)))
	mux.HandleFunc("DELETE /api/products/{id}", s.instrument("products_delete", s.withAdmin(s.handleDeleteProduct)))

	// Франшиза.
	mux.HandleFunc("POST /api/franchise/apply", s.instrument("franchise_apply", s.withAuth(s.handleFranchiseApply)))
	mux.HandleFunc("GET /api/franchise", s.instrument("franchise_list", s.withAdmin(s.handleFranchiseList)))
	mux.HandleFunc("POST /api/franchise/{id}/approve", s.instrument("franchise_approve", s.withAdmin(s.handleFranchiseApprove)))
	mux.HandleFunc("POST /api/franchise/{id}/reject", s.instrument("franchise_reject", s.withAdmin(s.handleFranchiseReject)))

	// Заказы: пользовательская часть.
	mux.HandleFunc("POST /api/order", s.instrument("order_create", s.withAuth(s.handleCreateOrder)))
	mux.HandleFunc("GET /api/order", s.instrument("order_list_own", s.withAuth(s.handleListOwnOrders)))

	// Заказы: админка.
	mux.HandleFunc("GET /api/orders/admin", s.instrument("orders_admin_list", s.withAdmin(s.handleListAllOrders)))
	mux.HandleFunc("GET /api/orders/admin/stream", s.instrument("orders_admin_stream", s.handleOrderStream))
	mux.HandleFunc("GET /api/orders/admin/{id}", s.instrument("orders_admin_get", s.withAdmin(s.handleGetOrder)))
	mux.HandleFunc("PUT /api/orders/admin/{id}/status", s.instrument("orders_admin_status", s.withAdmin(s.handleSetStatus)))
	mux.HandleFunc("PUT /api/orders/admin/{id}/shipping", s.instrument("orders_admin_shipping", s.withAdmin(s.handleSetShipping)))
	mux.HandleFunc("PUT /api/orders/admin/{id}/cancel", s.instrument("orders_admin_cancel", s.withAdmin(s.handleCancelOrder)))
	mux.HandleFunc("GET /api/orders/admin/{id}/invoice", s.instrument("orders_admin_invoice", s.withAdmin(s.handleInvoice)))

	// Системные уведомления (статический список).
	mux.HandleFunc("GET /api/notifications", s.instrument("notifications", s.handleNotifications))

	return mux
}
