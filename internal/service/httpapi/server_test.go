package httpapi

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/odyostore/backoffice/internal/auth"
	"github.com/odyostore/backoffice/internal/domain"
	"github.com/odyostore/backoffice/internal/notify"
	catalogsvc "github.com/odyostore/backoffice/internal/service/catalog"
	franchisesvc "github.com/odyostore/backoffice/internal/service/franchise"
	ordersvc "github.com/odyostore/backoffice/internal/service/order"
	usersvc "github.com/odyostore/backoffice/internal/service/user"
	"github.com/odyostore/backoffice/internal/storage/memory"
)

type fixture struct {
	ts    *httptest.Server
	hub   *notify.Hub
	users *usersvc.Service

	adminToken string
	userToken  string
	userID     string
	productID  string
}

func setup(t *testing.T) *fixture {
	t.Helper()

	logger := log.New()
	logger.SetOutput(io.Discard)
	entry := logger.WithField("component", "test")

	tokens, err := auth.NewManager("test-secret")
	require.NoError(t, err)

	orderRepo := memory.NewOrderRepository()
	userRepo := memory.NewUserRepository()
	productRepo := memory.NewProductRepository()
	franchiseRepo := memory.NewFranchiseRepository()

	hub := notify.NewHub(entry, nil)
	t.Cleanup(hub.Close)

	users := usersvc.NewService(userRepo, tokens, entry)
	orders := ordersvc.NewService(orderRepo, productRepo, userRepo, hub, nil, nil, entry)
	catalog := catalogsvc.NewService(productRepo, entry)
	franchise := franchisesvc.NewService(franchiseRepo, userRepo, entry)

	require.NoError(t, users.SeedAdmin("admin@odyo.test", "admin-pass"))
	adminLogin, err := users.Login("admin@odyo.test", "admin-pass")
	require.NoError(t, err)

	registered, err := users.Register(usersvc.RegisterInput{
		Email:       "center@odyo.test",
		Password:    "center-pass",
		CompanyName: "Duyu Isitme",
		City:        "Ankara",
	})
	require.NoError(t, err)
	_, err = users.Approve(registered.ID, "")
	require.NoError(t, err)
	userLogin, err := users.Login("center@odyo.test", "center-pass")
	require.NoError(t, err)

	product, err := catalog.Create(catalogsvc.ProductInput{Name: "Isitme Cihazi", PriceMinor: 5000, Stock: 10})
	require.NoError(t, err)

	server := NewServer(orders, users, catalog, franchise, tokens, hub, nil, entry)
	ts := httptest.NewServer(server.Routes())
	t.Cleanup(ts.Close)

	return &fixture{
		ts:         ts,
		hub:        hub,
		users:      users,
		adminToken: adminLogin.Token,
		userToken:  userLogin.Token,
		userID:     registered.ID,
		productID:  product.ID,
	}
}

// do выполняет запрос к тестовому серверу; body != nil кодируется в JSON.
func (f *fixture) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, f.ts.URL+path, reader)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := f.ts.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}

func (f *fixture) createOrder(t *testing.T) domain.Order {
	t.Helper()

	resp := f.do(t, http.MethodPost, "/api/order", f.userToken, map[string]any{
		"items":           []map[string]any{{"product": f.productID, "quantity": 2}},
		"shippingAddress": "Cankaya, Ankara",
		"paymentMethod":   "bank_transfer",
		"totalPrice":      10000,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var order domain.Order
	decodeBody(t, resp, &order)
	return order
}

func TestRegisterAndModerationFlow(t *testing.T) {
	f := setup(t)

	resp := f.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":       "new@odyo.test",
		"password":    "secret",
		"companyName": "Yeni Merkez",
		"city":        "Izmir",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		User domain.User `json:"user"`
	}
	decodeBody(t, resp, &created)
	require.Equal(t, domain.ApprovalPending, created.User.Approval)

	// До одобрения вход закрыт.
	resp = f.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "new@odyo.test", "password": "secret",
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodGet, "/api/auth/pending", f.adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var pending []domain.User
	decodeBody(t, resp, &pending)
	require.Len(t, pending, 1)
	require.Equal(t, "new@odyo.test", pending[0].Email)

	resp = f.do(t, http.MethodPost, "/api/auth/pending/"+created.User.ID+"/approve", f.adminToken, map[string]any{
		"role": "supplier",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var approved domain.User
	decodeBody(t, resp, &approved)
	require.Equal(t, domain.RoleSupplier, approved.Role)

	resp = f.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "new@odyo.test", "password": "secret",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var login usersvc.LoginResult
	decodeBody(t, resp, &login)
	require.NotEmpty(t, login.Token)

	resp = f.do(t, http.MethodGet, "/api/auth/me", login.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me domain.User
	decodeBody(t, resp, &me)
	require.Equal(t, "new@odyo.test", me.Email)
}

func TestRejectRemovesRegistration(t *testing.T) {
	f := setup(t)

	registered, err := f.users.Register(usersvc.RegisterInput{
		Email: "doomed@odyo.test", Password: "x", CompanyName: "C", City: "Bursa",
	})
	require.NoError(t, err)

	resp := f.do(t, http.MethodPost, "/api/auth/pending/"+registered.ID+"/reject", f.adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "doomed@odyo.test", "password": "x",
	})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestAuthErrors(t *testing.T) {
	f := setup(t)

	resp := f.do(t, http.MethodGet, "/api/auth/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodGet, "/api/auth/me", "not-a-token", nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// Админские маршруты закрыты для обычной роли.
	resp = f.do(t, http.MethodGet, "/api/orders/admin", f.userToken, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "center@odyo.test", "password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestOrderLifecycleOverHTTP(t *testing.T) {
	f := setup(t)

	order := f.createOrder(t)
	require.Equal(t, domain.OrderStatusPending, order.Status)

	resp := f.do(t, http.MethodGet, "/api/order", f.userToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var own []domain.Order
	decodeBody(t, resp, &own)
	require.Len(t, own, 1)

	resp = f.do(t, http.MethodGet, "/api/orders/admin/"+order.ID, f.adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var view domain.OrderView
	decodeBody(t, resp, &view)
	require.Equal(t, "Isitme Cihazi", view.ItemViews[0].Product.Name)
	require.Equal(t, "Duyu Isitme", view.Customer.CompanyName)

	resp = f.do(t, http.MethodPut, "/api/orders/admin/"+order.ID+"/status", f.adminToken, map[string]any{
		"status": "shipped",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated domain.Order
	decodeBody(t, resp, &updated)
	require.Equal(t, domain.OrderStatusShipped, updated.Status)

	// Отмена после отгрузки конфликтует с охраняемым переходом.
	resp = f.do(t, http.MethodPut, "/api/orders/admin/"+order.ID+"/cancel", f.adminToken, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodPut, "/api/orders/admin/"+order.ID+"/status", f.adminToken, map[string]any{
		"status": "paid",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodGet, "/api/orders/admin/missing-id", f.adminToken, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	fresh := f.createOrder(t)
	resp = f.do(t, http.MethodPut, "/api/orders/admin/"+fresh.ID+"/cancel", f.adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var msg map[string]string
	decodeBody(t, resp, &msg)
	require.Equal(t, "order cancelled", msg["message"])
}

func TestCreateOrderValidation(t *testing.T) {
	f := setup(t)

	resp := f.do(t, http.MethodPost, "/api/order", f.userToken, map[string]any{
		"items": []map[string]any{}, "totalPrice": 0,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodPost, "/api/order", f.userToken, map[string]any{
		"items":      []map[string]any{{"product": f.productID, "quantity": 1}},
		"totalPrice": -5,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestSetShippingOverHTTP(t *testing.T) {
	f := setup(t)
	order := f.createOrder(t)

	resp := f.do(t, http.MethodPut, "/api/orders/admin/"+order.ID+"/shipping", f.adminToken, map[string]any{
		"company": "Aras Kargo", "trackingNumber": "TRK-42",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated domain.Order
	decodeBody(t, resp, &updated)
	require.Equal(t, "Aras Kargo", updated.Shipping.Company)
	require.Equal(t, "TRK-42", updated.Shipping.TrackingNumber)
	require.NotNil(t, updated.Shipping.ShippedAt)
}

func TestInvoiceEndpoint(t *testing.T) {
	f := setup(t)
	order := f.createOrder(t)

	resp := f.do(t, http.MethodGet, "/api/orders/admin/"+order.ID+"/invoice", f.adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	require.Equal(t,
		fmt.Sprintf(`attachment; filename="Fatura_%s.pdf"`, order.ID),
		resp.Header.Get("Content-Disposition"))

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(body, []byte("%PDF-")))
}

func TestOrderStream(t *testing.T) {
	f := setup(t)

	// Без токена и с ролью без прав стрим не открывается.
	resp := f.do(t, http.MethodGet, "/api/orders/admin/stream", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodGet, "/api/orders/admin/stream?token="+f.userToken, "", nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodGet, "/api/orders/admin/stream?token="+f.adminToken, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	require.Equal(t, "retry: 10000", strings.TrimRight(line, "\n"))

	// Подписка оформляется после отправки retry-подсказки; дожидаемся её,
	// прежде чем провоцировать рассылку.
	require.Eventually(t, func() bool { return f.hub.Len() == 1 }, time.Second, 5*time.Millisecond)

	f.createOrder(t)

	deadline := time.After(2 * time.Second)
	got := make(chan string, 1)
	go func() {
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				return
			}
			if strings.HasPrefix(line, "data: ") {
				got <- strings.TrimRight(strings.TrimPrefix(line, "data: "), "\n")
				return
			}
		}
	}()

	select {
	case payload := <-got:
		require.Equal(t, "update", payload)
	case <-deadline:
		t.Fatal("update frame was not delivered")
	}
}

func TestProductsCRUD(t *testing.T) {
	f := setup(t)

	resp := f.do(t, http.MethodPost, "/api/products", f.adminToken, map[string]any{
		"name": "Kulak Ici Cihaz", "price": 7500, "stock": 3, "category": "cihaz",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var product domain.Product
	decodeBody(t, resp, &product)

	// Каталог публичный, токен не нужен.
	resp = f.do(t, http.MethodGet, "/api/products?category=cihaz", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listed []domain.Product
	decodeBody(t, resp, &listed)
	require.Len(t, listed, 1)

	resp = f.do(t, http.MethodPut, "/api/products/"+product.ID, f.adminToken, map[string]any{
		"name": "Kulak Ici Cihaz", "price": 8000, "stock": 2, "category": "cihaz",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated domain.Product
	decodeBody(t, resp, &updated)
	require.Equal(t, int64(8000), updated.PriceMinor)

	resp = f.do(t, http.MethodDelete, "/api/products/"+product.ID, f.adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodGet, "/api/products/"+product.ID, "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodPost, "/api/products", f.adminToken, map[string]any{"price": 100})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Запись в каталог только для админа.
	resp = f.do(t, http.MethodPost, "/api/products", f.userToken, map[string]any{"name": "X"})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestFranchiseFlow(t *testing.T) {
	f := setup(t)

	resp := f.do(t, http.MethodPost, "/api/franchise/apply", f.userToken, map[string]any{
		"companyName": "Sube Adayi", "address": "Kizilay", "phone": "+90 555 000 00 00",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var app domain.FranchiseApplication
	decodeBody(t, resp, &app)
	require.Equal(t, domain.ApplicationPending, app.Status)

	resp = f.do(t, http.MethodGet, "/api/franchise", f.adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var views []domain.ApplicationView
	decodeBody(t, resp, &views)
	require.Len(t, views, 1)
	require.Equal(t, "center@odyo.test", views[0].ApplicantEmail)

	resp = f.do(t, http.MethodPost, "/api/franchise/"+app.ID+"/approve", f.adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var approved domain.FranchiseApplication
	decodeBody(t, resp, &approved)
	require.Equal(t, domain.ApplicationApproved, approved.Status)
}

func TestNotificationsStaticList(t *testing.T) {
	f := setup(t)

	resp := f.do(t, http.MethodGet, "/api/notifications", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var items []notification
	decodeBody(t, resp, &items)
	require.NotEmpty(t, items)
}
