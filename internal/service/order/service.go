// Package order реализует жизненный цикл заказа: создание, выборки с
// явными read-side join'ами, админские переходы статуса и сборку счёта.
package order

import (
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/odyostore/backoffice/internal/domain"
	"github.com/odyostore/backoffice/internal/invoice"
	"github.com/odyostore/backoffice/internal/metrics"
)

// Топики и типы событий для опционального Kafka-канала.
const (
	eventsTopic = "backoffice.orders"

	eventOrderCreated         = "order.created"
	eventOrderStatusChanged   = "order.status_changed"
	eventOrderShippingUpdated = "order.shipping_updated"
	eventOrderCancelled       = "order.cancelled"
)

// CreateInput — входные данные пользовательского создания заказа.
type CreateInput struct {
	Items           []domain.OrderItem
	ShippingAddress string
	PaymentMethod   domain.PaymentMethod
	TotalPriceMinor int64
}

// orderEvent — полезная нагрузка событий заказа.
type orderEvent struct {
	Type    string             `json:"type"`
	OrderID string             `json:"orderId"`
	Status  domain.OrderStatus `json:"status,omitempty"`
	At      time.Time          `json:"at"`
}

// Service — контроллер жизненного цикла заказов.
type Service struct {
	orders    domain.OrderRepository
	products  domain.ProductRepository
	users     domain.UserRepository
	hub       domain.Broadcaster
	publisher domain.EventPublisher
	metrics   *metrics.APIMetrics
	logger    *log.Entry
}

// NewService конструирует сервис с зависимостями.
// publisher и metrics могут быть nil.
func NewService(
	orders domain.OrderRepository,
	products domain.ProductRepository,
	users domain.UserRepository,
	hub domain.Broadcaster,
	publisher domain.EventPublisher,
	m *metrics.APIMetrics,
	logger *log.Entry,
) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "order-service")
	}
	return &Service{
		orders:    orders,
		products:  products,
		users:     users,
		hub:       hub,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
	}
}

// Create создаёт заказ в статусе pending от имени вызывающего пользователя.
// TotalPriceMinor принимается как предрассчитанное значение и далее не меняется.
func (s *Service) Create(userID string, input CreateInput) (domain.Order, error) {
	now := time.Now().UTC()
	order := domain.Order{
		ID:              uuid.NewString(),
		UserID:          userID,
		Items:           input.Items,
		Shipping:        domain.Shipping{Address: input.ShippingAddress},
		PaymentMethod:   input.PaymentMethod,
		TotalPriceMinor: input.TotalPriceMinor,
		Status:          domain.OrderStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if errs := order.ValidateForCreate(); len(errs) > 0 {
		// Первое замечание достаточно для ответа 400.
		return domain.Order{}, errs[0]
	}

	if err := s.orders.Create(order); err != nil {
		s.logger.WithError(err).Error("failed to create order")
		return domain.Order{}, err
	}

	s.metrics.RecordOrderCreated()
	s.notifyChanged(eventOrderCreated, order.ID, order.Status)
	return order, nil
}

// ListOwn возвращает заказы пользователя, новые первыми.
func (s *Service) ListOwn(userID string) ([]domain.Order, error) {
	orders, err := s.orders.ListByUser(userID)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Error("failed to list user orders")
		return nil, err
	}
	return orders, nil
}

// ListAll возвращает все заказы с присоединёнными проекциями товаров и клиентов.
func (s *Service) ListAll() ([]domain.OrderView, error) {
	orders, err := s.orders.List()
	if err != nil {
		s.logger.WithError(err).Error("failed to list orders")
		return nil, err
	}

	views := make([]domain.OrderView, 0, len(orders))
	for _, order := range orders {
		view, err := s.buildView(order)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// Get возвращает один заказ с join'ами или ErrOrderNotFound.
func (s *Service) Get(id string) (domain.OrderView, error) {
	order, err := s.orders.Get(id)
	if err != nil {
		return domain.OrderView{}, err
	}
	return s.buildView(order)
}

// SetStatus выставляет статус заказа. Проверяется только принадлежность
// закрытому набору: любой статус может следовать за любым, единственный
// охраняемый переход — Cancel.
func (s *Service) SetStatus(id string, status domain.OrderStatus) (domain.Order, error) {
	if !domain.ValidOrderStatus(status) {
		return domain.Order{}, domain.ErrInvalidStatus
	}

	order, err := s.orders.SetStatus(id, status, time.Now().UTC())
	if err != nil {
		if !domain.IsNotFound(err) {
			s.logger.WithError(err).WithField("order_id", id).Error("failed to update order status")
		}
		return domain.Order{}, err
	}

	s.metrics.RecordStatusUpdate(string(status))
	s.notifyChanged(eventOrderStatusChanged, order.ID, order.Status)
	return order, nil
}

// SetShipping перезаписывает запись о доставке целиком и всегда ставит
// отметку времени отгрузки, независимо от текущего статуса.
func (s *Service) SetShipping(id, company, trackingNumber string) (domain.Order, error) {
	now := time.Now().UTC()
	shipping := domain.Shipping{
		Company:        company,
		TrackingNumber: trackingNumber,
		ShippedAt:      &now,
	}

	order, err := s.orders.SetShipping(id, shipping, now)
	if err != nil {
		if !domain.IsNotFound(err) {
			s.logger.WithError(err).WithField("order_id", id).Error("failed to update shipping info")
		}
		return domain.Order{}, err
	}

	s.notifyChanged(eventOrderShippingUpdated, order.ID, order.Status)
	return order, nil
}

// Cancel отменяет заказ. Единственный охраняемый переход: разрешён только
// из статуса pending, иначе ErrOrderNotPending, статус не меняется.
func (s *Service) Cancel(id string) (domain.Order, error) {
	order, err := s.orders.Get(id)
	if err != nil {
		return domain.Order{}, err
	}
	if order.Status != domain.OrderStatusPending {
		return domain.Order{}, domain.ErrOrderNotPending
	}

	updated, err := s.orders.SetStatus(id, domain.OrderStatusCancelled, time.Now().UTC())
	if err != nil {
		s.logger.WithError(err).WithField("order_id", id).Error("failed to cancel order")
		return domain.Order{}, err
	}

	s.metrics.RecordOrderCancelled()
	s.notifyChanged(eventOrderCancelled, updated.ID, updated.Status)
	return updated, nil
}

// Invoice собирает денормализованное представление заказа и делегирует
// рендеринг счёта. Чтение без побочных эффектов, рассылки нет.
func (s *Service) Invoice(id string) ([]byte, error) {
	view, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	return invoice.Render(view)
}

// buildView выполняет явные read-side join'ы товаров и клиента.
// Отсутствующий товар или клиент не валит выборку: проекция остаётся
// частично заполненной, как populate в исходной системе.
func (s *Service) buildView(order domain.Order) (domain.OrderView, error) {
	ids := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		ids = append(ids, item.ProductID)
	}

	products, err := s.products.GetMany(ids)
	if err != nil {
		s.logger.WithError(err).WithField("order_id", order.ID).Error("failed to join products")
		return domain.OrderView{}, err
	}

	itemViews := make([]domain.OrderItemView, 0, len(order.Items))
	for _, item := range order.Items {
		summary := domain.ProductSummary{ID: item.ProductID}
		if product, ok := products[item.ProductID]; ok {
			summary.Name = product.Name
			summary.PriceMinor = product.PriceMinor
		}
		itemViews = append(itemViews, domain.OrderItemView{Product: summary, Quantity: item.Quantity})
	}

	customer := domain.CustomerSummary{ID: order.UserID}
	if user, err := s.users.Get(order.UserID); err == nil {
		customer.CompanyName = user.CompanyName
		customer.City = user.City
		customer.CompanyType = user.CompanyType
		customer.TaxNumber = user.TaxNumber
		customer.TaxOffice = user.TaxOffice
		customer.RegistryNumber = user.RegistryNumber
	}

	return domain.OrderView{Order: order, ItemViews: itemViews, Customer: customer}, nil
}

// notifyChanged рассылает сигнал обновления после успешной записи.
// Рассылка безусловная и никогда не проваливает исходную операцию;
// ошибка публикации события только логируется.
func (s *Service) notifyChanged(eventType, orderID string, status domain.OrderStatus) {
	if s.hub != nil {
		s.hub.Broadcast()
	}

	if s.publisher == nil {
		return
	}
	event := orderEvent{
		Type:    eventType,
		OrderID: orderID,
		Status:  status,
		At:      time.Now().UTC(),
	}
	if err := s.publisher.Publish(eventsTopic, orderID, event); err != nil {
		s.logger.WithError(err).WithFields(log.Fields{
			"order_id": orderID,
			"event":    eventType,
		}).Warn("failed to publish order event")
	}
}
