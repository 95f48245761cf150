package domain

import "time"

// OrderStatus описывает жизненный цикл заказа в бэк-офисе.
type OrderStatus string

const (
	// OrderStatusPending — заказ создан и ожидает подтверждения администратором.
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusConfirmed — заказ подтверждён.
	OrderStatusConfirmed OrderStatus = "confirmed"
	// OrderStatusInvoiced — по заказу выставлен счёт.
	OrderStatusInvoiced OrderStatus = "invoiced"
	// OrderStatusShipped — заказ передан в доставку.
	OrderStatusShipped OrderStatus = "shipped"
	// OrderStatusDelivered — заказ доставлен клиенту (терминальный статус).
	OrderStatusDelivered OrderStatus = "delivered"
	// OrderStatusCancelled — заказ отменён (терминальный статус).
	OrderStatusCancelled OrderStatus = "cancelled"
)

// ValidOrderStatus проверяет принадлежность значения закрытому набору статусов.
// Проверяется только членство в наборе: администратор может выставить любой
// статус после любого, единственный охраняемый переход — отмена.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusInvoiced,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// PaymentMethod описывает способ оплаты заказа.
type PaymentMethod string

const (
	PaymentCreditCard     PaymentMethod = "credit_card"
	PaymentBankTransfer   PaymentMethod = "bank_transfer"
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
)

// ValidPaymentMethod проверяет принадлежность значения набору способов оплаты.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentCreditCard, PaymentBankTransfer, PaymentCashOnDelivery:
		return true
	default:
		return false
	}
}

// OrderItem представляет одну позицию заказа: ссылку на товар и количество.
type OrderItem struct {
	ProductID string `json:"product"`
	Quantity  int32  `json:"quantity"`
}

// Shipping — вложенная запись о доставке. Адрес заполняется при создании
// заказа, перевозчик и трек-номер — при отгрузке.
type Shipping struct {
	Address        string     `json:"address,omitempty"`
	Company        string     `json:"company,omitempty"`
	TrackingNumber string     `json:"trackingNumber,omitempty"`
	ShippedAt      *time.Time `json:"shippedAt,omitempty"`
}

// Order агрегирует состояние заказа и его позиции.
// TotalPriceMinor фиксируется при создании и далее не пересчитывается.
type Order struct {
	ID              string        `json:"id"`
	UserID          string        `json:"user"`
	Items           []OrderItem   `json:"items"`
	Shipping        Shipping      `json:"shipping"`
	PaymentMethod   PaymentMethod `json:"paymentMethod"`
	TotalPriceMinor int64         `json:"totalPrice"`
	Status          OrderStatus   `json:"status"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

// ValidateForCreate проверяет базовые инварианты заказа и возвращает список замечаний.
func (o *Order) ValidateForCreate() []error {
	var errs []error

	if o.UserID == "" {
		errs = append(errs, ErrUserRequired)
	}
	if len(o.Items) == 0 {
		errs = append(errs, ErrItemsRequired)
	}
	for _, item := range o.Items {
		if item.ProductID == "" {
			errs = append(errs, ErrItemProductRequired)
		}
		if item.Quantity < 1 {
			errs = append(errs, ErrItemQtyInvalid)
		}
	}
	if o.TotalPriceMinor < 0 {
		errs = append(errs, ErrTotalNegative)
	}
	if !ValidPaymentMethod(o.PaymentMethod) {
		errs = append(errs, ErrInvalidPayment)
	}

	return errs
}
