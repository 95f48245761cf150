package domain

import "errors"

var (
	// Ошибка отсутствующего владельца заказа.
	ErrUserRequired = errors.New("user is required")
	// Ошибка отсутствия хотя бы одной позиции в заказе.
	ErrItemsRequired = errors.New("order must contain at least one item")
	// Ошибка позиции без ссылки на товар.
	ErrItemProductRequired = errors.New("item product is required")
	// Ошибка при некорректном количестве товара (< 1).
	ErrItemQtyInvalid = errors.New("item quantity must be at least one")
	// Ошибка отрицательной суммы заказа.
	ErrTotalNegative = errors.New("total price must be non-negative")
	// Ошибка значения статуса вне закрытого набора.
	ErrInvalidStatus = errors.New("invalid order status value")
	// Ошибка значения способа оплаты вне закрытого набора.
	ErrInvalidPayment = errors.New("invalid payment method")
	// ErrValidation — обёртка для прочих ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")
	// ErrOrderNotFound возвращается, если заказ не найден в репозитории.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderNotPending — отменить можно только заказ в статусе pending.
	ErrOrderNotPending = errors.New("only pending orders can be cancelled")

	// ErrUserNotFound возвращается, если пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken — пользователь с таким email уже зарегистрирован.
	ErrEmailTaken = errors.New("email is already registered")
	// ErrBadCredentials — неверная пара email/пароль.
	ErrBadCredentials = errors.New("invalid credentials")
	// ErrNotApproved — учётная запись ещё не одобрена администратором.
	ErrNotApproved = errors.New("account is awaiting approval")
	// ErrInvalidRole — роль вне закрытого набора.
	ErrInvalidRole = errors.New("invalid role value")

	// ErrProductNotFound возвращается, если товар не найден.
	ErrProductNotFound = errors.New("product not found")
	// ErrApplicationNotFound возвращается, если заявка на франшизу не найдена.
	ErrApplicationNotFound = errors.New("franchise application not found")

	// ErrMissingToken — в запросе нет bearer-токена.
	ErrMissingToken = errors.New("authorization token is missing")
	// ErrInvalidToken — подпись или срок действия токена не прошли проверку.
	ErrInvalidToken = errors.New("authorization token is invalid")
	// ErrForbidden — операция доступна только администратору.
	ErrForbidden = errors.New("operation requires admin role")
)

// IsNotFound проверяет, относится ли ошибка к классу "не найдено".
func IsNotFound(err error) bool {
	return errors.Is(err, ErrOrderNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrApplicationNotFound)
}
