package domain

import "time"

// OrderRepository описывает хранилище заказов.
type OrderRepository interface {
	// Create сохраняет новый заказ.
	Create(order Order) error
	// Get возвращает заказ или ErrOrderNotFound.
	Get(id string) (Order, error)
	// ListByUser возвращает заказы пользователя, новые первыми.
	ListByUser(userID string) ([]Order, error)
	// List возвращает все заказы, новые первыми.
	List() ([]Order, error)
	// SetStatus перезаписывает статус заказа. Легальность значения
	// проверяет вызывающая сторона.
	SetStatus(id string, status OrderStatus, updatedAt time.Time) (Order, error)
	// SetShipping перезаписывает запись о доставке целиком.
	SetShipping(id string, shipping Shipping, updatedAt time.Time) (Order, error)
}

// UserRepository описывает хранилище пользователей.
type UserRepository interface {
	Create(user User) error
	Get(id string) (User, error)
	// GetByEmail возвращает пользователя или ErrUserNotFound.
	GetByEmail(email string) (User, error)
	// ListByApproval возвращает пользователей с заданным статусом модерации,
	// новые первыми.
	ListByApproval(approval Approval) ([]User, error)
	// SetApproval меняет статус модерации и, если role непустая, роль.
	SetApproval(id string, approval Approval, role Role) (User, error)
	// Delete удаляет учётную запись (отклонённые регистрации).
	Delete(id string) error
	// HasAdmin сообщает, существует ли хотя бы один администратор.
	HasAdmin() (bool, error)
}

// ProductRepository описывает хранилище каталога.
type ProductRepository interface {
	Create(product Product) error
	Get(id string) (Product, error)
	// GetMany возвращает товары по списку идентификаторов; отсутствующие
	// пропускаются.
	GetMany(ids []string) (map[string]Product, error)
	List(filter ProductFilter) ([]Product, error)
	Update(product Product) (Product, error)
	Delete(id string) error
}

// FranchiseRepository описывает хранилище заявок на франшизу.
type FranchiseRepository interface {
	Create(app FranchiseApplication) error
	Get(id string) (FranchiseApplication, error)
	List() ([]FranchiseApplication, error)
	SetStatus(id string, status ApplicationStatus) (FranchiseApplication, error)
}

// Broadcaster уведомляет подписчиков админки об изменениях заказов.
// Вызов не должен блокировать и не возвращает ошибку: доставка best-effort.
type Broadcaster interface {
	Broadcast()
}

// EventPublisher публикует доменные события наружу (опциональный Kafka-канал).
type EventPublisher interface {
	Publish(topic, key string, event any) error
}
