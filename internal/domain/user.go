package domain

import "time"

// Role описывает закрытый набор ролей пользователей.
type Role string

const (
	// RoleAdmin — администратор бэк-офиса.
	RoleAdmin Role = "admin"
	// RoleCenter — бизнес-центр, размещающий заказы.
	RoleCenter Role = "center"
	// RoleSupplier — поставщик.
	RoleSupplier Role = "supplier"
)

// ValidRole проверяет принадлежность значения набору ролей.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleCenter, RoleSupplier:
		return true
	default:
		return false
	}
}

// Approval описывает статус модерации учётной записи.
type Approval string

const (
	ApprovalPending  Approval = "pending"
	ApprovalApproved Approval = "approved"
	ApprovalRejected Approval = "rejected"
)

// User — учётная запись компании-клиента либо администратора.
// PasswordHash никогда не сериализуется наружу.
type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	CompanyName    string    `json:"companyName,omitempty"`
	City           string    `json:"city,omitempty"`
	CompanyType    string    `json:"companyType,omitempty"`
	TaxNumber      string    `json:"taxNumber,omitempty"`
	TaxOffice      string    `json:"taxOffice,omitempty"`
	RegistryNumber string    `json:"registryNumber,omitempty"`
	LicenseURL     string    `json:"licenseUrl,omitempty"`
	Role           Role      `json:"role"`
	Approval       Approval  `json:"approval"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
