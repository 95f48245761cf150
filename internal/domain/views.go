package domain

// ProductSummary — денормализованная проекция товара внутри заказа.
type ProductSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PriceMinor int64  `json:"price"`
}

// CustomerSummary — денормализованная проекция владельца заказа
// (поля, нужные админке и счёту; без email и пароля).
type CustomerSummary struct {
	ID             string `json:"id"`
	CompanyName    string `json:"companyName,omitempty"`
	City           string `json:"city,omitempty"`
	CompanyType    string `json:"companyType,omitempty"`
	TaxNumber      string `json:"taxNumber,omitempty"`
	TaxOffice      string `json:"taxOffice,omitempty"`
	RegistryNumber string `json:"registryNumber,omitempty"`
}

// OrderItemView — позиция заказа с присоединёнными данными товара.
type OrderItemView struct {
	Product  ProductSummary `json:"product"`
	Quantity int32          `json:"quantity"`
}

// OrderView — заказ с явными read-side join'ами товаров и пользователя.
// Собирается сервисом заказов; хранилище join'ов не делает.
type OrderView struct {
	Order
	ItemViews []OrderItemView `json:"itemViews"`
	Customer  CustomerSummary `json:"customer"`
}
