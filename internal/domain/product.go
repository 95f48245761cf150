package domain

import "time"

// Product — карточка товара в каталоге.
type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Brand         string    `json:"brand,omitempty"`
	Category      string    `json:"category,omitempty"`
	Description   string    `json:"description,omitempty"`
	PriceMinor    int64     `json:"price"`
	OldPriceMinor int64     `json:"oldPrice,omitempty"`
	Stock         int32     `json:"stock"`
	Images        []string  `json:"images,omitempty"`
	Sold          int32     `json:"sold"`
	Campaign      bool      `json:"campaign"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ProductFilter задаёт параметры выборки каталога.
// Пустые поля означают отсутствие фильтра.
type ProductFilter struct {
	Category string
	Search   string
	// Filter: popular | new | campaign
	Filter string
	// Sort: priceAsc | priceDesc
	Sort string
}
