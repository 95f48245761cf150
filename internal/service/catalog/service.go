// Package catalog реализует CRUD и выборки каталога товаров.
package catalog

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/odyostore/backoffice/internal/domain"
)

// ProductInput — поля карточки товара при создании и обновлении.
type ProductInput struct {
	Name          string   `json:"name"`
	Brand         string   `json:"brand"`
	Category      string   `json:"category"`
	Description   string   `json:"description"`
	PriceMinor    int64    `json:"price"`
	OldPriceMinor int64    `json:"oldPrice"`
	Stock         int32    `json:"stock"`
	Images        []string `json:"images"`
	Campaign      bool     `json:"campaign"`
}

// Service — операции каталога.
type Service struct {
	products domain.ProductRepository
	logger   *log.Entry
}

// NewService конструирует сервис каталога.
func NewService(products domain.ProductRepository, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "catalog-service")
	}
	return &Service{products: products, logger: logger}
}

// Create добавляет товар в каталог.
func (s *Service) Create(input ProductInput) (domain.Product, error) {
	if input.Name == "" {
		return domain.Product{}, fmt.Errorf("%w: product name is required", domain.ErrValidation)
	}
	if input.PriceMinor < 0 {
		return domain.Product{}, fmt.Errorf("%w: product price must be non-negative", domain.ErrValidation)
	}

	now := time.Now().UTC()
	product := domain.Product{
		ID:            uuid.NewString(),
		Name:          input.Name,
		Brand:         input.Brand,
		Category:      input.Category,
		Description:   input.Description,
		PriceMinor:    input.PriceMinor,
		OldPriceMinor: input.OldPriceMinor,
		Stock:         input.Stock,
		Images:        input.Images,
		Campaign:      input.Campaign,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.products.Create(product); err != nil {
		s.logger.WithError(err).Error("failed to create product")
		return domain.Product{}, err
	}
	return product, nil
}

// Get возвращает карточку товара.
func (s *Service) Get(id string) (domain.Product, error) {
	return s.products.Get(id)
}

// List возвращает каталог с фильтрами (категория, поиск, сортировка).
func (s *Service) List(filter domain.ProductFilter) ([]domain.Product, error) {
	return s.products.List(filter)
}

// Update перезаписывает редактируемые поля карточки.
func (s *Service) Update(id string, input ProductInput) (domain.Product, error) {
	current, err := s.products.Get(id)
	if err != nil {
		return domain.Product{}, err
	}

	current.Name = input.Name
	current.Brand = input.Brand
	current.Category = input.Category
	current.Description = input.Description
	current.PriceMinor = input.PriceMinor
	current.OldPriceMinor = input.OldPriceMinor
	current.Stock = input.Stock
	current.Images = input.Images
	current.Campaign = input.Campaign
	current.UpdatedAt = time.Now().UTC()

	return s.products.Update(current)
}

// Delete убирает товар из каталога.
func (s *Service) Delete(id string) error {
	return s.products.Delete(id)
}
