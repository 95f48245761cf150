package memory

import (
	"sort"
	"strings"
	"sync"

	"github.com/odyostore/backoffice/internal/domain"
)

// productRepositoryInMemory — in-memory реализация ProductRepository.
type productRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Product
}

// NewProductRepository возвращает in-memory репозиторий каталога.
func NewProductRepository() domain.ProductRepository {
	return &productRepositoryInMemory{
		items: make(map[string]domain.Product),
	}
}

// Create сохраняет товар.
func (r *productRepositoryInMemory) Create(product domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product.Images = copyStrings(product.Images)
	r.items[product.ID] = product
	return nil
}

// Get возвращает товар или ErrProductNotFound.
func (r *productRepositoryInMemory) Get(id string) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.items[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	product.Images = copyStrings(product.Images)
	return product, nil
}

// GetMany возвращает товары по списку идентификаторов; отсутствующие пропускаются.
func (r *productRepositoryInMemory) GetMany(ids []string) (map[string]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]domain.Product, len(ids))
	for _, id := range ids {
		if product, ok := r.items[id]; ok {
			product.Images = copyStrings(product.Images)
			result[id] = product
		}
	}
	return result, nil
}

// List возвращает каталог с учётом фильтров и сортировки.
func (r *productRepositoryInMemory) List(filter domain.ProductFilter) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Product, 0, len(r.items))
	for _, product := range r.items {
		if filter.Category != "" && product.Category != filter.Category {
			continue
		}
		if filter.Search != "" && !matchesSearch(product, filter.Search) {
			continue
		}
		if filter.Filter == "campaign" && !product.Campaign {
			continue
		}
		product.Images = copyStrings(product.Images)
		result = append(result, product)
	}

	switch {
	case filter.Sort == "priceAsc":
		sort.Slice(result, func(i, j int) bool { return result[i].PriceMinor < result[j].PriceMinor })
	case filter.Sort == "priceDesc":
		sort.Slice(result, func(i, j int) bool { return result[i].PriceMinor > result[j].PriceMinor })
	case filter.Filter == "popular":
		sort.Slice(result, func(i, j int) bool { return result[i].Sold > result[j].Sold })
	default:
		// По умолчанию — новые первыми.
		sort.Slice(result, func(i, j int) bool {
			if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
				return result[i].CreatedAt.After(result[j].CreatedAt)
			}
			return result[i].ID > result[j].ID
		})
	}

	return result, nil
}

// Update перезаписывает карточку товара.
func (r *productRepositoryInMemory) Update(product domain.Product) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[product.ID]; !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	product.Images = copyStrings(product.Images)
	r.items[product.ID] = product
	return product, nil
}

// Delete удаляет товар.
func (r *productRepositoryInMemory) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.items, id)
	return nil
}

func matchesSearch(product domain.Product, search string) bool {
	needle := strings.ToLower(search)
	return strings.Contains(strings.ToLower(product.Name), needle) ||
		strings.Contains(strings.ToLower(product.Brand), needle)
}

func copyStrings(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}

var _ domain.ProductRepository = (*productRepositoryInMemory)(nil)
