package memory

import (
	"sort"
	"sync"

	"github.com/odyostore/backoffice/internal/domain"
)

// franchiseRepositoryInMemory — in-memory реализация FranchiseRepository.
type franchiseRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.FranchiseApplication
}

// NewFranchiseRepository возвращает in-memory репозиторий заявок на франшизу.
func NewFranchiseRepository() domain.FranchiseRepository {
	return &franchiseRepositoryInMemory{
		items: make(map[string]domain.FranchiseApplication),
	}
}

// Create сохраняет заявку.
func (r *franchiseRepositoryInMemory) Create(app domain.FranchiseApplication) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[app.ID] = app
	return nil
}

// Get возвращает заявку или ErrApplicationNotFound.
func (r *franchiseRepositoryInMemory) Get(id string) (domain.FranchiseApplication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	app, ok := r.items[id]
	if !ok {
		return domain.FranchiseApplication{}, domain.ErrApplicationNotFound
	}
	return app, nil
}

// List возвращает все заявки, новые первыми.
func (r *franchiseRepositoryInMemory) List() ([]domain.FranchiseApplication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.FranchiseApplication, 0, len(r.items))
	for _, app := range r.items {
		result = append(result, app)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

// SetStatus меняет статус заявки.
func (r *franchiseRepositoryInMemory) SetStatus(id string, status domain.ApplicationStatus) (domain.FranchiseApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	app, ok := r.items[id]
	if !ok {
		return domain.FranchiseApplication{}, domain.ErrApplicationNotFound
	}
	app.Status = status
	r.items[id] = app
	return app, nil
}

var _ domain.FranchiseRepository = (*franchiseRepositoryInMemory)(nil)
