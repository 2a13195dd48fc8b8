package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/service-order-api/internal/domain"
)

// memStore is a shared in-memory backing store for the stub repositories so
// joined reads and cascades behave like the real schema.
type memStore struct {
	mu       sync.Mutex
	users    map[int64]domain.User
	projects map[int64]domain.Project
	orders   map[int64]domain.ServiceOrder
	nextID   int64
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[int64]domain.User),
		projects: make(map[int64]domain.Project),
		orders:   make(map[int64]domain.ServiceOrder),
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

type stubUserRepo struct{ store *memStore }

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	user.ID = r.store.id()
	r.store.users[user.ID] = *user
	return nil
}

func (r *stubUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if u.Username == username {
			clone := u
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *stubUserRepo) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type stubProjectRepo struct{ store *memStore }

func (r *stubProjectRepo) List(_ context.Context) ([]domain.Project, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	result := make([]domain.Project, 0, len(r.store.projects))
	for _, p := range r.store.projects {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *stubProjectRepo) GetByID(_ context.Context, id int64) (*domain.Project, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.projects[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := p
	return &clone, nil
}

func (r *stubProjectRepo) Exists(_ context.Context, id int64) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	_, ok := r.store.projects[id]
	return ok, nil
}

func (r *stubProjectRepo) Create(_ context.Context, project *domain.Project) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	now := time.Now()
	project.ID = r.store.id()
	project.CreatedAt = now
	project.UpdatedAt = now
	r.store.projects[project.ID] = *project
	return project.ID, nil
}

func (r *stubProjectRepo) Update(_ context.Context, project *domain.Project) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	existing, ok := r.store.projects[project.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	existing.Name = project.Name
	existing.Description = project.Description
	existing.UpdatedAt = time.Now()
	r.store.projects[project.ID] = existing
	return nil
}

func (r *stubProjectRepo) Delete(_ context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.projects[id]; !ok {
		return pgx.ErrNoRows
	}
	for orderID, order := range r.store.orders {
		if order.ProjectID == id {
			delete(r.store.orders, orderID)
		}
	}
	delete(r.store.projects, id)
	return nil
}

type stubOrderRepo struct{ store *memStore }

func (r *stubOrderRepo) enrich(order domain.ServiceOrder) domain.ServiceOrder {
	if p, ok := r.store.projects[order.ProjectID]; ok {
		order.ProjectName = p.Name
	}
	return order
}

func (r *stubOrderRepo) List(_ context.Context, projectID *int64) ([]domain.ServiceOrder, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []domain.ServiceOrder
	for _, o := range r.store.orders {
		if projectID != nil && o.ProjectID != *projectID {
			continue
		}
		result = append(result, r.enrich(o))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *stubOrderRepo) GetByID(_ context.Context, id int64) (*domain.ServiceOrder, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	o, ok := r.store.orders[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	enriched := r.enrich(o)
	return &enriched, nil
}

func (r *stubOrderRepo) Exists(_ context.Context, id int64) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	_, ok := r.store.orders[id]
	return ok, nil
}

func (r *stubOrderRepo) Create(_ context.Context, order *domain.ServiceOrder) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	now := time.Now()
	order.ID = r.store.id()
	order.CreatedDate = now
	order.UpdatedDate = now
	r.store.orders[order.ID] = *order
	return order.ID, nil
}

func (r *stubOrderRepo) Update(_ context.Context, order *domain.ServiceOrder) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	existing, ok := r.store.orders[order.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	existing.Name = order.Name
	existing.Category = order.Category
	existing.Description = order.Description
	existing.ProjectID = order.ProjectID
	existing.IsApproved = order.IsApproved
	existing.UpdatedDate = time.Now()
	r.store.orders[order.ID] = existing
	return nil
}

func (r *stubOrderRepo) Delete(_ context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.orders[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.store.orders, id)
	return nil
}

func (r *stubOrderRepo) ToggleApproval(_ context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	existing, ok := r.store.orders[id]
	if !ok {
		return pgx.ErrNoRows
	}
	existing.IsApproved = !existing.IsApproved
	existing.UpdatedDate = time.Now()
	r.store.orders[id] = existing
	return nil
}
