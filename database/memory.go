package database

import (
	"context"
	"sort"
	"sync"

	"github.com/rpupo63/solar-ops-backend/errs"
	"github.com/rpupo63/solar-ops-backend/models"
)

// MemoryProjectStore keeps projects in process memory. Records are copied
// on the way in and out so callers never share state with the store.
type MemoryProjectStore struct {
	mu       sync.RWMutex
	projects map[string]*models.Project
}

func NewMemoryProjectStore() *MemoryProjectStore {
	return &MemoryProjectStore{projects: make(map[string]*models.Project)}
}

// FindAll returns projects ordered by name
func (s *MemoryProjectStore) FindAll(_ context.Context) ([]*models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.Project, 0, len(s.projects))
	for _, p := range s.projects {
		result = append(result, p.Clone())
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (s *MemoryProjectStore) FindByID(_ context.Context, id string) (*models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.projects[id]
	if !ok {
		return nil, errs.NewNotFound("project")
	}
	return p.Clone(), nil
}

func (s *MemoryProjectStore) Add(_ context.Context, project *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[project.ID]; ok {
		return errs.NewAlreadyExists("project")
	}
	bindChildren(project)
	s.projects[project.ID] = project.Clone()
	return nil
}

func (s *MemoryProjectStore) Update(_ context.Context, project *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[project.ID]; !ok {
		return errs.NewNotFound("project")
	}
	bindChildren(project)
	s.projects[project.ID] = project.Clone()
	return nil
}

func (s *MemoryProjectStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[id]; !ok {
		return errs.NewNotFound("project")
	}
	delete(s.projects, id)
	return nil
}

type MemoryServiceOrderStore struct {
	mu     sync.RWMutex
	orders []*models.ServiceOrder
}

func NewMemoryServiceOrderStore() *MemoryServiceOrderStore {
	return &MemoryServiceOrderStore{}
}

// FindAll returns orders newest first
func (s *MemoryServiceOrderStore) FindAll(_ context.Context) ([]*models.ServiceOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.ServiceOrder, 0, len(s.orders))
	for i := len(s.orders) - 1; i >= 0; i-- {
		result = append(result, cloneOrder(s.orders[i]))
	}
	return result, nil
}

func (s *MemoryServiceOrderStore) FindByID(_ context.Context, id string) (*models.ServiceOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, o := range s.orders {
		if o.ID == id {
			return cloneOrder(o), nil
		}
	}
	return nil, errs.NewNotFound("service order")
}

func (s *MemoryServiceOrderStore) Add(_ context.Context, order *models.ServiceOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range s.orders {
		if o.ID == order.ID {
			return errs.NewAlreadyExists("service order")
		}
	}
	s.orders = append(s.orders, cloneOrder(order))
	return nil
}

func cloneOrder(o *models.ServiceOrder) *models.ServiceOrder {
	c := *o
	c.SelectedParts = append([]models.OrderPart(nil), o.SelectedParts...)
	return &c
}

// MemoryInventoryStore is a fixed catalog held in memory.
type MemoryInventoryStore struct {
	mu    sync.RWMutex
	items map[string]models.InventoryItem
}

func NewMemoryInventoryStore(items []models.InventoryItem) *MemoryInventoryStore {
	s := &MemoryInventoryStore{items: make(map[string]models.InventoryItem, len(items))}
	for _, item := range items {
		s.items[item.ID] = item
	}
	return s
}

// FindAll returns the catalog ordered by id
func (s *MemoryInventoryStore) FindAll(_ context.Context) ([]models.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.InventoryItem, 0, len(s.items))
	for _, item := range s.items {
		result = append(result, item)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *MemoryInventoryStore) FindByID(_ context.Context, id string) (*models.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		return nil, errs.NewNotFound("inventory item")
	}
	return &item, nil
}

func (s *MemoryInventoryStore) Seed(_ context.Context, items []models.InventoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range items {
		if _, ok := s.items[item.ID]; !ok {
			s.items[item.ID] = item
		}
	}
	return nil
}
