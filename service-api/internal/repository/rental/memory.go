package rental

import (
	"context"
	"sort"
	"sync"
	"time"

	"car-rental/pkg/model"
)

// memoryRepository keeps everything in process, for tests and the
// memory database provider
type memoryRepository struct {
	mu        sync.RWMutex
	rentals   map[string]model.Rental
	documents map[string]map[model.DocumentKind]model.Document
	events    map[string][]model.Event
}

// NewMemoryRepository creates an empty in-memory repository
func NewMemoryRepository() Repository {
	return &memoryRepository{
		rentals:   make(map[string]model.Rental),
		documents: make(map[string]map[model.DocumentKind]model.Document),
		events:    make(map[string][]model.Event),
	}
}

func (m *memoryRepository) CreateRental(ctx context.Context, rental *model.Rental) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.rentals[rental.FolderID]; exists {
		return ErrAlreadyExists
	}
	m.rentals[rental.FolderID] = *rental
	return nil
}

func (m *memoryRepository) GetRental(ctx context.Context, folderID string) (*model.Rental, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rental, ok := m.rentals[folderID]
	if !ok {
		return nil, ErrNotFound
	}
	return &rental, nil
}

func (m *memoryRepository) ListRentals(ctx context.Context, limit, offset int) ([]model.Rental, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := make([]model.Rental, 0, len(m.rentals))
	for _, r := range m.rentals {
		all = append(all, r)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	return page(all, limit, offset), len(all), nil
}

func (m *memoryRepository) UpdateStatus(ctx context.Context, folderID string, status model.RentalStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if r, ok := m.rentals[folderID]; ok {
		r.Status = status
		r.UpdatedAt = time.Now().UTC()
		m.rentals[folderID] = r
	}
	return nil
}

func (m *memoryRepository) UpdateCustomerName(ctx context.Context, folderID, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if r, ok := m.rentals[folderID]; ok {
		r.CustomerName = name
		r.UpdatedAt = time.Now().UTC()
		m.rentals[folderID] = r
	}
	return nil
}

func (m *memoryRepository) SaveDocument(ctx context.Context, doc *model.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.documents[doc.FolderID] == nil {
		m.documents[doc.FolderID] = make(map[model.DocumentKind]model.Document)
	}
	m.documents[doc.FolderID][doc.Kind] = *doc
	return nil
}

func (m *memoryRepository) GetDocuments(ctx context.Context, folderID string) ([]model.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	docs := make([]model.Document, 0, len(m.documents[folderID]))
	for _, d := range m.documents[folderID] {
		docs = append(docs, d)
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].UpdatedAt.Before(docs[j].UpdatedAt)
	})
	return docs, nil
}

func (m *memoryRepository) AppendEvent(ctx context.Context, event *model.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.events[event.FolderID] = append(m.events[event.FolderID], *event)
	return nil
}

func (m *memoryRepository) ListEvents(ctx context.Context, folderID string) ([]model.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	events := make([]model.Event, len(m.events[folderID]))
	copy(events, m.events[folderID])
	return events, nil
}

func page[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return []T{}
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end]
}
