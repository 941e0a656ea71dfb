package request

import (
	"context"
	"sort"
	"sync"

	"car-rental/pkg/model"
)

type memoryRepository struct {
	mu       sync.RWMutex
	requests []model.RentalRequest
}

// NewMemoryRepository creates an empty in-memory request repository
func NewMemoryRepository() Repository {
	return &memoryRepository{}
}

func (m *memoryRepository) Create(ctx context.Context, req *model.RentalRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, *req)
	return nil
}

func (m *memoryRepository) List(ctx context.Context, limit, offset int) ([]model.RentalRequest, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := make([]model.RentalRequest, len(m.requests))
	copy(all, m.requests)
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if offset >= len(all) {
		return []model.RentalRequest{}, len(all), nil
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end], len(all), nil
}
