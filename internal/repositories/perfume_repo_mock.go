package repositories

import (
	"fmt"
	"sync"

	"parfum/internal/models"

	"github.com/google/uuid"
)

// MockPerfumeRepository is an in-memory implementation of PerfumeRepository.
type MockPerfumeRepository struct {
	perfumes map[string]models.Perfume
	mu       sync.RWMutex
}

// NewMockPerfumeRepository creates a new instance of MockPerfumeRepository.
func NewMockPerfumeRepository() *MockPerfumeRepository {
	return &MockPerfumeRepository{
		perfumes: make(map[string]models.Perfume),
	}
}

// GetAll returns all perfumes.
func (r *MockPerfumeRepository) GetAll() ([]models.Perfume, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	perfumeList := make([]models.Perfume, 0, len(r.perfumes))
	for _, p := range r.perfumes {
		perfumeList = append(perfumeList, p)
	}
	return perfumeList, nil
}

// GetByID returns a perfume by its ID.
func (r *MockPerfumeRepository) GetByID(id string) (*models.Perfume, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	perfume, ok := r.perfumes[id]
	if !ok {
		return nil, fmt.Errorf("perfume with ID %s not found", id)
	}
	return &perfume, nil
}

// Create adds a new perfume.
func (r *MockPerfumeRepository) Create(perfume *models.Perfume) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if perfume.ID == "" {
		perfume.ID = uuid.New().String()
	}
	r.perfumes[perfume.ID] = *perfume
	return nil
}

// Update modifies an existing perfume.
func (r *MockPerfumeRepository) Update(perfume *models.Perfume) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.perfumes[perfume.ID]
	if !ok {
		return fmt.Errorf("perfume with ID %s not found for update", perfume.ID)
	}
	r.perfumes[perfume.ID] = *perfume
	return nil
}

// Delete removes a perfume by its ID.
func (r *MockPerfumeRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.perfumes[id]
	if !ok {
		return fmt.Errorf("perfume with ID %s not found for deletion", id)
	}
	delete(r.perfumes, id)
	return nil
}
