package services

import (
	"log"

	"parfum/internal/models"
	"parfum/internal/repositories"
)

// PerfumeService handles business logic related to the perfume catalogue.
type PerfumeService struct {
	repo       repositories.PerfumeRepository
	newsletter *NewsletterService
}

// NewPerfumeService creates a new PerfumeService. The newsletter service is
// optional; when present, subscribers are notified about new fragrances.
func NewPerfumeService(repo repositories.PerfumeRepository, newsletter *NewsletterService) *PerfumeService {
	return &PerfumeService{
		repo:       repo,
		newsletter: newsletter,
	}
}

// GetAllPerfumes retrieves all perfumes.
func (s *PerfumeService) GetAllPerfumes() ([]models.Perfume, error) {
	return s.repo.GetAll()
}

// GetPerfumeByID retrieves a single perfume by its ID.
func (s *PerfumeService) GetPerfumeByID(id string) (*models.Perfume, error) {
	return s.repo.GetByID(id)
}

// CreatePerfume creates a new perfume and notifies newsletter subscribers.
// Notification failures are logged, not returned; the perfume is already saved.
func (s *PerfumeService) CreatePerfume(perfume *models.Perfume) error {
	if err := s.repo.Create(perfume); err != nil {
		return err
	}

	if s.newsletter != nil {
		if err := s.newsletter.NotifyNewPerfume(perfume); err != nil {
			log.Printf("Failed to notify subscribers about perfume %s: %v", perfume.ID, err)
		}
	}
	return nil
}

// UpdatePerfume updates an existing perfume.
func (s *PerfumeService) UpdatePerfume(perfume *models.Perfume) error {
	return s.repo.Update(perfume)
}

// DeletePerfume deletes a perfume by its ID.
func (s *PerfumeService) DeletePerfume(id string) error {
	return s.repo.Delete(id)
}
