package service

import (
	"errors"
	"log"
	"strings"

	"github.com/AkshayEddula/bibleapp-sub000/internal/models"
	"github.com/AkshayEddula/bibleapp-sub000/internal/repository"
)

type TestimonyService struct {
	testimonyRepo repository.TestimonyRepositoryInterface
	stats         *StatsService
	notifier      Notifier
}

func NewTestimonyService(testimonyRepo repository.TestimonyRepositoryInterface, stats *StatsService, notifier Notifier) *TestimonyService {
	return &TestimonyService{testimonyRepo: testimonyRepo, stats: stats, notifier: notifier}
}

type CreateTestimonyInput struct {
	ClientID string `json:"client_id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
}

// Create posts a testimony, deduped by client_id like prayer requests.
func (s *TestimonyService) Create(userID uint, input CreateTestimonyInput) (*models.Testimony, error) {
	input.ClientID = strings.TrimSpace(input.ClientID)
	input.Title = strings.TrimSpace(input.Title)
	input.Content = strings.TrimSpace(input.Content)

	if input.ClientID == "" {
		return nil, errors.New("client_id is required")
	}
	if input.Title == "" || input.Content == "" {
		return nil, errors.New("title and content are required")
	}

	if existing, err := s.testimonyRepo.FindByClientID(input.ClientID, userID); err == nil {
		return existing, nil
	}

	testimony := &models.Testimony{
		ClientID: input.ClientID,
		UserID:   userID,
		Title:    input.Title,
		Content:  input.Content,
	}
	if err := s.testimonyRepo.Create(testimony); err != nil {
		return nil, err
	}

	if s.stats != nil {
		if err := s.stats.AddPost(userID); err != nil {
			log.Printf("testimony: post points failed for user %d: %v", userID, err)
		}
	}
	return s.testimonyRepo.FindByID(testimony.ID)
}

func (s *TestimonyService) List(viewerID uint, cursor uint, limit int) ([]models.TestimonyResponse, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	testimonies, err := s.testimonyRepo.List(cursor, limit)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(testimonies))
	for _, t := range testimonies {
		ids = append(ids, t.ID)
	}
	amened, err := s.testimonyRepo.HasAmenedBatch(ids, viewerID)
	if err != nil {
		return nil, err
	}

	responses := make([]models.TestimonyResponse, 0, len(testimonies))
	for i := range testimonies {
		responses = append(responses, testimonies[i].ToResponse(amened[testimonies[i].ID]))
	}
	return responses, nil
}

// Amen records the caller's amen; a second amen on the same testimony is an
// idempotent no-op.
func (s *TestimonyService) Amen(testimonyID, userID uint) (*models.Testimony, error) {
	testimony, err := s.testimonyRepo.FindByID(testimonyID)
	if err != nil {
		return nil, errors.New("testimony not found")
	}

	err = s.testimonyRepo.AddAmen(testimonyID, userID)
	if errors.Is(err, repository.ErrAlreadyAmened) {
		return testimony, nil
	}
	if err != nil {
		return nil, err
	}

	if s.stats != nil {
		if err := s.stats.AddAmenGiven(userID); err != nil {
			log.Printf("testimony: points failed for user %d: %v", userID, err)
		}
	}

	updated, err := s.testimonyRepo.FindByID(testimonyID)
	if err != nil {
		return nil, err
	}
	if s.notifier != nil && updated.UserID != userID {
		s.notifier.NotifyAmen(updated.UserID, updated.ID, updated.AmenCount)
	}
	return updated, nil
}

func (s *TestimonyService) Delete(id, userID uint) error {
	return s.testimonyRepo.Delete(id, userID)
}
