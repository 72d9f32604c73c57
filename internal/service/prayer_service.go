package service

import (
	"errors"
	"log"
	"strings"

	"github.com/AkshayEddula/bibleapp-sub000/internal/models"
	"github.com/AkshayEddula/bibleapp-sub000/internal/repository"
)

// Notifier pushes best-effort realtime events to users. Implemented by the
// websocket hub; a nil notifier drops everything.
type Notifier interface {
	NotifyPrayed(ownerID, requestID uint, prayerCount int64)
	NotifyAmen(ownerID, testimonyID uint, amenCount int64)
}

type PrayerService struct {
	prayerRepo repository.PrayerRepositoryInterface
	stats      *StatsService
	notifier   Notifier
}

func NewPrayerService(prayerRepo repository.PrayerRepositoryInterface, stats *StatsService, notifier Notifier) *PrayerService {
	return &PrayerService{prayerRepo: prayerRepo, stats: stats, notifier: notifier}
}

type CreatePrayerRequestInput struct {
	ClientID    string `json:"client_id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	IsAnonymous bool   `json:"is_anonymous"`
}

// Create posts a prayer request. A retried post with the same client_id
// returns the existing row instead of creating a duplicate.
func (s *PrayerService) Create(userID uint, input CreatePrayerRequestInput) (*models.PrayerRequest, error) {
	input.ClientID = strings.TrimSpace(input.ClientID)
	input.Title = strings.TrimSpace(input.Title)
	input.Content = strings.TrimSpace(input.Content)

	if input.ClientID == "" {
		return nil, errors.New("client_id is required")
	}
	if input.Title == "" || input.Content == "" {
		return nil, errors.New("title and content are required")
	}

	if existing, err := s.prayerRepo.FindByClientID(input.ClientID, userID); err == nil {
		return existing, nil
	}

	request := &models.PrayerRequest{
		ClientID:    input.ClientID,
		UserID:      userID,
		Title:       input.Title,
		Content:     input.Content,
		IsAnonymous: input.IsAnonymous,
	}
	if err := s.prayerRepo.Create(request); err != nil {
		return nil, err
	}

	if s.stats != nil {
		if err := s.stats.AddPost(userID); err != nil {
			log.Printf("prayer: post points failed for user %d: %v", userID, err)
		}
	}
	return s.prayerRepo.FindByID(request.ID)
}

// List returns a feed page with the viewer's has-prayed flags resolved.
func (s *PrayerService) List(viewerID uint, cursor uint, limit int) ([]models.PrayerRequestResponse, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	requests, err := s.prayerRepo.List(cursor, limit)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(requests))
	for _, r := range requests {
		ids = append(ids, r.ID)
	}
	prayed, err := s.prayerRepo.HasPrayedBatch(ids, viewerID)
	if err != nil {
		return nil, err
	}

	responses := make([]models.PrayerRequestResponse, 0, len(requests))
	for i := range requests {
		responses = append(responses, requests[i].ToResponse(prayed[requests[i].ID]))
	}
	return responses, nil
}

func (s *PrayerService) ListMine(userID uint, limit int) ([]models.PrayerRequestResponse, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	requests, err := s.prayerRepo.ListByUser(userID, limit)
	if err != nil {
		return nil, err
	}
	responses := make([]models.PrayerRequestResponse, 0, len(requests))
	for i := range requests {
		responses = append(responses, requests[i].ToResponse(false))
	}
	return responses, nil
}

// Pray records the caller praying for a request. Praying twice is an
// idempotent no-op. The request owner gets a realtime nudge and the caller
// earns points on the first prayer only.
func (s *PrayerService) Pray(requestID, userID uint) (*models.PrayerRequest, error) {
	request, err := s.prayerRepo.FindByID(requestID)
	if err != nil {
		return nil, errors.New("prayer request not found")
	}

	err = s.prayerRepo.AddPrayer(requestID, userID)
	if errors.Is(err, repository.ErrAlreadyPrayed) {
		return request, nil
	}
	if err != nil {
		return nil, err
	}

	if s.stats != nil {
		if err := s.stats.AddPrayerOffered(userID); err != nil {
			log.Printf("prayer: points failed for user %d: %v", userID, err)
		}
	}

	updated, err := s.prayerRepo.FindByID(requestID)
	if err != nil {
		return nil, err
	}
	if s.notifier != nil && updated.UserID != userID {
		s.notifier.NotifyPrayed(updated.UserID, updated.ID, updated.PrayerCount)
	}
	return updated, nil
}

func (s *PrayerService) MarkAnswered(id, userID uint) error {
	return s.prayerRepo.MarkAnswered(id, userID)
}

func (s *PrayerService) Delete(id, userID uint) error {
	return s.prayerRepo.Delete(id, userID)
}
