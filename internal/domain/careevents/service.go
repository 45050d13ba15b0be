package careevents

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListByPet(ctx context.Context, petID string, filter ListFilter) ([]CareEvent, error) {
	return s.repo.ListByPet(ctx, petID, filter)
}

func (s *Service) GetByID(ctx context.Context, id string) (CareEvent, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return CareEvent{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

// Complete marca el evento como completado (no se borra).
func (s *Service) Complete(ctx context.Context, id string) (CareEvent, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return CareEvent{}, ErrInvalidInput
	}
	if err := s.repo.Complete(ctx, id); err != nil {
		return CareEvent{}, err
	}
	return s.repo.GetByID(ctx, id)
}
