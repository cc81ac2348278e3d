package calendar

import (
	"context"
	"fmt"
	"strings"

	"church-app-go/internal/domain/validation"
	"github.com/google/uuid"
)

const msgRequiredFields = "Please fill in all required fields"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns every event ordered by date.
func (s *Service) List(ctx context.Context) ([]Event, error) {
	return s.repo.List(ctx)
}

func (s *Service) Create(ctx context.Context, input Input) (*Event, error) {
	if err := checkRequired(&input); err != nil {
		return nil, err
	}
	eventType := TypeGeneral
	if input.Type != "" {
		parsed, err := ParseEventType(input.Type)
		if err != nil {
			return nil, validation.Field("type", err.Error())
		}
		eventType = parsed
	}

	event := Event{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
		Date:        input.Date.UTC(),
		Time:        input.Time,
		Type:        eventType,
	}
	if err := s.repo.Create(ctx, &event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return &event, nil
}

func (s *Service) Update(ctx context.Context, id string, input Input) (*Event, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkRequired(&input); err != nil {
		return nil, err
	}
	if input.Type != "" {
		parsed, err := ParseEventType(input.Type)
		if err != nil {
			return nil, validation.Field("type", err.Error())
		}
		event.Type = parsed
	}

	event.Title = input.Title
	event.Description = input.Description
	event.Date = input.Date.UTC()
	event.Time = input.Time
	if err := s.repo.Save(ctx, event); err != nil {
		return nil, fmt.Errorf("update event %s: %w", id, err)
	}
	return event, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func checkRequired(input *Input) error {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	input.Time = strings.TrimSpace(input.Time)
	input.Type = strings.TrimSpace(input.Type)
	if input.Title == "" || input.Time == "" || input.Date == nil || input.Date.IsZero() {
		return validation.New(msgRequiredFields)
	}
	return nil
}
