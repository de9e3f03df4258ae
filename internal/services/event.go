package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"eventbook/internal/domain"
)

type eventService struct {
	eventRepo domain.EventRepository
}

// NewEventService creates an EventService backed by the given repository.
func NewEventService(eventRepo domain.EventRepository) domain.EventService {
	return &eventService{eventRepo: eventRepo}
}

func (s *eventService) CreateEvent(ctx context.Context, name, address string, category domain.Category, start time.Time, description string) (*domain.Event, error) {
	name = strings.TrimSpace(name)
	if name == "" || !category.Valid() {
		return nil, domain.ErrInvalidInput
	}

	event := domain.NewEvent(name, strings.TrimSpace(address), category, start, description)
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

// ListEvents returns a snapshot of all events sorted by start time
// ascending. The stored order is left untouched.
func (s *eventService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	sortByStartTime(events)
	return events, nil
}

// Join adds the user to the event's participants. It is idempotent and
// reports whether the user was newly added.
func (s *eventService) Join(ctx context.Context, event *domain.Event, user *domain.User) (bool, error) {
	if event == nil || user == nil {
		return false, domain.ErrInvalidInput
	}
	return event.AddParticipant(user), nil
}

// Leave removes the user from the event's participants. Leaving an event the
// user is not participating in is a no-op.
func (s *eventService) Leave(ctx context.Context, event *domain.Event, user *domain.User) error {
	if event == nil || user == nil {
		return domain.ErrInvalidInput
	}
	event.RemoveParticipant(user)
	return nil
}

// ListJoined returns the events the user participates in, sorted by start
// time ascending.
func (s *eventService) ListJoined(ctx context.Context, user *domain.User) ([]*domain.Event, error) {
	if user == nil {
		return nil, domain.ErrInvalidInput
	}
	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	var joined []*domain.Event
	for _, e := range events {
		if e.HasParticipant(user) {
			joined = append(joined, e)
		}
	}
	if joined == nil {
		joined = []*domain.Event{}
	}
	sortByStartTime(joined)
	return joined, nil
}

func sortByStartTime(events []*domain.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartTime.Before(events[j].StartTime)
	})
}
