package textfile

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"eventbook/internal/domain"
)

// Marker lines demarcating the two record sections of the data file. Part of
// the persisted format.
const (
	usersMarker  = "#USUARIOS"
	eventsMarker = "#EVENTOS"
)

// Store owns the canonical user and event collections and persists them to a
// single flat text file. Both collections live in one store because event
// records reference users by email and must be reconciled against the user
// collection on load. Not safe for concurrent use; the application is
// single-threaded by design.
type Store struct {
	path   string
	logger *slog.Logger

	users        []*domain.User
	usersByEmail map[string]*domain.User
	events       []*domain.Event
}

// NewStore returns a Store backed by the file at path.
func NewStore(path string, logger *slog.Logger) *Store {
	return &Store{
		path:         path,
		logger:       logger,
		usersByEmail: make(map[string]*domain.User),
	}
}

// Users returns the user repository view of the store.
func (s *Store) Users() domain.UserRepository { return userRepository{s} }

// Events returns the event repository view of the store.
func (s *Store) Events() domain.EventRepository { return eventRepository{s} }

type userRepository struct {
	s *Store
}

func (r userRepository) Create(ctx context.Context, u *domain.User) error {
	return r.s.addUser(u)
}

func (r userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if u, ok := r.s.lookupUser(email); ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r userRepository) List(ctx context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, len(r.s.users))
	copy(out, r.s.users)
	return out, nil
}

type eventRepository struct {
	s *Store
}

func (r eventRepository) Create(ctx context.Context, e *domain.Event) error {
	r.s.events = append(r.s.events, e)
	return nil
}

func (r eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	out := make([]*domain.Event, len(r.s.events))
	copy(out, r.s.events)
	return out, nil
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// addUser appends a user, enforcing case-insensitive email uniqueness.
func (s *Store) addUser(u *domain.User) error {
	key := emailKey(u.Email)
	if _, exists := s.usersByEmail[key]; exists {
		return domain.ErrDuplicateEmail
	}
	s.users = append(s.users, u)
	s.usersByEmail[key] = u
	return nil
}

func (s *Store) lookupUser(email string) (*domain.User, bool) {
	u, ok := s.usersByEmail[emailKey(email)]
	return u, ok
}

// Load reads the data file into the collections. A missing file leaves the
// store empty and is not an error. Malformed records are logged and skipped.
//
// Event decoding resolves participant emails against the user collection, so
// raw event lines are buffered during the scan and decoded only after every
// user record has been loaded, regardless of section order in the file.
func (s *Store) Load(ctx context.Context) error {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()

	var (
		section    string
		eventLines []string
	)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		switch line {
		case usersMarker, eventsMarker:
			section = line
			continue
		}
		switch section {
		case usersMarker:
			u, err := unmarshalUser(line)
			if err != nil {
				s.logger.Warn("skipping user record", "error", err)
				continue
			}
			if err := s.addUser(u); err != nil {
				s.logger.Warn("skipping user record", "email", u.Email, "error", err)
			}
		case eventsMarker:
			eventLines = append(eventLines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read data file: %w", err)
	}

	for _, line := range eventLines {
		e, err := unmarshalEvent(line, s.lookupUser)
		if err != nil {
			s.logger.Warn("skipping event record", "error", err)
			continue
		}
		s.events = append(s.events, e)
	}

	s.logger.Info("data loaded", "file", s.path, "users", len(s.users), "events", len(s.events))
	return nil
}

// Save writes all users and events back to the data file, overwriting it.
// Records are written in collection order; listing order is a display
// concern and is not applied here.
func (s *Store) Save(ctx context.Context) error {
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("create data file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, usersMarker)
	for _, u := range s.users {
		fmt.Fprintln(w, marshalUser(u))
	}
	fmt.Fprintln(w, eventsMarker)
	for _, e := range s.events {
		fmt.Fprintln(w, marshalEvent(e))
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write data file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close data file: %w", err)
	}

	s.logger.Info("data saved", "file", s.path, "users", len(s.users), "events", len(s.events))
	return nil
}
