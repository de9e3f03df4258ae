package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"eventbook/internal/domain"
)

// inputTimeLayout is the date-time format users type when creating an event.
const inputTimeLayout = "2006-01-02 15:04"

// displayTimeLayout is how event start times are shown in listings.
const displayTimeLayout = "02/01/2006 15:04"

// Session holds the interaction state: the currently logged-in user, or nil
// when logged out.
type Session struct {
	Current *domain.User
}

// Menu drives the interactive console. It owns all prompting and formatting
// and calls into the services for every state change.
type Menu struct {
	in      *bufio.Reader
	out     io.Writer
	users   domain.UserService
	events  domain.EventService
	session Session
}

// NewMenu creates a Menu reading from in and writing to out.
func NewMenu(in io.Reader, out io.Writer, users domain.UserService, events domain.EventService) *Menu {
	return &Menu{
		in:     bufio.NewReader(in),
		out:    out,
		users:  users,
		events: events,
	}
}

// Run loops over the main menu until the user quits or input ends.
func (m *Menu) Run(ctx context.Context) error {
	fmt.Fprintln(m.out, "Welcome to the city events system!")
	for {
		var quit bool
		var err error
		if m.session.Current == nil {
			quit, err = m.loggedOutMenu(ctx)
		} else {
			quit, err = m.loggedInMenu(ctx)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if quit {
			return nil
		}
	}
}

func (m *Menu) loggedOutMenu(ctx context.Context) (quit bool, err error) {
	fmt.Fprintln(m.out, "\n===== MAIN MENU =====")
	fmt.Fprintln(m.out, "1 - Register")
	fmt.Fprintln(m.out, "2 - Login")
	fmt.Fprintln(m.out, "0 - Quit")
	op, err := m.promptInt("Choice: ")
	if err != nil {
		if errors.Is(err, errNotANumber) {
			fmt.Fprintln(m.out, "Invalid option.")
			return false, nil
		}
		return false, err
	}
	switch op {
	case 1:
		return false, m.registerUser(ctx)
	case 2:
		return false, m.login(ctx)
	case 0:
		return true, nil
	default:
		fmt.Fprintln(m.out, "Invalid option.")
		return false, nil
	}
}

func (m *Menu) loggedInMenu(ctx context.Context) (quit bool, err error) {
	fmt.Fprintln(m.out, "\n===== MAIN MENU =====")
	fmt.Fprintf(m.out, "User: %s\n", m.session.Current.Name)
	fmt.Fprintln(m.out, "1 - Create event")
	fmt.Fprintln(m.out, "2 - List events")
	fmt.Fprintln(m.out, "3 - Join event")
	fmt.Fprintln(m.out, "4 - Cancel participation")
	fmt.Fprintln(m.out, "5 - My events")
	fmt.Fprintln(m.out, "6 - Logout")
	fmt.Fprintln(m.out, "0 - Quit")
	op, err := m.promptInt("Choice: ")
	if err != nil {
		if errors.Is(err, errNotANumber) {
			fmt.Fprintln(m.out, "Invalid option.")
			return false, nil
		}
		return false, err
	}
	switch op {
	case 1:
		return false, m.createEvent(ctx)
	case 2:
		return false, m.listEvents(ctx)
	case 3:
		return false, m.joinEvent(ctx)
	case 4:
		return false, m.cancelParticipation(ctx)
	case 5:
		return false, m.myEvents(ctx)
	case 6:
		m.session.Current = nil
		return false, nil
	case 0:
		return true, nil
	default:
		fmt.Fprintln(m.out, "Invalid option.")
		return false, nil
	}
}

func (m *Menu) registerUser(ctx context.Context) error {
	fmt.Fprintln(m.out, "\n--- Register ---")
	name, err := m.prompt("Name: ")
	if err != nil {
		return err
	}
	email, err := m.prompt("Email: ")
	if err != nil {
		return err
	}
	phone, err := m.prompt("Phone: ")
	if err != nil {
		return err
	}
	if _, err := m.users.Register(ctx, name, email, phone); err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateEmail):
			fmt.Fprintln(m.out, "Email already registered.")
		case errors.Is(err, domain.ErrInvalidInput):
			fmt.Fprintln(m.out, "Name and email are required.")
		default:
			return err
		}
		return nil
	}
	fmt.Fprintln(m.out, "User registered.")
	return nil
}

func (m *Menu) login(ctx context.Context) error {
	email, err := m.prompt("Email: ")
	if err != nil {
		return err
	}
	user, err := m.users.Login(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrInvalidInput) {
			fmt.Fprintln(m.out, "User not found. Register first.")
			return nil
		}
		return err
	}
	m.session.Current = user
	fmt.Fprintf(m.out, "Logged in. Welcome, %s!\n", user.Name)
	return nil
}

func (m *Menu) createEvent(ctx context.Context) error {
	fmt.Fprintln(m.out, "\n--- Create event ---")
	name, err := m.prompt("Event name: ")
	if err != nil {
		return err
	}
	address, err := m.prompt("Address: ")
	if err != nil {
		return err
	}

	fmt.Fprintln(m.out, "Categories:")
	for _, c := range domain.Categories() {
		fmt.Fprintf(m.out, "%d - %s\n", int(c), c)
	}
	idx, err := m.promptInt("Category (number): ")
	if err != nil {
		if errors.Is(err, errNotANumber) {
			fmt.Fprintln(m.out, "Invalid category.")
			return nil
		}
		return err
	}
	category, err := domain.CategoryFromIndex(idx)
	if err != nil {
		fmt.Fprintln(m.out, "Invalid category.")
		return nil
	}

	startStr, err := m.prompt("Date and time (yyyy-mm-dd hh:mm): ")
	if err != nil {
		return err
	}
	start, err := time.ParseInLocation(inputTimeLayout, startStr, time.Local)
	if err != nil {
		fmt.Fprintln(m.out, "Invalid date/time format.")
		return nil
	}

	description, err := m.prompt("Description: ")
	if err != nil {
		return err
	}

	if _, err := m.events.CreateEvent(ctx, name, address, category, start, description); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			fmt.Fprintln(m.out, "Event name is required.")
			return nil
		}
		return err
	}
	fmt.Fprintln(m.out, "Event created.")
	return nil
}

func (m *Menu) listEvents(ctx context.Context) error {
	_, err := m.printEvents(ctx)
	return err
}

// printEvents lists all events sorted by start time and returns the snapshot
// so selection prompts index into the same order the user sees.
func (m *Menu) printEvents(ctx context.Context) ([]*domain.Event, error) {
	events, err := m.events.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		fmt.Fprintln(m.out, "No events registered.")
		return nil, nil
	}
	fmt.Fprintln(m.out, "\n--- Registered events ---")
	for i, e := range events {
		fmt.Fprintf(m.out, "%d - %s\n", i, formatEvent(e, time.Now()))
	}
	return events, nil
}

func (m *Menu) joinEvent(ctx context.Context) error {
	events, err := m.printEvents(ctx)
	if err != nil || len(events) == 0 {
		return err
	}
	idx, err := m.promptInt("Event number to join: ")
	if err != nil {
		if errors.Is(err, errNotANumber) {
			fmt.Fprintln(m.out, "Invalid event.")
			return nil
		}
		return err
	}
	if idx < 0 || idx >= len(events) {
		fmt.Fprintln(m.out, "Invalid event.")
		return nil
	}
	joined, err := m.events.Join(ctx, events[idx], m.session.Current)
	if err != nil {
		return err
	}
	if !joined {
		fmt.Fprintln(m.out, "You are already participating in this event.")
		return nil
	}
	fmt.Fprintf(m.out, "Participation confirmed: %s\n", events[idx].Name)
	return nil
}

func (m *Menu) cancelParticipation(ctx context.Context) error {
	joined, err := m.events.ListJoined(ctx, m.session.Current)
	if err != nil {
		return err
	}
	if len(joined) == 0 {
		fmt.Fprintln(m.out, "You are not participating in any event.")
		return nil
	}
	fmt.Fprintln(m.out, "--- Your events ---")
	for i, e := range joined {
		fmt.Fprintf(m.out, "%d - %s\n", i, formatEvent(e, time.Now()))
	}
	idx, err := m.promptInt("Event number to cancel: ")
	if err != nil {
		if errors.Is(err, errNotANumber) {
			fmt.Fprintln(m.out, "Invalid event.")
			return nil
		}
		return err
	}
	if idx < 0 || idx >= len(joined) {
		fmt.Fprintln(m.out, "Invalid event.")
		return nil
	}
	if err := m.events.Leave(ctx, joined[idx], m.session.Current); err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Participation cancelled: %s\n", joined[idx].Name)
	return nil
}

func (m *Menu) myEvents(ctx context.Context) error {
	joined, err := m.events.ListJoined(ctx, m.session.Current)
	if err != nil {
		return err
	}
	if len(joined) == 0 {
		fmt.Fprintln(m.out, "No confirmed events.")
		return nil
	}
	fmt.Fprintln(m.out, "\n--- Events you are participating in ---")
	for _, e := range joined {
		fmt.Fprintln(m.out, formatEvent(e, time.Now()))
	}
	return nil
}

// formatEvent renders one event listing line with its status tag.
func formatEvent(e *domain.Event, now time.Time) string {
	return fmt.Sprintf("%s - %s - %s - %s [%s]",
		e.Name, e.Category, e.Address, e.StartTime.Format(displayTimeLayout), e.StatusAt(now))
}

var errNotANumber = errors.New("not a number")

func (m *Menu) prompt(label string) (string, error) {
	fmt.Fprint(m.out, label)
	line, err := m.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (m *Menu) promptInt(label string) (int, error) {
	s, err := m.prompt(label)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errNotANumber
	}
	return n, nil
}
