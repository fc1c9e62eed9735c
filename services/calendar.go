package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// PTOEvent is the calendar-facing shape of a PTO submission. Dates are
// inclusive YYYY-MM-DD strings.
type PTOEvent struct {
	Summary       string
	Description   string
	StartDate     string
	EndDate       string
	AttendeeEmail string
}

// Calendar is the create/delete surface the handlers depend on.
type Calendar interface {
	CreateEvent(event PTOEvent) (string, error)
	DeleteEvent(eventID string) error
}

// GoogleCalendar writes PTO entries to a shared Google calendar.
type GoogleCalendar struct {
	service    *calendar.Service
	calendarID string
}

func NewGoogleCalendar(service *calendar.Service, calendarID string) *GoogleCalendar {
	return &GoogleCalendar{service: service, calendarID: calendarID}
}

// NewGoogleCalendarFromCredentials builds a calendar client from the service
// account key file the PTO calendar is shared with.
func NewGoogleCalendarFromCredentials(ctx context.Context, credentialsFile, calendarID string) (*GoogleCalendar, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	config, err := google.JWTConfigFromJSON(data, calendar.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account credentials: %w", err)
	}

	service, err := calendar.NewService(ctx, option.WithHTTPClient(config.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	return NewGoogleCalendar(service, calendarID), nil
}

// CreateEvent inserts an all-day event covering the PTO range and returns the
// event id. Google treats the all-day end date as exclusive, so one day is
// added to the inclusive end date.
func (g *GoogleCalendar) CreateEvent(event PTOEvent) (string, error) {
	end, err := time.Parse("2006-01-02", event.EndDate)
	if err != nil {
		return "", &CalendarError{Op: "create", Err: fmt.Errorf("invalid end date %q: %w", event.EndDate, err)}
	}

	googleEvent := &calendar.Event{
		Summary:     event.Summary,
		Description: event.Description,
		Start: &calendar.EventDateTime{
			Date: event.StartDate,
		},
		End: &calendar.EventDateTime{
			Date: end.AddDate(0, 0, 1).Format("2006-01-02"),
		},
	}
	if event.AttendeeEmail != "" {
		googleEvent.Attendees = []*calendar.EventAttendee{
			{Email: event.AttendeeEmail},
		}
	}

	created, err := g.service.Events.Insert(g.calendarID, googleEvent).Do()
	if err != nil {
		return "", &CalendarError{Op: "create", Err: err}
	}

	return created.Id, nil
}

// DeleteEvent removes an event. An event that is already gone counts as
// success so that message deletion stays idempotent.
func (g *GoogleCalendar) DeleteEvent(eventID string) error {
	err := g.service.Events.Delete(g.calendarID, eventID).Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && (apiErr.Code == http.StatusNotFound || apiErr.Code == http.StatusGone) {
			return nil
		}
		return &CalendarError{Op: "delete", Err: err}
	}
	return nil
}
