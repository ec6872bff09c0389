package calsync

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/julianstephens/weekfit/internal/constants"
	"github.com/julianstephens/weekfit/internal/models"
)

// exportTag marks events created by this tool so imports can skip them.
const (
	exportTagKey   = "exportedFrom"
	exportTagValue = "weekfit"
)

// GoogleClient talks to the Google Calendar API.
type GoogleClient struct {
	svc        *calendar.Service
	calendarID string
}

// NewGoogleClient builds a calendar client. Pass option.WithCredentialsFile
// or similar to authenticate. An empty calendarID means the primary calendar.
func NewGoogleClient(ctx context.Context, calendarID string, opts ...option.ClientOption) (*GoogleClient, error) {
	svc, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating calendar service: %w", err)
	}
	if calendarID == "" {
		calendarID = "primary"
	}
	return &GoogleClient{svc: svc, calendarID: calendarID}, nil
}

func (c *GoogleClient) CreateEvent(ctx context.Context, ev models.CalendarEventRef) (string, error) {
	event := &calendar.Event{
		Summary:     ev.Title,
		Description: ev.Description,
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{exportTagKey: exportTagValue},
		},
	}

	if ev.AllDay || ev.Time == "" {
		event.Start = &calendar.EventDateTime{Date: ev.Date}
		event.End = &calendar.EventDateTime{Date: ev.Date}
	} else {
		start, err := time.ParseInLocation(constants.DateFormat+" "+constants.TimeFormat, ev.Date+" "+ev.Time, time.Local)
		if err != nil {
			return "", fmt.Errorf("parsing event start: %w", err)
		}
		dur := ev.DurationMin
		if dur <= 0 {
			dur = constants.DefaultEventDurationMin
		}
		event.Start = &calendar.EventDateTime{DateTime: start.Format(time.RFC3339)}
		event.End = &calendar.EventDateTime{DateTime: start.Add(time.Duration(dur) * time.Minute).Format(time.RFC3339)}
	}

	created, err := c.svc.Events.Insert(c.calendarID, event).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("inserting event: %w", err)
	}
	return created.Id, nil
}

func (c *GoogleClient) ListEvents(ctx context.Context, from, to string) ([]models.CalendarEventRef, error) {
	fromT, err := time.ParseInLocation(constants.DateFormat, from, time.Local)
	if err != nil {
		return nil, fmt.Errorf("parsing range start: %w", err)
	}
	toT, err := time.ParseInLocation(constants.DateFormat, to, time.Local)
	if err != nil {
		return nil, fmt.Errorf("parsing range end: %w", err)
	}

	call := c.svc.Events.List(c.calendarID).
		TimeMin(fromT.Format(time.RFC3339)).
		TimeMax(toT.AddDate(0, 0, 1).Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx)

	var out []models.CalendarEventRef
	err = call.Pages(ctx, func(page *calendar.Events) error {
		for _, item := range page.Items {
			out = append(out, eventRef(item))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	return out, nil
}

func eventRef(item *calendar.Event) models.CalendarEventRef {
	ref := models.CalendarEventRef{
		ID:          item.Id,
		Title:       item.Summary,
		Description: item.Description,
	}
	if item.ExtendedProperties != nil && item.ExtendedProperties.Private[exportTagKey] == exportTagValue {
		ref.Exported = true
	}

	if item.Start != nil && item.Start.Date != "" {
		ref.AllDay = true
		ref.Date = item.Start.Date
		return ref
	}
	if item.Start == nil || item.Start.DateTime == "" {
		return ref
	}

	start, err := time.Parse(time.RFC3339, item.Start.DateTime)
	if err != nil {
		return ref
	}
	start = start.Local()
	ref.Date = start.Format(constants.DateFormat)
	ref.Time = start.Format(constants.TimeFormat)

	if item.End != nil && item.End.DateTime != "" {
		if end, err := time.Parse(time.RFC3339, item.End.DateTime); err == nil {
			ref.DurationMin = int(end.Sub(start).Minutes())
		}
	}
	if ref.DurationMin <= 0 {
		ref.DurationMin = constants.DefaultEventDurationMin
	}
	return ref
}
