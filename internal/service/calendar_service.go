package service

import (
	"context"
	"errors"
	"log"
	"sort"

	errorvalues "github.com/foshmed/daybook/internal/error_values"
	"github.com/foshmed/daybook/internal/repository"
	"github.com/foshmed/daybook/pkg/dates"
	"github.com/foshmed/daybook/pkg/entity"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Entry summaries on the calendar are clipped to this many runes.
const summaryLimit = 100

type CalendarService struct {
	entries   repository.EntriesRepositoryI
	reminders repository.RemindersRepositoryI
	events    repository.CalendarEventsRepositoryI
}

func NewCalendarService(entriesRepo repository.EntriesRepositoryI, remindersRepo repository.RemindersRepositoryI, eventsRepo repository.CalendarEventsRepositoryI) *CalendarService {
	if entriesRepo == nil || remindersRepo == nil || eventsRepo == nil {
		log.Fatal("provided nil repos to calendar service")
	}
	return &CalendarService{
		entries:   entriesRepo,
		reminders: remindersRepo,
		events:    eventsRepo,
	}
}

// GetCalendar merges the three per-user sources into one feed sorted by
// (date, time). Same-timestamp items across sources keep fetch order
// (entries, reminders, events) via the stable sort; that order is an
// implementation detail, not a guarantee.
func (cs *CalendarService) GetCalendar(ctx context.Context, uid uuid.UUID, from, to dates.Date) ([]entity.CalendarItem, error) {
	if to.Before(from) {
		return nil, errorvalues.ErrInvalidDateRange
	}
	entries, err := cs.entries.InRange(ctx, uid, from, to)
	if err != nil {
		return nil, errors.New("entries repository error: " + err.Error())
	}
	reminders, err := cs.reminders.ActiveInRange(ctx, uid, from, to)
	if err != nil {
		return nil, errors.New("reminders repository error: " + err.Error())
	}
	events, err := cs.events.InRange(ctx, uid, from, to)
	if err != nil {
		return nil, errors.New("events repository error: " + err.Error())
	}

	items := make([]entity.CalendarItem, 0, len(entries)+len(reminders)+len(events))
	items = append(items, lo.Map(entries, func(e *entity.Entry, _ int) entity.CalendarItem {
		return entity.CalendarItem{
			Source:      entity.SourceEntry,
			ID:          e.ID,
			Title:       e.Title,
			Description: summarize(e.Content),
			Date:        dates.Of(e.CreatedAt),
			Time:        e.CreatedAt.Format("15:04"),
			Type:        string(entity.SourceEntry),
			Mood:        e.Mood,
			Category:    e.Category,
		}
	})...)
	items = append(items, lo.Map(reminders, func(r *entity.Reminder, _ int) entity.CalendarItem {
		return entity.CalendarItem{
			Source:      entity.SourceReminder,
			ID:          r.ID,
			Title:       r.Title,
			Description: r.Description,
			Date:        dates.Of(r.RemindAt),
			Time:        r.RemindAt.Format("15:04"),
			Type:        r.Type,
		}
	})...)
	items = append(items, lo.Map(events, func(ev *entity.CalendarEvent, _ int) entity.CalendarItem {
		return entity.CalendarItem{
			Source:      entity.SourceEvent,
			ID:          ev.ID,
			Title:       ev.Title,
			Description: ev.Description,
			Date:        ev.Date,
			Time:        ev.Time,
			Type:        ev.Type,
		}
	})...)

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Date != items[j].Date {
			return items[i].Date.Before(items[j].Date)
		}
		return items[i].Time < items[j].Time
	})
	return items, nil
}

func summarize(content string) string {
	runes := []rune(content)
	if len(runes) <= summaryLimit {
		return content
	}
	return string(runes[:summaryLimit]) + "..."
}

func (cs *CalendarService) CreateEvent(ctx context.Context, uid uuid.UUID, req *CreateEventRequest) (*entity.CalendarEvent, error) {
	if err := validateStruct(*req); err != nil {
		return nil, err
	}
	eventType := req.Type
	if eventType == "" {
		eventType = "custom"
	}
	event := &entity.CalendarEvent{
		UserID:      uid,
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		Type:        eventType,
	}
	id, err := cs.events.Create(ctx, event)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("events repository error: " + err.Error())
	}
	created, err := cs.events.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("events repository error: " + err.Error())
	}
	return created, nil
}

func (cs *CalendarService) DeleteEvent(ctx context.Context, id, uid uuid.UUID) error {
	event, err := cs.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrEventNotFound) {
			return err
		}
		return errors.New("events repository error: " + err.Error())
	}
	if event.UserID != uid {
		return errorvalues.ErrWrongOwner
	}
	if err = cs.events.Delete(ctx, id, uid); err != nil {
		if errors.Is(err, errorvalues.ErrEventNotFound) {
			return err
		}
		return errors.New("events repository error: " + err.Error())
	}
	return nil
}
