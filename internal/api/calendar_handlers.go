package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	errorvalues "github.com/foshmed/daybook/internal/error_values"
	"github.com/foshmed/daybook/internal/service"
	"github.com/foshmed/daybook/pkg/dates"
	"github.com/foshmed/daybook/pkg/httputil"
	"github.com/google/uuid"
)

type CreateReminderRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	RemindAt    time.Time  `json:"date_time"`
	Type        string     `json:"type"`
	EntryID     *uuid.UUID `json:"entry_id"`
}

type UpdateReminderRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	RemindAt    time.Time `json:"date_time"`
	Active      bool      `json:"is_active"`
	Type        string    `json:"type"`
}

type CreateEventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"event_date"`
	Time        string `json:"event_time"`
	Type        string `json:"event_type"`
}

func (s *Server) GetReminders(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get reminders error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	reminders, err := s.remindersService.List(ctx, uid)
	if err != nil {
		logger.Error("getting reminders error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting reminders", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"reminders": reminders,
	})
	logger.Info("reminders provided")
}

func (s *Server) CreateReminder(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("create reminder error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req CreateReminderRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("create reminder error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	reminder, err := s.remindersService.Create(ctx, uid, &service.CreateReminderRequest{
		Title:       req.Title,
		Description: req.Description,
		RemindAt:    req.RemindAt,
		Type:        req.Type,
		EntryID:     req.EntryID,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrValidation) {
			logger.Error("create reminder error: invalid fields")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, err.Error(), nil)
			return
		}
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			logger.Error("create reminder error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "user doesn't exist", nil)
			return
		}
		logger.Error("create reminder error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while creating reminder", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, reminder)
	logger.Info("reminder created")
}

func (s *Server) UpdateReminder(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("update reminder error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("update reminder error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid reminder id in path value", nil)
		return
	}
	var req UpdateReminderRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("update reminder error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.remindersService.Update(ctx, id, uid, &service.UpdateReminderRequest{
		Title:       req.Title,
		Description: req.Description,
		RemindAt:    req.RemindAt,
		Active:      req.Active,
		Type:        req.Type,
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrValidation):
			logger.Error("update reminder error: invalid fields")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, err.Error(), nil)
		case errors.Is(err, errorvalues.ErrReminderNotFound), errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("update reminder error: unexist reminder")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "reminder doesn't exist", nil)
		default:
			logger.Error("update reminder error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while updating reminder", nil)
		}
		return
	}
	httputil.WriteMessageResponse(w, http.StatusOK, "reminder updated")
	logger.Info("reminder updated")
}

func (s *Server) DeleteReminder(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("reminder deletion error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("reminder deletion error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid reminder id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.remindersService.Delete(ctx, id, uid)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrReminderNotFound), errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("reminder deletion error: unexist reminder")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "reminder doesn't exist", nil)
		default:
			logger.Error("reminder deletion error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while deleting reminder", nil)
		}
		return
	}
	httputil.WriteMessageResponse(w, http.StatusOK, "reminder deleted")
	logger.Info("reminder deleted")
}

func (s *Server) GetCalendar(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get calendar error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	from, to, err := calendarRange(r)
	if err != nil {
		logger.Error("get calendar error: invalid date range query")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid start_date or end_date", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	items, err := s.calendarService.GetCalendar(ctx, uid, from, to)
	if err != nil {
		if errors.Is(err, errorvalues.ErrInvalidDateRange) {
			logger.Error("get calendar error: end date before start date")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "end_date is before start_date", nil)
			return
		}
		logger.Error("get calendar error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while building calendar", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"start_date": from,
		"end_date":   to,
		"items":      items,
	})
	logger.Info("calendar provided")
}

// calendarRange reads start_date/end_date from the query, defaulting to the
// current month when both are absent.
func calendarRange(r *http.Request) (dates.Date, dates.Date, error) {
	startRaw := r.URL.Query().Get("start_date")
	endRaw := r.URL.Query().Get("end_date")
	if startRaw == "" && endRaw == "" {
		now := time.Now()
		first := dates.New(now.Year(), now.Month(), 1)
		// Day zero of the next month normalizes to this month's last day
		last := dates.New(now.Year(), now.Month()+1, 0)
		return first, last, nil
	}
	from, err := dates.Parse(startRaw)
	if err != nil {
		return dates.Date{}, dates.Date{}, err
	}
	to, err := dates.Parse(endRaw)
	if err != nil {
		return dates.Date{}, dates.Date{}, err
	}
	return from, to, nil
}

func (s *Server) CreateCalendarEvent(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("create event error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req CreateEventRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("create event error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	date, err := dates.Parse(req.Date)
	if err != nil {
		logger.Error("create event error: invalid event date")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid event_date, expected YYYY-MM-DD", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	event, err := s.calendarService.CreateEvent(ctx, uid, &service.CreateEventRequest{
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		Time:        req.Time,
		Type:        req.Type,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrValidation) {
			logger.Error("create event error: invalid fields")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, err.Error(), nil)
			return
		}
		logger.Error("create event error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while creating event", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, event)
	logger.Info("calendar event created")
}

func (s *Server) DeleteCalendarEvent(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("event deletion error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("event deletion error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid event id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.calendarService.DeleteEvent(ctx, id, uid)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrEventNotFound), errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("event deletion error: unexist event")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "event doesn't exist", nil)
		default:
			logger.Error("event deletion error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while deleting event", nil)
		}
		return
	}
	httputil.WriteMessageResponse(w, http.StatusOK, "event deleted")
	logger.Info("calendar event deleted")
}

func (s *Server) GetStatistics(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get statistics error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	stats, err := s.statsService.GetStatistics(ctx, uid, time.Now())
	if err != nil {
		logger.Error("get statistics error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while computing statistics", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, stats)
	logger.Info("statistics provided")
}
