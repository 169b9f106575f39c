package api_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/foshmed/daybook/internal/api"
	errorvalues "github.com/foshmed/daybook/internal/error_values"
	"github.com/foshmed/daybook/internal/repository"
	"github.com/foshmed/daybook/internal/service"
	"github.com/foshmed/daybook/pkg/dates"
	"github.com/foshmed/daybook/pkg/entity"
	jwtservice "github.com/foshmed/daybook/pkg/jwt_service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	service.InitValidator()
	m.Run()
}

var (
	userEmail       = "test@example.com"
	password        = "test_password"
	passwordHash, _ = bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	userID          = uuid.New()
	entryID         = uuid.New()
	testUser        = entity.User{
		ID:           userID,
		Name:         "test_user",
		Email:        userEmail,
		PasswordHash: string(passwordHash),
	}
	testEntry = entity.Entry{
		ID:        entryID,
		UserID:    userID,
		Title:     "Morning pages",
		Content:   "Slept well.",
		Mood:      "Happy",
		Category:  "Personal",
		CreatedAt: time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC),
	}
)

func authed(r *http.Request) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), "User-ID", userID))
}

type UserServiceMock struct {
	err error
}

func (m *UserServiceMock) Register(ctx context.Context, req *service.RegisterRequest) (*entity.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &testUser, nil
}

func (m *UserServiceMock) Login(ctx context.Context, email, pass string) (*entity.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &testUser, nil
}

func (m *UserServiceMock) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &testUser, nil
}

func (m *UserServiceMock) UpdateProfile(ctx context.Context, id uuid.UUID, req *service.UpdateProfileRequest) error {
	return m.err
}

func (m *UserServiceMock) SetProfileImage(ctx context.Context, id uuid.UUID, image multipart.File) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return "https://res.cloudinary.com/demo/image/upload/v1/daybook/profiles/pic.jpg", nil
}

func (m *UserServiceMock) DeleteAccount(ctx context.Context, id uuid.UUID, pass string) error {
	return m.err
}

type EntriesServiceMock struct {
	err error
}

func (m *EntriesServiceMock) List(ctx context.Context, uid uuid.UUID, filters repository.EntryFilters, opts service.PaginationOpts) ([]*entity.Entry, entity.Pagination, error) {
	if m.err != nil {
		return nil, entity.Pagination{}, m.err
	}
	e := testEntry
	return []*entity.Entry{&e}, entity.Pagination{
		CurrentPage: opts.Page,
		TotalPages:  3,
		TotalCount:  45,
		PerPage:     opts.PageSize,
	}, nil
}

func (m *EntriesServiceMock) Create(ctx context.Context, uid uuid.UUID, req *service.CreateEntryRequest) (*entity.Entry, error) {
	if m.err != nil {
		return nil, m.err
	}
	e := testEntry
	return &e, nil
}

func (m *EntriesServiceMock) Get(ctx context.Context, id, uid uuid.UUID) (*entity.Entry, error) {
	if m.err != nil {
		return nil, m.err
	}
	e := testEntry
	return &e, nil
}

func (m *EntriesServiceMock) Update(ctx context.Context, id, uid uuid.UUID, req *service.UpdateEntryRequest) error {
	return m.err
}

func (m *EntriesServiceMock) Delete(ctx context.Context, id, uid uuid.UUID) error {
	return m.err
}

func (m *EntriesServiceMock) ListQuickNotes(ctx context.Context, uid uuid.UUID) ([]*entity.Entry, error) {
	if m.err != nil {
		return nil, m.err
	}
	e := testEntry
	e.QuickNote = true
	return []*entity.Entry{&e}, nil
}

func (m *EntriesServiceMock) CreateQuickNote(ctx context.Context, uid uuid.UUID, req *service.QuickNoteRequest) (*entity.Entry, error) {
	if m.err != nil {
		return nil, m.err
	}
	e := testEntry
	e.QuickNote = true
	return &e, nil
}

func (m *EntriesServiceMock) CreateFromTemplate(ctx context.Context, uid, templateID uuid.UUID, mood string) (*entity.Entry, error) {
	if m.err != nil {
		return nil, m.err
	}
	e := testEntry
	return &e, nil
}

type RemindersServiceMock struct {
	err error
}

func (m *RemindersServiceMock) List(ctx context.Context, uid uuid.UUID) ([]*entity.Reminder, error) {
	if m.err != nil {
		return nil, m.err
	}
	return []*entity.Reminder{}, nil
}

func (m *RemindersServiceMock) Create(ctx context.Context, uid uuid.UUID, req *service.CreateReminderRequest) (*entity.Reminder, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &entity.Reminder{ID: uuid.New(), UserID: uid, Title: req.Title, Active: true, Type: "custom"}, nil
}

func (m *RemindersServiceMock) Update(ctx context.Context, id, uid uuid.UUID, req *service.UpdateReminderRequest) error {
	return m.err
}

func (m *RemindersServiceMock) Delete(ctx context.Context, id, uid uuid.UUID) error {
	return m.err
}

type CalendarServiceMock struct {
	err error
}

func (m *CalendarServiceMock) GetCalendar(ctx context.Context, uid uuid.UUID, from, to dates.Date) ([]entity.CalendarItem, error) {
	if m.err != nil {
		return nil, m.err
	}
	return []entity.CalendarItem{}, nil
}

func (m *CalendarServiceMock) CreateEvent(ctx context.Context, uid uuid.UUID, req *service.CreateEventRequest) (*entity.CalendarEvent, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &entity.CalendarEvent{ID: uuid.New(), UserID: uid, Title: req.Title, Date: req.Date, Type: "custom"}, nil
}

func (m *CalendarServiceMock) DeleteEvent(ctx context.Context, id, uid uuid.UUID) error {
	return m.err
}

type StatsServiceMock struct {
	err error
}

func (m *StatsServiceMock) GetStatistics(ctx context.Context, uid uuid.UUID, now time.Time) (*entity.UserStatistics, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &entity.UserStatistics{TotalEntries: 5, CurrentStreak: 3}, nil
}

type TemplatesServiceMock struct {
	err error
}

func (m *TemplatesServiceMock) List(ctx context.Context) ([]*entity.Template, error) {
	if m.err != nil {
		return nil, m.err
	}
	return []*entity.Template{}, nil
}

func TestRegister(t *testing.T) {
	body, err := sonic.ConfigDefault.Marshal(api.RegisterRequest{
		Name:     "test_user",
		Email:    userEmail,
		Password: password,
	})
	require.NoError(t, err)
	mock := &UserServiceMock{}
	serv := api.New(&api.ServicesList{
		UserService: mock,
		JwtService:  jwtservice.New("secret"),
	})
	t.Run("registered", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body))
		mock.err = nil
		serv.Register(rr, req)
		assert.Equal(t, http.StatusCreated, rr.Result().StatusCode)
		result := make(map[string]any)
		require.NoError(t, sonic.ConfigDefault.NewDecoder(rr.Result().Body).Decode(&result))
		assert.Equal(t, userID.String(), result["uid"])
		assert.NotEmpty(t, result["token"])
	})
	t.Run("invalid body", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader([]byte("corrupted")))
		serv.Register(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Result().StatusCode)
	})
	t.Run("invalid fields", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body))
		mock.err = fmt.Errorf("%w: Email failed on 'email'", errorvalues.ErrValidation)
		serv.Register(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Result().StatusCode)
		assert.Contains(t, rr.Body.String(), "Email")
	})
	t.Run("existing user", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body))
		mock.err = errorvalues.ErrUserExists
		serv.Register(rr, req)
		assert.Equal(t, http.StatusConflict, rr.Result().StatusCode)
	})
	t.Run("service error", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body))
		mock.err = errors.New("service error")
		serv.Register(rr, req)
		assert.Equal(t, http.StatusInternalServerError, rr.Result().StatusCode)
	})
}

func TestLogin(t *testing.T) {
	body, err := sonic.ConfigDefault.Marshal(api.LoginRequest{
		Email:    userEmail,
		Password: password,
	})
	require.NoError(t, err)
	mock := &UserServiceMock{}
	serv := api.New(&api.ServicesList{
		UserService: mock,
		JwtService:  jwtservice.New("secret"),
	})
	t.Run("logged in", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
		serv.Login(rr, req)
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
	})
	t.Run("wrong credentials", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
		mock.err = errorvalues.ErrWrongCredentials
		serv.Login(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Result().StatusCode)
	})
	t.Run("invalid body", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
		serv.Login(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Result().StatusCode)
	})
}

func TestGetEntries(t *testing.T) {
	mock := &EntriesServiceMock{}
	serv := api.New(&api.ServicesList{EntriesService: mock})
	t.Run("listed with pagination", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := authed(httptest.NewRequest(http.MethodGet, "/api/v1/entries?page=2&limit=20", nil))
		serv.GetEntries(rr, req)
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
		var resp api.GetEntriesResponse
		require.NoError(t, sonic.ConfigDefault.NewDecoder(rr.Body).Decode(&resp))
		assert.Len(t, resp.Entries, 1)
		assert.Equal(t, 2, resp.Pagination.CurrentPage)
		assert.Equal(t, 3, resp.Pagination.TotalPages)
		assert.Equal(t, 45, resp.Pagination.TotalCount)
	})
	t.Run("unauthorized", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/entries", nil)
		serv.GetEntries(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Result().StatusCode)
	})
	t.Run("service error", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := authed(httptest.NewRequest(http.MethodGet, "/api/v1/entries", nil))
		mock.err = errors.New("service error")
		serv.GetEntries(rr, req)
		assert.Equal(t, http.StatusInternalServerError, rr.Result().StatusCode)
	})
}

func TestCreateEntry(t *testing.T) {
	body, err := sonic.ConfigDefault.Marshal(api.CreateEntryRequest{
		Title:   "Morning pages",
		Content: "Slept well.",
	})
	require.NoError(t, err)
	mock := &EntriesServiceMock{}
	serv := api.New(&api.ServicesList{EntriesService: mock})
	t.Run("created from json body", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := authed(httptest.NewRequest(http.MethodPost, "/api/v1/entries", bytes.NewReader(body)))
		req.Header.Set("Content-Type", "application/json")
		serv.CreateEntry(rr, req)
		assert.Equal(t, http.StatusCreated, rr.Result().StatusCode)
	})
	t.Run("invalid body", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := authed(httptest.NewRequest(http.MethodPost, "/api/v1/entries", bytes.NewReader([]byte("corrupted"))))
		serv.CreateEntry(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Result().StatusCode)
	})
	t.Run("missing content rejected with field named", func(t *testing.T) {
		noContent, merr := sonic.ConfigDefault.Marshal(api.CreateEntryRequest{Title: "no content given"})
		require.NoError(t, merr)
		rr := httptest.NewRecorder()
		req := authed(httptest.NewRequest(http.MethodPost, "/api/v1/entries", bytes.NewReader(noContent)))
		mock.err = fmt.Errorf("%w: Content failed on 'required'", errorvalues.ErrValidation)
		serv.CreateEntry(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Result().StatusCode)
		assert.Contains(t, rr.Body.String(), "Content")
	})
	t.Run("service error", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := authed(httptest.NewRequest(http.MethodPost, "/api/v1/entries", bytes.NewReader(body)))
		mock.err = errors.New("service error")
		serv.CreateEntry(rr, req)
		assert.Equal(t, http.StatusInternalServerError, rr.Result().StatusCode)
	})
}

func TestGetEntry(t *testing.T) {
	mock := &EntriesServiceMock{}
	serv := api.New(&api.ServicesList{EntriesService: mock})
	newReq := func() *http.Request {
		r := authed(httptest.NewRequest(http.MethodGet, "/api/v1/entries/"+entryID.String(), nil))
		r.SetPathValue("id", entryID.String())
		return r
	}
	t.Run("found", func(t *testing.T) {
		rr := httptest.NewRecorder()
		serv.GetEntry(rr, newReq())
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
	})
	t.Run("not found", func(t *testing.T) {
		rr := httptest.NewRecorder()
		mock.err = errorvalues.ErrEntryNotFound
		serv.GetEntry(rr, newReq())
		assert.Equal(t, http.StatusNotFound, rr.Result().StatusCode)
	})
	t.Run("wrong owner answered like not found", func(t *testing.T) {
		rr := httptest.NewRecorder()
		mock.err = errorvalues.ErrWrongOwner
		serv.GetEntry(rr, newReq())
		assert.Equal(t, http.StatusNotFound, rr.Result().StatusCode)
	})
	t.Run("invalid id", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r := authed(httptest.NewRequest(http.MethodGet, "/api/v1/entries/garbage", nil))
		r.SetPathValue("id", "garbage")
		serv.GetEntry(rr, r)
		assert.Equal(t, http.StatusBadRequest, rr.Result().StatusCode)
	})
}

func TestDeleteEntry(t *testing.T) {
	mock := &EntriesServiceMock{}
	serv := api.New(&api.ServicesList{EntriesService: mock})
	newReq := func() *http.Request {
		r := authed(httptest.NewRequest(http.MethodDelete, "/api/v1/entries/"+entryID.String(), nil))
		r.SetPathValue("id", entryID.String())
		return r
	}
	t.Run("deleted", func(t *testing.T) {
		rr := httptest.NewRecorder()
		serv.DeleteEntry(rr, newReq())
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
	})
	t.Run("not found", func(t *testing.T) {
		rr := httptest.NewRecorder()
		mock.err = errorvalues.ErrEntryNotFound
		serv.DeleteEntry(rr, newReq())
		assert.Equal(t, http.StatusNotFound, rr.Result().StatusCode)
	})
}

func TestCreateEntryFromTemplate(t *testing.T) {
	mock := &EntriesServiceMock{}
	serv := api.New(&api.ServicesList{EntriesService: mock})
	templateID := uuid.New()
	newReq := func() *http.Request {
		body, _ := sonic.ConfigDefault.Marshal(api.EntryFromTemplateRequest{Mood: "Calm"})
		r := authed(httptest.NewRequest(http.MethodPost, "/api/v1/templates/"+templateID.String()+"/entries", bytes.NewReader(body)))
		r.SetPathValue("id", templateID.String())
		return r
	}
	t.Run("created", func(t *testing.T) {
		rr := httptest.NewRecorder()
		serv.CreateEntryFromTemplate(rr, newReq())
		assert.Equal(t, http.StatusCreated, rr.Result().StatusCode)
	})
	t.Run("template not found", func(t *testing.T) {
		rr := httptest.NewRecorder()
		mock.err = errorvalues.ErrTemplateNotFound
		serv.CreateEntryFromTemplate(rr, newReq())
		assert.Equal(t, http.StatusNotFound, rr.Result().StatusCode)
	})
}

func TestGetCalendar(t *testing.T) {
	mock := &CalendarServiceMock{}
	serv := api.New(&api.ServicesList{CalendarService: mock})
	t.Run("explicit range", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := authed(httptest.NewRequest(http.MethodGet, "/api/v1/calendar?start_date=2026-03-01&end_date=2026-03-31", nil))
		serv.GetCalendar(rr, req)
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
	})
	t.Run("defaults to current month", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := authed(httptest.NewRequest(http.MethodGet, "/api/v1/calendar", nil))
		serv.GetCalendar(rr, req)
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
	})
	t.Run("malformed date", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := authed(httptest.NewRequest(http.MethodGet, "/api/v1/calendar?start_date=03/01/2026&end_date=2026-03-31", nil))
		serv.GetCalendar(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Result().StatusCode)
	})
	t.Run("inverted range", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := authed(httptest.NewRequest(http.MethodGet, "/api/v1/calendar?start_date=2026-03-31&end_date=2026-03-01", nil))
		mock.err = errorvalues.ErrInvalidDateRange
		serv.GetCalendar(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Result().StatusCode)
	})
}

func TestCreateCalendarEvent(t *testing.T) {
	mock := &CalendarServiceMock{}
	serv := api.New(&api.ServicesList{CalendarService: mock})
	t.Run("created", func(t *testing.T) {
		body, _ := sonic.ConfigDefault.Marshal(api.CreateEventRequest{
			Title: "Journaling retreat",
			Date:  "2026-03-12",
		})
		rr := httptest.NewRecorder()
		req := authed(httptest.NewRequest(http.MethodPost, "/api/v1/calendar/events", bytes.NewReader(body)))
		serv.CreateCalendarEvent(rr, req)
		assert.Equal(t, http.StatusCreated, rr.Result().StatusCode)
	})
	t.Run("bad date", func(t *testing.T) {
		body, _ := sonic.ConfigDefault.Marshal(api.CreateEventRequest{
			Title: "Journaling retreat",
			Date:  "12.03.2026",
		})
		rr := httptest.NewRecorder()
		req := authed(httptest.NewRequest(http.MethodPost, "/api/v1/calendar/events", bytes.NewReader(body)))
		serv.CreateCalendarEvent(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Result().StatusCode)
	})
}

func TestDeleteReminder(t *testing.T) {
	mock := &RemindersServiceMock{}
	serv := api.New(&api.ServicesList{RemindersService: mock})
	reminderID := uuid.New()
	newReq := func() *http.Request {
		r := authed(httptest.NewRequest(http.MethodDelete, "/api/v1/reminders/"+reminderID.String(), nil))
		r.SetPathValue("id", reminderID.String())
		return r
	}
	t.Run("deleted", func(t *testing.T) {
		rr := httptest.NewRecorder()
		serv.DeleteReminder(rr, newReq())
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
	})
	t.Run("wrong owner answered like not found", func(t *testing.T) {
		rr := httptest.NewRecorder()
		mock.err = errorvalues.ErrWrongOwner
		serv.DeleteReminder(rr, newReq())
		assert.Equal(t, http.StatusNotFound, rr.Result().StatusCode)
	})
}

func TestGetStatistics(t *testing.T) {
	mock := &StatsServiceMock{}
	serv := api.New(&api.ServicesList{StatsService: mock})
	t.Run("computed", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := authed(httptest.NewRequest(http.MethodGet, "/api/v1/statistics", nil))
		serv.GetStatistics(rr, req)
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
		var stats entity.UserStatistics
		require.NoError(t, sonic.ConfigDefault.NewDecoder(rr.Body).Decode(&stats))
		assert.Equal(t, 5, stats.TotalEntries)
		assert.Equal(t, 3, stats.CurrentStreak)
	})
	t.Run("unauthorized", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/statistics", nil)
		serv.GetStatistics(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Result().StatusCode)
	})
}

func TestAuthMiddleware(t *testing.T) {
	jwtService := jwtservice.New("secret")
	serv := api.New(&api.ServicesList{
		UserService: &UserServiceMock{},
		JwtService:  jwtService,
	})
	handler := serv.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid, err := api.GetUIDFromContext(r)
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		w.Write([]byte(uid.String()))
	}))
	token, err := jwtService.GenerateToken(&testUser)
	require.NoError(t, err)
	t.Run("successful auth", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/endpoint", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
		assert.Equal(t, userID.String(), rr.Body.String())
	})
	t.Run("missing token", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/endpoint", nil)
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Result().StatusCode)
	})
	t.Run("garbage token", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/endpoint", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Result().StatusCode)
	})
	t.Run("wrong scheme", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/endpoint", nil)
		req.Header.Set("Authorization", "Basic "+token)
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Result().StatusCode)
	})
}
