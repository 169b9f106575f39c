package api

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	errorvalues "github.com/foshmed/daybook/internal/error_values"
	"github.com/foshmed/daybook/internal/repository"
	"github.com/foshmed/daybook/internal/service"
	"github.com/foshmed/daybook/pkg/entity"
	"github.com/foshmed/daybook/pkg/httputil"
	"github.com/google/uuid"
)

const entryImageMaxBytes = 10 << 20

type CreateEntryRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Mood     string `json:"mood"`
	Category string `json:"category"`
}

type UpdateEntryRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Mood     string `json:"mood"`
	Category string `json:"category"`
}

type QuickNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Mood    string `json:"mood"`
}

type EntryFromTemplateRequest struct {
	Mood string `json:"mood"`
}

type GetEntriesResponse struct {
	Entries    []*entity.Entry   `json:"entries"`
	Pagination entity.Pagination `json:"pagination"`
}

func (s *Server) GetEntries(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get entries error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	filters := repository.EntryFilters{
		Category: r.URL.Query().Get("category"),
		Mood:     r.URL.Query().Get("mood"),
		Search:   r.URL.Query().Get("search"),
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	entries, pagination, err := s.entriesService.List(ctx, uid, filters, service.PaginationOpts{
		Page:     page,
		PageSize: limit,
	})
	if err != nil {
		logger.Error("getting entries list error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting entries list", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, GetEntriesResponse{
		Entries:    entries,
		Pagination: pagination,
	})
	logger.Info("entries provided")
}

func (s *Server) CreateEntry(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("create entry error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req service.CreateEntryRequest
	var image multipart.File
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		err = r.ParseMultipartForm(entryImageMaxBytes)
		if err != nil {
			logger.Error("create entry error: invalid multipart form")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid multipart form", nil)
			return
		}
		req.Title = r.FormValue("title")
		req.Content = r.FormValue("content")
		req.Mood = r.FormValue("mood")
		req.Category = r.FormValue("category")
		file, header, ferr := r.FormFile("image")
		if ferr == nil {
			defer file.Close()
			if !allowedImageExt(header.Filename) {
				logger.Error("create entry error: unsupported image extension")
				httputil.WriteErrorResponse(w, http.StatusBadRequest, "unsupported image format", nil)
				return
			}
			image = file
		}
	} else {
		var body CreateEntryRequest
		defer r.Body.Close()
		err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&body)
		if err != nil {
			logger.Error("create entry error: invalid request body")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
			return
		}
		req.Title = body.Title
		req.Content = body.Content
		req.Mood = body.Mood
		req.Category = body.Category
	}
	req.Image = image
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()
	entry, err := s.entriesService.Create(ctx, uid, &req)
	if err != nil {
		if errors.Is(err, errorvalues.ErrValidation) {
			logger.Error("create entry error: invalid fields")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, err.Error(), nil)
			return
		}
		logger.Error("create entry error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while creating entry", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, entry)
	logger.Info("entry created")
}

func (s *Server) GetEntry(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get entry error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("get entry error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid entry id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	entry, err := s.entriesService.Get(ctx, id, uid)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrEntryNotFound), errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("get entry error: unexist entry")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "entry doesn't exist", nil)
		default:
			logger.Error("get entry error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while getting entry", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, entry)
	logger.Info("entry provided")
}

func (s *Server) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("update entry error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("update entry error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid entry id in path value", nil)
		return
	}
	var req UpdateEntryRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("update entry error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.entriesService.Update(ctx, id, uid, &service.UpdateEntryRequest{
		Title:    req.Title,
		Content:  req.Content,
		Mood:     req.Mood,
		Category: req.Category,
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrValidation):
			logger.Error("update entry error: invalid fields")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, err.Error(), nil)
		case errors.Is(err, errorvalues.ErrEntryNotFound), errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("update entry error: unexist entry")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "entry doesn't exist", nil)
		default:
			logger.Error("update entry error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while updating entry", nil)
		}
		return
	}
	httputil.WriteMessageResponse(w, http.StatusOK, "entry updated")
	logger.Info("entry updated")
}

func (s *Server) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("entry deletion error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("entry deletion error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid entry id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.entriesService.Delete(ctx, id, uid)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrEntryNotFound), errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("entry deletion error: unexist entry")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "entry doesn't exist", nil)
		default:
			logger.Error("entry deletion error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while deleting entry", nil)
		}
		return
	}
	httputil.WriteMessageResponse(w, http.StatusOK, "entry deleted")
	logger.Info("entry deleted")
}

func (s *Server) GetQuickNotes(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get quick notes error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	notes, err := s.entriesService.ListQuickNotes(ctx, uid)
	if err != nil {
		logger.Error("getting quick notes error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting quick notes", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"quick_notes": notes,
	})
	logger.Info("quick notes provided")
}

func (s *Server) CreateQuickNote(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("create quick note error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req QuickNoteRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("create quick note error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	note, err := s.entriesService.CreateQuickNote(ctx, uid, &service.QuickNoteRequest{
		Title:   req.Title,
		Content: req.Content,
		Mood:    req.Mood,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrValidation) {
			logger.Error("create quick note error: invalid fields")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, err.Error(), nil)
			return
		}
		logger.Error("create quick note error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while creating quick note", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, note)
	logger.Info("quick note created")
}

func (s *Server) GetTemplates(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	templates, err := s.templatesService.List(ctx)
	if err != nil {
		logger.Error("getting templates error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting templates", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"templates": templates,
	})
	logger.Info("templates provided")
}

func (s *Server) CreateEntryFromTemplate(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("create entry from template error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	templateID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("create entry from template error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid template id in path value", nil)
		return
	}
	var req EntryFromTemplateRequest
	defer r.Body.Close()
	// Body is optional, a missing mood falls back to the default
	_ = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	entry, err := s.entriesService.CreateFromTemplate(ctx, uid, templateID, req.Mood)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrValidation):
			logger.Error("create entry from template error: invalid fields")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, err.Error(), nil)
		case errors.Is(err, errorvalues.ErrTemplateNotFound):
			logger.Error("create entry from template error: unexist template")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "template doesn't exist", nil)
		default:
			logger.Error("create entry from template error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while creating entry", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, entry)
	logger.Info("entry created from template")
}
