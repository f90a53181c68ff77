package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"food-diary-backend/internal/middleware"
	"food-diary-backend/internal/models"
	"food-diary-backend/internal/repository"
	"food-diary-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// EntryHandler handles diary entry HTTP requests
type EntryHandler struct {
	repo     *repository.EntryRepository
	sorter   *services.SortService
	sections *services.SectionService
}

// NewEntryHandler creates a new entry handler
func NewEntryHandler(repo *repository.EntryRepository, sorter *services.SortService, sections *services.SectionService) *EntryHandler {
	return &EntryHandler{
		repo:     repo,
		sorter:   sorter,
		sections: sections,
	}
}

// CreateEntry handles POST /api/v1/entries
func (h *EntryHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var entry models.Entry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	entry.UserID = middleware.GetUserID(ctx)

	saved, err := h.repo.Save(ctx, entry, middleware.IsLoggedIn(ctx))
	if err != nil {
		if errors.Is(err, repository.ErrGuestLimitReached) {
			respondErrorCode(w, "Guest entry limit reached", "guest_limit_reached", http.StatusForbidden)
			return
		}
		log.Error().Err(err).Msg("Failed to save entry")
		respondError(w, "Failed to save entry", http.StatusInternalServerError)
		return
	}

	log.Info().Str("entry_id", saved.ID).Msg("Entry saved")
	respondJSON(w, saved, http.StatusCreated)
}

// ListEntries handles GET /api/v1/entries
func (h *EntryHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter, err := filterFromQuery(r)
	if err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	entries := h.repo.GetFiltered(ctx, filter)

	if sortParam := r.URL.Query().Get("sort"); sortParam != "" {
		entries = h.sorter.SortAll(entries, models.SortMethod(sortParam))
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 && limit < len(entries) {
			entries = entries[:limit]
		}
	}

	respondJSON(w, map[string]any{
		"entries": entries,
		"total":   len(entries),
	}, http.StatusOK)
}

// GetSections handles GET /api/v1/entries/sections
func (h *EntryHandler) GetSections(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter, err := filterFromQuery(r)
	if err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	method := models.SortDateDesc
	if sortParam := r.URL.Query().Get("sort"); sortParam != "" {
		method = models.SortMethod(sortParam)
	}

	entries := h.repo.GetFiltered(ctx, filter)
	sorted := h.sorter.SortAll(entries, method)
	sections := h.sections.GroupSorted(sorted, method)

	respondJSON(w, map[string]any{
		"sections":              sections,
		"sort":                  method,
		"total":                 len(sorted),
		"expensive":             h.sorter.IsExpensive(method),
		"estimated_duration_ms": h.sorter.EstimatedDurationMs(len(sorted)),
	}, http.StatusOK)
}

// GetStats handles GET /api/v1/entries/stats
func (h *EntryHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	start, err := parseTimeParam(r, "start_date")
	if err != nil || start == nil {
		respondError(w, "start_date is required", http.StatusBadRequest)
		return
	}
	end, err := parseTimeParam(r, "end_date")
	if err != nil || end == nil {
		respondError(w, "end_date is required", http.StatusBadRequest)
		return
	}

	respondJSON(w, h.repo.GetNutritionStats(ctx, *start, *end), http.StatusOK)
}

// GetQuota handles GET /api/v1/entries/quota
func (h *EntryHandler) GetQuota(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	isLoggedIn := middleware.IsLoggedIn(ctx)

	response := map[string]any{
		"can_save": h.repo.CanSave(ctx, isLoggedIn),
	}
	if isLoggedIn {
		response["unlimited"] = true
	} else {
		response["remaining"] = h.repo.Remaining(ctx, false)
		response["limit"] = repository.GuestEntryLimit
	}

	respondJSON(w, response, http.StatusOK)
}

// GetEntry handles GET /api/v1/entries/{id}
func (h *EntryHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	entry := h.repo.GetByID(r.Context(), chi.URLParam(r, "id"))
	if entry == nil {
		respondError(w, "Entry not found", http.StatusNotFound)
		return
	}
	respondJSON(w, entry, http.StatusOK)
}

// UpdateEntry handles PATCH /api/v1/entries/{id}
func (h *EntryHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	var patch models.EntryPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrEntryNotFound) {
			respondError(w, "Entry not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("entry_id", id).Msg("Failed to update entry")
		respondError(w, "Failed to update entry", http.StatusInternalServerError)
		return
	}

	respondJSON(w, updated, http.StatusOK)
}

// DeleteEntry handles DELETE /api/v1/entries/{id}
func (h *EntryHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.repo.Delete(r.Context(), id); err != nil {
		log.Error().Err(err).Str("entry_id", id).Msg("Failed to delete entry")
		respondError(w, "Failed to delete entry", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetSortMethods handles GET /api/v1/sort-methods
func (h *EntryHandler) GetSortMethods(w http.ResponseWriter, r *http.Request) {
	type methodInfo struct {
		Method models.SortMethod `json:"method"`
		models.SortMetadata
		Expensive bool `json:"expensive"`
	}

	methods := make([]methodInfo, 0, len(models.AllSortMethods()))
	for _, m := range models.AllSortMethods() {
		meta, _ := m.Metadata()
		methods = append(methods, methodInfo{
			Method:       m,
			SortMetadata: meta,
			Expensive:    h.sorter.IsExpensive(m),
		})
	}

	respondJSON(w, map[string]any{"methods": methods}, http.StatusOK)
}

func filterFromQuery(r *http.Request) (models.EntryFilter, error) {
	var filter models.EntryFilter

	start, err := parseTimeParam(r, "start_date")
	if err != nil {
		return filter, err
	}
	filter.StartDate = start

	end, err := parseTimeParam(r, "end_date")
	if err != nil {
		return filter, err
	}
	filter.EndDate = end

	if mealType := r.URL.Query().Get("meal_type"); mealType != "" {
		mt := models.MealType(mealType)
		filter.MealType = &mt
	}
	filter.SearchText = r.URL.Query().Get("search")

	return filter, nil
}

func parseTimeParam(r *http.Request, name string) (*time.Time, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return nil, errors.New("invalid " + name + ": expected RFC3339 or YYYY-MM-DD")
	}
	return &t, nil
}
