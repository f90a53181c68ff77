package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"food-diary-backend/internal/kvstore"
	"food-diary-backend/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	// entriesKey is the single record the whole entry collection lives under
	entriesKey = "food_diary_entries"

	// GuestEntryLimit caps how many entries an unauthenticated user may keep.
	// Logged-in users are unlimited.
	GuestEntryLimit = 5

	defaultRecentLimit = 10
)

var (
	// ErrGuestLimitReached is returned by Save, before anything is written,
	// when a guest is already at the entry cap.
	ErrGuestLimitReached = errors.New("guest entry limit reached")

	// ErrEntryNotFound is returned by Update when the target id does not exist
	ErrEntryNotFound = errors.New("entry not found")
)

// EntryRepository owns the canonical entry collection. It always reads and
// writes the collection as a whole; the unit of atomicity is one full
// collection write. Concurrent updates to the same id are last-write-wins.
type EntryRepository struct {
	store kvstore.Store
}

// NewEntryRepository creates a repository backed by the given store
func NewEntryRepository(store kvstore.Store) *EntryRepository {
	return &EntryRepository{store: store}
}

// Save validates the guest ceiling, assigns identity and timestamps, and
// prepends the entry to the stored collection (newest first).
func (r *EntryRepository) Save(ctx context.Context, entry models.Entry, isLoggedIn bool) (*models.Entry, error) {
	entries := r.load(ctx)

	if !isLoggedIn && len(entries) >= GuestEntryLimit {
		return nil, ErrGuestLimitReached
	}

	now := time.Now()
	entry.ID = newEntryID(now)
	entry.CreatedAt = now
	entry.UpdatedAt = now

	entries = append([]models.Entry{entry}, entries...)
	if err := r.persist(ctx, entries); err != nil {
		return nil, fmt.Errorf("save entry: %w", err)
	}
	return &entry, nil
}

// Update applies a partial patch to an existing entry. Top-level fields are
// replaced when present in the patch; the meal is merged field by field.
// ID and CreatedAt keep their prior values no matter what the patch says,
// and UpdatedAt is forced to now.
func (r *EntryRepository) Update(ctx context.Context, id string, patch models.EntryPatch) (*models.Entry, error) {
	entries := r.load(ctx)

	idx := -1
	for i := range entries {
		if entries[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("entry %s: %w", id, ErrEntryNotFound)
	}

	applyPatch(&entries[idx], patch)
	entries[idx].UpdatedAt = time.Now()

	if err := r.persist(ctx, entries); err != nil {
		return nil, fmt.Errorf("update entry: %w", err)
	}
	updated := entries[idx]
	return &updated, nil
}

// Delete removes the entry with the given id. Deleting an id that does not
// exist is not an error.
func (r *EntryRepository) Delete(ctx context.Context, id string) error {
	entries := r.load(ctx)

	kept := entries[:0]
	for _, e := range entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}

	if err := r.persist(ctx, kept); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return nil
}

// Clear removes the whole collection
func (r *EntryRepository) Clear(ctx context.Context) error {
	if err := r.store.Remove(ctx, entriesKey); err != nil {
		return fmt.Errorf("clear entries: %w", err)
	}
	return nil
}

// GetAll returns every stored entry. Read failures are logged and surface
// as an empty collection, never as an error.
func (r *EntryRepository) GetAll(ctx context.Context) []models.Entry {
	return r.load(ctx)
}

// GetByID returns the entry with the given id, or nil if absent
func (r *EntryRepository) GetByID(ctx context.Context, id string) *models.Entry {
	for _, e := range r.load(ctx) {
		if e.ID == id {
			entry := e
			return &entry
		}
	}
	return nil
}

// GetFiltered returns entries newest-first, narrowed by every filter field
// that is set. Filters combine with AND.
func (r *EntryRepository) GetFiltered(ctx context.Context, filter models.EntryFilter) []models.Entry {
	entries := r.load(ctx)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})

	result := make([]models.Entry, 0, len(entries))
	for _, e := range entries {
		if filter.StartDate != nil && e.Timestamp.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && e.Timestamp.After(*filter.EndDate) {
			continue
		}
		if filter.MealType != nil && e.Meal.Type != *filter.MealType {
			continue
		}
		if filter.SearchText != "" && !matchesSearch(e, filter.SearchText) {
			continue
		}
		result = append(result, e)
	}
	return result
}

// GetRecent returns the newest entries up to limit
func (r *EntryRepository) GetRecent(ctx context.Context, limit int) []models.Entry {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	entries := r.GetFiltered(ctx, models.EntryFilter{})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// GetForDate returns the entries whose timestamp falls on the given
// calendar day (00:00:00.000 through 23:59:59.999 local time).
func (r *EntryRepository) GetForDate(ctx context.Context, date time.Time) []models.Entry {
	year, month, day := date.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, date.Location())
	end := time.Date(year, month, day, 23, 59, 59, 999_000_000, date.Location())
	return r.GetFiltered(ctx, models.EntryFilter{StartDate: &start, EndDate: &end})
}

// GetToday returns today's entries
func (r *EntryRepository) GetToday(ctx context.Context) []models.Entry {
	return r.GetForDate(ctx, time.Now())
}

// GetNutritionStats sums nutrition over the given range. An empty range
// yields a zero-valued result, not an error.
func (r *EntryRepository) GetNutritionStats(ctx context.Context, start, end time.Time) models.NutritionStats {
	entries := r.GetFiltered(ctx, models.EntryFilter{StartDate: &start, EndDate: &end})

	var stats models.NutritionStats
	stats.TotalEntries = len(entries)
	for _, e := range entries {
		n := e.Meal.Nutrition
		if n == nil {
			continue
		}
		stats.TotalNutrition.Calories += n.Calories
		stats.TotalNutrition.Protein += n.Protein
		stats.TotalNutrition.Carbs += n.Carbs
		stats.TotalNutrition.Fat += n.Fat
		if n.Fiber != nil {
			stats.TotalNutrition.Fiber += *n.Fiber
		}
	}
	if stats.TotalEntries > 0 {
		stats.AverageCalories = int(math.Round(stats.TotalNutrition.Calories / float64(stats.TotalEntries)))
	}
	return stats
}

// CanSave reports whether another entry may be saved
func (r *EntryRepository) CanSave(ctx context.Context, isLoggedIn bool) bool {
	if isLoggedIn {
		return true
	}
	return len(r.load(ctx)) < GuestEntryLimit
}

// Remaining reports how many entries may still be saved. Logged-in users
// have no cap, reported as math.MaxInt.
func (r *EntryRepository) Remaining(ctx context.Context, isLoggedIn bool) int {
	if isLoggedIn {
		return math.MaxInt
	}
	remaining := GuestEntryLimit - len(r.load(ctx))
	if remaining < 0 {
		return 0
	}
	return remaining
}

// newEntryID builds a collision-resistant id from the creation time and a
// random suffix
func newEntryID(now time.Time) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), uuid.NewString()[:8])
}

func matchesSearch(e models.Entry, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(e.Notes), q) {
		return true
	}
	for _, ing := range e.Meal.Ingredients {
		if strings.Contains(strings.ToLower(ing.Name), q) {
			return true
		}
	}
	return false
}

func applyPatch(e *models.Entry, patch models.EntryPatch) {
	if patch.Timestamp != nil {
		e.Timestamp = *patch.Timestamp
	}
	if patch.Notes != nil {
		e.Notes = *patch.Notes
	}
	if patch.Location != nil {
		e.Location = patch.Location
	}
	if patch.Rating != nil {
		e.Rating = patch.Rating
	}
	if patch.WouldEatAgain != nil {
		e.WouldEatAgain = patch.WouldEatAgain
	}
	if patch.Meal != nil {
		mergeMeal(&e.Meal, *patch.Meal)
	}
}

// mergeMeal merges the patch into the existing meal one field at a time;
// fields absent from the patch keep their current value
func mergeMeal(m *models.Meal, patch models.MealPatch) {
	if patch.PhotoURL != nil {
		m.PhotoURL = *patch.PhotoURL
	}
	if patch.Type != nil {
		m.Type = *patch.Type
	}
	if patch.Nutrition != nil {
		m.Nutrition = patch.Nutrition
	}
	if patch.Ingredients != nil {
		m.Ingredients = patch.Ingredients
	}
	if patch.Analysis != nil {
		m.Analysis = patch.Analysis
	}
}

func (r *EntryRepository) load(ctx context.Context) []models.Entry {
	data, err := r.store.Get(ctx, entriesKey)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to load entries, returning empty collection")
		return []models.Entry{}
	}
	if data == nil {
		return []models.Entry{}
	}

	var entries []models.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Warn().Err(err).Msg("Failed to decode stored entries, returning empty collection")
		return []models.Entry{}
	}
	return entries
}

func (r *EntryRepository) persist(ctx context.Context, entries []models.Entry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode entries: %w", err)
	}
	return r.store.Set(ctx, entriesKey, data)
}
