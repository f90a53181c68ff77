package services

import (
	"fmt"
	"sort"

	"food-diary-backend/internal/models"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// sortChunkSize bounds how much work a single sort pass does before
// yielding. It is a tuning constant, not a correctness requirement.
const sortChunkSize = 50

// SortService orders entry collections by any of the supported methods
type SortService struct{}

// NewSortService creates a sort service
func NewSortService() *SortService {
	return &SortService{}
}

// Compare returns a negative number when a should precede b under the
// given method, positive when b should, and 0 on ties. Unknown methods
// compare as date-descending.
func (s *SortService) Compare(a, b models.Entry, method models.SortMethod) float64 {
	meta, ok := method.Metadata()
	if !ok {
		meta, _ = models.SortDateDesc.Metadata()
	}

	diff := sortValue(a, meta.Dimension) - sortValue(b, meta.Dimension)
	if !meta.Ascending {
		diff = -diff
	}
	return diff
}

// SortAll sorts the entries by the given method without mutating the
// input. Small collections sort directly; larger ones sort in chunks of
// sortChunkSize (concurrently, each chunk reads only its own slice) and
// merge the sorted chunks pairwise. If anything goes wrong the caller
// still gets a usable ordering: a plain date-descending sort of the input.
func (s *SortService) SortAll(entries []models.Entry, method models.SortMethod) []models.Entry {
	sorted, err := s.sortChunked(entries, method)
	if err != nil {
		log.Warn().Err(err).Str("method", string(method)).Msg("Sort failed, falling back to date-descending")
		return sortDateDescending(entries)
	}
	return sorted
}

func (s *SortService) sortChunked(entries []models.Entry, method models.SortMethod) (result []models.Entry, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sort panicked: %v", r)
		}
	}()

	if _, ok := method.Metadata(); !ok {
		return nil, fmt.Errorf("unknown sort method %q", method)
	}

	out := make([]models.Entry, len(entries))
	copy(out, entries)

	less := func(chunk []models.Entry) func(i, j int) bool {
		return func(i, j int) bool {
			return s.Compare(chunk[i], chunk[j], method) < 0
		}
	}

	if len(out) <= sortChunkSize {
		sort.SliceStable(out, less(out))
		return out, nil
	}

	var chunks [][]models.Entry
	for start := 0; start < len(out); start += sortChunkSize {
		end := min(start+sortChunkSize, len(out))
		chunks = append(chunks, out[start:end])
	}

	// Chunk sorts are independent: each goroutine touches only its own
	// slice of out.
	g := new(errgroup.Group)
	for _, chunk := range chunks {
		chunk := chunk
		g.Go(func() error {
			sort.SliceStable(chunk, less(chunk))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// The merge has sequential data dependencies and stays single-threaded
	merged := chunks[0]
	for _, chunk := range chunks[1:] {
		merged = mergeSorted(merged, chunk, method, s)
	}
	return merged, nil
}

// mergeSorted walks two sorted inputs picking the comparator-smaller head
// each step. Ties take from the left input; that preference is the only
// stability guarantee the chunked sort makes.
func mergeSorted(a, b []models.Entry, method models.SortMethod, s *SortService) []models.Entry {
	result := make([]models.Entry, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if s.Compare(a[i], b[j], method) <= 0 {
			result = append(result, a[i])
			i++
		} else {
			result = append(result, b[j])
			j++
		}
	}
	result = append(result, a[i:]...)
	result = append(result, b[j:]...)
	return result
}

// EstimatedDurationMs estimates how long sorting count entries takes, for
// progress UI only. Monotonic step function; no correctness dependency.
func (s *SortService) EstimatedDurationMs(count int) int {
	switch {
	case count <= 50:
		return 50
	case count <= 200:
		return 150
	case count <= 500:
		return 400
	case count <= 1000:
		return 800
	default:
		return 1500
	}
}

// IsExpensive reports whether the method needs a derived-metric pass per
// entry instead of a plain field read. Callers use it to decide whether
// to show a progress indicator.
func (s *SortService) IsExpensive(method models.SortMethod) bool {
	meta, ok := method.Metadata()
	if !ok {
		return false
	}
	return meta.Dimension == models.DimensionHealth || meta.Dimension == models.DimensionDensity
}

// sortValue extracts the numeric value a dimension orders by
func sortValue(e models.Entry, dim models.SortDimension) float64 {
	switch dim {
	case models.DimensionDate:
		return float64(e.Timestamp.UnixMilli())
	case models.DimensionCalories:
		if e.Meal.Nutrition != nil {
			return e.Meal.Nutrition.Calories
		}
		return 0
	case models.DimensionProtein:
		if e.Meal.Nutrition != nil {
			return e.Meal.Nutrition.Protein
		}
		return 0
	case models.DimensionHealth:
		return HealthScore(e)
	case models.DimensionDensity:
		return NutritionDensity(e)
	}
	return 0
}

func sortDateDescending(entries []models.Entry) []models.Entry {
	out := make([]models.Entry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}
