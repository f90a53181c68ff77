package services

import (
	"fmt"
	"sort"
	"testing"
	"time"

	"food-diary-backend/internal/models"
)

// makeEntries builds a deterministic unsorted collection. Calories cycle
// through a small set so comparator ties occur, which is what exercises
// the merge tie-break.
func makeEntries(n int) []models.Entry {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	entries := make([]models.Entry, n)
	for i := 0; i < n; i++ {
		calories := float64((i * 37) % 900)
		if i%4 == 0 {
			calories = 250 // deliberate duplicates
		}
		fiber := float64(i % 12)
		entries[i] = models.Entry{
			ID:        fmt.Sprintf("e%03d", i),
			Timestamp: base.Add(time.Duration((i*13)%n) * time.Hour),
			Meal: models.Meal{
				Type: models.MealTypeLunch,
				Nutrition: &models.NutritionInfo{
					Calories: calories,
					Protein:  float64((i * 7) % 60),
					Carbs:    30,
					Fat:      float64((i * 3) % 40),
					Fiber:    &fiber,
				},
			},
		}
	}
	return entries
}

func ids(entries []models.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func assertSameOrder(t *testing.T, got, want []models.Entry, label string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: length = %d, want %d", label, len(got), len(want))
	}
	for i := range got {
		if got[i].ID != want[i].ID {
			t.Fatalf("%s: order differs at %d: got %v want %v", label, i, ids(got), ids(want))
		}
	}
}

func TestCompareSign(t *testing.T) {
	s := NewSortService()
	older := models.Entry{Timestamp: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	newer := models.Entry{Timestamp: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)}

	if d := s.Compare(newer, older, models.SortDateDesc); d >= 0 {
		t.Errorf("date-desc: Compare(newer, older) = %v, want negative", d)
	}
	if d := s.Compare(older, newer, models.SortDateAsc); d >= 0 {
		t.Errorf("date-asc: Compare(older, newer) = %v, want negative", d)
	}
	if d := s.Compare(older, older, models.SortDateDesc); d != 0 {
		t.Errorf("Compare(x, x) = %v, want 0", d)
	}
}

func TestCompareMissingNutrition(t *testing.T) {
	s := NewSortService()
	withCal := models.Entry{Meal: models.Meal{Nutrition: &models.NutritionInfo{Calories: 100}}}
	without := models.Entry{}

	if d := s.Compare(without, withCal, models.SortCaloriesAsc); d >= 0 {
		t.Errorf("calories-asc: entry without nutrition should sort as 0, got diff %v", d)
	}
}

func TestSortAllMatchesDirectSortAcrossChunkBoundary(t *testing.T) {
	s := NewSortService()
	for _, n := range []int{49, 50, 51, 150} {
		for _, method := range models.AllSortMethods() {
			input := makeEntries(n)

			direct := make([]models.Entry, len(input))
			copy(direct, input)
			sort.SliceStable(direct, func(i, j int) bool {
				return s.Compare(direct[i], direct[j], method) < 0
			})

			got := s.SortAll(input, method)
			assertSameOrder(t, got, direct, fmt.Sprintf("n=%d method=%s", n, method))
		}
	}
}

func TestSortAllIdempotent(t *testing.T) {
	s := NewSortService()
	for _, method := range models.AllSortMethods() {
		input := makeEntries(150)
		once := s.SortAll(input, method)
		twice := s.SortAll(once, method)
		assertSameOrder(t, twice, once, fmt.Sprintf("method=%s", method))
	}
}

func TestSortAllDoesNotMutateInput(t *testing.T) {
	s := NewSortService()
	input := makeEntries(150)
	before := ids(input)

	s.SortAll(input, models.SortCaloriesDesc)

	after := ids(input)
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("input mutated at %d", i)
		}
	}
}

func TestSortAllUnknownMethodFallsBackToDateDescending(t *testing.T) {
	s := NewSortService()
	input := makeEntries(120)

	got := s.SortAll(input, models.SortMethod("bogus"))

	for i := 1; i < len(got); i++ {
		if got[i].Timestamp.After(got[i-1].Timestamp) {
			t.Fatalf("fallback order not date-descending at %d", i)
		}
	}
}

func TestMergeSortedPrefersLeftOnTies(t *testing.T) {
	s := NewSortService()
	tie := &models.NutritionInfo{Calories: 250}
	a := []models.Entry{{ID: "left", Meal: models.Meal{Nutrition: tie}}}
	b := []models.Entry{{ID: "right", Meal: models.Meal{Nutrition: tie}}}

	merged := mergeSorted(a, b, models.SortCaloriesAsc, s)
	if merged[0].ID != "left" || merged[1].ID != "right" {
		t.Errorf("merged order = %v, want left before right on ties", ids(merged))
	}
}

func TestIsExpensive(t *testing.T) {
	s := NewSortService()
	expensive := map[models.SortMethod]bool{
		models.SortHealthDesc:  true,
		models.SortHealthAsc:   true,
		models.SortDensityDesc: true,
		models.SortDensityAsc:  true,
	}
	for _, m := range models.AllSortMethods() {
		if got := s.IsExpensive(m); got != expensive[m] {
			t.Errorf("IsExpensive(%s) = %v, want %v", m, got, expensive[m])
		}
	}
	if s.IsExpensive(models.SortMethod("bogus")) {
		t.Error("IsExpensive(bogus) = true, want false")
	}
}

func TestEstimatedDurationMonotonic(t *testing.T) {
	s := NewSortService()
	counts := []int{0, 10, 50, 51, 200, 201, 500, 501, 1000, 1001, 5000}
	prev := -1
	for _, c := range counts {
		got := s.EstimatedDurationMs(c)
		if got < prev {
			t.Errorf("EstimatedDurationMs(%d) = %d, less than previous %d", c, got, prev)
		}
		prev = got
	}
}
