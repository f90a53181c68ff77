package services

import (
	"testing"
	"time"

	"food-diary-backend/internal/models"
)

var sectionNow = time.Date(2026, 8, 28, 15, 30, 0, 0, time.UTC)

func newTestSectionService() *SectionService {
	return NewSectionServiceWithClock(func() time.Time { return sectionNow })
}

func entryAt(id string, ts time.Time) models.Entry {
	return models.Entry{ID: id, Timestamp: ts, Meal: models.Meal{Type: models.MealTypeDinner}}
}

func entryWithCalories(id string, calories float64) models.Entry {
	return models.Entry{ID: id, Meal: models.Meal{
		Type:      models.MealTypeLunch,
		Nutrition: &models.NutritionInfo{Calories: calories},
	}}
}

func TestGroupByDayTitles(t *testing.T) {
	svc := newTestSectionService()
	old := sectionNow.AddDate(0, 0, -10)
	entries := []models.Entry{
		entryAt("today", sectionNow.Add(-2*time.Hour)),
		entryAt("yesterday", sectionNow.AddDate(0, 0, -1)),
		entryAt("old", old),
	}

	sections := svc.GroupSorted(entries, models.SortDateDesc)
	if len(sections) != 3 {
		t.Fatalf("sections = %d, want 3", len(sections))
	}
	if sections[0].Title != "Today" {
		t.Errorf("sections[0].Title = %q, want %q", sections[0].Title, "Today")
	}
	if sections[1].Title != "Yesterday" {
		t.Errorf("sections[1].Title = %q, want %q", sections[1].Title, "Yesterday")
	}
	want := old.Format("Monday, January 2")
	if sections[2].Title != want {
		t.Errorf("sections[2].Title = %q, want %q", sections[2].Title, want)
	}
}

func TestGroupByDayOrderIndependentOfSortDirection(t *testing.T) {
	svc := newTestSectionService()
	// Ascending input: oldest first. Sections must still come newest day
	// first.
	entries := []models.Entry{
		entryAt("a", sectionNow.AddDate(0, 0, -2)),
		entryAt("b", sectionNow.AddDate(0, 0, -1)),
		entryAt("c", sectionNow),
	}

	sections := svc.GroupSorted(entries, models.SortDateAsc)
	if len(sections) != 3 {
		t.Fatalf("sections = %d, want 3", len(sections))
	}
	if sections[0].Title != "Today" || sections[1].Title != "Yesterday" {
		t.Errorf("section order = [%q, %q, %q], want newest day first",
			sections[0].Title, sections[1].Title, sections[2].Title)
	}
}

func TestGroupByDayKeepsWithinDayOrder(t *testing.T) {
	svc := newTestSectionService()
	morning := entryAt("morning", sectionNow.Add(-8*time.Hour))
	noon := entryAt("noon", sectionNow.Add(-4*time.Hour))

	sections := svc.GroupSorted([]models.Entry{morning, noon}, models.SortDateAsc)
	if len(sections) != 1 {
		t.Fatalf("sections = %d, want 1", len(sections))
	}
	if sections[0].Entries[0].ID != "morning" || sections[0].Entries[1].ID != "noon" {
		t.Errorf("within-day order changed: %v", ids(sections[0].Entries))
	}
}

func TestCalorieGroupingScenario(t *testing.T) {
	svc := newTestSectionService()
	sorter := NewSortService()
	entries := []models.Entry{
		entryWithCalories("a", 150),
		entryWithCalories("b", 450),
		entryWithCalories("c", 900),
	}

	sorted := sorter.SortAll(entries, models.SortCaloriesDesc)
	sections := svc.GroupSorted(sorted, models.SortCaloriesDesc)

	wantTitles := []string{
		"Very Large (800+ cal) (1)",
		"Substantial (400-600 cal) (1)",
		"Light (0-200 cal) (1)",
	}
	if len(sections) != len(wantTitles) {
		t.Fatalf("sections = %d, want %d", len(sections), len(wantTitles))
	}
	for i, want := range wantTitles {
		if sections[i].Title != want {
			t.Errorf("sections[%d].Title = %q, want %q", i, sections[i].Title, want)
		}
	}
}

func TestRangeGroupingOmitsEmptyBuckets(t *testing.T) {
	svc := newTestSectionService()
	entries := []models.Entry{
		entryWithCalories("a", 100),
		entryWithCalories("b", 120),
		entryWithCalories("c", 850),
	}

	sections := svc.GroupSorted(entries, models.SortCaloriesAsc)
	if len(sections) != 2 {
		t.Fatalf("sections = %d, want 2", len(sections))
	}
	for _, s := range sections {
		if len(s.Entries) == 0 {
			t.Errorf("section %q has no entries", s.Title)
		}
	}
	if sections[0].Title != "Very Large (800+ cal) (1)" {
		t.Errorf("sections[0].Title = %q", sections[0].Title)
	}
	if sections[1].Title != "Light (0-200 cal) (2)" {
		t.Errorf("sections[1].Title = %q", sections[1].Title)
	}
}

func TestRangeBucketBoundaries(t *testing.T) {
	svc := newTestSectionService()
	// 200 sits in [200, 400), not [0, 200)
	sections := svc.GroupSorted([]models.Entry{entryWithCalories("edge", 200)}, models.SortCaloriesDesc)
	if len(sections) != 1 {
		t.Fatalf("sections = %d, want 1", len(sections))
	}
	if sections[0].Title != "Moderate (200-400 cal) (1)" {
		t.Errorf("title = %q, want %q", sections[0].Title, "Moderate (200-400 cal) (1)")
	}
}

func TestProteinGrouping(t *testing.T) {
	svc := newTestSectionService()
	mk := func(id string, protein float64) models.Entry {
		return models.Entry{ID: id, Meal: models.Meal{
			Nutrition: &models.NutritionInfo{Calories: 400, Protein: protein},
		}}
	}
	sections := svc.GroupSorted([]models.Entry{mk("a", 35), mk("b", 12), mk("c", 3)}, models.SortProteinDesc)

	wantTitles := []string{
		"Very High Protein (30g+) (1)",
		"Moderate Protein (10-20g) (1)",
		"Low Protein (0-10g) (1)",
	}
	for i, want := range wantTitles {
		if sections[i].Title != want {
			t.Errorf("sections[%d].Title = %q, want %q", i, sections[i].Title, want)
		}
	}
}

func TestHealthGroupingIncludesPerfectScore(t *testing.T) {
	svc := newTestSectionService()
	score := 100.0
	e := models.Entry{ID: "perfect", Meal: models.Meal{
		Analysis: &models.AIAnalysis{Insights: &models.InsightScores{HealthScore: score}},
	}}

	sections := svc.GroupSorted([]models.Entry{e}, models.SortHealthDesc)
	if len(sections) != 1 {
		t.Fatalf("sections = %d, want 1", len(sections))
	}
	if sections[0].Title != "Excellent (80-100) (1)" {
		t.Errorf("title = %q, want %q", sections[0].Title, "Excellent (80-100) (1)")
	}
}

func TestDensityGrouping(t *testing.T) {
	svc := newTestSectionService()
	fiber := 2.0
	// density = (20 + 2) / 200 * 100 = 11
	dense := models.Entry{ID: "dense", Meal: models.Meal{
		Nutrition: &models.NutritionInfo{Calories: 200, Protein: 20, Fiber: &fiber},
	}}
	// density = (1 + 0) / 500 * 100 = 0.2
	light := models.Entry{ID: "light", Meal: models.Meal{
		Nutrition: &models.NutritionInfo{Calories: 500, Protein: 1},
	}}

	sections := svc.GroupSorted([]models.Entry{dense, light}, models.SortDensityDesc)
	if len(sections) != 2 {
		t.Fatalf("sections = %d, want 2", len(sections))
	}
	if sections[0].Title != "Very Dense (10+) (1)" {
		t.Errorf("sections[0].Title = %q", sections[0].Title)
	}
	if sections[1].Title != "Light (0-2) (1)" {
		t.Errorf("sections[1].Title = %q", sections[1].Title)
	}
}

func TestUnknownMethodFallsBackToCatchAll(t *testing.T) {
	svc := newTestSectionService()
	entries := []models.Entry{
		entryWithCalories("a", 100),
		entryWithCalories("b", 200),
		entryWithCalories("c", 300),
	}

	sections := svc.GroupSorted(entries, models.SortMethod("bogus"))
	if len(sections) != 1 {
		t.Fatalf("sections = %d, want 1", len(sections))
	}
	if sections[0].Title != "All Entries (3)" {
		t.Errorf("title = %q, want %q", sections[0].Title, "All Entries (3)")
	}
}

func TestGroupSortedEmptyInput(t *testing.T) {
	svc := newTestSectionService()
	for _, method := range models.AllSortMethods() {
		if sections := svc.GroupSorted(nil, method); len(sections) != 0 {
			t.Errorf("method %s: sections = %d, want 0", method, len(sections))
		}
	}
	if sections := svc.GroupSorted(nil, models.SortMethod("bogus")); len(sections) != 0 {
		t.Errorf("bogus method on empty input: sections = %d, want 0", len(sections))
	}
}
