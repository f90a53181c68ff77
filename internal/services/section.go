package services

import (
	"fmt"
	"math"
	"sort"
	"time"

	"food-diary-backend/internal/models"
)

// SectionService partitions an already-sorted entry sequence into titled
// sections for display. Date-based sorts get temporal buckets; metric-based
// sorts get fixed value ranges.
type SectionService struct {
	now func() time.Time
}

// NewSectionService creates a section service using the wall clock
func NewSectionService() *SectionService {
	return &SectionService{now: time.Now}
}

// NewSectionServiceWithClock creates a section service with a fixed notion
// of "now", for deterministic Today/Yesterday grouping.
func NewSectionServiceWithClock(now func() time.Time) *SectionService {
	return &SectionService{now: now}
}

type valueRange struct {
	label string
	min   float64
	max   float64 // exclusive; entries match [min, max)
}

var (
	calorieRanges = []valueRange{
		{"Very Large (800+ cal)", 800, math.Inf(1)},
		{"Large (600-800 cal)", 600, 800},
		{"Substantial (400-600 cal)", 400, 600},
		{"Moderate (200-400 cal)", 200, 400},
		{"Light (0-200 cal)", 0, 200},
	}
	proteinRanges = []valueRange{
		{"Very High Protein (30g+)", 30, math.Inf(1)},
		{"High Protein (20-30g)", 20, 30},
		{"Moderate Protein (10-20g)", 10, 20},
		{"Low Protein (0-10g)", 0, 10},
	}
	healthRanges = []valueRange{
		{"Excellent (80-100)", 80, math.Inf(1)},
		{"Good (60-80)", 60, 80},
		{"Fair (40-60)", 40, 60},
		{"Poor (0-40)", 0, 40},
	}
	densityRanges = []valueRange{
		{"Very Dense (10+)", 10, math.Inf(1)},
		{"Dense (5-10)", 5, 10},
		{"Moderate (2-5)", 2, 5},
		{"Light (0-2)", 0, 2},
	}
)

// GroupSorted buckets an already-sorted sequence into sections. Only the
// method's base dimension matters here; the sort direction does not change
// which section an entry lands in.
func (s *SectionService) GroupSorted(entries []models.Entry, method models.SortMethod) []models.SortedSection {
	meta, ok := method.Metadata()
	if !ok {
		return s.catchAll(entries)
	}

	switch meta.Dimension {
	case models.DimensionDate:
		return s.groupByDay(entries)
	case models.DimensionCalories:
		return groupByRange(entries, meta.Dimension, calorieRanges)
	case models.DimensionProtein:
		return groupByRange(entries, meta.Dimension, proteinRanges)
	case models.DimensionHealth:
		return groupByRange(entries, meta.Dimension, healthRanges)
	case models.DimensionDensity:
		return groupByRange(entries, meta.Dimension, densityRanges)
	default:
		return s.catchAll(entries)
	}
}

// groupByDay groups entries by calendar day. Sections are ordered newest
// day first, independent of the entries' sort direction within each group.
func (s *SectionService) groupByDay(entries []models.Entry) []models.SortedSection {
	type dayGroup struct {
		day     time.Time
		entries []models.Entry
	}

	groups := make(map[string]*dayGroup)
	var order []*dayGroup
	for _, e := range entries {
		key := e.Timestamp.Format("2006-01-02")
		g, ok := groups[key]
		if !ok {
			year, month, day := e.Timestamp.Date()
			g = &dayGroup{day: time.Date(year, month, day, 0, 0, 0, 0, e.Timestamp.Location())}
			groups[key] = g
			order = append(order, g)
		}
		g.entries = append(g.entries, e)
	}

	sort.SliceStable(order, func(i, j int) bool {
		return order[i].day.After(order[j].day)
	})

	sections := make([]models.SortedSection, 0, len(order))
	for _, g := range order {
		sections = append(sections, models.SortedSection{
			Title:   s.dayTitle(g.day),
			Entries: g.entries,
		})
	}
	return sections
}

func (s *SectionService) dayTitle(day time.Time) string {
	now := s.now()
	if sameDay(day, now) {
		return "Today"
	}
	if sameDay(day, now.AddDate(0, 0, -1)) {
		return "Yesterday"
	}
	return day.Format("Monday, January 2")
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// groupByRange emits one section per range, in table order, skipping
// ranges no entry falls into. Titles carry the entry count.
func groupByRange(entries []models.Entry, dim models.SortDimension, ranges []valueRange) []models.SortedSection {
	var sections []models.SortedSection
	for _, rng := range ranges {
		var matched []models.Entry
		for _, e := range entries {
			v := sortValue(e, dim)
			if v >= rng.min && v < rng.max {
				matched = append(matched, e)
			}
		}
		if len(matched) == 0 {
			continue
		}
		sections = append(sections, models.SortedSection{
			Title:   fmt.Sprintf("%s (%d)", rng.label, len(matched)),
			Entries: matched,
		})
	}
	return sections
}

func (s *SectionService) catchAll(entries []models.Entry) []models.SortedSection {
	if len(entries) == 0 {
		return nil
	}
	return []models.SortedSection{{
		Title:   fmt.Sprintf("All Entries (%d)", len(entries)),
		Entries: entries,
	}}
}
