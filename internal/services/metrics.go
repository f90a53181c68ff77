package services

import (
	"math"

	"food-diary-backend/internal/models"
)

// Derived nutrition metrics. Both functions are pure and recomputed on
// every call; sort order elsewhere depends on these exact formulas, so the
// floor, the clamp and the threshold boundaries must not drift.

// NutritionDensity scores how much protein and fiber an entry packs per
// calorie: (protein + fiber) / max(calories, 1) * 100. Entries without
// nutrition data score 0.
func NutritionDensity(entry models.Entry) float64 {
	n := entry.Meal.Nutrition
	if n == nil {
		return 0
	}

	fiber := 0.0
	if n.Fiber != nil {
		fiber = *n.Fiber
	}

	// Flooring calories at 1 keeps zero-calorie entries out of a division
	// by zero.
	calories := math.Max(n.Calories, 1)
	return (n.Protein + fiber) / calories * 100
}

// HealthScore returns the AI-supplied health score unchanged when present.
// Otherwise it computes a heuristic in [0, 100]: start at 50, reward
// protein and fiber, penalize a fat-heavy caloric split. Entries without
// nutrition data score 0.
func HealthScore(entry models.Entry) float64 {
	if a := entry.Meal.Analysis; a != nil && a.Insights != nil {
		return a.Insights.HealthScore
	}

	n := entry.Meal.Nutrition
	if n == nil {
		return 0
	}

	score := 50.0
	calories := math.Max(n.Calories, 1)

	// Caloric share from protein: 4 kcal per gram
	proteinRatio := n.Protein * 4 / calories
	if proteinRatio > 0.15 {
		score += 20
	} else if proteinRatio > 0.10 {
		score += 10
	}

	if n.Fiber != nil {
		score += math.Min(*n.Fiber*4, 20)
	}

	// Caloric share from fat: 9 kcal per gram
	fatRatio := n.Fat * 9 / calories
	if fatRatio > 0.35 {
		score -= 15
	} else if fatRatio > 0.30 {
		score -= 10
	}

	return math.Max(0, math.Min(100, score))
}
