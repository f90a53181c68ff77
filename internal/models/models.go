package models

import "time"

// MealType identifies which meal of the day an entry belongs to
type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
	MealTypeSnack     MealType = "snack"
)

// Location is an optional place attached to an entry
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
}

// NutritionInfo holds the nutrition breakdown of a meal.
// Calories, protein, carbs and fat are always present; the rest are optional.
type NutritionInfo struct {
	Calories float64  `json:"calories"`
	Protein  float64  `json:"protein"`
	Carbs    float64  `json:"carbs"`
	Fat      float64  `json:"fat"`
	Fiber    *float64 `json:"fiber,omitempty"`
	Sugar    *float64 `json:"sugar,omitempty"`
	Sodium   *float64 `json:"sodium,omitempty"`
	Water    *float64 `json:"water,omitempty"`
}

// Ingredient is a named component of a meal
type Ingredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount,omitempty"`
}

// InsightScores are AI-computed quality scores in [0, 100]
type InsightScores struct {
	HealthScore      float64 `json:"health_score"`
	NutritionBalance float64 `json:"nutrition_balance"`
}

// AIAnalysis is the already-computed result of analyzing a meal photo
type AIAnalysis struct {
	DetectedItems []string       `json:"detected_items,omitempty"`
	Confidence    float64        `json:"confidence"`
	Nutrition     *NutritionInfo `json:"nutrition,omitempty"`
	Category      string         `json:"category,omitempty"`
	Ingredients   []Ingredient   `json:"ingredients,omitempty"`
	Comment       string         `json:"comment,omitempty"`
	Insights      *InsightScores `json:"insights,omitempty"`
}

// Meal is the food part of an entry; it has no identity of its own
type Meal struct {
	PhotoURL    string         `json:"photo_url,omitempty"`
	Type        MealType       `json:"type"`
	Nutrition   *NutritionInfo `json:"nutrition,omitempty"`
	Ingredients []Ingredient   `json:"ingredients,omitempty"`
	Analysis    *AIAnalysis    `json:"analysis,omitempty"`
}

// Entry represents one diary entry: a meal eaten at a point in time.
// ID and CreatedAt are assigned on save and never change afterwards;
// UpdatedAt is refreshed on every mutation.
type Entry struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Timestamp     time.Time `json:"timestamp"`
	Notes         string    `json:"notes,omitempty"`
	Location      *Location `json:"location,omitempty"`
	Meal          Meal      `json:"meal"`
	Rating        *int      `json:"rating,omitempty"`
	WouldEatAgain *bool     `json:"would_eat_again,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// MealPatch is a partial update of a Meal. Nil fields keep their
// current value; the meal is merged field by field, never replaced.
type MealPatch struct {
	PhotoURL    *string        `json:"photo_url,omitempty"`
	Type        *MealType      `json:"type,omitempty"`
	Nutrition   *NutritionInfo `json:"nutrition,omitempty"`
	Ingredients []Ingredient   `json:"ingredients,omitempty"`
	Analysis    *AIAnalysis    `json:"analysis,omitempty"`
}

// EntryPatch is a partial update of an Entry. ID, CreatedAt and UserID
// cannot be patched.
type EntryPatch struct {
	Timestamp     *time.Time `json:"timestamp,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
	Location      *Location  `json:"location,omitempty"`
	Meal          *MealPatch `json:"meal,omitempty"`
	Rating        *int       `json:"rating,omitempty"`
	WouldEatAgain *bool      `json:"would_eat_again,omitempty"`
}

// EntryFilter selects entries; all fields are optional and combine with AND
type EntryFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	MealType   *MealType
	SearchText string
}

// NutritionTotals sums nutrition fields across a set of entries
type NutritionTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
}

// NutritionStats aggregates nutrition over a date range
type NutritionStats struct {
	TotalEntries    int             `json:"total_entries"`
	AverageCalories int             `json:"average_calories"`
	TotalNutrition  NutritionTotals `json:"total_nutrition"`
}

// SortedSection is a titled, ordered slice of entries for display.
// It is never persisted and is recomputed on every sort request.
type SortedSection struct {
	Title   string  `json:"title"`
	Entries []Entry `json:"data"`
}
