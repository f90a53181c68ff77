package models

// SortMethod names one of the ten supported orderings: a base dimension
// combined with a direction.
type SortMethod string

const (
	SortDateDesc     SortMethod = "date-desc"
	SortDateAsc      SortMethod = "date-asc"
	SortCaloriesDesc SortMethod = "calories-desc"
	SortCaloriesAsc  SortMethod = "calories-asc"
	SortProteinDesc  SortMethod = "protein-desc"
	SortProteinAsc   SortMethod = "protein-asc"
	SortHealthDesc   SortMethod = "health-desc"
	SortHealthAsc    SortMethod = "health-asc"
	SortDensityDesc  SortMethod = "density-desc"
	SortDensityAsc   SortMethod = "density-asc"
)

// SortDimension is the value a sort method orders by
type SortDimension string

const (
	DimensionDate     SortDimension = "date"
	DimensionCalories SortDimension = "calories"
	DimensionProtein  SortDimension = "protein"
	DimensionHealth   SortDimension = "health"
	DimensionDensity  SortDimension = "density"
)

// SortMetadata describes a sort method for display. The Ascending flag is
// the single source of truth for comparison direction.
type SortMetadata struct {
	Label       string        `json:"label"`
	Icon        string        `json:"icon"`
	Description string        `json:"description"`
	Dimension   SortDimension `json:"dimension"`
	Ascending   bool          `json:"ascending"`
}

var sortMetadata = map[SortMethod]SortMetadata{
	SortDateDesc: {
		Label:       "Newest First",
		Icon:        "calendar",
		Description: "Most recent meals at the top",
		Dimension:   DimensionDate,
	},
	SortDateAsc: {
		Label:       "Oldest First",
		Icon:        "calendar-outline",
		Description: "Earliest meals at the top",
		Dimension:   DimensionDate,
		Ascending:   true,
	},
	SortCaloriesDesc: {
		Label:       "Highest Calories",
		Icon:        "flame",
		Description: "Biggest meals at the top",
		Dimension:   DimensionCalories,
	},
	SortCaloriesAsc: {
		Label:       "Lowest Calories",
		Icon:        "flame-outline",
		Description: "Lightest meals at the top",
		Dimension:   DimensionCalories,
		Ascending:   true,
	},
	SortProteinDesc: {
		Label:       "Highest Protein",
		Icon:        "barbell",
		Description: "Most protein-rich meals at the top",
		Dimension:   DimensionProtein,
	},
	SortProteinAsc: {
		Label:       "Lowest Protein",
		Icon:        "barbell-outline",
		Description: "Least protein-rich meals at the top",
		Dimension:   DimensionProtein,
		Ascending:   true,
	},
	SortHealthDesc: {
		Label:       "Healthiest First",
		Icon:        "heart",
		Description: "Highest health score at the top",
		Dimension:   DimensionHealth,
	},
	SortHealthAsc: {
		Label:       "Least Healthy First",
		Icon:        "heart-outline",
		Description: "Lowest health score at the top",
		Dimension:   DimensionHealth,
		Ascending:   true,
	},
	SortDensityDesc: {
		Label:       "Most Nutrient Dense",
		Icon:        "leaf",
		Description: "Most nutrition per calorie at the top",
		Dimension:   DimensionDensity,
	},
	SortDensityAsc: {
		Label:       "Least Nutrient Dense",
		Icon:        "leaf-outline",
		Description: "Least nutrition per calorie at the top",
		Dimension:   DimensionDensity,
		Ascending:   true,
	},
}

// Metadata resolves a sort method to its display metadata. The second
// return value is false for unknown methods.
func (m SortMethod) Metadata() (SortMetadata, bool) {
	meta, ok := sortMetadata[m]
	return meta, ok
}

// AllSortMethods lists the supported methods in menu order
func AllSortMethods() []SortMethod {
	return []SortMethod{
		SortDateDesc, SortDateAsc,
		SortCaloriesDesc, SortCaloriesAsc,
		SortProteinDesc, SortProteinAsc,
		SortHealthDesc, SortHealthAsc,
		SortDensityDesc, SortDensityAsc,
	}
}
