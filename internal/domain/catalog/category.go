package catalog

import (
	"github.com/farmmarket/backend/internal/domain/shared"
)

// Category is a member of the closed produce taxonomy. The set is fixed;
// free-text categories are rejected at validation time.
type Category string

const (
	CategoryVegetablesLeafy   Category = "Vegetables - Leafy"
	CategoryVegetablesRoot    Category = "Vegetables - Root"
	CategoryVegetablesMarrow  Category = "Vegetables - Marrow"
	CategoryFruitsSeasonal    Category = "Fruits - Seasonal"
	CategoryFruitsTropical    Category = "Fruits - Tropical"
	CategoryFruitsBerries     Category = "Fruits - Berries"
	CategoryGrainsRice        Category = "Grains & Cereals - Rice"
	CategoryGrainsWheat       Category = "Grains & Cereals - Wheat"
	CategoryGrainsCorn        Category = "Grains & Cereals - Corn"
	CategoryPulsesLentils     Category = "Pulses & Legumes - Lentils"
	CategoryPulsesBeans       Category = "Pulses & Legumes - Beans"
	CategoryPulsesPeas        Category = "Pulses & Legumes - Peas"
	CategoryDairyMilk         Category = "Dairy Products - Milk"
	CategoryDairyButter       Category = "Dairy Products - Butter"
	CategoryDairyCheese       Category = "Dairy Products - Cheese"
	CategoryLivestockPoultry  Category = "Livestock - Poultry"
	CategoryLivestockCattle   Category = "Livestock - Cattle"
	CategoryLivestockSheep    Category = "Livestock - Sheep"
	CategorySpicesHerbs       Category = "Spices & Herbs"
)

// categories holds the taxonomy in display order
var categories = []Category{
	CategoryVegetablesLeafy,
	CategoryVegetablesRoot,
	CategoryVegetablesMarrow,
	CategoryFruitsSeasonal,
	CategoryFruitsTropical,
	CategoryFruitsBerries,
	CategoryGrainsRice,
	CategoryGrainsWheat,
	CategoryGrainsCorn,
	CategoryPulsesLentils,
	CategoryPulsesBeans,
	CategoryPulsesPeas,
	CategoryDairyMilk,
	CategoryDairyButter,
	CategoryDairyCheese,
	CategoryLivestockPoultry,
	CategoryLivestockCattle,
	CategoryLivestockSheep,
	CategorySpicesHerbs,
}

// Categories returns the full taxonomy in display order
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// ParseCategory converts a string to a Category, rejecting values outside
// the taxonomy
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", shared.NewDomainError("INVALID_CATEGORY", "Category is not in the produce taxonomy")
	}
	return c, nil
}

// IsValid reports whether the category belongs to the taxonomy
func (c Category) IsValid() bool {
	for _, member := range categories {
		if c == member {
			return true
		}
	}
	return false
}

func (c Category) String() string {
	return string(c)
}
