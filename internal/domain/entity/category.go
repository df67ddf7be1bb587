package entity

import "strings"

// Category is one of the fixed product categories.
type Category string

const (
	CategoryBiscuits              Category = "biscuits"
	CategoryBreakfastAndSpreads   Category = "breakfast and spreads"
	CategoryChocolatesAndDesserts Category = "chocolates and desserts"
	CategoryColdDrinksAndJuices   Category = "cold drinks and juices"
	CategoryDairyBreadAndEggs     Category = "dairy, bread and eggs"
	CategoryInstantFoods          Category = "instant foods"
	CategorySnacks                Category = "snacks"
	CategoryCakesAndBakes         Category = "cakes and bakes"
	CategoryDryFruitsOilMasalas   Category = "dry fruits, oil and masalas"
	CategoryMeat                  Category = "meat"
	CategoryRiceAttaAndDals       Category = "rice, atta and dals"
	CategoryTeaCoffeeAndMore      Category = "tea, coffee and more"
	CategorySupplementsAndMores   Category = "supplements and mores"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryBiscuits,
	CategoryBreakfastAndSpreads,
	CategoryChocolatesAndDesserts,
	CategoryColdDrinksAndJuices,
	CategoryDairyBreadAndEggs,
	CategoryInstantFoods,
	CategorySnacks,
	CategoryCakesAndBakes,
	CategoryDryFruitsOilMasalas,
	CategoryMeat,
	CategoryRiceAttaAndDals,
	CategoryTeaCoffeeAndMore,
	CategorySupplementsAndMores,
}

// NormalizeCategory lowercases and trims a category for comparison.
func NormalizeCategory(s string) Category {
	return Category(strings.ToLower(strings.TrimSpace(s)))
}

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}

	return false
}
