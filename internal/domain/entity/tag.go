package entity

import "strings"

// Tag is a dietary claim drawn from a fixed vocabulary.
type Tag string

const (
	TagVegan         Tag = "vegan"
	TagVegetarian    Tag = "vegetarian"
	TagGlutenFree    Tag = "gluten-free"
	TagSugarFree     Tag = "sugar-free"
	TagLowFat        Tag = "low-fat"
	TagOrganic       Tag = "organic"
	TagNonGMO        Tag = "non-GMO"
	TagHighProtein   Tag = "high-protein"
	TagKetoFriendly  Tag = "keto-friendly"
	TagPaleoFriendly Tag = "paleo-friendly"
	TagDairyFree     Tag = "dairy-free"
	TagNutFree       Tag = "nut-free"
	TagSoyFree       Tag = "soy-free"
)

var tagVocabulary = []Tag{
	TagVegan, TagVegetarian, TagGlutenFree, TagSugarFree, TagLowFat, TagOrganic, TagNonGMO,
	TagHighProtein, TagKetoFriendly, TagPaleoFriendly, TagDairyFree, TagNutFree, TagSoyFree,
}

// LookupTag resolves a tag case-insensitively to its canonical spelling.
func LookupTag(s string) (Tag, bool) {
	s = strings.TrimSpace(s)
	for _, t := range tagVocabulary {
		if strings.EqualFold(string(t), s) {
			return t, true
		}
	}

	return "", false
}
