package models

import "encoding/json"

// Meal is a single recipe record returned by the MealDB search endpoint.
// Only the fields the search screen consumes are decoded.
type Meal struct {
	ID           string `json:"idMeal"`
	Title        string `json:"strMeal"`
	ThumbnailURL string `json:"strMealThumb"`
	Instructions string `json:"strInstructions"`
}

// SearchResponse is the envelope of GET search.php. The API sends
// "meals": null when nothing matches.
type SearchResponse struct {
	Meals []Meal `json:"meals"`
}

// UnmarshalJSON decodes the envelope and normalizes a null or missing
// meals field to an empty, non-nil slice.
func (r *SearchResponse) UnmarshalJSON(data []byte) error {
	var raw struct {
		Meals []Meal `json:"meals"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Meals == nil {
		raw.Meals = []Meal{}
	}
	r.Meals = raw.Meals
	return nil
}

// FindMeal returns the index of the meal with the given ID, or -1.
func FindMeal(meals []Meal, id string) int {
	for i := range meals {
		if meals[i].ID == id {
			return i
		}
	}
	return -1
}
