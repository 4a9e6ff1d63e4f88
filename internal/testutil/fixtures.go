package testutil

import "github.com/windoze95/saltybytes-mealsearch/internal/models"

// TestMeal returns the single record the API sends for "Arrabiata".
func TestMeal() models.Meal {
	return models.Meal{
		ID:           "52771",
		Title:        "Arrabiata Sauce",
		ThumbnailURL: "https://www.themealdb.com/images/media/meals/ustsqw1468250014.jpg",
		Instructions: "Bring a large pot of water to a boil. Add kosher salt to the boiling water, then add the pasta. " +
			"Cook according to the package instructions, about 9 minutes.\r\n" +
			"In a large skillet over medium-high heat, add the olive oil and heat until the oil starts to shimmer. " +
			"Add the garlic and cook, stirring, until fragrant, 1 to 2 minutes.",
	}
}

// TestMeals returns a small multi-row result set.
func TestMeals() []models.Meal {
	return []models.Meal{
		TestMeal(),
		{
			ID:           "52772",
			Title:        "Teriyaki Chicken Casserole",
			ThumbnailURL: "https://www.themealdb.com/images/media/meals/wvpsxx1468256321.jpg",
			Instructions: "Preheat oven to 350 degrees F. Spray a 9x13-inch baking pan with non-stick spray.",
		},
	}
}
