package mongo

import "goa.design/recipes/recipe"

// recipeDocument is the stored shape of a recipe. The store generates _id;
// lookups use the seeded id field.
type recipeDocument struct {
	ID           int                         `bson:"id"`
	Title        string                      `bson:"title"`
	Nutrition    map[string]nutrientDocument `bson:"nutrition,omitempty"`
	Ingredients  []ingredientDocument        `bson:"ingredients,omitempty"`
	Servings     int                         `bson:"servings"`
	PrepMinutes  int                         `bson:"prepMinutes"`
	CookMinutes  int                         `bson:"cookMinutes"`
	ReadyMinutes int                         `bson:"readyMinutes"`
	ImageURL     string                      `bson:"imageUrl,omitempty"`
}

type nutrientDocument struct {
	Name           string  `bson:"name"`
	Amount         float64 `bson:"amount"`
	Unit           string  `bson:"unit"`
	DisplayValue   string  `bson:"displayValue"`
	DailyValue     float64 `bson:"dailyValue"`
	IsCompleteData bool    `bson:"isCompleteData"`
}

type ingredientDocument struct {
	IngredientID int     `bson:"ingredientID"`
	DisplayValue string  `bson:"displayValue"`
	Grams        float64 `bson:"grams"`
	DisplayType  string  `bson:"displayType"`
}

// idDocument decodes the ids-only projection used by FilterIDs.
type idDocument struct {
	ID int `bson:"id"`
}

func toDocument(r recipe.Recipe) recipeDocument {
	var nutrition map[string]nutrientDocument
	if len(r.Nutrition) > 0 {
		nutrition = make(map[string]nutrientDocument, len(r.Nutrition))
		for k, n := range r.Nutrition {
			nutrition[k] = nutrientDocument(n)
		}
	}
	var ingredients []ingredientDocument
	if len(r.Ingredients) > 0 {
		ingredients = make([]ingredientDocument, len(r.Ingredients))
		for i, in := range r.Ingredients {
			ingredients[i] = ingredientDocument(in)
		}
	}
	return recipeDocument{
		ID:           r.ID,
		Title:        r.Title,
		Nutrition:    nutrition,
		Ingredients:  ingredients,
		Servings:     r.Servings,
		PrepMinutes:  r.PrepMinutes,
		CookMinutes:  r.CookMinutes,
		ReadyMinutes: r.ReadyMinutes,
		ImageURL:     r.ImageURL,
	}
}

func (d recipeDocument) toRecipe() recipe.Recipe {
	var nutrition map[string]recipe.Nutrient
	if len(d.Nutrition) > 0 {
		nutrition = make(map[string]recipe.Nutrient, len(d.Nutrition))
		for k, n := range d.Nutrition {
			nutrition[k] = recipe.Nutrient(n)
		}
	}
	var ingredients []recipe.Ingredient
	if len(d.Ingredients) > 0 {
		ingredients = make([]recipe.Ingredient, len(d.Ingredients))
		for i, in := range d.Ingredients {
			ingredients[i] = recipe.Ingredient(in)
		}
	}
	return recipe.Recipe{
		ID:           d.ID,
		Title:        d.Title,
		Nutrition:    nutrition,
		Ingredients:  ingredients,
		Servings:     d.Servings,
		PrepMinutes:  d.PrepMinutes,
		CookMinutes:  d.CookMinutes,
		ReadyMinutes: d.ReadyMinutes,
		ImageURL:     d.ImageURL,
	}
}

func fromDocuments(docs []recipeDocument) []recipe.Recipe {
	result := make([]recipe.Recipe, len(docs))
	for i, d := range docs {
		result[i] = d.toRecipe()
	}
	return result
}
