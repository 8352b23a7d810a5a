// Command seed loads the classifier's ingredient vocabulary and a starter
// set of recipes so a fresh install can scan and get recommendations
// immediately. Safe to run repeatedly.
package main

import (
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pantrysnap/backend/config"
	"github.com/pantrysnap/backend/internal/database"
	"github.com/pantrysnap/backend/internal/ingredient"
	"github.com/pantrysnap/backend/internal/model"
)

var categories = map[string]string{
	"apple": "fruit", "banana": "fruit", "grapes": "fruit", "kiwi": "fruit",
	"lemon": "fruit", "mango": "fruit", "orange": "fruit", "pear": "fruit",
	"pineapple": "fruit", "pomegranate": "fruit", "watermelon": "fruit",
}

type seedRecipe struct {
	title        string
	instructions string
	prepTime     int
	cookTime     int
	difficulty   string
	servings     int
	ingredients  []string
}

var recipes = []seedRecipe{
	{
		title:        "Roasted Vegetable Medley",
		instructions: "Chop everything, toss with oil, roast at 200C for 35 minutes.",
		prepTime:     15, cookTime: 35, difficulty: "easy", servings: 4,
		ingredients: []string{"carrot", "potato", "bell pepper", "onion"},
	},
	{
		title:        "Garden Salad",
		instructions: "Tear the lettuce, slice the rest, dress with lemon juice.",
		prepTime:     10, cookTime: 0, difficulty: "easy", servings: 2,
		ingredients: []string{"lettuce", "cucumber", "tomato", "onion", "lemon"},
	},
	{
		title:        "Spiced Cauliflower Curry",
		instructions: "Fry the aromatics, add cauliflower and simmer until tender.",
		prepTime:     20, cookTime: 30, difficulty: "medium", servings: 4,
		ingredients: []string{"cauliflower", "onion", "garlic", "ginger", "tomato", "chilli pepper"},
	},
	{
		title:        "Corn and Pea Fried Rice",
		instructions: "Stir-fry vegetables over high heat, fold in cooked rice.",
		prepTime:     10, cookTime: 15, difficulty: "easy", servings: 3,
		ingredients: []string{"sweetcorn", "peas", "carrot", "garlic", "onion"},
	},
	{
		title:        "Stuffed Eggplant",
		instructions: "Halve and hollow the eggplants, stuff, bake for 40 minutes.",
		prepTime:     30, cookTime: 40, difficulty: "hard", servings: 2,
		ingredients: []string{"eggplant", "tomato", "garlic", "onion", "capsicum"},
	},
	{
		title:        "Tropical Fruit Bowl",
		instructions: "Cube the fruit, combine, chill before serving.",
		prepTime:     15, cookTime: 0, difficulty: "easy", servings: 4,
		ingredients: []string{"mango", "pineapple", "kiwi", "banana", "orange"},
	},
	{
		title:        "Spinach and Potato Hash",
		instructions: "Crisp the potatoes, wilt the spinach in at the end.",
		prepTime:     10, cookTime: 25, difficulty: "medium", servings: 2,
		ingredients: []string{"potato", "spinach", "onion", "garlic", "paprika"},
	},
	{
		title:        "Beetroot Slaw",
		instructions: "Grate the vegetables, toss with a sharp dressing.",
		prepTime:     15, cookTime: 0, difficulty: "easy", servings: 4,
		ingredients: []string{"beetroot", "carrot", "cabbage", "raddish"},
	},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	if err := seedIngredients(db); err != nil {
		log.Fatalf("failed to seed ingredients: %v", err)
	}
	if err := seedRecipes(db); err != nil {
		log.Fatalf("failed to seed recipes: %v", err)
	}

	log.Println("seed complete")
}

func seedIngredients(db *gorm.DB) error {
	for _, name := range ingredient.Classes {
		category := categories[name]
		if category == "" {
			category = "vegetable"
		}
		row := model.Ingredient{
			ID:       uuid.New(),
			Name:     name,
			Category: category,
		}
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&row).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func seedRecipes(db *gorm.DB) error {
	for _, r := range recipes {
		var count int64
		if err := db.Model(&model.Recipe{}).Where("title = ?", r.title).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		recipe := model.Recipe{
			ID:           uuid.New(),
			Title:        r.title,
			Instructions: r.instructions,
			PrepTimeMins: r.prepTime,
			CookTimeMins: r.cookTime,
			Difficulty:   r.difficulty,
			Servings:     r.servings,
		}
		if err := db.Create(&recipe).Error; err != nil {
			return err
		}

		for _, name := range r.ingredients {
			var ing model.Ingredient
			if err := db.Where("name = ?", name).First(&ing).Error; err != nil {
				return err
			}
			link := model.RecipeIngredient{
				ID:           uuid.New(),
				RecipeID:     recipe.ID,
				IngredientID: ing.ID,
			}
			if err := db.Create(&link).Error; err != nil {
				return err
			}
		}
		log.Printf("seeded recipe %q", r.title)
	}
	return nil
}
