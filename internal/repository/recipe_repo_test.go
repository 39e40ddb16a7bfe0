package repository

import (
	"errors"
	"testing"
	"time"

	"foodgram-go/internal/model"

	"gorm.io/gorm"
)

func TestRecipeCreateWithAssociations(t *testing.T) {
	db := newTestDB(t)
	repo := NewRecipeRepository(db)

	author := seedUser(t, db, "author")
	flour := seedIngredient(t, db, "flour", "g")
	sugar := seedIngredient(t, db, "sugar", "g")
	dinner := seedTag(t, db, "Dinner", "dinner")

	recipe := &model.Recipe{
		AuthorID:    author.ID,
		Name:        "Pancakes",
		Text:        "Mix and fry",
		Image:       "http://images.local/recipe-images/pancakes.png",
		CookingTime: 20,
	}
	items := []model.RecipeIngredient{
		{IngredientID: flour.ID, Amount: 200},
		{IngredientID: sugar.ID, Amount: 50},
	}

	if err := repo.CreateWithAssociations(recipe, items, []model.Tag{*dinner}); err != nil {
		t.Fatalf("CreateWithAssociations() error = %v", err)
	}
	if recipe.ID == 0 {
		t.Fatal("expected recipe ID to be assigned")
	}

	got, err := repo.GetByIDWithRelations(recipe.ID)
	if err != nil {
		t.Fatalf("GetByIDWithRelations() error = %v", err)
	}
	if got.Author.Username != "author" {
		t.Fatalf("Author.Username = %q, want %q", got.Author.Username, "author")
	}
	if len(got.Tags) != 1 || got.Tags[0].Slug != "dinner" {
		t.Fatalf("Tags = %+v, want single dinner tag", got.Tags)
	}
	if len(got.Ingredients) != 2 {
		t.Fatalf("len(Ingredients) = %d, want 2", len(got.Ingredients))
	}

	amounts := map[string]int{}
	for _, item := range got.Ingredients {
		amounts[item.Ingredient.Name] = item.Amount
	}
	if amounts["flour"] != 200 || amounts["sugar"] != 50 {
		t.Fatalf("ingredient amounts = %v, want flour=200 sugar=50", amounts)
	}
}

func TestRecipeUpdateReplacesAssociations(t *testing.T) {
	db := newTestDB(t)
	repo := NewRecipeRepository(db)

	author := seedUser(t, db, "author")
	flour := seedIngredient(t, db, "flour", "g")
	milk := seedIngredient(t, db, "milk", "ml")
	dinner := seedTag(t, db, "Dinner", "dinner")
	lunch := seedTag(t, db, "Lunch", "lunch")

	recipe := &model.Recipe{
		AuthorID:    author.ID,
		Name:        "Pancakes",
		Text:        "Mix and fry",
		Image:       "http://images.local/recipe-images/pancakes.png",
		CookingTime: 20,
	}
	if err := repo.CreateWithAssociations(recipe,
		[]model.RecipeIngredient{{IngredientID: flour.ID, Amount: 200}},
		[]model.Tag{*dinner},
	); err != nil {
		t.Fatalf("CreateWithAssociations() error = %v", err)
	}

	updates := map[string]interface{}{"name": "Crepes", "cooking_time": 15}
	if err := repo.UpdateWithAssociations(recipe, updates,
		[]model.RecipeIngredient{{IngredientID: milk.ID, Amount: 300}},
		[]model.Tag{*lunch},
	); err != nil {
		t.Fatalf("UpdateWithAssociations() error = %v", err)
	}

	got, err := repo.GetByIDWithRelations(recipe.ID)
	if err != nil {
		t.Fatalf("GetByIDWithRelations() error = %v", err)
	}
	if got.Name != "Crepes" || got.CookingTime != 15 {
		t.Fatalf("got name=%q cooking_time=%d, want Crepes/15", got.Name, got.CookingTime)
	}
	if len(got.Ingredients) != 1 || got.Ingredients[0].Ingredient.Name != "milk" || got.Ingredients[0].Amount != 300 {
		t.Fatalf("Ingredients = %+v, want single milk=300", got.Ingredients)
	}
	if len(got.Tags) != 1 || got.Tags[0].Slug != "lunch" {
		t.Fatalf("Tags = %+v, want single lunch tag", got.Tags)
	}
}

func TestRecipeUpdateMissingRecipe(t *testing.T) {
	db := newTestDB(t)
	repo := NewRecipeRepository(db)

	missing := &model.Recipe{ID: 4242}
	err := repo.UpdateWithAssociations(missing, map[string]interface{}{"name": "x"}, nil, nil)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("UpdateWithAssociations() error = %v, want gorm.ErrRecordNotFound", err)
	}
}

func TestRecipeDeleteWithAssociations(t *testing.T) {
	db := newTestDB(t)
	repo := NewRecipeRepository(db)

	author := seedUser(t, db, "author")
	fan := seedUser(t, db, "fan")
	flour := seedIngredient(t, db, "flour", "g")
	dinner := seedTag(t, db, "Dinner", "dinner")

	recipe := &model.Recipe{
		AuthorID:    author.ID,
		Name:        "Pancakes",
		Text:        "Mix and fry",
		Image:       "http://images.local/recipe-images/pancakes.png",
		CookingTime: 20,
	}
	if err := repo.CreateWithAssociations(recipe,
		[]model.RecipeIngredient{{IngredientID: flour.ID, Amount: 200}},
		[]model.Tag{*dinner},
	); err != nil {
		t.Fatalf("CreateWithAssociations() error = %v", err)
	}

	if err := db.Create(&model.Favorite{UserID: fan.ID, RecipeID: recipe.ID}).Error; err != nil {
		t.Fatalf("failed to seed favorite: %v", err)
	}
	if err := db.Create(&model.Cart{UserID: fan.ID, RecipeID: recipe.ID}).Error; err != nil {
		t.Fatalf("failed to seed cart item: %v", err)
	}

	if err := repo.DeleteWithAssociations(recipe.ID); err != nil {
		t.Fatalf("DeleteWithAssociations() error = %v", err)
	}

	if _, err := repo.GetByID(recipe.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("GetByID() after delete error = %v, want gorm.ErrRecordNotFound", err)
	}

	for _, table := range []interface{}{&model.RecipeIngredient{}, &model.Favorite{}, &model.Cart{}} {
		var count int64
		if err := db.Model(table).Where("recipe_id = ?", recipe.ID).Count(&count).Error; err != nil {
			t.Fatalf("failed to count %T rows: %v", table, err)
		}
		if count != 0 {
			t.Fatalf("%T rows left after delete = %d, want 0", table, count)
		}
	}

	if err := repo.DeleteWithAssociations(recipe.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("second DeleteWithAssociations() error = %v, want gorm.ErrRecordNotFound", err)
	}
}

func TestRecipeListWithFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewRecipeRepository(db)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	dinner := seedTag(t, db, "Dinner", "dinner")

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	first := seedRecipe(t, db, alice.ID, "first", base)
	second := seedRecipe(t, db, alice.ID, "second", base.Add(time.Hour))
	third := seedRecipe(t, db, bob.ID, "third", base.Add(2*time.Hour))

	if err := db.Model(second).Association("Tags").Append(dinner); err != nil {
		t.Fatalf("failed to tag recipe: %v", err)
	}
	if err := db.Model(third).Association("Tags").Append(dinner); err != nil {
		t.Fatalf("failed to tag recipe: %v", err)
	}

	recipes, total, err := repo.ListWithFilters(0, 10, nil, nil, nil)
	if err != nil {
		t.Fatalf("ListWithFilters() error = %v", err)
	}
	if total != 3 || len(recipes) != 3 {
		t.Fatalf("total = %d len = %d, want 3/3", total, len(recipes))
	}
	if recipes[0].Name != "third" || recipes[1].Name != "second" || recipes[2].Name != "first" {
		t.Fatalf("order = [%s %s %s], want newest first", recipes[0].Name, recipes[1].Name, recipes[2].Name)
	}

	recipes, total, err = repo.ListWithFilters(0, 10, &alice.ID, nil, nil)
	if err != nil {
		t.Fatalf("ListWithFilters(author) error = %v", err)
	}
	if total != 2 || len(recipes) != 2 {
		t.Fatalf("author filter: total = %d len = %d, want 2/2", total, len(recipes))
	}

	recipes, total, err = repo.ListWithFilters(0, 10, nil, []string{"dinner"}, nil)
	if err != nil {
		t.Fatalf("ListWithFilters(tags) error = %v", err)
	}
	if total != 2 {
		t.Fatalf("tag filter: total = %d, want 2", total)
	}
	for _, r := range recipes {
		if r.Name == "first" {
			t.Fatal("tag filter returned untagged recipe")
		}
	}

	recipes, total, err = repo.ListWithFilters(0, 10, nil, nil, []int64{first.ID, third.ID})
	if err != nil {
		t.Fatalf("ListWithFilters(restrict) error = %v", err)
	}
	if total != 2 || len(recipes) != 2 {
		t.Fatalf("restrict filter: total = %d len = %d, want 2/2", total, len(recipes))
	}

	recipes, total, err = repo.ListWithFilters(1, 1, nil, nil, nil)
	if err != nil {
		t.Fatalf("ListWithFilters(paging) error = %v", err)
	}
	if total != 3 || len(recipes) != 1 || recipes[0].Name != "second" {
		t.Fatalf("paging: total = %d, page = %+v, want total 3 and [second]", total, recipes)
	}
}

func TestRecipeListByAuthor(t *testing.T) {
	db := newTestDB(t)
	repo := NewRecipeRepository(db)

	author := seedUser(t, db, "author")
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	seedRecipe(t, db, author.ID, "oldest", base)
	seedRecipe(t, db, author.ID, "middle", base.Add(time.Hour))
	seedRecipe(t, db, author.ID, "newest", base.Add(2*time.Hour))

	recipes, err := repo.ListByAuthor(author.ID, 2)
	if err != nil {
		t.Fatalf("ListByAuthor() error = %v", err)
	}
	if len(recipes) != 2 || recipes[0].Name != "newest" || recipes[1].Name != "middle" {
		t.Fatalf("ListByAuthor(2) = %+v, want [newest middle]", recipes)
	}

	recipes, err = repo.ListByAuthor(author.ID, 0)
	if err != nil {
		t.Fatalf("ListByAuthor(0) error = %v", err)
	}
	if len(recipes) != 0 {
		t.Fatalf("ListByAuthor(0) returned %d recipes, want 0", len(recipes))
	}

	count, err := repo.CountByAuthor(author.ID)
	if err != nil {
		t.Fatalf("CountByAuthor() error = %v", err)
	}
	if count != 3 {
		t.Fatalf("CountByAuthor() = %d, want 3", count)
	}
}
