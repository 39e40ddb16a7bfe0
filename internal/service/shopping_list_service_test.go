package service

import (
	"errors"
	"testing"
	"time"

	"foodgram-go/internal/model"
	"foodgram-go/internal/repository"

	"gorm.io/gorm"
)

func newShoppingListService(db *gorm.DB) *ShoppingListService {
	return NewShoppingListService(repository.NewCartRepository(db), repository.NewUserRepository(db))
}

func TestAggregateEmptyCart(t *testing.T) {
	db := newTestDB(t)
	svc := newShoppingListService(db)

	user := seedUser(t, db, "chef")

	if _, err := svc.Aggregate(user.ID); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("Aggregate(empty cart) error = %v, want ErrEmptyCart", err)
	}
	if _, _, err := svc.BuildDocument(user.ID); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("BuildDocument(empty cart) error = %v, want ErrEmptyCart", err)
	}
}

func TestBuildDocument(t *testing.T) {
	db := newTestDB(t)
	svc := newShoppingListService(db)
	cartRepo := repository.NewCartRepository(db)

	user := seedUser(t, db, "chef")
	flour := seedIngredient(t, db, "flour", "g")
	salt := seedIngredient(t, db, "salt", "g")
	sugar := seedIngredient(t, db, "sugar", "g")

	pancakes := seedRecipe(t, db, user.ID, "pancakes", time.Now())
	bread := seedRecipe(t, db, user.ID, "bread", time.Now())

	rows := []model.RecipeIngredient{
		{RecipeID: pancakes.ID, IngredientID: flour.ID, Amount: 200},
		{RecipeID: pancakes.ID, IngredientID: sugar.ID, Amount: 50},
		{RecipeID: bread.ID, IngredientID: flour.ID, Amount: 300},
		{RecipeID: bread.ID, IngredientID: salt.ID, Amount: 5},
	}
	if err := db.Create(&rows).Error; err != nil {
		t.Fatalf("failed to seed recipe ingredients: %v", err)
	}
	for _, recipeID := range []int64{pancakes.ID, bread.ID} {
		if err := cartRepo.Create(user.ID, recipeID); err != nil {
			t.Fatalf("failed to fill cart: %v", err)
		}
	}

	filename, content, err := svc.BuildDocument(user.ID)
	if err != nil {
		t.Fatalf("BuildDocument() error = %v", err)
	}
	if filename != "chef_shopping_list.txt" {
		t.Fatalf("filename = %q, want %q", filename, "chef_shopping_list.txt")
	}

	want := "chef 的购物清单\n\n" +
		"flour (g) - 500\n" +
		"salt (g) - 5\n" +
		"sugar (g) - 50\n"
	if content != want {
		t.Fatalf("content = %q, want %q", content, want)
	}
}

func TestBuildDocumentUnknownUser(t *testing.T) {
	db := newTestDB(t)
	svc := newShoppingListService(db)

	if _, _, err := svc.BuildDocument(9999); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("BuildDocument(unknown user) error = %v, want ErrUserNotFound", err)
	}
}
