package repository

import (
	"errors"
	"testing"
	"time"

	"foodgram-go/internal/model"

	"gorm.io/gorm"
)

func TestCartCreateDuplicate(t *testing.T) {
	db := newTestDB(t)
	repo := NewCartRepository(db)

	user := seedUser(t, db, "buyer")
	recipe := seedRecipe(t, db, user.ID, "soup", time.Now())

	if err := repo.Create(user.ID, recipe.ID); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	err := repo.Create(user.ID, recipe.ID)
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("second Create() error = %v, want gorm.ErrDuplicatedKey", err)
	}
}

func TestCartDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewCartRepository(db)

	user := seedUser(t, db, "buyer")
	recipe := seedRecipe(t, db, user.ID, "soup", time.Now())

	if err := repo.Create(user.ID, recipe.ID); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	removed, err := repo.Delete(user.ID, recipe.ID)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if !removed {
		t.Fatal("Delete() = false, want true for existing row")
	}

	removed, err = repo.Delete(user.ID, recipe.ID)
	if err != nil {
		t.Fatalf("second Delete() error = %v", err)
	}
	if removed {
		t.Fatal("second Delete() = true, want false for missing row")
	}
}

func TestCartBatchCheck(t *testing.T) {
	db := newTestDB(t)
	repo := NewCartRepository(db)

	user := seedUser(t, db, "buyer")
	inCart := seedRecipe(t, db, user.ID, "soup", time.Now())
	outside := seedRecipe(t, db, user.ID, "salad", time.Now())

	if err := repo.Create(user.ID, inCart.ID); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	marks, err := repo.BatchCheck(user.ID, []int64{inCart.ID, outside.ID})
	if err != nil {
		t.Fatalf("BatchCheck() error = %v", err)
	}
	if !marks[inCart.ID] || marks[outside.ID] {
		t.Fatalf("BatchCheck() = %v, want only %d marked", marks, inCart.ID)
	}

	marks, err = repo.BatchCheck(user.ID, nil)
	if err != nil {
		t.Fatalf("BatchCheck(nil) error = %v", err)
	}
	if len(marks) != 0 {
		t.Fatalf("BatchCheck(nil) = %v, want empty map", marks)
	}
}

func TestAggregateShoppingList(t *testing.T) {
	db := newTestDB(t)
	repo := NewCartRepository(db)

	user := seedUser(t, db, "buyer")
	other := seedUser(t, db, "other")
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
		if err := repo.Create(user.ID, recipeID); err != nil {
			t.Fatalf("failed to fill cart: %v", err)
		}
	}
	// 其他用户的购物车不应影响聚合结果
	if err := repo.Create(other.ID, pancakes.ID); err != nil {
		t.Fatalf("failed to fill other cart: %v", err)
	}

	items, err := repo.AggregateShoppingList(user.ID)
	if err != nil {
		t.Fatalf("AggregateShoppingList() error = %v", err)
	}

	want := []ShoppingItem{
		{Name: "flour", MeasurementUnit: "g", TotalAmount: 500},
		{Name: "salt", MeasurementUnit: "g", TotalAmount: 5},
		{Name: "sugar", MeasurementUnit: "g", TotalAmount: 50},
	}
	if len(items) != len(want) {
		t.Fatalf("len(items) = %d, want %d", len(items), len(want))
	}
	for i := range want {
		if items[i] != want[i] {
			t.Fatalf("items[%d] = %+v, want %+v", i, items[i], want[i])
		}
	}

	items, err = repo.AggregateShoppingList(other.ID)
	if err != nil {
		t.Fatalf("AggregateShoppingList(other) error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("other user items = %+v, want pancakes ingredients only", items)
	}

	count, err := repo.CountByUser(user.ID)
	if err != nil {
		t.Fatalf("CountByUser() error = %v", err)
	}
	if count != 2 {
		t.Fatalf("CountByUser() = %d, want 2", count)
	}
}
