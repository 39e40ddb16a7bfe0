package repository

import (
	"fmt"
	"testing"
	"time"

	"foodgram-go/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB 打开一个内存数据库并迁移全部表，测试结束后自动关闭
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	if err := db.AutoMigrate(
		&model.User{},
		&model.Tag{},
		&model.Ingredient{},
		&model.Recipe{},
		&model.RecipeIngredient{},
		&model.Favorite{},
		&model.Cart{},
		&model.Follow{},
	); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()

	user := &model.User{
		Email:     fmt.Sprintf("%s@example.com", username),
		Username:  username,
		FirstName: "Test",
		LastName:  "User",
		Password:  "hashed-password",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user %q: %v", username, err)
	}
	return user
}

func seedIngredient(t *testing.T, db *gorm.DB, name, unit string) *model.Ingredient {
	t.Helper()

	ingredient := &model.Ingredient{Name: name, MeasurementUnit: unit}
	if err := db.Create(ingredient).Error; err != nil {
		t.Fatalf("failed to seed ingredient %q: %v", name, err)
	}
	return ingredient
}

func seedTag(t *testing.T, db *gorm.DB, name, slug string) *model.Tag {
	t.Helper()

	tag := &model.Tag{Name: name, Color: "#" + slug, Slug: slug}
	if err := db.Create(tag).Error; err != nil {
		t.Fatalf("failed to seed tag %q: %v", name, err)
	}
	return tag
}

// seedRecipe 直接插入一条菜谱，createdAt 由调用方指定以保证排序可控
func seedRecipe(t *testing.T, db *gorm.DB, authorID int64, name string, createdAt time.Time) *model.Recipe {
	t.Helper()

	recipe := &model.Recipe{
		AuthorID:    authorID,
		Name:        name,
		Text:        "做法描述",
		Image:       "http://images.local/recipe-images/" + name + ".png",
		CookingTime: 30,
		CreatedAt:   createdAt,
	}
	if err := db.Create(recipe).Error; err != nil {
		t.Fatalf("failed to seed recipe %q: %v", name, err)
	}
	return recipe
}
