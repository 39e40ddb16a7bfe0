package service

import (
	"errors"
	"testing"
	"time"

	"foodgram-go/internal/repository"

	"gorm.io/gorm"
)

func TestMarkAddAndRemove(t *testing.T) {
	tests := []struct {
		name       string
		build      func(db *gorm.DB) *MarkService
		errExists  error
		errMissing error
	}{
		{
			name: "favorite",
			build: func(db *gorm.DB) *MarkService {
				return NewFavoriteService(repository.NewFavoriteRepository(db), repository.NewRecipeRepository(db))
			},
			errExists:  ErrAlreadyFavorited,
			errMissing: ErrNotFavorited,
		},
		{
			name: "cart",
			build: func(db *gorm.DB) *MarkService {
				return NewCartService(repository.NewCartRepository(db), repository.NewRecipeRepository(db))
			},
			errExists:  ErrAlreadyInCart,
			errMissing: ErrNotInCart,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := newTestDB(t)
			svc := tt.build(db)

			user := seedUser(t, db, "reader")
			recipe := seedRecipe(t, db, user.ID, "pancakes", time.Now())

			minimal, err := svc.Add(user.ID, recipe.ID)
			if err != nil {
				t.Fatalf("Add() error = %v", err)
			}
			if minimal.ID != recipe.ID || minimal.Name != "pancakes" {
				t.Fatalf("Add() minimal = %+v", minimal)
			}
			if minimal.Image != recipe.Image || minimal.CookingTime != recipe.CookingTime {
				t.Fatalf("Add() minimal = %+v", minimal)
			}

			if _, err := svc.Add(user.ID, recipe.ID); !errors.Is(err, tt.errExists) {
				t.Fatalf("second Add() error = %v, want %v", err, tt.errExists)
			}

			if err := svc.Remove(user.ID, recipe.ID); err != nil {
				t.Fatalf("Remove() error = %v", err)
			}
			if err := svc.Remove(user.ID, recipe.ID); !errors.Is(err, tt.errMissing) {
				t.Fatalf("second Remove() error = %v, want %v", err, tt.errMissing)
			}
		})
	}
}

func TestMarkUnknownRecipe(t *testing.T) {
	db := newTestDB(t)
	svc := NewFavoriteService(repository.NewFavoriteRepository(db), repository.NewRecipeRepository(db))

	user := seedUser(t, db, "reader")

	if _, err := svc.Add(user.ID, 9999); !errors.Is(err, ErrRecipeNotFound) {
		t.Fatalf("Add(unknown recipe) error = %v, want ErrRecipeNotFound", err)
	}
	if err := svc.Remove(user.ID, 9999); !errors.Is(err, ErrRecipeNotFound) {
		t.Fatalf("Remove(unknown recipe) error = %v, want ErrRecipeNotFound", err)
	}
}
