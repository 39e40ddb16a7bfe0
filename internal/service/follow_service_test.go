package service

import (
	"errors"
	"testing"
	"time"

	"foodgram-go/internal/model"
	"foodgram-go/internal/repository"

	"gorm.io/gorm"
)

func newFollowService(db *gorm.DB) *FollowService {
	return NewFollowService(
		repository.NewFollowRepository(db),
		repository.NewUserRepository(db),
		repository.NewRecipeRepository(db),
	)
}

func TestFollowSelfAndUnknownAuthor(t *testing.T) {
	db := newTestDB(t)
	svc := newFollowService(db)

	reader := seedUser(t, db, "reader")

	if _, err := svc.Follow(reader.ID, reader.ID, 3); !errors.Is(err, ErrCannotFollowSelf) {
		t.Fatalf("Follow(self) error = %v, want ErrCannotFollowSelf", err)
	}
	if _, err := svc.Follow(reader.ID, 9999, 3); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("Follow(unknown author) error = %v, want ErrUserNotFound", err)
	}
	if err := svc.Unfollow(reader.ID, 9999); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("Unfollow(unknown author) error = %v, want ErrUserNotFound", err)
	}
}

func TestFollowAndUnfollow(t *testing.T) {
	db := newTestDB(t)
	svc := newFollowService(db)

	reader := seedUser(t, db, "reader")
	author := seedUser(t, db, "author")

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	seedRecipe(t, db, author.ID, "first", base)
	seedRecipe(t, db, author.ID, "second", base.Add(time.Hour))
	third := seedRecipe(t, db, author.ID, "third", base.Add(2*time.Hour))

	item, err := svc.Follow(reader.ID, author.ID, 2)
	if err != nil {
		t.Fatalf("Follow() error = %v", err)
	}
	if item.ID != author.ID || !item.IsSubscribed {
		t.Fatalf("Follow() item = %+v", item)
	}
	if item.RecipesCount != 3 {
		t.Fatalf("RecipesCount = %d, want 3", item.RecipesCount)
	}
	if len(item.Recipes) != 2 || item.Recipes[0].ID != third.ID {
		t.Fatalf("Recipes = %+v, want two newest starting with %d", item.Recipes, third.ID)
	}

	if _, err := svc.Follow(reader.ID, author.ID, 2); !errors.Is(err, ErrAlreadyFollowed) {
		t.Fatalf("second Follow() error = %v, want ErrAlreadyFollowed", err)
	}

	if err := svc.Unfollow(reader.ID, author.ID); err != nil {
		t.Fatalf("Unfollow() error = %v", err)
	}
	if err := svc.Unfollow(reader.ID, author.ID); !errors.Is(err, ErrNotFollowed) {
		t.Fatalf("second Unfollow() error = %v, want ErrNotFollowed", err)
	}
}

func TestFollowRecipesLimitZero(t *testing.T) {
	db := newTestDB(t)
	svc := newFollowService(db)

	reader := seedUser(t, db, "reader")
	author := seedUser(t, db, "author")
	seedRecipe(t, db, author.ID, "pancakes", time.Now())

	item, err := svc.Follow(reader.ID, author.ID, 0)
	if err != nil {
		t.Fatalf("Follow() error = %v", err)
	}
	if len(item.Recipes) != 0 {
		t.Fatalf("Recipes = %+v, want empty with recipes limit 0", item.Recipes)
	}
	if item.RecipesCount != 1 {
		t.Fatalf("RecipesCount = %d, want 1", item.RecipesCount)
	}
}

func TestSubscriptions(t *testing.T) {
	db := newTestDB(t)
	svc := newFollowService(db)

	reader := seedUser(t, db, "reader")
	first := seedUser(t, db, "first")
	second := seedUser(t, db, "second")

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	follows := []model.Follow{
		{UserID: reader.ID, AuthorID: first.ID, CreatedAt: base},
		{UserID: reader.ID, AuthorID: second.ID, CreatedAt: base.Add(time.Second)},
	}
	if err := db.Create(&follows).Error; err != nil {
		t.Fatalf("failed to seed follows: %v", err)
	}

	data, err := svc.Subscriptions(reader.ID, 1, 10, 3)
	if err != nil {
		t.Fatalf("Subscriptions() error = %v", err)
	}
	if data.Total != 2 {
		t.Fatalf("Total = %d, want 2", data.Total)
	}
	if len(data.Authors) != 2 || data.Authors[0].ID != second.ID || data.Authors[1].ID != first.ID {
		t.Fatalf("Authors = %+v, want [%d %d]", data.Authors, second.ID, first.ID)
	}
	for _, author := range data.Authors {
		if !author.IsSubscribed {
			t.Fatalf("author %d is_subscribed = false, want true", author.ID)
		}
	}

	data, err = svc.Subscriptions(reader.ID, 2, 1, 3)
	if err != nil {
		t.Fatalf("Subscriptions(page=2) error = %v", err)
	}
	if len(data.Authors) != 1 || data.Authors[0].ID != first.ID {
		t.Fatalf("page 2 Authors = %+v, want [%d]", data.Authors, first.ID)
	}
	if data.TotalPages != 2 {
		t.Fatalf("TotalPages = %d, want 2", data.TotalPages)
	}
}
