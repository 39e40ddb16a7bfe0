package repository

import (
	"errors"
	"testing"
	"time"

	"foodgram-go/internal/model"

	"gorm.io/gorm"
)

func TestFollowCreateDuplicate(t *testing.T) {
	db := newTestDB(t)
	repo := NewFollowRepository(db)

	reader := seedUser(t, db, "reader")
	author := seedUser(t, db, "author")

	if err := repo.Create(reader.ID, author.ID); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	err := repo.Create(reader.ID, author.ID)
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("second Create() error = %v, want gorm.ErrDuplicatedKey", err)
	}
}

func TestFollowDeleteAndExists(t *testing.T) {
	db := newTestDB(t)
	repo := NewFollowRepository(db)

	reader := seedUser(t, db, "reader")
	author := seedUser(t, db, "author")

	if err := repo.Create(reader.ID, author.ID); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	exists, err := repo.Exists(reader.ID, author.ID)
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if !exists {
		t.Fatal("Exists() = false after Create")
	}

	removed, err := repo.Delete(reader.ID, author.ID)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if !removed {
		t.Fatal("Delete() = false, want true for existing row")
	}

	removed, err = repo.Delete(reader.ID, author.ID)
	if err != nil {
		t.Fatalf("second Delete() error = %v", err)
	}
	if removed {
		t.Fatal("second Delete() = true, want false for missing row")
	}

	exists, err = repo.Exists(reader.ID, author.ID)
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if exists {
		t.Fatal("Exists() = true after Delete")
	}
}

func TestFollowAuthorIDsOrderAndPaging(t *testing.T) {
	db := newTestDB(t)
	repo := NewFollowRepository(db)

	reader := seedUser(t, db, "reader")
	first := seedUser(t, db, "first")
	second := seedUser(t, db, "second")
	third := seedUser(t, db, "third")

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	follows := []model.Follow{
		{UserID: reader.ID, AuthorID: first.ID, CreatedAt: base},
		{UserID: reader.ID, AuthorID: second.ID, CreatedAt: base.Add(time.Second)},
		{UserID: reader.ID, AuthorID: third.ID, CreatedAt: base.Add(2 * time.Second)},
	}
	if err := db.Create(&follows).Error; err != nil {
		t.Fatalf("failed to seed follows: %v", err)
	}

	ids, err := repo.AuthorIDs(reader.ID, 0, 10)
	if err != nil {
		t.Fatalf("AuthorIDs() error = %v", err)
	}
	want := []int64{third.ID, second.ID, first.ID}
	if len(ids) != len(want) {
		t.Fatalf("len(ids) = %d, want %d", len(ids), len(want))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("ids = %v, want %v", ids, want)
		}
	}

	ids, err = repo.AuthorIDs(reader.ID, 1, 1)
	if err != nil {
		t.Fatalf("AuthorIDs(skip=1, limit=1) error = %v", err)
	}
	if len(ids) != 1 || ids[0] != second.ID {
		t.Fatalf("AuthorIDs(skip=1, limit=1) = %v, want [%d]", ids, second.ID)
	}

	count, err := repo.CountAuthors(reader.ID)
	if err != nil {
		t.Fatalf("CountAuthors() error = %v", err)
	}
	if count != 3 {
		t.Fatalf("CountAuthors() = %d, want 3", count)
	}
}

func TestFollowBatchCheckFollowing(t *testing.T) {
	db := newTestDB(t)
	repo := NewFollowRepository(db)

	reader := seedUser(t, db, "reader")
	followed := seedUser(t, db, "followed")
	stranger := seedUser(t, db, "stranger")

	if err := repo.Create(reader.ID, followed.ID); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	marks, err := repo.BatchCheckFollowing(reader.ID, []int64{followed.ID, stranger.ID})
	if err != nil {
		t.Fatalf("BatchCheckFollowing() error = %v", err)
	}
	if !marks[followed.ID] || marks[stranger.ID] {
		t.Fatalf("BatchCheckFollowing() = %v, want only %d marked", marks, followed.ID)
	}

	marks, err = repo.BatchCheckFollowing(reader.ID, nil)
	if err != nil {
		t.Fatalf("BatchCheckFollowing(nil) error = %v", err)
	}
	if len(marks) != 0 {
		t.Fatalf("BatchCheckFollowing(nil) = %v, want empty map", marks)
	}
}
