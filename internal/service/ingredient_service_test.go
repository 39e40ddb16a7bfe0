package service

import (
	"errors"
	"testing"

	"foodgram-go/internal/repository"
)

func TestIngredientListAndGet(t *testing.T) {
	db := newTestDB(t)
	svc := NewIngredientService(repository.NewIngredientRepository(db))

	seedIngredient(t, db, "sugar", "g")
	salt := seedIngredient(t, db, "salt", "g")
	seedIngredient(t, db, "milk", "ml")

	items, err := svc.List("")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	// 按名称升序
	if len(items) != 3 || items[0].Name != "milk" || items[1].Name != "salt" || items[2].Name != "sugar" {
		t.Fatalf("List() = %+v, want name order", items)
	}

	items, err = svc.List("s")
	if err != nil {
		t.Fatalf("List(prefix) error = %v", err)
	}
	if len(items) != 2 || items[0].Name != "salt" || items[1].Name != "sugar" {
		t.Fatalf("List(prefix) = %+v, want [salt sugar]", items)
	}

	info, err := svc.Get(salt.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if info.Name != "salt" || info.MeasurementUnit != "g" {
		t.Fatalf("Get() = %+v", info)
	}

	if _, err := svc.Get(9999); !errors.Is(err, ErrIngredientNotFound) {
		t.Fatalf("Get(unknown) error = %v, want ErrIngredientNotFound", err)
	}
}
