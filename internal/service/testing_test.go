package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"foodgram-go/internal/config"
	"foodgram-go/internal/model"
	"foodgram-go/pkg/logger"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testConfigYAML = `app:
  name: foodgram-test
  version: 0.0.0
  mode: test
  base_url: http://localhost:8080
  frontend_url: http://localhost:3000

jwt:
  secret: test-secret
  expire_hours: 1
`

// TestMain 准备全局配置与日志，Token 签发和事件日志都依赖它们
func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "foodgram-service-test")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create temp dir: %v\n", err)
		os.Exit(1)
	}

	configPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(testConfigYAML), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write test config: %v\n", err)
		os.Exit(1)
	}
	if _, err := config.Load(configPath); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load test config: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init("error", "console", "stdout", ""); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

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

// testImagePayload 返回一个可成功解析的 data URL 图片
func testImagePayload() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png-bytes"))
}

// fakeImageStore 内存图片存储，返回可预测的公开 URL
type fakeImageStore struct {
	uploads int
}

func (f *fakeImageStore) UploadImage(_ context.Context, bucket, objectName string, _ []byte, _ string) (string, error) {
	f.uploads++
	return "http://images.local/" + bucket + "/" + objectName, nil
}

// fakePublisher 记录发布过的事件类型
type fakePublisher struct {
	events []string
}

func (f *fakePublisher) PublishRecipeEvent(_ context.Context, eventType string, _, _ int64) error {
	f.events = append(f.events, eventType)
	return nil
}

// fakeLinkCodes 内存短码双向映射
type fakeLinkCodes struct {
	byCode   map[string]int64
	byRecipe map[int64]string
}

func newFakeLinkCodes() *fakeLinkCodes {
	return &fakeLinkCodes{
		byCode:   make(map[string]int64),
		byRecipe: make(map[int64]string),
	}
}

func (f *fakeLinkCodes) SaveCode(_ context.Context, code string, recipeID int64) error {
	f.byCode[code] = recipeID
	f.byRecipe[recipeID] = code
	return nil
}

func (f *fakeLinkCodes) RecipeIDByCode(_ context.Context, code string) (int64, bool, error) {
	id, ok := f.byCode[code]
	return id, ok, nil
}

func (f *fakeLinkCodes) CodeByRecipeID(_ context.Context, recipeID int64) (string, bool, error) {
	code, ok := f.byRecipe[recipeID]
	return code, ok, nil
}
