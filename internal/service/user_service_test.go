package service

import (
	"errors"
	"strings"
	"testing"

	"foodgram-go/internal/repository"

	"gorm.io/gorm"
)

func newUserService(db *gorm.DB, images ImageStore) *UserService {
	return NewUserService(repository.NewUserRepository(db), repository.NewFollowRepository(db), images)
}

func TestGetProfile(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db, &fakeImageStore{})
	followRepo := repository.NewFollowRepository(db)

	viewer := seedUser(t, db, "viewer")
	target := seedUser(t, db, "target")
	if err := followRepo.Create(viewer.ID, target.ID); err != nil {
		t.Fatalf("failed to seed follow: %v", err)
	}

	info, err := svc.GetProfile(target.ID, &viewer.ID)
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if !info.IsSubscribed {
		t.Fatal("is_subscribed = false, want true for a follower")
	}

	// 查看自己时 is_subscribed 恒为 false
	info, err = svc.GetMe(viewer.ID)
	if err != nil {
		t.Fatalf("GetMe() error = %v", err)
	}
	if info.ID != viewer.ID || info.IsSubscribed {
		t.Fatalf("GetMe() info = %+v", info)
	}

	info, err = svc.GetProfile(target.ID, nil)
	if err != nil {
		t.Fatalf("GetProfile(anonymous) error = %v", err)
	}
	if info.IsSubscribed {
		t.Fatal("anonymous is_subscribed = true, want false")
	}

	if _, err := svc.GetProfile(9999, nil); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("GetProfile(unknown) error = %v, want ErrUserNotFound", err)
	}
}

func TestUserList(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db, &fakeImageStore{})
	followRepo := repository.NewFollowRepository(db)

	viewer := seedUser(t, db, "viewer")
	followed := seedUser(t, db, "followed")
	stranger := seedUser(t, db, "stranger")
	if err := followRepo.Create(viewer.ID, followed.ID); err != nil {
		t.Fatalf("failed to seed follow: %v", err)
	}

	data, err := svc.List(1, 10, &viewer.ID)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if data.Total != 3 {
		t.Fatalf("Total = %d, want 3", data.Total)
	}
	// 按注册先后排序
	if data.Users[0].ID != viewer.ID || data.Users[1].ID != followed.ID || data.Users[2].ID != stranger.ID {
		t.Fatalf("Users = %+v, want registration order", data.Users)
	}

	flags := make(map[int64]bool, len(data.Users))
	for _, u := range data.Users {
		flags[u.ID] = u.IsSubscribed
	}
	if !flags[followed.ID] || flags[stranger.ID] || flags[viewer.ID] {
		t.Fatalf("is_subscribed flags = %v, want only %d true", flags, followed.ID)
	}

	data, err = svc.List(2, 2, nil)
	if err != nil {
		t.Fatalf("List(page=2) error = %v", err)
	}
	if len(data.Users) != 1 || data.Users[0].ID != stranger.ID {
		t.Fatalf("page 2 Users = %+v, want [%d]", data.Users, stranger.ID)
	}
	if data.TotalPages != 2 {
		t.Fatalf("TotalPages = %d, want 2", data.TotalPages)
	}
}

func TestSetAndDeleteAvatar(t *testing.T) {
	db := newTestDB(t)
	images := &fakeImageStore{}
	svc := newUserService(db, images)

	user := seedUser(t, db, "chef")

	avatarURL, err := svc.SetAvatar(user.ID, testImagePayload())
	if err != nil {
		t.Fatalf("SetAvatar() error = %v", err)
	}
	if !strings.HasPrefix(avatarURL, "http://images.local/avatars/") {
		t.Fatalf("avatar URL = %q", avatarURL)
	}
	if images.uploads != 1 {
		t.Fatalf("uploads = %d, want 1", images.uploads)
	}

	info, err := svc.GetMe(user.ID)
	if err != nil {
		t.Fatalf("GetMe() error = %v", err)
	}
	if info.Avatar == nil || *info.Avatar != avatarURL {
		t.Fatalf("Avatar = %v, want %q", info.Avatar, avatarURL)
	}

	if err := svc.DeleteAvatar(user.ID); err != nil {
		t.Fatalf("DeleteAvatar() error = %v", err)
	}
	info, err = svc.GetMe(user.ID)
	if err != nil {
		t.Fatalf("GetMe() error = %v", err)
	}
	if info.Avatar != nil {
		t.Fatalf("Avatar = %v, want nil after delete", info.Avatar)
	}
}

func TestSetAvatarErrors(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db, &fakeImageStore{})

	user := seedUser(t, db, "chef")

	if _, err := svc.SetAvatar(user.ID, "not-a-data-url"); !errors.Is(err, ErrInvalidImage) {
		t.Fatalf("SetAvatar(bad payload) error = %v, want ErrInvalidImage", err)
	}
	if _, err := svc.SetAvatar(9999, testImagePayload()); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("SetAvatar(unknown user) error = %v, want ErrUserNotFound", err)
	}
	if err := svc.DeleteAvatar(9999); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("DeleteAvatar(unknown user) error = %v, want ErrUserNotFound", err)
	}
}
