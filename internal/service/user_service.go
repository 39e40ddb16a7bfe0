package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"foodgram-go/internal/api/dto"
	infraMinio "foodgram-go/internal/infra/minio"
	"foodgram-go/internal/model"
	"foodgram-go/internal/repository"
	"foodgram-go/pkg/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("用户不存在")

// UserService 用户资料与头像管理
type UserService struct {
	userRepo   *repository.UserRepository
	followRepo *repository.FollowRepository
	images     ImageStore
}

func NewUserService(userRepo *repository.UserRepository, followRepo *repository.FollowRepository, images ImageStore) *UserService {
	return &UserService{
		userRepo:   userRepo,
		followRepo: followRepo,
		images:     images,
	}
}

// GetProfile 获取用户资料，viewerID 为空时 is_subscribed 恒为 false
func (s *UserService) GetProfile(targetID int64, viewerID *int64) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	isSubscribed := false
	if viewerID != nil && *viewerID != targetID {
		isSubscribed, err = s.followRepo.Exists(*viewerID, targetID)
		if err != nil {
			return nil, err
		}
	}

	return toUserInfo(user, isSubscribed), nil
}

// GetMe 获取当前用户自己的资料
func (s *UserService) GetMe(userID int64) (*dto.UserInfo, error) {
	return s.GetProfile(userID, &userID)
}

// List 获取用户列表（按注册先后），is_subscribed 针对查看者批量计算
func (s *UserService) List(page, pageSize int, viewerID *int64) (*dto.UserListData, error) {
	skip := (page - 1) * pageSize
	users, total, err := s.userRepo.List(skip, pageSize)
	if err != nil {
		return nil, err
	}

	following := map[int64]bool{}
	if viewerID != nil && len(users) > 0 {
		ids := make([]int64, 0, len(users))
		for i := range users {
			ids = append(ids, users[i].ID)
		}
		following, err = s.followRepo.BatchCheckFollowing(*viewerID, ids)
		if err != nil {
			return nil, err
		}
	}

	items := make([]dto.UserInfo, 0, len(users))
	for i := range users {
		items = append(items, *toUserInfo(&users[i], following[users[i].ID]))
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)

	return &dto.UserListData{
		Users:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// SetAvatar 上传并设置用户头像，返回头像 URL
func (s *UserService) SetAvatar(userID int64, payload string) (string, error) {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	data, ext, contentType, err := utils.DecodeBase64Image(payload)
	if err != nil {
		return "", ErrInvalidImage
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	objectName := fmt.Sprintf("%d/%s.%s", userID, uuid.NewString(), ext)
	avatarURL, err := s.images.UploadImage(ctx, infraMinio.BucketAvatars, objectName, data, contentType)
	if err != nil {
		return "", fmt.Errorf("上传头像失败: %w", err)
	}

	if _, err := s.userRepo.Update(userID, map[string]interface{}{"avatar": avatarURL}); err != nil {
		return "", err
	}

	return avatarURL, nil
}

// DeleteAvatar 移除用户头像
func (s *UserService) DeleteAvatar(userID int64) error {
	_, err := s.userRepo.Update(userID, map[string]interface{}{"avatar": nil})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// toUserInfo 将 model.User 转换为 dto.UserInfo
func toUserInfo(user *model.User, isSubscribed bool) *dto.UserInfo {
	return &dto.UserInfo{
		ID:           user.ID,
		Email:        user.Email,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Avatar:       user.Avatar,
		IsSubscribed: isSubscribed,
	}
}
