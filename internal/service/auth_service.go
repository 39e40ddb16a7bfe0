package service

import (
	"errors"

	"foodgram-go/internal/api/dto"
	"foodgram-go/internal/config"
	"foodgram-go/internal/model"
	"foodgram-go/internal/repository"
	"foodgram-go/pkg/logger"
	"foodgram-go/pkg/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("该邮箱已被注册")
	ErrUsernameTaken      = errors.New("该用户名已被使用")
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrWrongPassword      = errors.New("当前密码不正确")
)

// AuthService 注册、登录与密码管理
type AuthService struct {
	userRepo *repository.UserRepository
}

func NewAuthService(userRepo *repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// Register 注册新用户。
// 直接插入，邮箱或用户名撞上唯一约束后再回查定位是哪个字段冲突。
func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.UserInfo, error) {
	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  hashed,
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if _, lookupErr := s.userRepo.GetByEmail(req.Email); lookupErr == nil {
				return nil, ErrEmailTaken
			}
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	logger.Info("User registered",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username))

	return toUserInfo(user, false), nil
}

// Login 邮箱 + 密码登录，签发 JWT。
// 邮箱不存在和密码错误返回同一个错误，不向外暴露差别。
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.TokenData, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.VerifyPassword(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &dto.TokenData{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int(config.GetJWT().ExpireDuration().Seconds()),
		User:      *toUserInfo(user, false),
	}, nil
}

// SetPassword 修改密码，需要先验证当前密码
func (s *AuthService) SetPassword(userID int64, req *dto.SetPasswordRequest) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if !utils.VerifyPassword(req.CurrentPassword, user.Password) {
		return ErrWrongPassword
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	if _, err := s.userRepo.Update(userID, map[string]interface{}{"password": hashed}); err != nil {
		return err
	}

	logger.Info("User password changed", zap.Int64("user_id", userID))
	return nil
}
