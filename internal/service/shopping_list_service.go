package service

import (
	"errors"
	"fmt"
	"strings"

	"foodgram-go/internal/repository"

	"gorm.io/gorm"
)

var ErrEmptyCart = errors.New("购物车是空的")

// ShoppingListService 购物清单服务，聚合购物车内所有菜谱的食材用量
type ShoppingListService struct {
	cartRepo *repository.CartRepository
	userRepo *repository.UserRepository
}

func NewShoppingListService(cartRepo *repository.CartRepository, userRepo *repository.UserRepository) *ShoppingListService {
	return &ShoppingListService{
		cartRepo: cartRepo,
		userRepo: userRepo,
	}
}

// Aggregate 汇总用户购物车内全部菜谱的食材，
// 同名同单位的食材用量相加，按名称、计量单位升序返回
func (s *ShoppingListService) Aggregate(userID int64) ([]repository.ShoppingItem, error) {
	count, err := s.cartRepo.CountByUser(userID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrEmptyCart
	}

	return s.cartRepo.AggregateShoppingList(userID)
}

// BuildDocument 聚合并渲染购物清单，返回下载文件名和文本内容
func (s *ShoppingListService) BuildDocument(userID int64) (filename, content string, err error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", ErrUserNotFound
		}
		return "", "", err
	}

	items, err := s.Aggregate(userID)
	if err != nil {
		return "", "", err
	}

	filename = fmt.Sprintf("%s_shopping_list.txt", user.Username)
	return filename, s.RenderText(user.Username, items), nil
}

// RenderText 将聚合结果渲染为纯文本购物清单
func (s *ShoppingListService) RenderText(username string, items []repository.ShoppingItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s 的购物清单\n\n", username)
	for _, item := range items {
		fmt.Fprintf(&b, "%s (%s) - %d\n", item.Name, item.MeasurementUnit, item.TotalAmount)
	}
	return b.String()
}
