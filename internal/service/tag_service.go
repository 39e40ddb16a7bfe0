package service

import (
	"errors"

	"foodgram-go/internal/api/dto"
	"foodgram-go/internal/model"
	"foodgram-go/internal/repository"

	"gorm.io/gorm"
)

var ErrTagNotFound = errors.New("标签不存在")

// TagService 标签只读服务，标签由导入工具维护
type TagService struct {
	tagRepo *repository.TagRepository
}

func NewTagService(tagRepo *repository.TagRepository) *TagService {
	return &TagService{tagRepo: tagRepo}
}

// List 获取全部标签
func (s *TagService) List() ([]dto.TagInfo, error) {
	tags, err := s.tagRepo.List()
	if err != nil {
		return nil, err
	}

	items := make([]dto.TagInfo, 0, len(tags))
	for i := range tags {
		items = append(items, *toTagInfo(&tags[i]))
	}
	return items, nil
}

// Get 获取单个标签
func (s *TagService) Get(id int64) (*dto.TagInfo, error) {
	tag, err := s.tagRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}
	return toTagInfo(tag), nil
}

// toTagInfo 将 model.Tag 转换为 dto.TagInfo
func toTagInfo(tag *model.Tag) *dto.TagInfo {
	return &dto.TagInfo{
		ID:    tag.ID,
		Name:  tag.Name,
		Color: tag.Color,
		Slug:  tag.Slug,
	}
}
