package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"foodgram-go/internal/api/dto"
	"foodgram-go/internal/config"
	infraES "foodgram-go/internal/infra/elasticsearch"
	"foodgram-go/internal/model"
	"foodgram-go/internal/repository"
	"foodgram-go/pkg/logger"

	"go.uber.org/zap"
)

// SearchService 菜谱搜索（ES 优先，失败则降级到数据库）
type SearchService struct {
	recipeRepo *repository.RecipeRepository
}

func NewSearchService(recipeRepo *repository.RecipeRepository) *SearchService {
	return &SearchService{recipeRepo: recipeRepo}
}

// SearchRecipes 搜索菜谱
func (s *SearchService) SearchRecipes(req *dto.SearchRecipeRequest) (*dto.SearchRecipeData, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 || req.PageSize > 100 {
		req.PageSize = 20
	}

	data, err := s.searchFromES(req)
	if err != nil {
		logger.Warn("ES search failed, fallback to DB", zap.Error(err))
		return s.searchFromDB(req)
	}
	return data, nil
}

func (s *SearchService) searchFromES(req *dto.SearchRecipeRequest) (*dto.SearchRecipeData, error) {
	cfg := config.GetElasticsearch()
	indexName := cfg.Index["recipes"]
	if indexName == "" {
		indexName = "recipes"
	}

	query := s.buildESQuery(req)
	queryJSON, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resp, err := infraES.Search(ctx, indexName, bytes.NewReader(queryJSON))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return nil, fmt.Errorf("ES search error: %s", resp.String())
	}

	var esResp struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source struct {
					ID int64 `json:"id"`
				} `json:"_source"`
				Highlight map[string][]string `json:"highlight"`
			} `json:"hits"`
		} `json:"hits"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&esResp); err != nil {
		return nil, err
	}

	recipeIDs := make([]int64, 0, len(esResp.Hits.Hits))
	highlights := make(map[int64]map[string][]string)
	for _, h := range esResp.Hits.Hits {
		recipeIDs = append(recipeIDs, h.Source.ID)
		if len(h.Highlight) > 0 {
			highlights[h.Source.ID] = h.Highlight
		}
	}

	total := esResp.Hits.Total.Value
	if len(recipeIDs) == 0 {
		return s.buildSearchData(nil, highlights, total, req.Page, req.PageSize), nil
	}

	recipes, err := s.recipeRepo.GetByIDsWithRelations(recipeIDs)
	if err != nil {
		return nil, err
	}

	recipeMap := make(map[int64]*model.Recipe)
	for i := range recipes {
		recipeMap[recipes[i].ID] = &recipes[i]
	}

	// 按 ES 相关度恢复顺序
	ordered := make([]model.Recipe, 0, len(recipeIDs))
	for _, id := range recipeIDs {
		if r, ok := recipeMap[id]; ok {
			ordered = append(ordered, *r)
		}
	}

	return s.buildSearchData(ordered, highlights, total, req.Page, req.PageSize), nil
}

func (s *SearchService) buildESQuery(req *dto.SearchRecipeRequest) map[string]interface{} {
	boolQ := map[string]interface{}{
		"filter": []interface{}{},
		"must":   []interface{}{},
	}

	if strings.TrimSpace(req.Q) != "" {
		q := strings.TrimSpace(req.Q)
		fields := []string{"name^3", "ingredients^2", "text^1"}
		if len(q) <= 2 {
			boolQ["should"] = []interface{}{
				map[string]interface{}{
					"multi_match": map[string]interface{}{
						"query":    q,
						"fields":   fields,
						"type":     "best_fields",
						"operator": "or",
					},
				},
			}
			boolQ["minimum_should_match"] = 1
		} else {
			boolQ["must"] = append(boolQ["must"].([]interface{}),
				map[string]interface{}{
					"multi_match": map[string]interface{}{
						"query":                q,
						"fields":               fields,
						"type":                 "best_fields",
						"operator":             "or",
						"minimum_should_match": "50%",
					},
				},
			)
		}
	}

	if req.AuthorID != nil {
		boolQ["filter"] = append(boolQ["filter"].([]interface{}),
			map[string]interface{}{"term": map[string]interface{}{"author_id": *req.AuthorID}})
	}
	if len(req.Tags) > 0 {
		boolQ["filter"] = append(boolQ["filter"].([]interface{}),
			map[string]interface{}{"terms": map[string]interface{}{"tags": req.Tags}})
	}
	if req.MinCookingTime != nil || req.MaxCookingTime != nil {
		rangeQ := map[string]interface{}{}
		if req.MinCookingTime != nil {
			rangeQ["gte"] = *req.MinCookingTime
		}
		if req.MaxCookingTime != nil {
			rangeQ["lte"] = *req.MaxCookingTime
		}
		boolQ["filter"] = append(boolQ["filter"].([]interface{}),
			map[string]interface{}{"range": map[string]interface{}{"cooking_time": rangeQ}})
	}

	sortConfig := []interface{}{}
	switch req.Sort {
	case "time":
		sortConfig = append(sortConfig, map[string]interface{}{"created_at": map[string]string{"order": "desc"}})
	default:
		sortConfig = append(sortConfig, map[string]interface{}{"_score": map[string]string{"order": "desc"}})
		sortConfig = append(sortConfig, map[string]interface{}{"created_at": map[string]string{"order": "desc"}})
	}

	query := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": boolQ,
		},
		"_source": []string{"id"},
		"from":    (req.Page - 1) * req.PageSize,
		"size":    req.PageSize,
		"sort":    sortConfig,
	}

	if strings.TrimSpace(req.Q) != "" {
		query["highlight"] = map[string]interface{}{
			"fields": map[string]interface{}{
				"name": map[string]interface{}{},
				"text": map[string]interface{}{},
			},
			"pre_tags":  []string{"<em>"},
			"post_tags": []string{"</em>"},
		}
	}

	return query
}

func (s *SearchService) buildSearchData(recipes []model.Recipe, highlights map[int64]map[string][]string, total int64, page, pageSize int) *dto.SearchRecipeData {
	items := make([]dto.SearchRecipeInfo, 0, len(recipes))
	for i := range recipes {
		r := &recipes[i]
		authorName := ""
		if r.Author.ID != 0 {
			authorName = r.Author.Username
		}
		tagSlugs := make([]string, 0, len(r.Tags))
		for j := range r.Tags {
			tagSlugs = append(tagSlugs, r.Tags[j].Slug)
		}
		items = append(items, dto.SearchRecipeInfo{
			ID:          r.ID,
			AuthorID:    r.AuthorID,
			AuthorName:  authorName,
			Name:        r.Name,
			Image:       r.Image,
			CookingTime: r.CookingTime,
			Tags:        tagSlugs,
			CreatedAt:   r.CreatedAt,
			Highlight:   highlights[r.ID],
		})
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)
	return &dto.SearchRecipeData{
		Recipes:    items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// searchFromDB 数据库兜底路径，只支持按名称检索，作者过滤在内存中补做
func (s *SearchService) searchFromDB(req *dto.SearchRecipeRequest) (*dto.SearchRecipeData, error) {
	skip := (req.Page - 1) * req.PageSize

	keyword := strings.TrimSpace(req.Q)
	recipes, total, err := s.recipeRepo.SearchByName(keyword, skip, req.PageSize)
	if err != nil {
		return nil, err
	}

	if req.AuthorID != nil {
		filtered := make([]model.Recipe, 0, len(recipes))
		for i := range recipes {
			if recipes[i].AuthorID == *req.AuthorID {
				filtered = append(filtered, recipes[i])
			}
		}
		recipes = filtered
		total = int64(len(filtered))
	}

	return s.buildSearchData(recipes, nil, total, req.Page, req.PageSize), nil
}
