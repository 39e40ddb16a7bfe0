package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"foodgram-go/internal/config"
	"foodgram-go/internal/infra/database"
	"foodgram-go/internal/model"
	"foodgram-go/internal/repository"
	"foodgram-go/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	ingredientsPath := flag.String("ingredients", "", "食材 CSV 文件路径（列: name,measurement_unit）")
	tagsPath := flag.String("tags", "", "标签 CSV 文件路径（列: name,color,slug）")
	flag.Parse()

	if *ingredientsPath == "" && *tagsPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: importer [-config path] -ingredients data/ingredients.csv -tags data/tags.csv")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.FilePath); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close()

	if err := database.AutoMigrate(&model.Tag{}, &model.Ingredient{}); err != nil {
		logger.Fatal("Failed to auto migrate", zap.Error(err))
	}

	db := database.Get()

	if *ingredientsPath != "" {
		if err := importIngredients(repository.NewIngredientRepository(db), *ingredientsPath); err != nil {
			logger.Fatal("Failed to import ingredients", zap.String("file", *ingredientsPath), zap.Error(err))
		}
	}

	if *tagsPath != "" {
		if err := importTags(repository.NewTagRepository(db), *tagsPath); err != nil {
			logger.Fatal("Failed to import tags", zap.String("file", *tagsPath), zap.Error(err))
		}
	}
}

// importIngredients 从 CSV 导入食材，重复行按唯一约束跳过
func importIngredients(repo *repository.IngredientRepository, path string) error {
	rows, err := openCSV(path, []string{"name", "measurement_unit"})
	if err != nil {
		return err
	}
	defer rows.close()

	var imported, skipped int
	for {
		record, err := rows.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("读取 CSV 记录失败: %w", err)
		}

		ingredient := &model.Ingredient{
			Name:            record["name"],
			MeasurementUnit: record["measurement_unit"],
		}
		if err := repo.Create(ingredient); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				skipped++
				continue
			}
			return fmt.Errorf("插入食材 %s 失败: %w", ingredient.Name, err)
		}
		imported++
	}

	logger.Info("Ingredient import finished",
		zap.String("file", path),
		zap.Int("imported", imported),
		zap.Int("skipped", skipped),
	)
	return nil
}

// importTags 从 CSV 导入标签，重复行按唯一约束跳过
func importTags(repo *repository.TagRepository, path string) error {
	rows, err := openCSV(path, []string{"name", "color", "slug"})
	if err != nil {
		return err
	}
	defer rows.close()

	var imported, skipped int
	for {
		record, err := rows.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("读取 CSV 记录失败: %w", err)
		}

		tag := &model.Tag{
			Name:  record["name"],
			Color: record["color"],
			Slug:  record["slug"],
		}
		if err := repo.Create(tag); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				skipped++
				continue
			}
			return fmt.Errorf("插入标签 %s 失败: %w", tag.Name, err)
		}
		imported++
	}

	logger.Info("Tag import finished",
		zap.String("file", path),
		zap.Int("imported", imported),
		zap.Int("skipped", skipped),
	)
	return nil
}

// csvRows 按首行表头将每条记录映射为 列名->值
type csvRows struct {
	file    *os.File
	reader  *csv.Reader
	columns []string
}

// openCSV 打开 CSV 文件并校验表头包含所有必需列
func openCSV(path string, required []string) (*csvRows, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("打开文件失败: %w", err)
	}

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("读取表头失败: %w", err)
	}

	columns := make([]string, len(header))
	for i, name := range header {
		columns[i] = strings.TrimSpace(name)
	}

	for _, name := range required {
		found := false
		for _, col := range columns {
			if col == name {
				found = true
				break
			}
		}
		if !found {
			file.Close()
			return nil, fmt.Errorf("表头缺少必需列: %s", name)
		}
	}

	return &csvRows{file: file, reader: reader, columns: columns}, nil
}

func (r *csvRows) next() (map[string]string, error) {
	record, err := r.reader.Read()
	if err != nil {
		return nil, err
	}

	row := make(map[string]string, len(r.columns))
	for i, col := range r.columns {
		if i < len(record) {
			row[col] = strings.TrimSpace(record[i])
		}
	}
	return row, nil
}

func (r *csvRows) close() {
	if err := r.file.Close(); err != nil {
		logger.Warn("Failed to close csv file", zap.Error(err))
	}
}
