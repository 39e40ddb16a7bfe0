package minio

import (
	"context"

	"foodgram-go/internal/config"
)

// ImageStore 面向业务层的图片存储封装，上传后返回公开访问 URL
type ImageStore struct {
	endpoint string
	useSSL   bool
}

func NewImageStore(cfg *config.MinIOConfig) *ImageStore {
	return &ImageStore{endpoint: cfg.Endpoint, useSSL: cfg.UseSSL}
}

// UploadImage 上传图片并返回公开访问 URL
func (s *ImageStore) UploadImage(ctx context.Context, bucket, objectName string, data []byte, contentType string) (string, error) {
	if _, err := UploadBytes(ctx, bucket, objectName, data, contentType); err != nil {
		return "", err
	}
	return GetPublicURL(s.endpoint, s.useSSL, bucket, objectName), nil
}
