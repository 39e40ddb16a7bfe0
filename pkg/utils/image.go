package utils

import (
	"encoding/base64"
	"errors"
	"strings"
)

// ErrInvalidImageData base64 图片数据无法解析
var ErrInvalidImageData = errors.New("invalid base64 image data")

// DecodeBase64Image 解析 data URL 形式的图片数据
// 输入形如 data:image/png;base64,iVBORw0...，返回原始字节、扩展名和 Content-Type
func DecodeBase64Image(payload string) (data []byte, ext string, contentType string, err error) {
	if !strings.HasPrefix(payload, "data:image/") {
		return nil, "", "", ErrInvalidImageData
	}

	idx := strings.Index(payload, ";base64,")
	if idx < 0 {
		return nil, "", "", ErrInvalidImageData
	}

	contentType = payload[len("data:"):idx]
	ext = contentType[len("image/"):]
	if ext == "" {
		return nil, "", "", ErrInvalidImageData
	}
	// jpeg 的惯用扩展名是 jpg
	if ext == "jpeg" {
		ext = "jpg"
	}

	data, err = base64.StdEncoding.DecodeString(payload[idx+len(";base64,"):])
	if err != nil || len(data) == 0 {
		return nil, "", "", ErrInvalidImageData
	}

	return data, ext, contentType, nil
}
