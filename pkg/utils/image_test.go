package utils

import (
	"encoding/base64"
	"errors"
	"testing"
)

func TestDecodeBase64Image(t *testing.T) {
	t.Parallel()

	encoded := base64.StdEncoding.EncodeToString([]byte("raw-image-bytes"))

	tests := []struct {
		name            string
		payload         string
		wantExt         string
		wantContentType string
		wantErr         bool
	}{
		{
			name:            "png",
			payload:         "data:image/png;base64," + encoded,
			wantExt:         "png",
			wantContentType: "image/png",
		},
		{
			name:            "jpeg uses jpg extension",
			payload:         "data:image/jpeg;base64," + encoded,
			wantExt:         "jpg",
			wantContentType: "image/jpeg",
		},
		{
			name:    "missing data prefix",
			payload: "image/png;base64," + encoded,
			wantErr: true,
		},
		{
			name:    "missing base64 marker",
			payload: "data:image/png," + encoded,
			wantErr: true,
		},
		{
			name:    "missing extension",
			payload: "data:image/;base64," + encoded,
			wantErr: true,
		},
		{
			name:    "broken base64",
			payload: "data:image/png;base64,%%%%",
			wantErr: true,
		},
		{
			name:    "empty data",
			payload: "data:image/png;base64,",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data, ext, contentType, err := DecodeBase64Image(tt.payload)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidImageData) {
					t.Fatalf("DecodeBase64Image() error = %v, want ErrInvalidImageData", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeBase64Image() error = %v", err)
			}
			if string(data) != "raw-image-bytes" {
				t.Fatalf("data = %q, want raw-image-bytes", data)
			}
			if ext != tt.wantExt {
				t.Fatalf("ext = %q, want %q", ext, tt.wantExt)
			}
			if contentType != tt.wantContentType {
				t.Fatalf("contentType = %q, want %q", contentType, tt.wantContentType)
			}
		})
	}
}
