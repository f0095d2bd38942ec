package minio

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"

	mclient "github.com/minio/minio-go/v7"
	"github.com/pribylovaa/go-content-portal/internal/storage"
)

// DownloadURL проверяет наличие объекта и генерирует presigned GET URL.
// Content-Disposition выставляется в attachment с именем файла из ключа.
//
// Ошибки:
//   - storage.ErrNotFound — пустой/некорректный ключ или объекта нет в бакете;
//   - прочие ошибки клиента — обёрнутые.
func (s *AssetsStorage) DownloadURL(ctx context.Context, key string) (string, error) {
	const op = "storage.minio.assets.DownloadURL"

	key = cleanKey(key)
	if key == "" {
		return "", fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	if _, err := s.client.StatObject(ctx, s.cfg.S3.Bucket, key, mclient.StatObjectOptions{}); err != nil {
		errResp := mclient.ToErrorResponse(err)
		if errResp.Code == "NoSuchKey" || errResp.StatusCode == http.StatusNotFound {
			return "", fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return "", fmt.Errorf("%s: %w", op, err)
	}

	params := url.Values{}
	params.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", path.Base(key)))

	u, err := s.client.PresignedGetObject(ctx, s.cfg.S3.Bucket, key, s.cfg.S3.PresignTTL, params)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return u.String(), nil
}

// cleanKey нормализует ключ объекта: без ведущего "/", без выхода за пределы бакета.
func cleanKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}

	cleaned := strings.TrimPrefix(path.Clean("/"+key), "/")
	if cleaned == "" || cleaned == "." {
		return ""
	}

	return cleaned
}
