// minio предоставляет реализацию storage.AssetLinker на базе MinIO/S3.
// minio.go - конструктор клиента: нормализует endpoint, настраивает Secure/creds
// и проверяет наличие бакета с файлами материалов.
// assets.go — выдача presigned GET ссылок на файлы e-book и техдокументов.
package minio

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	mclient "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pribylovaa/go-content-portal/internal/config"
	"github.com/pribylovaa/go-content-portal/internal/storage"
)

// AssetsStorage — адаптер MinIO для файлов материалов.
type AssetsStorage struct {
	cfg    *config.Config
	client *mclient.Client
}

// New создает и инициализирует клиент MinIO.
// Делает endpoint-перенастройку (убирает схему), подбирает Secure по схеме
// и выполняет fail-fast-проверку доступности бакета.
func New(ctx context.Context, cfg *config.Config) (*AssetsStorage, error) {
	const op = "storage.minio.New"

	endpoint, secure := normalizeEndpoint(cfg.S3.Endpoint)

	client, err := mclient.New(endpoint, &mclient.Options{
		Creds:  credentials.NewStaticV4(cfg.S3.RootUser, cfg.S3.RootPassword, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	exists, err := client.BucketExists(ctx, cfg.S3.Bucket)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !exists {
		return nil, fmt.Errorf("%s: bucket %q does not exist", op, cfg.S3.Bucket)
	}

	return &AssetsStorage{cfg: cfg, client: client}, nil
}

// normalizeEndpoint убирает схему из endpoint и выводит из неё флаг Secure.
func normalizeEndpoint(raw string) (string, bool) {
	endpoint := raw
	secure := strings.HasPrefix(endpoint, "https://")

	if u, err := url.Parse(endpoint); err == nil && u.Scheme != "" && u.Host != "" {
		endpoint = u.Host
		secure = u.Scheme == "https"
	}

	return endpoint, secure
}

// Проверка выполнения контракта верхнего уровня.
var _ storage.AssetLinker = (*AssetsStorage)(nil)
