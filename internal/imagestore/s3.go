// Package imagestore загружает картинки профиля в S3-совместимое хранилище (MinIO).
package imagestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/notes-keeper/internal/config"
)

// Store хранит настроенный S3-клиент и параметры бакета.
type Store struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

// New собирает S3-клиент со статическими ключами и базовым endpoint из конфига.
func New(ctx context.Context, cfg config.ImageStore) (*Store, error) {
	const op = "imagestore.New"

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return &Store{
		client:        client,
		bucket:        cfg.S3Bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}, nil
}

// storageKey генерирует уникальный ключ объекта вида profiles/2025/9/1/<uuid><ext>.
func storageKey(ext string) string {
	d := time.Now()
	return fmt.Sprintf("profiles/%d/%d/%d/%v%s", d.Year(), int(d.Month()), d.Day(), uuid.New(), ext)
}

// Upload загружает локальный файл в бакет и возвращает публичный URL объекта.
func (s *Store) Upload(ctx context.Context, localPath, contentType string) (string, error) {
	const op = "imagestore.Upload"

	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = f.Close()
	}()

	key := storageKey(filepath.Ext(localPath))
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return s.publicBaseURL + "/" + key, nil
}
