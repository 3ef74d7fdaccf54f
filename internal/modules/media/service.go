// Package media is the admin media library: validated uploads to local disk
// or an S3-compatible bucket, plus listing and removal.
package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/atelier-studio/core/internal/config"
	"github.com/atelier-studio/core/internal/models"
	"github.com/atelier-studio/core/internal/pkg/pagination"
	"github.com/atelier-studio/core/internal/pkg/response"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNotFound means the referenced media asset does not exist.
var ErrNotFound = errors.New("media asset not found")

// Service provides media library operations.
type Service struct {
	db       *gorm.DB
	cfg      *config.AppConfig
	uploader *s3Uploader
	logger   *zap.Logger
}

func NewService(db *gorm.DB, cfg *config.AppConfig, logger *zap.Logger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{db: db, cfg: cfg, logger: logger}
	if cfg.S3.Enable {
		uploader, err := newS3Uploader(cfg.S3)
		if err != nil {
			return nil, err
		}
		s.uploader = uploader
	}
	return s, nil
}

// Upload validates the payload and stores it, preferring the S3 bucket when
// one is configured and falling back to the local static directory.
func (s *Service) Upload(ctx context.Context, originalName string, payload []byte, declaredType string) (*models.MediaAssetModel, error) {
	if err := validateUpload(originalName, int64(len(payload)), s.cfg.Media.AllowedFormats, s.cfg.Media.MaxSizeMB); err != nil {
		return nil, err
	}

	contentType := detectContentType(originalName, payload, declaredType)
	width, height := imageDimensions(payload)

	asset := models.MediaAssetModel{
		FileName:    buildFileName(originalName),
		ContentType: contentType,
		Size:        int64(len(payload)),
		Width:       width,
		Height:      height,
	}

	if s.uploader != nil {
		key := renderObjectKey(s.cfg.S3.PathTemplate, originalName, payload, time.Now())
		publicURL, err := s.uploader.Upload(ctx, key, payload, contentType)
		if err != nil {
			return nil, err
		}
		asset.Storage = "s3"
		asset.FileURL = publicURL
	} else {
		dir := filepath.Join(s.cfg.StaticDir, "uploads")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create upload dir: %w", err)
		}
		if err := os.WriteFile(filepath.Join(dir, asset.FileName), payload, 0o644); err != nil {
			return nil, fmt.Errorf("write upload: %w", err)
		}
		asset.Storage = "local"
		asset.FileURL = "/uploads/" + asset.FileName
	}

	if err := s.db.Create(&asset).Error; err != nil {
		return nil, err
	}
	s.logger.Info("media uploaded",
		zap.String("file", asset.FileName),
		zap.String("storage", asset.Storage),
		zap.Int64("size", asset.Size))
	return &asset, nil
}

// List returns assets newest-first.
func (s *Service) List(page pagination.Query) ([]models.MediaAssetModel, response.Pagination, error) {
	tx := s.db.Model(&models.MediaAssetModel{}).Order("created_at DESC")
	var assets []models.MediaAssetModel
	p, err := pagination.Paginate(tx, page, &assets)
	if err != nil {
		return nil, response.Pagination{}, err
	}
	return assets, p, nil
}

// Delete removes the record and, for local assets, the file on disk. A
// missing file is not an error; the record is the source of truth.
func (s *Service) Delete(id string) error {
	var asset models.MediaAssetModel
	err := s.db.Where("id = ?", id).First(&asset).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if err := s.db.Delete(&models.MediaAssetModel{}, "id = ?", id).Error; err != nil {
		return err
	}

	if asset.Storage == "local" {
		if name := safeName(asset.FileName); name != "" {
			if err := os.Remove(filepath.Join(s.cfg.StaticDir, "uploads", name)); err != nil && !os.IsNotExist(err) {
				s.logger.Warn("remove upload failed", zap.String("file", name), zap.Error(err))
			}
		}
	}
	return nil
}

// imageDimensions decodes just the header of known raster formats. Formats
// the stdlib cannot size (svg, webp, avif) report zero.
func imageDimensions(payload []byte) (int, int) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(payload))
	if err != nil {
		return 0, 0
	}
	return cfg.Width, cfg.Height
}
