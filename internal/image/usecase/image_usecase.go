package usecase

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"path/filepath"
	"strings"
	"time"

	"photoblog-backend/internal/image/domain"
	"photoblog-backend/internal/image/repository"
	"photoblog-backend/pkg/logger"
	"photoblog-backend/pkg/storage"
)

var (
	// ErrImageNotFound reports an unknown image id.
	ErrImageNotFound = errors.New("image not found")
	// ErrInvalidImage reports a rejected upload (type or size).
	ErrInvalidImage = errors.New("invalid image file")
)

var allowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// MetadataUpdate carries optional metadata field updates
type MetadataUpdate struct {
	AltText *string
	Caption *string
}

// ImageUsecase defines image upload and metadata operations
type ImageUsecase interface {
	Upload(originalName, mimeType string, size int64, r io.Reader) (*domain.BlogImage, error)
	ListImages(limit, offset int) ([]*domain.BlogImage, error)
	UpdateMetadata(id string, updates MetadataUpdate) (*domain.BlogImage, error)
	DeleteImage(id string) error
}

// imageUsecase implements ImageUsecase
type imageUsecase struct {
	imageRepo   repository.ImageRepository
	files       storage.FileStore
	maxFileSize int64
	logger      logger.Logger
}

// NewImageUsecase creates a new instance of imageUsecase
func NewImageUsecase(imageRepo repository.ImageRepository, files storage.FileStore, maxSizeMB int, log logger.Logger) ImageUsecase {
	if maxSizeMB <= 0 {
		maxSizeMB = 50
	}
	return &imageUsecase{
		imageRepo:   imageRepo,
		files:       files,
		maxFileSize: int64(maxSizeMB) * 1024 * 1024,
		logger:      log,
	}
}

// Upload validates the file, writes it to the store, and records metadata.
// If the metadata insert fails the stored file is cleaned up again.
func (u *imageUsecase) Upload(originalName, mimeType string, size int64, r io.Reader) (*domain.BlogImage, error) {
	if !allowedMimeTypes[mimeType] {
		return nil, fmt.Errorf("%w: unsupported type %s", ErrInvalidImage, mimeType)
	}
	if size > u.maxFileSize {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", ErrInvalidImage, u.maxFileSize)
	}

	filename := generateFilename(originalName)
	path, err := u.files.Save(filename, io.LimitReader(r, u.maxFileSize))
	if err != nil {
		return nil, err
	}

	img := &domain.BlogImage{
		Filename:     filename,
		OriginalName: originalName,
		StoragePath:  path,
		PublicURL:    u.files.PublicURL(path),
		FileSize:     size,
		MimeType:     mimeType,
	}

	if err := u.imageRepo.Create(img); err != nil {
		if cleanupErr := u.files.Remove(path); cleanupErr != nil {
			u.logger.Warn("failed to clean up orphaned upload", map[string]interface{}{
				"path":  path,
				"error": cleanupErr.Error(),
			})
		}
		return nil, err
	}

	u.logger.Info("image uploaded", map[string]interface{}{
		"id":       img.ID,
		"filename": filename,
		"size":     size,
	})
	return img, nil
}

func (u *imageUsecase) ListImages(limit, offset int) ([]*domain.BlogImage, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return u.imageRepo.FindAll(limit, offset)
}

func (u *imageUsecase) UpdateMetadata(id string, updates MetadataUpdate) (*domain.BlogImage, error) {
	img, err := u.imageRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if img == nil {
		return nil, ErrImageNotFound
	}

	if updates.AltText != nil {
		img.AltText = *updates.AltText
	}
	if updates.Caption != nil {
		img.Caption = *updates.Caption
	}

	if err := u.imageRepo.Update(img); err != nil {
		return nil, err
	}
	return img, nil
}

// DeleteImage removes the metadata row and the stored file together.
func (u *imageUsecase) DeleteImage(id string) error {
	img, err := u.imageRepo.FindByID(id)
	if err != nil {
		return err
	}
	if img == nil {
		return ErrImageNotFound
	}

	if err := u.imageRepo.Delete(id); err != nil {
		return err
	}
	return u.files.Remove(img.StoragePath)
}

func generateFilename(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%d-%06d%s", time.Now().UnixMilli(), rand.Intn(1000000), ext)
}
