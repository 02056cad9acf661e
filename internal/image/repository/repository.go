package repository

import (
	"photoblog-backend/internal/image/domain"
)

// ImageRepository defines the interface for image metadata access
type ImageRepository interface {
	Create(img *domain.BlogImage) error
	FindByID(id string) (*domain.BlogImage, error)
	FindAll(limit, offset int) ([]*domain.BlogImage, error)
	Update(img *domain.BlogImage) error
	Delete(id string) error
}
