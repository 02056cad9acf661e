package repository

import (
	"errors"
	"time"

	"photoblog-backend/internal/image/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormImageRepository implements ImageRepository using GORM
type gormImageRepository struct {
	db *gorm.DB
}

// NewGormImageRepository creates a new GORM-based ImageRepository
func NewGormImageRepository(db *gorm.DB) ImageRepository {
	return &gormImageRepository{db: db}
}

func (r *gormImageRepository) Create(img *domain.BlogImage) error {
	if img.ID == "" {
		img.ID = uuid.New().String()
	}
	img.CreatedAt = time.Now()
	img.UpdatedAt = time.Now()
	return r.db.Create(img).Error
}

func (r *gormImageRepository) FindByID(id string) (*domain.BlogImage, error) {
	var img domain.BlogImage
	err := r.db.Where("id = ?", id).First(&img).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &img, nil
}

func (r *gormImageRepository) FindAll(limit, offset int) ([]*domain.BlogImage, error) {
	var imgs []*domain.BlogImage
	err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&imgs).Error
	return imgs, err
}

func (r *gormImageRepository) Update(img *domain.BlogImage) error {
	img.UpdatedAt = time.Now()
	return r.db.Save(img).Error
}

func (r *gormImageRepository) Delete(id string) error {
	return r.db.Delete(&domain.BlogImage{}, "id = ?", id).Error
}
