package repository

import (
	"errors"
	"time"

	"photoblog-backend/internal/post/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormPostRepository implements PostRepository using GORM
type gormPostRepository struct {
	db *gorm.DB
}

// NewGormPostRepository creates a new GORM-based PostRepository
func NewGormPostRepository(db *gorm.DB) PostRepository {
	return &gormPostRepository{db: db}
}

func (r *gormPostRepository) Create(post *domain.BlogPost) error {
	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	post.CreatedAt = time.Now()
	post.UpdatedAt = time.Now()
	return r.db.Create(post).Error
}

func (r *gormPostRepository) FindByID(id string) (*domain.BlogPost, error) {
	var post domain.BlogPost
	err := r.db.Where("id = ?", id).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (r *gormPostRepository) FindAll() ([]*domain.BlogPost, error) {
	var posts []*domain.BlogPost
	err := r.db.Order("created_at DESC").Find(&posts).Error
	return posts, err
}

func (r *gormPostRepository) Update(post *domain.BlogPost) error {
	post.UpdatedAt = time.Now()
	return r.db.Save(post).Error
}

func (r *gormPostRepository) Delete(id string) error {
	return r.db.Delete(&domain.BlogPost{}, "id = ?", id).Error
}
