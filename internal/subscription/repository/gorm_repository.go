package repository

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"photoblog-backend/internal/subscription/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormSubscriberRepository implements SubscriberRepository on the
// email_subscribers table. Uniqueness is enforced by the database; a
// constraint violation surfaces as domain.ErrDuplicateSubscriber.
type gormSubscriberRepository struct {
	db *gorm.DB
}

// NewGormSubscriberRepository creates a postgres-backed subscriber repository.
func NewGormSubscriberRepository(db *gorm.DB) SubscriberRepository {
	return &gormSubscriberRepository{db: db}
}

func (r *gormSubscriberRepository) Create(sub *domain.Subscriber) error {
	if sub.ID == "" {
		sub.ID = uuid.New().String()
	}
	if sub.UnsubscribeToken == "" {
		token, err := generateToken()
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
		}
		sub.UnsubscribeToken = token
	}
	sub.Email = canonicalEmail(sub.Email)
	sub.CreatedAt = time.Now()
	sub.UpdatedAt = time.Now()

	if err := r.db.Create(sub).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateSubscriber
		}
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *gormSubscriberRepository) Update(sub *domain.Subscriber) error {
	sub.UpdatedAt = time.Now()
	if err := r.db.Save(sub).Error; err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *gormSubscriberRepository) FindByEmail(email string) (*domain.Subscriber, error) {
	var sub domain.Subscriber
	err := r.db.Where("email = ?", canonicalEmail(email)).First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return &sub, nil
}

func (r *gormSubscriberRepository) FindByToken(token string) (*domain.Subscriber, error) {
	var sub domain.Subscriber
	err := r.db.Where("unsubscribe_token = ?", token).First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return &sub, nil
}

func (r *gormSubscriberRepository) SetActive(id string, active bool) error {
	result := r.db.Model(&domain.Subscriber{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_active": active, "updated_at": time.Now()})
	if result.Error != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrSubscriberNotFound
	}
	return nil
}

func (r *gormSubscriberRepository) Remove(id string) error {
	result := r.db.Where("id = ?", id).Delete(&domain.Subscriber{})
	if result.Error != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrSubscriberNotFound
	}
	return nil
}

func (r *gormSubscriberRepository) List(activeOnly bool) ([]*domain.Subscriber, error) {
	query := r.db.Order("created_at DESC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var subs []*domain.Subscriber
	if err := query.Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return subs, nil
}

func (r *gormSubscriberRepository) Stats() (domain.Stats, error) {
	var stats domain.Stats
	if err := r.db.Model(&domain.Subscriber{}).Count(&stats.Total).Error; err != nil {
		return domain.Stats{}, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	err := r.db.Model(&domain.Subscriber{}).Where("is_active = ?", true).Count(&stats.Active).Error
	if err != nil {
		return domain.Stats{}, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return stats, nil
}

func canonicalEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// generateToken returns an unguessable per-subscriber unsubscribe secret.
func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
