package repository

import (
	"photoblog-backend/internal/post/domain"
)

// PostRepository defines the interface for blog post data access
type PostRepository interface {
	// Create creates a new post
	Create(post *domain.BlogPost) error

	// FindByID finds a post by its ID
	FindByID(id string) (*domain.BlogPost, error)

	// FindAll returns all posts, newest first
	FindAll() ([]*domain.BlogPost, error)

	// Update updates an existing post
	Update(post *domain.BlogPost) error

	// Delete deletes a post by ID
	Delete(id string) error
}
