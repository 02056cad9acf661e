package usecase

import (
	"context"

	"photoblog-backend/internal/post/domain"
	subdomain "photoblog-backend/internal/subscription/domain"
)

// Notifier is the slice of the subscription service the post flow needs:
// fire one notification per published post.
type Notifier interface {
	NotifyOfNewPost(ctx context.Context, post subdomain.PostRef) subdomain.DispatchResult
}

// PostUpdateRequest carries optional field updates for a post
type PostUpdateRequest struct {
	Title   *string
	Excerpt *string
	Content *string
	Images  *[]string
}

// PostUsecase defines blog post business operations
type PostUsecase interface {
	CreatePost(ctx context.Context, title, excerpt, content string, images []string) (*domain.BlogPost, error)
	GetPostByID(id string) (*domain.BlogPost, error)
	ListPosts() ([]*domain.BlogPost, error)
	UpdatePost(id string, updates PostUpdateRequest) (*domain.BlogPost, error)
	DeletePost(id string) error
}
