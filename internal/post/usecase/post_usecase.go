package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"photoblog-backend/internal/post/domain"
	"photoblog-backend/internal/post/repository"
	subdomain "photoblog-backend/internal/subscription/domain"
	"photoblog-backend/pkg/logger"
)

const wordsPerMinute = 200

// ErrPostNotFound reports an unknown post id.
var ErrPostNotFound = errors.New("post not found")

// postUsecase implements PostUsecase
type postUsecase struct {
	postRepo repository.PostRepository
	notifier Notifier
	logger   logger.Logger
}

// NewPostUsecase creates a new instance of postUsecase
func NewPostUsecase(postRepo repository.PostRepository, notifier Notifier, log logger.Logger) PostUsecase {
	return &postUsecase{
		postRepo: postRepo,
		notifier: notifier,
		logger:   log,
	}
}

// CreatePost stores the post and then notifies subscribers. The notification
// is best-effort: its failure is logged and discarded, never rolled back into
// the already-committed post.
func (u *postUsecase) CreatePost(ctx context.Context, title, excerpt, content string, images []string) (*domain.BlogPost, error) {
	post := &domain.BlogPost{
		Title:    title,
		Excerpt:  excerpt,
		Content:  content,
		Images:   images,
		ReadTime: calculateReadTime(content),
	}

	if err := u.postRepo.Create(post); err != nil {
		return nil, err
	}

	if u.notifier != nil {
		result := u.notifier.NotifyOfNewPost(ctx, subdomain.PostRef{
			ID:      post.ID,
			Title:   post.Title,
			Excerpt: post.Excerpt,
		})
		if !result.Success {
			u.logger.Warn("subscriber notification failed for new post", map[string]interface{}{
				"post_id": post.ID,
				"errors":  result.Errors,
			})
		} else {
			u.logger.Info("subscribers notified of new post", map[string]interface{}{
				"post_id":    post.ID,
				"sent_count": result.SentCount,
			})
		}
	}

	return post, nil
}

func (u *postUsecase) GetPostByID(id string) (*domain.BlogPost, error) {
	post, err := u.postRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

func (u *postUsecase) ListPosts() ([]*domain.BlogPost, error) {
	return u.postRepo.FindAll()
}

func (u *postUsecase) UpdatePost(id string, updates PostUpdateRequest) (*domain.BlogPost, error) {
	post, err := u.GetPostByID(id)
	if err != nil {
		return nil, err
	}

	if updates.Title != nil {
		post.Title = *updates.Title
	}
	if updates.Excerpt != nil {
		post.Excerpt = *updates.Excerpt
	}
	if updates.Content != nil {
		post.Content = *updates.Content
		post.ReadTime = calculateReadTime(post.Content)
	}
	if updates.Images != nil {
		post.Images = *updates.Images
	}

	if err := u.postRepo.Update(post); err != nil {
		return nil, err
	}
	return post, nil
}

func (u *postUsecase) DeletePost(id string) error {
	post, err := u.GetPostByID(id)
	if err != nil {
		return err
	}
	return u.postRepo.Delete(post.ID)
}

func calculateReadTime(content string) string {
	words := len(strings.Fields(content))
	minutes := int(math.Ceil(float64(words) / wordsPerMinute))
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}
