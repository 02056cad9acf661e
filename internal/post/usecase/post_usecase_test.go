package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"photoblog-backend/internal/post/domain"
	subdomain "photoblog-backend/internal/subscription/domain"
	"photoblog-backend/pkg/logger"
)

type mockPostRepo struct {
	mock.Mock
}

func (m *mockPostRepo) Create(post *domain.BlogPost) error {
	args := m.Called(post)
	if args.Error(0) == nil && post.ID == "" {
		post.ID = "post-1"
	}
	return args.Error(0)
}

func (m *mockPostRepo) FindByID(id string) (*domain.BlogPost, error) {
	args := m.Called(id)
	if post := args.Get(0); post != nil {
		return post.(*domain.BlogPost), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPostRepo) FindAll() ([]*domain.BlogPost, error) {
	args := m.Called()
	if posts := args.Get(0); posts != nil {
		return posts.([]*domain.BlogPost), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPostRepo) Update(post *domain.BlogPost) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *mockPostRepo) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) NotifyOfNewPost(ctx context.Context, post subdomain.PostRef) subdomain.DispatchResult {
	args := m.Called(ctx, post)
	return args.Get(0).(subdomain.DispatchResult)
}

func TestCreatePost_NotifiesSubscribersOnce(t *testing.T) {
	repo := new(mockPostRepo)
	notifier := new(mockNotifier)
	repo.On("Create", mock.Anything).Return(nil)
	notifier.On("NotifyOfNewPost", mock.Anything, mock.MatchedBy(func(ref subdomain.PostRef) bool {
		return ref.ID == "post-1" && ref.Title == "Dunes at Dawn"
	})).Return(subdomain.DispatchResult{Success: true, SentCount: 3}).Once()

	uc := NewPostUsecase(repo, notifier, logger.NewTestLogger(t))
	post, err := uc.CreatePost(context.Background(), "Dunes at Dawn", "Sand and light.", "some content", nil)

	require.NoError(t, err)
	assert.Equal(t, "post-1", post.ID)
	notifier.AssertExpectations(t)
	notifier.AssertNumberOfCalls(t, "NotifyOfNewPost", 1)
}

func TestCreatePost_NotificationFailureDoesNotFailCreate(t *testing.T) {
	repo := new(mockPostRepo)
	notifier := new(mockNotifier)
	repo.On("Create", mock.Anything).Return(nil)
	notifier.On("NotifyOfNewPost", mock.Anything, mock.Anything).Return(subdomain.DispatchResult{
		Success: false,
		Errors:  []string{"smtp down"},
	})

	uc := NewPostUsecase(repo, notifier, logger.NewTestLogger(t))
	post, err := uc.CreatePost(context.Background(), "Dunes", "", "content", nil)

	require.NoError(t, err)
	assert.NotNil(t, post)
}

func TestCreatePost_StoreFailureSkipsNotification(t *testing.T) {
	repo := new(mockPostRepo)
	notifier := new(mockNotifier)
	repo.On("Create", mock.Anything).Return(errors.New("insert failed"))

	uc := NewPostUsecase(repo, notifier, logger.NewTestLogger(t))
	post, err := uc.CreatePost(context.Background(), "Dunes", "", "content", nil)

	assert.Error(t, err)
	assert.Nil(t, post)
	notifier.AssertNotCalled(t, "NotifyOfNewPost", mock.Anything, mock.Anything)
}

func TestCreatePost_NilNotifier(t *testing.T) {
	repo := new(mockPostRepo)
	repo.On("Create", mock.Anything).Return(nil)

	uc := NewPostUsecase(repo, nil, logger.NewTestLogger(t))
	post, err := uc.CreatePost(context.Background(), "Dunes", "", "content", nil)

	require.NoError(t, err)
	assert.NotNil(t, post)
}

func TestCalculateReadTime(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"empty content still reads one minute", "", "1 min read"},
		{"short content rounds up", "just a few words here", "1 min read"},
		{"exactly 200 words", strings.Repeat("word ", 200), "1 min read"},
		{"201 words rounds up to 2", strings.Repeat("word ", 201), "2 min read"},
		{"600 words", strings.Repeat("word ", 600), "3 min read"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calculateReadTime(tt.content))
		})
	}
}

func TestUpdatePost_RecomputesReadTimeOnContentChange(t *testing.T) {
	repo := new(mockPostRepo)
	existing := &domain.BlogPost{
		ID:       "post-1",
		Title:    "Dunes",
		Content:  "short",
		ReadTime: "1 min read",
	}
	repo.On("FindByID", "post-1").Return(existing, nil)
	repo.On("Update", mock.Anything).Return(nil)

	longContent := strings.Repeat("word ", 450)
	uc := NewPostUsecase(repo, nil, logger.NewTestLogger(t))
	post, err := uc.UpdatePost("post-1", PostUpdateRequest{Content: &longContent})

	require.NoError(t, err)
	assert.Equal(t, "3 min read", post.ReadTime)
}

func TestUpdatePost_NotFound(t *testing.T) {
	repo := new(mockPostRepo)
	repo.On("FindByID", "missing").Return(nil, nil)

	uc := NewPostUsecase(repo, nil, logger.NewTestLogger(t))
	post, err := uc.UpdatePost("missing", PostUpdateRequest{})

	assert.ErrorIs(t, err, ErrPostNotFound)
	assert.Nil(t, post)
}

func TestDeletePost_NotFound(t *testing.T) {
	repo := new(mockPostRepo)
	repo.On("FindByID", "missing").Return(nil, nil)

	uc := NewPostUsecase(repo, nil, logger.NewTestLogger(t))
	err := uc.DeletePost("missing")

	assert.ErrorIs(t, err, ErrPostNotFound)
	repo.AssertNotCalled(t, "Delete", mock.Anything)
}
