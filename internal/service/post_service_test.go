package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"microblog/internal/apperrors"
	"microblog/internal/model"
)

// MockPostRepository is a mock implementation of PostRepository.
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *model.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) Update(ctx context.Context, post *model.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, post *model.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) FindByID(ctx context.Context, id uint) (*model.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepository) ListNewestFirst(ctx context.Context) ([]model.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Post), args.Error(1)
}

func strPtr(s string) *string { return &s }

func fixturePost() *model.Post {
	return &model.Post{
		ID:        5,
		Title:     "original title",
		Content:   "original content",
		AuthorID:  1,
		CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Author:    model.User{ID: 1, Username: "alice"},
	}
}

func TestPostService_Create(t *testing.T) {
	mockRepo := new(MockPostRepository)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Post")).Return(nil)

	service := NewPostService(mockRepo, nil)
	author := &model.User{ID: 1, Username: "alice"}

	post, err := service.Create(context.Background(), author, "a title", "some content")
	assert.NoError(t, err)
	assert.NotNil(t, post)
	assert.Equal(t, uint(1), post.AuthorID)
	assert.Equal(t, "alice", post.Author.Username)
	assert.Equal(t, "a title", post.Title)

	mockRepo.AssertExpectations(t)
}

func TestPostService_Get_NotFound(t *testing.T) {
	mockRepo := new(MockPostRepository)
	mockRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

	service := NewPostService(mockRepo, nil)

	post, err := service.Get(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
	assert.Nil(t, post)
	mockRepo.AssertExpectations(t)
}

func TestPostService_Update(t *testing.T) {
	tests := []struct {
		name          string
		actor         *model.User
		title         *string
		content       *string
		setupMock     func(*MockPostRepository)
		expectedError error
		check         func(*testing.T, *model.Post)
	}{
		{
			name:    "partial update keeps absent fields",
			actor:   &model.User{ID: 1, Username: "alice"},
			title:   strPtr("new title"),
			content: nil,
			setupMock: func(m *MockPostRepository) {
				m.On("FindByID", mock.Anything, uint(5)).Return(fixturePost(), nil)
				m.On("Update", mock.Anything, mock.AnythingOfType("*model.Post")).Return(nil)
			},
			check: func(t *testing.T, post *model.Post) {
				assert.Equal(t, "new title", post.Title)
				assert.Equal(t, "original content", post.Content)
			},
		},
		{
			name:  "non-author is rejected",
			actor: &model.User{ID: 2, Username: "bob"},
			title: strPtr("hijack"),
			setupMock: func(m *MockPostRepository) {
				m.On("FindByID", mock.Anything, uint(5)).Return(fixturePost(), nil)
			},
			expectedError: apperrors.ErrNotPostAuthor,
		},
		{
			name:  "empty payload is rejected",
			actor: &model.User{ID: 1, Username: "alice"},
			setupMock: func(m *MockPostRepository) {
				m.On("FindByID", mock.Anything, uint(5)).Return(fixturePost(), nil)
			},
			expectedError: apperrors.ErrNoUpdateData,
		},
		{
			name:  "unknown post",
			actor: &model.User{ID: 1, Username: "alice"},
			title: strPtr("whatever"),
			setupMock: func(m *MockPostRepository) {
				m.On("FindByID", mock.Anything, uint(5)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrPostNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockPostRepository)
			tt.setupMock(mockRepo)

			service := NewPostService(mockRepo, nil)
			post, err := service.Update(context.Background(), tt.actor, 5, tt.title, tt.content)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, post)
				// The post must remain untouched on rejection.
				mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, post)
				tt.check(t, post)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestPostService_Delete(t *testing.T) {
	tests := []struct {
		name          string
		actor         *model.User
		setupMock     func(*MockPostRepository)
		expectedError error
	}{
		{
			name:  "author deletes own post",
			actor: &model.User{ID: 1, Username: "alice"},
			setupMock: func(m *MockPostRepository) {
				m.On("FindByID", mock.Anything, uint(5)).Return(fixturePost(), nil)
				m.On("Delete", mock.Anything, mock.AnythingOfType("*model.Post")).Return(nil)
			},
		},
		{
			name:  "non-author is rejected",
			actor: &model.User{ID: 2, Username: "bob"},
			setupMock: func(m *MockPostRepository) {
				m.On("FindByID", mock.Anything, uint(5)).Return(fixturePost(), nil)
			},
			expectedError: apperrors.ErrNotPostAuthor,
		},
		{
			name:  "unknown post",
			actor: &model.User{ID: 1, Username: "alice"},
			setupMock: func(m *MockPostRepository) {
				m.On("FindByID", mock.Anything, uint(5)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrPostNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockPostRepository)
			tt.setupMock(mockRepo)

			service := NewPostService(mockRepo, nil)
			err := service.Delete(context.Background(), tt.actor, 5)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestPostService_List(t *testing.T) {
	newest := model.Post{ID: 2, Title: "second", CreatedAt: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)}
	oldest := model.Post{ID: 1, Title: "first", CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}

	mockRepo := new(MockPostRepository)
	mockRepo.On("ListNewestFirst", mock.Anything).Return([]model.Post{newest, oldest}, nil)

	service := NewPostService(mockRepo, nil)
	posts, err := service.List(context.Background())
	assert.NoError(t, err)
	assert.Len(t, posts, 2)
	assert.True(t, posts[0].CreatedAt.After(posts[1].CreatedAt))
	mockRepo.AssertExpectations(t)
}
