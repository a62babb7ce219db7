package service

import (
	"context"

	"post_service/internal/domain/post/model"
	"post_service/internal/domain/post/repository"
	"post_service/internal/pkg/clients"
	"post_service/internal/pkg/config"
	"post_service/internal/pkg/worker"

	"github.com/stretchr/testify/mock"
)

// MockPostRepository is a mock of PostRepository
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(post *model.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(id string) (*model.Post, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepository) Update(post *model.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostRepository) UpdateFields(id string, fields map[string]interface{}) error {
	args := m.Called(id, fields)
	return args.Error(0)
}

func (m *MockPostRepository) Query(filter repository.QueryFilter, offset, limit int) ([]model.Post, int64, error) {
	args := m.Called(filter, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Post), args.Get(1).(int64), args.Error(2)
}

// MutateTx 在 mock 返回的帖子上执行 mutate，模拟行锁内的读改写
func (m *MockPostRepository) MutateTx(id string, mutate func(post *model.Post) error) (*model.Post, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	post := args.Get(0).(*model.Post)
	if err := mutate(post); err != nil {
		return nil, err
	}
	return post, nil
}

// MockSavedPostRepository is a mock of SavedPostRepository
type MockSavedPostRepository struct {
	mock.Mock
}

func (m *MockSavedPostRepository) Save(viewerID, postID string) error {
	args := m.Called(viewerID, postID)
	return args.Error(0)
}

func (m *MockSavedPostRepository) Unsave(viewerID, postID string) error {
	args := m.Called(viewerID, postID)
	return args.Error(0)
}

func (m *MockSavedPostRepository) Exists(viewerID, postID string) (bool, error) {
	args := m.Called(viewerID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSavedPostRepository) ExistsBatch(viewerID string, postIDs []string) (map[string]bool, error) {
	args := m.Called(viewerID, postIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bool), args.Error(1)
}

func (m *MockSavedPostRepository) ListByViewer(viewerID string, offset, limit int) ([]model.Post, int64, error) {
	args := m.Called(viewerID, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Post), args.Get(1).(int64), args.Error(2)
}

// MockSocialGraphClient is a mock of clients.SocialGraphClient
type MockSocialGraphClient struct {
	mock.Mock
}

func (m *MockSocialGraphClient) GetUser(ctx context.Context, userID string) (*clients.UserInfo, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.UserInfo), args.Error(1)
}

func (m *MockSocialGraphClient) GetFollowing(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockSocialGraphClient) GetFollowers(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockInteractionClient is a mock of clients.InteractionClient
type MockInteractionClient struct {
	mock.Mock
}

func (m *MockInteractionClient) GetCounts(ctx context.Context, postID, viewerID string) (*clients.InteractionCounts, error) {
	args := m.Called(postID, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.InteractionCounts), args.Error(1)
}

// newTestService 组装一个用于测试的 PostService，推送和媒体清理关闭
func newTestService(repo *MockPostRepository, saved *MockSavedPostRepository, graph *MockSocialGraphClient, interactions *MockInteractionClient) *PostService {
	dispatcher := worker.NewDispatcher(1, 16)
	dispatcher.Start()
	return NewPostService(repo, saved, graph, interactions, nil, nil, dispatcher, config.GraphErrorDeny)
}

func testPost(id, ownerID string) *model.Post {
	post := &model.Post{
		OwnerID:    ownerID,
		Username:   "tester",
		FullName:   "Test User",
		Content:    "hello world",
		Visibility: model.VisibilityPublic,
	}
	post.ID = id
	return post
}
