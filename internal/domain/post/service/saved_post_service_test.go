package service

import (
	"context"
	"testing"

	"post_service/internal/domain/post/model"
	"post_service/internal/pkg/clients"
	"post_service/pkg/utils"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestSavePost(t *testing.T) {
	ctx := context.Background()

	t.Run("Saving an existing post succeeds", func(t *testing.T) {
		repo := new(MockPostRepository)
		saved := new(MockSavedPostRepository)
		graph := new(MockSocialGraphClient)
		interactions := new(MockInteractionClient)
		svc := newTestService(repo, saved, graph, interactions)

		repo.On("GetByID", "p1").Return(testPost("p1", "owner"), nil)
		saved.On("Save", "viewer", "p1").Return(nil)

		assert.NoError(t, svc.SavePost(ctx, "viewer", "p1"))
		saved.AssertExpectations(t)
	})

	t.Run("Saving a missing post is not found", func(t *testing.T) {
		repo := new(MockPostRepository)
		saved := new(MockSavedPostRepository)
		graph := new(MockSocialGraphClient)
		interactions := new(MockInteractionClient)
		svc := newTestService(repo, saved, graph, interactions)

		repo.On("GetByID", "missing").Return(nil, gorm.ErrRecordNotFound)

		err := svc.SavePost(ctx, "viewer", "missing")

		assert.ErrorIs(t, err, ErrPostNotFound)
	})

	t.Run("Unsave without a save still succeeds", func(t *testing.T) {
		repo := new(MockPostRepository)
		saved := new(MockSavedPostRepository)
		graph := new(MockSocialGraphClient)
		interactions := new(MockInteractionClient)
		svc := newTestService(repo, saved, graph, interactions)

		saved.On("Unsave", "viewer", "p1").Return(nil)

		assert.NoError(t, svc.UnsavePost(ctx, "viewer", "p1"))
	})
}

func TestListSaved(t *testing.T) {
	ctx := context.Background()

	t.Run("Saved posts come back enriched and marked saved", func(t *testing.T) {
		repo := new(MockPostRepository)
		saved := new(MockSavedPostRepository)
		graph := new(MockSocialGraphClient)
		interactions := new(MockInteractionClient)
		svc := newTestService(repo, saved, graph, interactions)

		posts := []model.Post{*testPost("p1", "owner")}
		// total 统计全部收藏关系，哪怕目标帖已不可见
		saved.On("ListByViewer", "viewer", 0, 10).Return(posts, int64(3), nil)
		interactions.On("GetCounts", "p1", "viewer").Return(&clients.InteractionCounts{ReactionCount: 4}, nil)
		saved.On("ExistsBatch", "viewer", []string{"p1"}).Return(map[string]bool{}, nil)

		result, err := svc.ListSaved(ctx, "viewer", utils.Pagination{Page: 1, Limit: 10})

		assert.NoError(t, err)
		assert.Equal(t, int64(3), result.Total)
		views := result.List.([]model.PostView)
		assert.Len(t, views, 1)
		assert.True(t, views[0].IsSaved)
		assert.Equal(t, int64(4), views[0].ReactionCount)
	})

	t.Run("Invalid pagination is rejected", func(t *testing.T) {
		repo := new(MockPostRepository)
		saved := new(MockSavedPostRepository)
		graph := new(MockSocialGraphClient)
		interactions := new(MockInteractionClient)
		svc := newTestService(repo, saved, graph, interactions)

		_, err := svc.ListSaved(ctx, "viewer", utils.Pagination{Page: 1, Limit: 500})

		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
