package service

import (
	"context"
	"errors"
	"sort"
	"testing"

	"post_service/internal/domain/post/model"
	"post_service/internal/domain/post/repository"
	"post_service/internal/pkg/clients"
	"post_service/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestHomeFeed(t *testing.T) {
	ctx := context.Background()

	t.Run("Candidates are viewer plus following plus followers", func(t *testing.T) {
		repo := new(MockPostRepository)
		saved := new(MockSavedPostRepository)
		graph := new(MockSocialGraphClient)
		interactions := new(MockInteractionClient)
		svc := newTestService(repo, saved, graph, interactions)

		graph.On("GetFollowing", "viewer").Return([]string{"a", "b"}, nil)
		graph.On("GetFollowers", "viewer").Return([]string{"b", "c"}, nil)

		var captured repository.QueryFilter
		repo.On("Query", mock.MatchedBy(func(f repository.QueryFilter) bool {
			captured = f
			return true
		}), 0, 10).Return([]model.Post{}, int64(0), nil)
		saved.On("ExistsBatch", "viewer", mock.Anything).Return(map[string]bool{}, nil).Maybe()

		_, err := svc.HomeFeed(ctx, "viewer", utils.Pagination{Page: 1, Limit: 10})

		assert.NoError(t, err)
		owners := append([]string{}, captured.OwnerIDs...)
		sort.Strings(owners)
		assert.Equal(t, []string{"a", "b", "c", "viewer"}, owners)

		visible := append([]string{}, captured.VisibleOwnerIDs...)
		sort.Strings(visible)
		assert.Equal(t, []string{"a", "b", "viewer"}, visible)
		assert.False(t, captured.IncludeDeleted)
		assert.False(t, captured.IncludeModerated)
	})

	t.Run("Graph failures degrade to own posts only", func(t *testing.T) {
		repo := new(MockPostRepository)
		saved := new(MockSavedPostRepository)
		graph := new(MockSocialGraphClient)
		interactions := new(MockInteractionClient)
		svc := newTestService(repo, saved, graph, interactions)

		graph.On("GetFollowing", "viewer").Return(nil, errors.New("timeout"))
		graph.On("GetFollowers", "viewer").Return(nil, errors.New("timeout"))

		var captured repository.QueryFilter
		repo.On("Query", mock.MatchedBy(func(f repository.QueryFilter) bool {
			captured = f
			return true
		}), 0, 10).Return([]model.Post{}, int64(0), nil)

		_, err := svc.HomeFeed(ctx, "viewer", utils.Pagination{Page: 1, Limit: 10})

		assert.NoError(t, err)
		assert.Equal(t, []string{"viewer"}, captured.OwnerIDs)
	})

	t.Run("Invalid page is rejected before any query", func(t *testing.T) {
		repo := new(MockPostRepository)
		saved := new(MockSavedPostRepository)
		graph := new(MockSocialGraphClient)
		interactions := new(MockInteractionClient)
		svc := newTestService(repo, saved, graph, interactions)

		graph.On("GetFollowing", "viewer").Return([]string{}, nil)
		graph.On("GetFollowers", "viewer").Return([]string{}, nil)

		_, err := svc.HomeFeed(ctx, "viewer", utils.Pagination{Page: 0, Limit: 10})

		assert.ErrorIs(t, err, ErrInvalidInput)
		repo.AssertNotCalled(t, "Query", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestEnrichment(t *testing.T) {
	ctx := context.Background()

	t.Run("One failing lookup degrades that post only", func(t *testing.T) {
		repo := new(MockPostRepository)
		saved := new(MockSavedPostRepository)
		graph := new(MockSocialGraphClient)
		interactions := new(MockInteractionClient)
		svc := newTestService(repo, saved, graph, interactions)

		posts := []model.Post{*testPost("p1", "owner"), *testPost("p2", "owner")}
		graph.On("GetFollowing", "viewer").Return([]string{"owner"}, nil)
		repo.On("Query", mock.Anything, 0, 10).Return(posts, int64(2), nil)

		interactions.On("GetCounts", "p1", "viewer").Return(&clients.InteractionCounts{ReactionCount: 7, CommentCount: 2, IsLiked: true}, nil)
		interactions.On("GetCounts", "p2", "viewer").Return(nil, errors.New("deadline exceeded"))
		saved.On("ExistsBatch", "viewer", []string{"p1", "p2"}).Return(map[string]bool{"p2": true}, nil)

		result, err := svc.ListByOwner(ctx, "viewer", "owner", utils.Pagination{Page: 1, Limit: 10})

		assert.NoError(t, err)
		views := result.List.([]model.PostView)
		assert.Equal(t, int64(7), views[0].ReactionCount)
		assert.True(t, views[0].IsLiked)
		assert.Zero(t, views[1].ReactionCount)
		assert.Zero(t, views[1].CommentCount)
		assert.False(t, views[1].IsLiked)
		assert.True(t, views[1].IsSaved)
	})

	t.Run("Page metadata follows the totals", func(t *testing.T) {
		repo := new(MockPostRepository)
		saved := new(MockSavedPostRepository)
		graph := new(MockSocialGraphClient)
		interactions := new(MockInteractionClient)
		svc := newTestService(repo, saved, graph, interactions)

		graph.On("GetFollowing", "viewer").Return([]string{}, nil)
		repo.On("Query", mock.Anything, 10, 10).Return([]model.Post{*testPost("p1", "owner")}, int64(25), nil)
		interactions.On("GetCounts", "p1", "viewer").Return(&clients.InteractionCounts{}, nil)
		saved.On("ExistsBatch", "viewer", []string{"p1"}).Return(map[string]bool{}, nil)

		result, err := svc.ListByOwner(ctx, "viewer", "owner", utils.Pagination{Page: 2, Limit: 10})

		assert.NoError(t, err)
		assert.Equal(t, int64(25), result.Total)
		assert.Equal(t, 3, result.TotalPages)
		assert.True(t, result.HasNextPage)
		assert.True(t, result.HasPreviousPage)
	})
}

func TestSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty keyword is rejected", func(t *testing.T) {
		repo := new(MockPostRepository)
		saved := new(MockSavedPostRepository)
		graph := new(MockSocialGraphClient)
		interactions := new(MockInteractionClient)
		svc := newTestService(repo, saved, graph, interactions)

		_, err := svc.Search(ctx, "viewer", "", utils.Pagination{Page: 1, Limit: 10})

		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("Keyword lands in the store filter", func(t *testing.T) {
		repo := new(MockPostRepository)
		saved := new(MockSavedPostRepository)
		graph := new(MockSocialGraphClient)
		interactions := new(MockInteractionClient)
		svc := newTestService(repo, saved, graph, interactions)

		graph.On("GetFollowing", "viewer").Return([]string{}, nil)

		var captured repository.QueryFilter
		repo.On("Query", mock.MatchedBy(func(f repository.QueryFilter) bool {
			captured = f
			return true
		}), 0, 10).Return([]model.Post{}, int64(0), nil)

		_, err := svc.Search(ctx, "viewer", "sunset", utils.Pagination{Page: 1, Limit: 10})

		assert.NoError(t, err)
		assert.Equal(t, "sunset", captured.Keyword)
		assert.Empty(t, captured.OwnerIDs)
	})
}
