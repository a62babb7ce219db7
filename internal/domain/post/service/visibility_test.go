package service

import (
	"context"
	"errors"
	"testing"

	"post_service/internal/domain/post/model"
	"post_service/internal/pkg/clients"
	"post_service/internal/pkg/config"
	"post_service/internal/pkg/worker"

	"github.com/stretchr/testify/assert"
)

func TestCanView(t *testing.T) {
	follows := func(ids ...string) func(string) bool {
		set := make(map[string]bool)
		for _, id := range ids {
			set[id] = true
		}
		return func(ownerID string) bool { return set[ownerID] }
	}

	t.Run("Public post visible to anyone", func(t *testing.T) {
		post := testPost("p1", "owner")
		assert.True(t, CanView(post, "stranger", follows()))
	})

	t.Run("Private post visible to owner", func(t *testing.T) {
		post := testPost("p1", "owner")
		post.Visibility = model.VisibilityPrivate
		assert.True(t, CanView(post, "owner", follows()))
	})

	t.Run("Private post visible to follower of owner", func(t *testing.T) {
		post := testPost("p1", "owner")
		post.Visibility = model.VisibilityPrivate
		assert.True(t, CanView(post, "viewer", follows("owner")))
	})

	t.Run("Private post hidden from non-follower", func(t *testing.T) {
		post := testPost("p1", "owner")
		post.Visibility = model.VisibilityPrivate
		assert.False(t, CanView(post, "viewer", follows("someone-else")))
	})
}

func TestGetVisibility(t *testing.T) {
	ctx := context.Background()

	t.Run("Private post allowed for follower", func(t *testing.T) {
		repo := new(MockPostRepository)
		saved := new(MockSavedPostRepository)
		graph := new(MockSocialGraphClient)
		interactions := new(MockInteractionClient)
		svc := newTestService(repo, saved, graph, interactions)

		post := testPost("p1", "owner")
		post.Visibility = model.VisibilityPrivate
		repo.On("GetByID", "p1").Return(post, nil)
		graph.On("GetFollowing", "viewer").Return([]string{"owner"}, nil)
		interactions.On("GetCounts", "p1", "viewer").Return(&clients.InteractionCounts{ReactionCount: 3, CommentCount: 1, IsLiked: true}, nil)
		saved.On("Exists", "viewer", "p1").Return(false, nil)

		view, err := svc.Get(ctx, "viewer", "p1")

		assert.NoError(t, err)
		assert.Equal(t, int64(3), view.ReactionCount)
		assert.True(t, view.IsLiked)
	})

	t.Run("Private post forbidden for non-follower", func(t *testing.T) {
		repo := new(MockPostRepository)
		saved := new(MockSavedPostRepository)
		graph := new(MockSocialGraphClient)
		interactions := new(MockInteractionClient)
		svc := newTestService(repo, saved, graph, interactions)

		post := testPost("p1", "owner")
		post.Visibility = model.VisibilityPrivate
		repo.On("GetByID", "p1").Return(post, nil)
		graph.On("GetFollowing", "viewer").Return([]string{"other"}, nil)

		_, err := svc.Get(ctx, "viewer", "p1")

		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("Graph failure denies under deny policy", func(t *testing.T) {
		repo := new(MockPostRepository)
		saved := new(MockSavedPostRepository)
		graph := new(MockSocialGraphClient)
		interactions := new(MockInteractionClient)
		svc := newTestService(repo, saved, graph, interactions)

		post := testPost("p1", "owner")
		post.Visibility = model.VisibilityPrivate
		repo.On("GetByID", "p1").Return(post, nil)
		graph.On("GetFollowing", "viewer").Return(nil, errors.New("connection refused"))

		_, err := svc.Get(ctx, "viewer", "p1")

		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("Graph failure surfaces under unavailable policy", func(t *testing.T) {
		repo := new(MockPostRepository)
		saved := new(MockSavedPostRepository)
		graph := new(MockSocialGraphClient)
		interactions := new(MockInteractionClient)

		dispatcher := worker.NewDispatcher(1, 16)
		dispatcher.Start()
		svc := NewPostService(repo, saved, graph, interactions, nil, nil, dispatcher, config.GraphErrorUnavailable)

		post := testPost("p1", "owner")
		post.Visibility = model.VisibilityPrivate
		repo.On("GetByID", "p1").Return(post, nil)
		graph.On("GetFollowing", "viewer").Return(nil, errors.New("connection refused"))

		_, err := svc.Get(ctx, "viewer", "p1")

		assert.ErrorIs(t, err, ErrGraphDown)
	})

	t.Run("Deleted post reads as not found", func(t *testing.T) {
		repo := new(MockPostRepository)
		saved := new(MockSavedPostRepository)
		graph := new(MockSocialGraphClient)
		interactions := new(MockInteractionClient)
		svc := newTestService(repo, saved, graph, interactions)

		post := testPost("p1", "owner")
		post.Deleted = true
		repo.On("GetByID", "p1").Return(post, nil)

		_, err := svc.Get(ctx, "viewer", "p1")

		assert.ErrorIs(t, err, ErrPostNotFound)
	})
}
