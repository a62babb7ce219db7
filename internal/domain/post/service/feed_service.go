package service

import (
	"context"
	"sync"

	"post_service/internal/domain/post/model"
	"post_service/internal/domain/post/repository"
	"post_service/pkg/logger"
	"post_service/pkg/metrics"
	"post_service/pkg/utils"

	"go.uber.org/zap"
)

// ListByOwner 某个用户的帖子列表。私密帖子只在 viewer 是作者本人
// 或作者的关注者时返回。
func (s *PostService) ListByOwner(ctx context.Context, viewerID, ownerID string, page utils.Pagination) (*utils.PageResult, error) {
	filter := repository.QueryFilter{
		OwnerIDs:        []string{ownerID},
		VisibleOwnerIDs: s.visibleOwners(ctx, viewerID),
	}
	return s.assemblePage(ctx, viewerID, filter, page)
}

// HomeFeed 首页信息流：自己、关注的人和关注自己的人发的帖子。
// 两次社交关系查询并发发出，失败按空列表处理。
func (s *PostService) HomeFeed(ctx context.Context, viewerID string, page utils.Pagination) (*utils.PageResult, error) {
	var (
		following, followers []string
		wg                   sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		var err error
		if following, err = s.graph.GetFollowing(ctx, viewerID); err != nil {
			logger.WarnBestEffort("feed: get following", err, zap.String("viewerID", viewerID))
			following = nil
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if followers, err = s.graph.GetFollowers(ctx, viewerID); err != nil {
			logger.WarnBestEffort("feed: get followers", err, zap.String("viewerID", viewerID))
			followers = nil
		}
	}()
	wg.Wait()

	candidates := make([]string, 0, len(following)+len(followers)+1)
	seen := make(map[string]bool, len(following)+len(followers)+1)
	for _, id := range append(append([]string{viewerID}, following...), followers...) {
		if !seen[id] {
			seen[id] = true
			candidates = append(candidates, id)
		}
	}

	filter := repository.QueryFilter{
		OwnerIDs:        candidates,
		VisibleOwnerIDs: appendUnique(following, viewerID),
	}
	return s.assemblePage(ctx, viewerID, filter, page)
}

// TaggedIn viewer 被 @ 到的帖子列表
func (s *PostService) TaggedIn(ctx context.Context, viewerID string, page utils.Pagination) (*utils.PageResult, error) {
	filter := repository.QueryFilter{
		TaggedUser:      viewerID,
		VisibleOwnerIDs: s.visibleOwners(ctx, viewerID),
	}
	return s.assemblePage(ctx, viewerID, filter, page)
}

// Search 按关键词搜索帖子。关键词与提取规则一致：小写匹配。
func (s *PostService) Search(ctx context.Context, viewerID, keyword string, page utils.Pagination) (*utils.PageResult, error) {
	if keyword == "" {
		return nil, ErrInvalidInput
	}
	filter := repository.QueryFilter{
		Keyword:         keyword,
		VisibleOwnerIDs: s.visibleOwners(ctx, viewerID),
	}
	return s.assemblePage(ctx, viewerID, filter, page)
}

// assemblePage 四种列表查询共用的分页组装管线：
// 查询+计数、逐帖互动信息填充、分页元数据计算。
func (s *PostService) assemblePage(ctx context.Context, viewerID string, filter repository.QueryFilter, page utils.Pagination) (*utils.PageResult, error) {
	if !page.Valid() {
		return nil, ErrInvalidInput
	}

	posts, total, err := s.repo.Query(filter, page.Offset(), page.Limit)
	if err != nil {
		return nil, err
	}

	views := s.enrich(ctx, viewerID, posts)
	result := utils.NewPageResult(views, total, page.Page, page.Limit)
	return &result, nil
}

// enrich 并发获取每条帖子的互动计数并标记收藏状态。
// 扇出上限就是页大小。单条失败降级为全零，不影响整页。
func (s *PostService) enrich(ctx context.Context, viewerID string, posts []model.Post) []model.PostView {
	views := make([]model.PostView, len(posts))

	var wg sync.WaitGroup
	for i := range posts {
		views[i].Post = posts[i]
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.fillCounts(ctx, viewerID, &views[i])
		}(i)
	}
	wg.Wait()

	s.fillSaved(ctx, viewerID, views)
	return views
}

// enrichOne 单帖详情的互动信息填充
func (s *PostService) enrichOne(ctx context.Context, viewerID string, view *model.PostView) {
	s.fillCounts(ctx, viewerID, view)

	saved, err := s.saved.Exists(viewerID, view.ID)
	if err != nil {
		logger.WarnBestEffort("check saved state", err, zap.String("postID", view.ID))
		return
	}
	view.IsSaved = saved
}

func (s *PostService) fillCounts(ctx context.Context, viewerID string, view *model.PostView) {
	counts, err := s.interactions.GetCounts(ctx, view.ID, viewerID)
	if err != nil {
		metrics.GetGlobalCollector().RecordEnrichmentDegradation()
		logger.WarnBestEffort("interaction counts", err, zap.String("postID", view.ID))
		return
	}
	view.ReactionCount = counts.ReactionCount
	view.CommentCount = counts.CommentCount
	view.IsLiked = counts.IsLiked
}

func (s *PostService) fillSaved(ctx context.Context, viewerID string, views []model.PostView) {
	if len(views) == 0 {
		return
	}
	ids := make([]string, len(views))
	for i := range views {
		ids[i] = views[i].ID
	}

	savedSet, err := s.saved.ExistsBatch(viewerID, ids)
	if err != nil {
		logger.WarnBestEffort("batch saved state", err, zap.String("viewerID", viewerID))
		return
	}
	for i := range views {
		views[i].IsSaved = savedSet[views[i].ID]
	}
}
