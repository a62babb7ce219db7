package service

import (
	"context"
	"fmt"

	"post_service/internal/domain/post/model"
	"post_service/internal/pkg/config"
	"post_service/pkg/logger"

	"go.uber.org/zap"
)

// CanView 可见性判定：公开帖子人人可见，私密帖子只有作者本人
// 和关注了作者的用户可见。viewerFollows 报告 viewer 是否关注某作者。
func CanView(post *model.Post, viewerID string, viewerFollows func(ownerID string) bool) bool {
	if post.Visibility == model.VisibilityPublic {
		return true
	}
	if post.OwnerID == viewerID {
		return true
	}
	return viewerFollows(post.OwnerID)
}

// checkVisibility 单帖读取路径的可见性检查。
// 私密帖子需要查询关注关系；关系服务不可用时的行为由配置决定：
// deny 按非关注者处理，unavailable 向调用方报依赖错误。
func (s *PostService) checkVisibility(ctx context.Context, post *model.Post, viewerID string) error {
	if post.Visibility == model.VisibilityPublic || post.OwnerID == viewerID {
		return nil
	}

	following, err := s.graph.GetFollowing(ctx, viewerID)
	if err != nil {
		if s.onGraphError == config.GraphErrorUnavailable {
			return fmt.Errorf("%w: %v", ErrGraphDown, err)
		}
		logger.WarnBestEffort("visibility check degraded to deny", err,
			zap.String("postID", post.ID),
			zap.String("viewerID", viewerID))
		return ErrForbidden
	}

	for _, id := range following {
		if id == post.OwnerID {
			return nil
		}
	}
	return ErrForbidden
}

// visibleOwners 返回 viewer 的私密帖可见作者集合：自己加上自己关注的人。
// 列表查询路径下关系服务失败降级为空列表（只剩自己），不阻断请求。
func (s *PostService) visibleOwners(ctx context.Context, viewerID string) []string {
	following, err := s.graph.GetFollowing(ctx, viewerID)
	if err != nil {
		logger.WarnBestEffort("resolve following for visibility", err, zap.String("viewerID", viewerID))
		following = nil
	}
	return appendUnique(following, viewerID)
}

// appendUnique 把 id 追加到集合，已存在则原样返回
func appendUnique(ids []string, id string) []string {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}
