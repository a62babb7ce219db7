package service

import (
	"context"
	"errors"

	"post_service/pkg/utils"

	"gorm.io/gorm"
)

// SavePost 收藏帖子。重复收藏是幂等的成功。
func (s *PostService) SavePost(ctx context.Context, viewerID, postID string) error {
	if _, err := s.repo.GetByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	return s.saved.Save(viewerID, postID)
}

// UnsavePost 取消收藏。未收藏过也返回成功。
func (s *PostService) UnsavePost(ctx context.Context, viewerID, postID string) error {
	return s.saved.Unsave(viewerID, postID)
}

// IsPostSaved 查询收藏状态
func (s *PostService) IsPostSaved(ctx context.Context, viewerID, postID string) (bool, error) {
	return s.saved.Exists(viewerID, postID)
}

// ListSaved 收藏列表，按收藏时间倒序。指向已删除或已下架帖子的
// 收藏静默跳过，但 total 统计的是全部收藏关系。
func (s *PostService) ListSaved(ctx context.Context, viewerID string, page utils.Pagination) (*utils.PageResult, error) {
	if !page.Valid() {
		return nil, ErrInvalidInput
	}

	posts, total, err := s.saved.ListByViewer(viewerID, page.Offset(), page.Limit)
	if err != nil {
		return nil, err
	}

	views := s.enrich(ctx, viewerID, posts)
	// 收藏列表里的每一条都在关系表里，无需再查
	for i := range views {
		views[i].IsSaved = true
	}

	result := utils.NewPageResult(views, total, page.Page, page.Limit)
	return &result, nil
}
