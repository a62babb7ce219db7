package service

import (
	"context"
	"errors"
	"time"

	"post_service/internal/domain/post/model"
	"post_service/internal/domain/post/repository"
	"post_service/internal/pkg/push"
	"post_service/pkg/utils"

	"gorm.io/gorm"
)

// Report 用户举报帖子。同一用户对同一帖子只能有一条有效举报。
// 读取-修改-写回在行锁内执行，并发举报不会丢计数。
func (s *PostService) Report(ctx context.Context, reporterID, postID, reason string) error {
	post, err := s.repo.MutateTx(postID, func(post *model.Post) error {
		if post.Deleted {
			// 已删除的帖子对举报者来说等同于不存在
			return ErrPostNotFound
		}
		for _, entry := range post.ReportHistory {
			if entry.UserID == reporterID {
				return ErrAlreadyReported
			}
		}
		post.ReportHistory = append(post.ReportHistory, model.ReportEntry{
			UserID:     reporterID,
			Reason:     reason,
			ReportedAt: time.Now(),
		})
		post.ReportCount++
		post.IsReported = true
		// 当前展示的举报原因始终是最新一条，历史全部保留
		post.ReportReason = reason
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrPostNotFound
	}
	if err != nil {
		return err
	}

	s.notifyAsync(post.OwnerID, push.KindPostReported, "Your post was reported",
		"One of your posts has been reported and is under review",
		map[string]string{"postId": postID})
	return nil
}

// Unreport 撤销举报。计数归零时清除举报标记和原因。
func (s *PostService) Unreport(ctx context.Context, reporterID, postID string) error {
	_, err := s.repo.MutateTx(postID, func(post *model.Post) error {
		idx := -1
		for i, entry := range post.ReportHistory {
			if entry.UserID == reporterID {
				idx = i
				break
			}
		}
		if idx == -1 {
			return ErrNotReported
		}
		post.ReportHistory = append(post.ReportHistory[:idx], post.ReportHistory[idx+1:]...)
		post.ReportCount--
		if post.ReportCount == 0 {
			post.IsReported = false
			post.ReportReason = ""
		}
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrPostNotFound
	}
	return err
}

// Flag 管理员直接标记帖子为被举报，不走逐用户举报历史
func (s *PostService) Flag(ctx context.Context, postID, reason string) error {
	post, err := s.repo.GetByID(postID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrPostNotFound
	}
	if err != nil {
		return err
	}
	if post.Deleted {
		return ErrPostNotFound
	}

	if err := s.repo.UpdateFields(postID, map[string]interface{}{
		"is_reported":   true,
		"report_reason": reason,
	}); err != nil {
		return err
	}

	s.notifyAsync(post.OwnerID, push.KindPostModerated, "Your post was flagged",
		"One of your posts has been flagged by moderators",
		map[string]string{"postId": postID})
	return nil
}

// AdminDelete 管理员删除帖子。对已删除的帖子返回明确的 already deleted，
// 区别于从未存在过的 not found，方便管理工具做幂等处理。
func (s *PostService) AdminDelete(ctx context.Context, postID string) error {
	post, err := s.repo.GetByID(postID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrPostNotFound
	}
	if err != nil {
		return err
	}
	if post.Deleted {
		return ErrAlreadyDeleted
	}

	if err := s.repo.UpdateFields(postID, map[string]interface{}{"deleted": true}); err != nil {
		return err
	}

	s.deleteMediaAsync(post)
	s.notifyAsync(post.OwnerID, push.KindPostRemoved, "Your post was removed",
		"One of your posts has been removed by moderators",
		map[string]string{"postId": postID})
	return nil
}

// Moderate 下架帖子。moderated 与 deleted/isReported 相互独立。
func (s *PostService) Moderate(ctx context.Context, postID, reason string) error {
	if err := s.updateExisting(postID, map[string]interface{}{
		"moderated":     true,
		"report_reason": reason,
	}); err != nil {
		return err
	}
	return nil
}

// Unmoderate 恢复下架的帖子并清除原因
func (s *PostService) Unmoderate(ctx context.Context, postID string) error {
	return s.updateExisting(postID, map[string]interface{}{
		"moderated":     false,
		"report_reason": "",
	})
}

func (s *PostService) updateExisting(postID string, fields map[string]interface{}) error {
	if _, err := s.repo.GetByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	return s.repo.UpdateFields(postID, fields)
}

// ListReported 管理端：被举报且未删除的帖子（含已下架），不做互动填充
func (s *PostService) ListReported(ctx context.Context, page utils.Pagination) (*utils.PageResult, error) {
	if !page.Valid() {
		return nil, ErrInvalidInput
	}
	filter := repository.QueryFilter{
		ReportedOnly:     true,
		IncludeModerated: true,
	}
	posts, total, err := s.repo.Query(filter, page.Offset(), page.Limit)
	if err != nil {
		return nil, err
	}
	result := utils.NewPageResult(posts, total, page.Page, page.Limit)
	return &result, nil
}

// ListAll 管理端全量列表，墓碑和下架帖也在内
func (s *PostService) ListAll(ctx context.Context, adminID string, page utils.Pagination) (*utils.PageResult, error) {
	filter := repository.QueryFilter{
		IncludeDeleted:   true,
		IncludeModerated: true,
	}
	return s.assemblePage(ctx, adminID, filter, page)
}
