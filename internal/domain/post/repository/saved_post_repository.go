package repository

import (
	"post_service/internal/domain/post/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SavedPostRepository interface {
	// Save 收藏帖子，重复收藏静默成功
	Save(viewerID, postID string) error

	// Unsave 取消收藏，未收藏时也是成功
	Unsave(viewerID, postID string) error

	Exists(viewerID, postID string) (bool, error)

	// ExistsBatch 批量查询收藏状态，返回已收藏的 postID 集合
	ExistsBatch(viewerID string, postIDs []string) (map[string]bool, error)

	// ListByViewer 按收藏时间倒序返回收藏的帖子。
	// total 统计全部收藏关系，包含指向已删除/已下架帖子的关系。
	ListByViewer(viewerID string, offset, limit int) ([]model.Post, int64, error)
}

type savedPostRepository struct {
	db *gorm.DB
}

func NewSavedPostRepository(db *gorm.DB) SavedPostRepository {
	return &savedPostRepository{db: db}
}

func (r *savedPostRepository) Save(viewerID, postID string) error {
	saved := &model.SavedPost{ViewerID: viewerID, PostID: postID}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(saved).Error
}

func (r *savedPostRepository) Unsave(viewerID, postID string) error {
	return r.db.Where("viewer_id = ? AND post_id = ?", viewerID, postID).
		Delete(&model.SavedPost{}).Error
}

func (r *savedPostRepository) Exists(viewerID, postID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.SavedPost{}).
		Where("viewer_id = ? AND post_id = ?", viewerID, postID).
		Count(&count).Error
	return count > 0, err
}

func (r *savedPostRepository) ExistsBatch(viewerID string, postIDs []string) (map[string]bool, error) {
	result := make(map[string]bool, len(postIDs))
	if len(postIDs) == 0 {
		return result, nil
	}

	var ids []string
	err := r.db.Model(&model.SavedPost{}).
		Where("viewer_id = ? AND post_id IN ?", viewerID, postIDs).
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}

func (r *savedPostRepository) ListByViewer(viewerID string, offset, limit int) ([]model.Post, int64, error) {
	var total int64
	if err := r.db.Model(&model.SavedPost{}).
		Where("viewer_id = ?", viewerID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []model.Post
	err := r.db.Model(&model.Post{}).
		Joins("JOIN saved_posts ON saved_posts.post_id = posts.id").
		Where("saved_posts.viewer_id = ?", viewerID).
		Where("posts.deleted = false AND posts.moderated = false").
		Order("saved_posts.saved_at DESC, saved_posts.id DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}
