package model

import (
	"time"

	"post_service/pkg/model"

	"gorm.io/datatypes"
)

// 帖子可见性
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// TaggedUserInfo 被 @ 用户的快照信息
type TaggedUserInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
}

// ReportEntry 一次举报记录
type ReportEntry struct {
	UserID     string    `json:"userId"`
	Reason     string    `json:"reason"`
	ReportedAt time.Time `json:"reportedAt"`
}

// Post 帖子。作者的 username/fullName 在创建时快照，不随用户改名更新。
type Post struct {
	model.BaseModel
	OwnerID  string `gorm:"type:uuid;not null;index:idx_posts_owner_created,priority:1" json:"ownerId"`
	Username string `gorm:"size:64;not null" json:"username"`
	FullName string `gorm:"size:128" json:"fullName"`
	Content  string `gorm:"type:text;not null" json:"content"`

	Media           datatypes.JSONSlice[string]         `gorm:"type:jsonb" json:"media"`
	Keywords        datatypes.JSONSlice[string]         `gorm:"type:jsonb" json:"keywords"`
	TaggedUsers     datatypes.JSONSlice[string]         `gorm:"type:jsonb" json:"taggedUsers"`
	TaggedUsersInfo datatypes.JSONSlice[TaggedUserInfo] `gorm:"type:jsonb" json:"taggedUsersInfo"`

	Visibility string `gorm:"size:16;not null;default:public" json:"visibility"`

	// 状态标记。deleted 是墓碑：记录保留，普通查询过滤，管理端列表可见。
	Deleted   bool `gorm:"not null;default:false" json:"deleted"`
	Moderated bool `gorm:"not null;default:false" json:"moderated"`

	// 举报状态
	IsReported    bool                             `gorm:"not null;default:false" json:"isReported"`
	ReportReason  string                           `gorm:"type:text" json:"reportReason"`
	ReportCount   int                              `gorm:"not null;default:0" json:"reportCount"`
	ReportHistory datatypes.JSONSlice[ReportEntry] `gorm:"type:jsonb" json:"reportHistory"`
}

func (Post) TableName() string {
	return "posts"
}

// SavedPost 用户收藏的帖子，(viewer_id, post_id) 唯一
type SavedPost struct {
	ID       uint      `gorm:"primaryKey" json:"-"`
	ViewerID string    `gorm:"type:uuid;not null;uniqueIndex:uniq_saved_viewer_post,priority:1" json:"viewerId"`
	PostID   string    `gorm:"type:uuid;not null;uniqueIndex:uniq_saved_viewer_post,priority:2" json:"postId"`
	SavedAt  time.Time `gorm:"not null;autoCreateTime" json:"savedAt"`
}

func (SavedPost) TableName() string {
	return "saved_posts"
}

// PostView 帖子 + 互动信息，列表和详情接口的返回形态
type PostView struct {
	Post
	ReactionCount int64 `json:"reactionCount"`
	CommentCount  int64 `json:"commentCount"`
	IsLiked       bool  `json:"isLiked"`
	IsSaved       bool  `json:"isSaved"`
}

// CreatePostRequest 创建帖子请求
type CreatePostRequest struct {
	Content     string   `json:"content" binding:"required"`
	Media       []string `json:"media"`
	TaggedUsers []string `json:"taggedUsers"`
	Visibility  string   `json:"visibility" binding:"omitempty,oneof=public private"`
}

// UpdatePostRequest 更新帖子请求。nil 字段表示不修改。
type UpdatePostRequest struct {
	Content     *string   `json:"content"`
	Media       *[]string `json:"media"`
	TaggedUsers *[]string `json:"taggedUsers"`
	Visibility  *string   `json:"visibility" binding:"omitempty,oneof=public private"`
}

// ReportPostRequest 举报帖子请求
type ReportPostRequest struct {
	Reason string `json:"reason" binding:"required"`
}
