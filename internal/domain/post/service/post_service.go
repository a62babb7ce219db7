package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"post_service/internal/domain/post/model"
	"post_service/internal/domain/post/repository"
	"post_service/internal/pkg/clients"
	"post_service/internal/pkg/media"
	"post_service/internal/pkg/push"
	"post_service/internal/pkg/worker"
	"post_service/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PostService 帖子核心业务。notifier 和 media 可为 nil（配置缺失时降级为不推送/不清理）。
type PostService struct {
	repo         repository.PostRepository
	saved        repository.SavedPostRepository
	graph        clients.SocialGraphClient
	interactions clients.InteractionClient
	media        media.MediaService
	notifier     push.NotificationService
	dispatcher   *worker.Dispatcher
	onGraphError string
}

func NewPostService(
	repo repository.PostRepository,
	saved repository.SavedPostRepository,
	graph clients.SocialGraphClient,
	interactions clients.InteractionClient,
	mediaService media.MediaService,
	notifier push.NotificationService,
	dispatcher *worker.Dispatcher,
	onGraphError string,
) *PostService {
	return &PostService{
		repo:         repo,
		saved:        saved,
		graph:        graph,
		interactions: interactions,
		media:        mediaService,
		notifier:     notifier,
		dispatcher:   dispatcher,
		onGraphError: onGraphError,
	}
}

// Create 创建帖子。作者信息从用户服务获取并快照到帖子上。
func (s *PostService) Create(ctx context.Context, ownerID string, req *model.CreatePostRequest) (*model.Post, error) {
	owner, err := s.graph.GetUser(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: resolving author identity: %v", ErrGraphDown, err)
	}
	if owner == nil {
		return nil, ErrUserNotFound
	}

	if err := media.ValidateKeys(req.Media); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	visibility := req.Visibility
	if visibility == "" {
		visibility = model.VisibilityPublic
	}

	post := &model.Post{
		OwnerID:         ownerID,
		Username:        owner.Username,
		FullName:        owner.FullName,
		Content:         req.Content,
		Media:           req.Media,
		Keywords:        ExtractKeywords(req.Content),
		Visibility:      visibility,
		TaggedUsers:     []string{},
		TaggedUsersInfo: []model.TaggedUserInfo{},
	}

	// 创建路径下解析失败的 @ 用户直接跳过，不阻塞发帖
	if len(req.TaggedUsers) > 0 {
		ids, infos := s.resolveTaggedUsers(ctx, req.TaggedUsers)
		post.TaggedUsers = ids
		post.TaggedUsersInfo = infos
	}

	if err := s.repo.Create(post); err != nil {
		return nil, err
	}

	for _, tagged := range post.TaggedUsersInfo {
		s.notifyAsync(tagged.ID, push.KindTagged,
			"You were tagged in a post",
			fmt.Sprintf("%s tagged you in a post", owner.Username),
			map[string]string{"postId": post.ID})
	}

	return post, nil
}

// resolveTaggedUsers 并发解析 @ 用户信息，失败的条目丢弃并记录
func (s *PostService) resolveTaggedUsers(ctx context.Context, taggedIDs []string) ([]string, []model.TaggedUserInfo) {
	results := make([]*clients.UserInfo, len(taggedIDs))
	var wg sync.WaitGroup
	for i, id := range taggedIDs {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			user, err := s.graph.GetUser(ctx, id)
			if err != nil {
				logger.WarnBestEffort("resolve tagged user", err, zap.String("userID", id))
				return
			}
			if user == nil {
				logger.Log.Warn("tagged user not found", zap.String("userID", id))
				return
			}
			results[i] = user
		}(i, id)
	}
	wg.Wait()

	ids := make([]string, 0, len(taggedIDs))
	infos := make([]model.TaggedUserInfo, 0, len(taggedIDs))
	for i, user := range results {
		if user == nil {
			continue
		}
		ids = append(ids, taggedIDs[i])
		infos = append(infos, model.TaggedUserInfo{
			ID:       taggedIDs[i],
			Username: user.Username,
			FullName: user.FullName,
		})
	}
	return ids, infos
}

// Get 按 ID 查询帖子并附加互动信息。墓碑和下架帖对普通读取等同不存在。
func (s *PostService) Get(ctx context.Context, viewerID, postID string) (*model.PostView, error) {
	post, err := s.getActive(postID)
	if err != nil {
		return nil, err
	}

	if err := s.checkVisibility(ctx, post, viewerID); err != nil {
		return nil, err
	}

	view := &model.PostView{Post: *post}
	s.enrichOne(ctx, viewerID, view)
	return view, nil
}

// getActive 查询未删除且未下架的帖子
func (s *PostService) getActive(postID string) (*model.Post, error) {
	post, err := s.repo.GetByID(postID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	if post.Deleted || post.Moderated {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// Update 更新帖子。@ 用户在更新路径下严格解析：任何一个找不到都报错。
func (s *PostService) Update(ctx context.Context, callerID, postID string, req *model.UpdatePostRequest) (*model.Post, error) {
	post, err := s.repo.GetByID(postID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	if post.OwnerID != callerID {
		return nil, ErrNotPostOwner
	}
	if post.Deleted {
		return nil, ErrPostUnavailable
	}

	if req.Content != nil {
		post.Content = *req.Content
		post.Keywords = ExtractKeywords(*req.Content)
	}
	if req.Media != nil {
		if err := media.ValidateKeys(*req.Media); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		post.Media = *req.Media
	}
	if req.Visibility != nil {
		post.Visibility = *req.Visibility
	}
	if req.TaggedUsers != nil {
		ids := make([]string, 0, len(*req.TaggedUsers))
		infos := make([]model.TaggedUserInfo, 0, len(*req.TaggedUsers))
		for _, taggedID := range *req.TaggedUsers {
			user, err := s.graph.GetUser(ctx, taggedID)
			if err != nil {
				return nil, fmt.Errorf("%w: resolving tagged user: %v", ErrGraphDown, err)
			}
			if user == nil {
				return nil, ErrUserNotFound
			}
			ids = append(ids, taggedID)
			infos = append(infos, model.TaggedUserInfo{
				ID:       taggedID,
				Username: user.Username,
				FullName: user.FullName,
			})
		}
		post.TaggedUsers = ids
		post.TaggedUsersInfo = infos
	}

	if err := s.repo.Update(post); err != nil {
		return nil, err
	}
	return post, nil
}

// OwnerDelete 作者删除自己的帖子（墓碑标记），关联媒体异步清理
func (s *PostService) OwnerDelete(ctx context.Context, callerID, postID string) error {
	post, err := s.repo.GetByID(postID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrPostNotFound
	}
	if err != nil {
		return err
	}
	if post.OwnerID != callerID {
		return ErrNotPostOwner
	}
	if post.Deleted {
		return ErrAlreadyDeleted
	}

	if err := s.repo.UpdateFields(postID, map[string]interface{}{"deleted": true}); err != nil {
		return err
	}

	s.deleteMediaAsync(post)
	return nil
}

// Validate 供其他服务校验帖子：存在且可见时返回作者 ID。永不报错。
func (s *PostService) Validate(postID string) (exists bool, ownerID string) {
	post, err := s.repo.GetByID(postID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.WarnBestEffort("validate post", err, zap.String("postID", postID))
		}
		return false, ""
	}
	if post.Deleted || post.Moderated {
		return false, ""
	}
	return true, post.OwnerID
}

// notifyAsync 异步推送通知，notifier 未配置时直接跳过
func (s *PostService) notifyAsync(userID, kind, title, body string, data map[string]string) {
	if s.notifier == nil {
		return
	}
	notifier := s.notifier
	s.dispatcher.Submit(worker.Task{
		Kind: kind,
		Run: func() error {
			return notifier.NotifyUser(userID, kind, title, body, data)
		},
	})
}

// deleteMediaAsync 异步清理帖子关联的媒体对象
func (s *PostService) deleteMediaAsync(post *model.Post) {
	if s.media == nil || len(post.Media) == 0 {
		return
	}
	mediaService := s.media
	keys := []string(post.Media)
	s.dispatcher.Submit(worker.Task{
		Kind: "media_cleanup",
		Run: func() error {
			return mediaService.DeleteMedia(keys)
		},
	})
}
