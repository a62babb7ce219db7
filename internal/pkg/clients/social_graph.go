package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"post_service/internal/pkg/config"
	"post_service/pkg/cache"
	"post_service/pkg/logger"
	"post_service/pkg/metrics"

	"go.uber.org/zap"
)

// UserInfo 用户服务返回的用户概要
type UserInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
}

// SocialGraphClient 用户/社交关系服务客户端
type SocialGraphClient interface {
	// GetUser 获取用户概要，用户不存在时返回 (nil, nil)
	GetUser(ctx context.Context, userID string) (*UserInfo, error)

	// GetFollowing 返回 userID 关注的用户 ID 列表
	GetFollowing(ctx context.Context, userID string) ([]string, error)

	// GetFollowers 返回关注 userID 的用户 ID 列表
	GetFollowers(ctx context.Context, userID string) ([]string, error)
}

type httpSocialGraphClient struct {
	baseURL string
	client  *http.Client
}

// NewSocialGraphClient 创建 HTTP 社交关系客户端
func NewSocialGraphClient() SocialGraphClient {
	return &httpSocialGraphClient{
		baseURL: config.GlobalConfig.Services.UserURL,
		client: &http.Client{
			Timeout: config.GlobalConfig.Services.ClientTimeout(),
		},
	}
}

func (c *httpSocialGraphClient) getJSON(ctx context.Context, path string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("user service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("user service returned status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(dest)
}

var errNotFound = fmt.Errorf("not found")

func (c *httpSocialGraphClient) GetUser(ctx context.Context, userID string) (*UserInfo, error) {
	var user UserInfo
	err := c.getJSON(ctx, "/users/"+url.PathEscape(userID), &user)
	if err == errNotFound {
		// 用户不存在不算调用失败
		metrics.GetGlobalCollector().RecordGraphCall("GetUser", nil)
		return nil, nil
	}
	metrics.GetGlobalCollector().RecordGraphCall("GetUser", err)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *httpSocialGraphClient) GetFollowing(ctx context.Context, userID string) ([]string, error) {
	var result struct {
		UserIDs []string `json:"userIds"`
	}
	err := c.getJSON(ctx, "/users/"+url.PathEscape(userID)+"/following", &result)
	metrics.GetGlobalCollector().RecordGraphCall("GetFollowing", err)
	if err != nil {
		return nil, err
	}
	return result.UserIDs, nil
}

func (c *httpSocialGraphClient) GetFollowers(ctx context.Context, userID string) ([]string, error) {
	var result struct {
		UserIDs []string `json:"userIds"`
	}
	err := c.getJSON(ctx, "/users/"+url.PathEscape(userID)+"/followers", &result)
	metrics.GetGlobalCollector().RecordGraphCall("GetFollowers", err)
	if err != nil {
		return nil, err
	}
	return result.UserIDs, nil
}

// graphCacheTTL 关系列表缓存时间。短 TTL：关注关系变化要较快反映到可见性判定。
const graphCacheTTL = 30 * time.Second

// CachedSocialGraphClient 带 Redis 缓存的社交关系客户端（装饰器）
type CachedSocialGraphClient struct {
	inner SocialGraphClient
	cache cache.CacheService
}

// NewCachedSocialGraphClient 创建带缓存的客户端
func NewCachedSocialGraphClient(inner SocialGraphClient, cacheService cache.CacheService) SocialGraphClient {
	return &CachedSocialGraphClient{inner: inner, cache: cacheService}
}

func (c *CachedSocialGraphClient) GetUser(ctx context.Context, userID string) (*UserInfo, error) {
	// 用户概要不缓存：创建帖子时要用最新的 username/fullName 做快照
	return c.inner.GetUser(ctx, userID)
}

func (c *CachedSocialGraphClient) GetFollowing(ctx context.Context, userID string) ([]string, error) {
	return c.cachedList(ctx, "graph:following:"+userID, func() ([]string, error) {
		return c.inner.GetFollowing(ctx, userID)
	})
}

func (c *CachedSocialGraphClient) GetFollowers(ctx context.Context, userID string) ([]string, error) {
	return c.cachedList(ctx, "graph:followers:"+userID, func() ([]string, error) {
		return c.inner.GetFollowers(ctx, userID)
	})
}

func (c *CachedSocialGraphClient) cachedList(ctx context.Context, key string, load func() ([]string, error)) ([]string, error) {
	var ids []string
	err := c.cache.Get(ctx, key, &ids)
	if err == nil {
		return ids, nil
	}
	if err != cache.ErrCacheMiss {
		logger.Log.Warn("graph cache read failed", zap.String("key", key), zap.Error(err))
	}

	ids, err = load()
	if err != nil {
		return nil, err
	}

	if cacheErr := c.cache.Set(ctx, key, ids, graphCacheTTL); cacheErr != nil {
		logger.Log.Warn("graph cache write failed", zap.String("key", key), zap.Error(cacheErr))
	}
	return ids, nil
}
