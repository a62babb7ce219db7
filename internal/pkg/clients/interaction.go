package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"post_service/internal/pkg/config"
)

// InteractionCounts 单条帖子的互动计数
type InteractionCounts struct {
	ReactionCount int64 `json:"reactionCount"`
	CommentCount  int64 `json:"commentCount"`
	IsLiked       bool  `json:"isLiked"`
}

// InteractionClient 互动计数服务客户端
type InteractionClient interface {
	// GetCounts 获取帖子的互动计数，viewerID 用于计算 isLiked
	GetCounts(ctx context.Context, postID, viewerID string) (*InteractionCounts, error)
}

type httpInteractionClient struct {
	baseURL string
	client  *http.Client
}

// NewInteractionClient 创建 HTTP 互动计数客户端
func NewInteractionClient() InteractionClient {
	return &httpInteractionClient{
		baseURL: config.GlobalConfig.Services.InteractionURL,
		client: &http.Client{
			Timeout: config.GlobalConfig.Services.ClientTimeout(),
		},
	}
}

func (c *httpInteractionClient) GetCounts(ctx context.Context, postID, viewerID string) (*InteractionCounts, error) {
	endpoint := c.baseURL + "/posts/" + url.PathEscape(postID) + "/counts?viewerId=" + url.QueryEscape(viewerID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("interaction service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("interaction service returned status %d", resp.StatusCode)
	}

	var counts InteractionCounts
	if err := json.NewDecoder(resp.Body).Decode(&counts); err != nil {
		return nil, err
	}
	return &counts, nil
}
