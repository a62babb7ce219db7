package push

import (
	"encoding/json"
	"fmt"

	"post_service/internal/pkg/config"

	"github.com/aliyun/alibaba-cloud-sdk-go/sdk/requests"
	aliyunpush "github.com/aliyun/alibaba-cloud-sdk-go/services/push"
)

// 通知类型
const (
	KindTagged        = "post_tagged"    // 被 @ 到帖子里
	KindPostReported  = "post_reported"  // 帖子被举报
	KindPostRemoved   = "post_removed"   // 帖子被管理员删除
	KindPostModerated = "post_moderated" // 帖子被下架
)

// NotificationService 用户通知服务
type NotificationService interface {
	// NotifyUser 向指定用户推送通知，data 会附加到推送扩展参数中
	NotifyUser(userID, kind, title, body string, data map[string]string) error
}

// AliyunNotificationService 基于阿里云移动推送的通知实现
type AliyunNotificationService struct {
	client *aliyunpush.Client
	appKey int64
}

func NewAliyunNotificationService() (*AliyunNotificationService, error) {
	cfg := config.GlobalConfig.Push

	if cfg.AccessKeyID == "" || cfg.AppKey == 0 {
		return nil, fmt.Errorf("push config is missing")
	}

	client, err := aliyunpush.NewClientWithAccessKey(
		cfg.RegionID,
		cfg.AccessKeyID,
		cfg.AccessKeySecret,
	)
	if err != nil {
		return nil, err
	}

	return &AliyunNotificationService{
		client: client,
		appKey: cfg.AppKey,
	}, nil
}

func (s *AliyunNotificationService) NotifyUser(userID, kind, title, body string, data map[string]string) error {
	request := aliyunpush.CreatePushRequest()
	request.AppKey = requests.NewInteger(int(s.appKey))
	request.Target = "ACCOUNT"
	request.TargetValue = userID
	request.Title = title
	request.Body = body
	request.DeviceType = "ALL"  // iOS & Android
	request.PushType = "NOTICE" // 通知

	// 扩展参数 (JSON 序列化)
	ext := map[string]string{"kind": kind}
	for k, v := range data {
		ext[k] = v
	}
	extJSON, _ := json.Marshal(ext)
	request.AndroidExtParameters = string(extJSON)
	request.IOSExtParameters = string(extJSON)

	_, err := s.client.Push(request)
	return err
}
