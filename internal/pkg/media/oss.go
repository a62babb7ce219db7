package media

import (
	"fmt"
	"path/filepath"
	"strings"

	"post_service/internal/pkg/config"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

// 媒体约束
const MaxMediaFiles = 5

// allowedExtensions 允许的媒体文件扩展名
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".mp4":  true,
}

// ValidateKeys 校验帖子的媒体对象 key 列表
func ValidateKeys(keys []string) error {
	if len(keys) > MaxMediaFiles {
		return fmt.Errorf("at most %d media files per post", MaxMediaFiles)
	}
	for _, key := range keys {
		ext := strings.ToLower(filepath.Ext(key))
		if !allowedExtensions[ext] {
			return fmt.Errorf("unsupported media type: %s", key)
		}
	}
	return nil
}

// MediaService 媒体存储服务
type MediaService interface {
	// DeleteMedia 删除帖子关联的媒体对象
	DeleteMedia(keys []string) error
}

// AliyunOSSMediaService 基于阿里云 OSS 的媒体存储实现
type AliyunOSSMediaService struct {
	client *oss.Client
	bucket *oss.Bucket
}

func NewAliyunOSSMediaService() (*AliyunOSSMediaService, error) {
	cfg := config.GlobalConfig.OSS
	client, err := oss.New(cfg.Endpoint, cfg.AccessKeyID, cfg.AccessKeySecret)
	if err != nil {
		return nil, err
	}

	bucket, err := client.Bucket(cfg.BucketName)
	if err != nil {
		return nil, err
	}

	return &AliyunOSSMediaService{
		client: client,
		bucket: bucket,
	}, nil
}

func (s *AliyunOSSMediaService) DeleteMedia(keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := s.bucket.DeleteObjects(keys)
	return err
}
