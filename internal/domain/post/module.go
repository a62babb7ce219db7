package post

import (
	"post_service/internal/domain/post/handler"
	"post_service/internal/domain/post/repository"
	"post_service/internal/domain/post/service"
	"post_service/internal/pkg/clients"
	"post_service/internal/pkg/config"
	"post_service/internal/pkg/media"
	"post_service/internal/pkg/middleware"
	"post_service/internal/pkg/push"
	"post_service/internal/pkg/registry"
	"post_service/internal/pkg/worker"
	"post_service/pkg/cache"
	"post_service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PostModule 帖子模块
type PostModule struct{}

func init() {
	registry.Register(&PostModule{})
}

func (m *PostModule) Name() string {
	return "post"
}

func (m *PostModule) Priority() int {
	return 10
}

func (m *PostModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	postRepo := repository.NewPostRepository(ctx.DB)
	savedRepo := repository.NewSavedPostRepository(ctx.DB)

	cacheService := cache.NewRedisCache(ctx.Redis)
	graph := clients.NewCachedSocialGraphClient(clients.NewSocialGraphClient(), cacheService)
	interactions := clients.NewInteractionClient()

	// 推送和媒体清理按配置可选，缺失时降级为不执行
	var notifier push.NotificationService
	if n, err := push.NewAliyunNotificationService(); err != nil {
		logger.Log.Warn("notification service disabled", zap.Error(err))
	} else {
		notifier = n
	}

	var mediaService media.MediaService
	if ms, err := media.NewAliyunOSSMediaService(); err != nil {
		logger.Log.Warn("media service disabled", zap.Error(err))
	} else {
		mediaService = ms
	}

	dispatcher := worker.NewDispatcher(4, 1024)
	dispatcher.Start()

	postService := service.NewPostService(
		postRepo, savedRepo, graph, interactions,
		mediaService, notifier, dispatcher,
		config.GlobalConfig.Visibility.OnGraphError,
	)
	postHandler := handler.NewPostHandler(postService)

	// 2. 路由注册
	setupRoutes(ctx.Router, postHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.PostHandler) {
	g := r.Group("/posts")
	g.Use(middleware.AuthMiddleware())
	{
		g.POST("", h.Create)
		g.GET("/feed", h.Feed)
		g.GET("/search", h.Search)
		g.GET("/tagged", h.Tagged)
		g.GET("/saved", h.ListSaved)
		g.GET("/user/:id", h.GetByOwner)
		g.GET("/validate/:id", h.Validate)

		g.GET("/:id", h.Get)
		g.PUT("/:id", h.Update)
		g.DELETE("/:id", h.Delete)

		g.POST("/:id/save", h.Save)
		g.DELETE("/:id/save", h.Unsave)
		g.GET("/:id/saved", h.IsSaved)
		g.POST("/report/:id", h.Report)
		g.DELETE("/report/:id", h.Unreport)
	}

	admin := r.Group("/posts/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.GET("/all", h.ListAll)
		admin.GET("/reported", h.ListReported)
		admin.POST("/flag/:id", h.Flag)
		admin.POST("/moderate/:id", h.Moderate)
		admin.DELETE("/moderate/:id", h.Unmoderate)
		admin.DELETE("/:id", h.AdminDelete)
	}
}
