package handler

import (
	"errors"
	"net/http"

	"post_service/internal/domain/post/model"
	"post_service/internal/domain/post/service"
	"post_service/internal/pkg/middleware"
	"post_service/pkg/response"
	"post_service/pkg/utils"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	service *service.PostService
}

func NewPostHandler(s *service.PostService) *PostHandler {
	return &PostHandler{service: s}
}

// handleError 把业务错误映射为 HTTP 状态码和业务码
func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPostNotFound):
		response.Error(c, http.StatusNotFound, response.ErrPostNotFound, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, response.ErrUserNotFound, err.Error())
	case errors.Is(err, service.ErrNotPostOwner):
		response.Error(c, http.StatusForbidden, response.ErrNotPostOwner, err.Error())
	case errors.Is(err, service.ErrForbidden):
		response.Error(c, http.StatusForbidden, response.ErrNoPermission, err.Error())
	case errors.Is(err, service.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
	case errors.Is(err, service.ErrPostUnavailable):
		response.Error(c, http.StatusBadRequest, response.ErrPostUnavailable, err.Error())
	case errors.Is(err, service.ErrAlreadyReported):
		response.Error(c, http.StatusConflict, response.ErrAlreadyReported, err.Error())
	case errors.Is(err, service.ErrNotReported):
		response.Error(c, http.StatusBadRequest, response.ErrNotReported, err.Error())
	case errors.Is(err, service.ErrAlreadyDeleted):
		response.Error(c, http.StatusBadRequest, response.ErrAlreadyDeleted, err.Error())
	case errors.Is(err, service.ErrGraphDown):
		response.Error(c, http.StatusServiceUnavailable, response.ErrDependencyDown, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "internal server error")
	}
}

func bindPagination(c *gin.Context) (utils.Pagination, bool) {
	var page utils.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return page, false
	}
	return page, true
}

// Create 创建帖子
// @Summary 创建帖子
// @Tags Post
// @Accept json
// @Produce json
// @Param input body model.CreatePostRequest true "帖子内容"
// @Success 200 {object} model.Post
// @Router /posts [post]
func (h *PostHandler) Create(c *gin.Context) {
	var req model.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	post, err := h.service.Create(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, post)
}

// Get 帖子详情
// @Summary 帖子详情
// @Tags Post
// @Produce json
// @Param id path string true "帖子ID"
// @Success 200 {object} model.PostView
// @Router /posts/{id} [get]
func (h *PostHandler) Get(c *gin.Context) {
	view, err := h.service.Get(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, view)
}

// Update 更新帖子
// @Summary 更新帖子
// @Tags Post
// @Accept json
// @Produce json
// @Param id path string true "帖子ID"
// @Param input body model.UpdatePostRequest true "更新内容"
// @Success 200 {object} model.Post
// @Router /posts/{id} [put]
func (h *PostHandler) Update(c *gin.Context) {
	var req model.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	post, err := h.service.Update(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), &req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, post)
}

// Delete 删除自己的帖子
// @Summary 删除帖子
// @Tags Post
// @Param id path string true "帖子ID"
// @Success 200 {string} string "success"
// @Router /posts/{id} [delete]
func (h *PostHandler) Delete(c *gin.Context) {
	if err := h.service.OwnerDelete(c.Request.Context(), middleware.GetUserID(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, nil)
}

// GetByOwner 某用户的帖子列表
// @Summary 用户帖子列表
// @Tags Post
// @Produce json
// @Param id path string true "用户ID"
// @Success 200 {object} utils.PageResult
// @Router /posts/user/{id} [get]
func (h *PostHandler) GetByOwner(c *gin.Context) {
	page, ok := bindPagination(c)
	if !ok {
		return
	}
	result, err := h.service.ListByOwner(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), page)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, result)
}

// Feed 首页信息流
// @Summary 首页信息流
// @Tags Post
// @Produce json
// @Success 200 {object} utils.PageResult
// @Router /posts/feed [get]
func (h *PostHandler) Feed(c *gin.Context) {
	page, ok := bindPagination(c)
	if !ok {
		return
	}
	result, err := h.service.HomeFeed(c.Request.Context(), middleware.GetUserID(c), page)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, result)
}

// Tagged 我被 @ 的帖子
// @Summary 被标记的帖子
// @Tags Post
// @Produce json
// @Success 200 {object} utils.PageResult
// @Router /posts/tagged [get]
func (h *PostHandler) Tagged(c *gin.Context) {
	page, ok := bindPagination(c)
	if !ok {
		return
	}
	result, err := h.service.TaggedIn(c.Request.Context(), middleware.GetUserID(c), page)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, result)
}

// Search 关键词搜索
// @Summary 搜索帖子
// @Tags Post
// @Produce json
// @Param q query string true "关键词"
// @Success 200 {object} utils.PageResult
// @Router /posts/search [get]
func (h *PostHandler) Search(c *gin.Context) {
	page, ok := bindPagination(c)
	if !ok {
		return
	}
	result, err := h.service.Search(c.Request.Context(), middleware.GetUserID(c), c.Query("q"), page)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, result)
}

// Report 举报帖子
// @Summary 举报帖子
// @Tags Post
// @Accept json
// @Param id path string true "帖子ID"
// @Param input body model.ReportPostRequest true "举报原因"
// @Success 200 {string} string "success"
// @Router /posts/report/{id} [post]
func (h *PostHandler) Report(c *gin.Context) {
	var req model.ReportPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}
	if err := h.service.Report(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), req.Reason); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, nil)
}

// Unreport 撤销举报
// @Summary 撤销举报
// @Tags Post
// @Param id path string true "帖子ID"
// @Success 200 {string} string "success"
// @Router /posts/report/{id} [delete]
func (h *PostHandler) Unreport(c *gin.Context) {
	if err := h.service.Unreport(c.Request.Context(), middleware.GetUserID(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, nil)
}

// Save 收藏帖子
// @Summary 收藏帖子
// @Tags Post
// @Param id path string true "帖子ID"
// @Success 200 {string} string "success"
// @Router /posts/{id}/save [post]
func (h *PostHandler) Save(c *gin.Context) {
	if err := h.service.SavePost(c.Request.Context(), middleware.GetUserID(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, nil)
}

// Unsave 取消收藏
// @Summary 取消收藏
// @Tags Post
// @Param id path string true "帖子ID"
// @Success 200 {string} string "success"
// @Router /posts/{id}/save [delete]
func (h *PostHandler) Unsave(c *gin.Context) {
	if err := h.service.UnsavePost(c.Request.Context(), middleware.GetUserID(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, nil)
}

// IsSaved 查询单帖收藏状态
// @Summary 收藏状态
// @Tags Post
// @Produce json
// @Param id path string true "帖子ID"
// @Success 200 {object} map[string]bool
// @Router /posts/{id}/saved [get]
func (h *PostHandler) IsSaved(c *gin.Context) {
	saved, err := h.service.IsPostSaved(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"saved": saved})
}

// ListSaved 收藏列表
// @Summary 收藏列表
// @Tags Post
// @Produce json
// @Success 200 {object} utils.PageResult
// @Router /posts/saved [get]
func (h *PostHandler) ListSaved(c *gin.Context) {
	page, ok := bindPagination(c)
	if !ok {
		return
	}
	result, err := h.service.ListSaved(c.Request.Context(), middleware.GetUserID(c), page)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, result)
}

// Validate 供内部服务校验帖子是否存在且可用
// @Summary 校验帖子
// @Tags Post
// @Produce json
// @Param id path string true "帖子ID"
// @Success 200 {object} map[string]interface{}
// @Router /posts/validate/{id} [get]
func (h *PostHandler) Validate(c *gin.Context) {
	exists, ownerID := h.service.Validate(c.Param("id"))
	response.Success(c, gin.H{"exists": exists, "userId": ownerID})
}

// --- 管理端 ---

// Flag 管理员标记帖子
// @Summary 标记帖子
// @Tags Admin
// @Accept json
// @Param id path string true "帖子ID"
// @Param input body model.ReportPostRequest true "标记原因"
// @Success 200 {string} string "success"
// @Router /posts/admin/flag/{id} [post]
func (h *PostHandler) Flag(c *gin.Context) {
	var req model.ReportPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}
	if err := h.service.Flag(c.Request.Context(), c.Param("id"), req.Reason); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, nil)
}

// AdminDelete 管理员删除帖子
// @Summary 管理员删除帖子
// @Tags Admin
// @Param id path string true "帖子ID"
// @Success 200 {string} string "success"
// @Router /posts/admin/{id} [delete]
func (h *PostHandler) AdminDelete(c *gin.Context) {
	if err := h.service.AdminDelete(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, nil)
}

// Moderate 下架帖子
// @Summary 下架帖子
// @Tags Admin
// @Accept json
// @Param id path string true "帖子ID"
// @Param input body model.ReportPostRequest true "下架原因"
// @Success 200 {string} string "success"
// @Router /posts/admin/moderate/{id} [post]
func (h *PostHandler) Moderate(c *gin.Context) {
	var req model.ReportPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}
	if err := h.service.Moderate(c.Request.Context(), c.Param("id"), req.Reason); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, nil)
}

// Unmoderate 恢复下架的帖子
// @Summary 恢复帖子
// @Tags Admin
// @Param id path string true "帖子ID"
// @Success 200 {string} string "success"
// @Router /posts/admin/moderate/{id} [delete]
func (h *PostHandler) Unmoderate(c *gin.Context) {
	if err := h.service.Unmoderate(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, nil)
}

// ListReported 被举报帖子列表
// @Summary 被举报帖子
// @Tags Admin
// @Produce json
// @Success 200 {object} utils.PageResult
// @Router /posts/admin/reported [get]
func (h *PostHandler) ListReported(c *gin.Context) {
	page, ok := bindPagination(c)
	if !ok {
		return
	}
	result, err := h.service.ListReported(c.Request.Context(), page)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, result)
}

// ListAll 全量帖子列表（含已删除和已下架）
// @Summary 全量帖子
// @Tags Admin
// @Produce json
// @Success 200 {object} utils.PageResult
// @Router /posts/admin/all [get]
func (h *PostHandler) ListAll(c *gin.Context) {
	page, ok := bindPagination(c)
	if !ok {
		return
	}
	result, err := h.service.ListAll(c.Request.Context(), middleware.GetUserID(c), page)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, result)
}
