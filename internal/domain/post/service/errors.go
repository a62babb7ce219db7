package service

import "errors"

// 业务错误。handler 层据此映射 HTTP 状态码和业务码。
var (
	ErrPostNotFound    = errors.New("post not found")
	ErrPostUnavailable = errors.New("post not available")
	ErrUserNotFound    = errors.New("user not found")
	ErrNotPostOwner    = errors.New("not the post owner")
	ErrForbidden       = errors.New("not allowed to view this post")
	ErrInvalidInput    = errors.New("invalid input")
	ErrAlreadyReported = errors.New("post already reported by this user")
	ErrNotReported     = errors.New("post has no report from this user")
	ErrAlreadyDeleted  = errors.New("post already deleted")
	ErrGraphDown       = errors.New("social graph service unavailable")
)
