package response

// 业务状态码
const (
	CodeSuccess = 0
	CodeError   = 1

	// 帖子模块错误 100xx
	ErrPostNotFound    = 10001
	ErrNotPostOwner    = 10002
	ErrPostUnavailable = 10003
	ErrAlreadyReported = 10004
	ErrNotReported     = 10005
	ErrAlreadyDeleted  = 10006

	// 用户相关错误 200xx
	ErrUserNotFound = 20001
	ErrAuthFailed   = 20002
	ErrTokenInvalid = 20003
	ErrNoPermission = 20004

	// 系统错误 500xx
	ErrServerInternal  = 50001
	ErrInvalidParam    = 50002
	ErrTooManyRequests = 50003
	ErrDependencyDown  = 50004
)
