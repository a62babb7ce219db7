package utils

// Pagination 分页请求参数。page/limit 从 1 开始，非法值由 service 层拒绝。
type Pagination struct {
	Page  int `json:"page" form:"page,default=1"`
	Limit int `json:"limit" form:"limit,default=10"`
}

// PageResult 分页响应结果
type PageResult struct {
	List            interface{} `json:"list"`
	Total           int64       `json:"total"`
	Page            int         `json:"page"`
	Limit           int         `json:"limit"`
	TotalPages      int         `json:"totalPages"`
	HasNextPage     bool        `json:"hasNextPage"`
	HasPreviousPage bool        `json:"hasPreviousPage"`
}

// Offset 计算分页偏移量
func (p *Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Valid 页码和条数是否合法（1-indexed，limit 上限 100）
func (p *Pagination) Valid() bool {
	return p.Page >= 1 && p.Limit >= 1 && p.Limit <= 100
}

// NewPageResult 组装分页元数据：totalPages = ceil(total/limit)
func NewPageResult(list interface{}, total int64, page, limit int) PageResult {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return PageResult{
		List:            list,
		Total:           total,
		Page:            page,
		Limit:           limit,
		TotalPages:      totalPages,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
}
