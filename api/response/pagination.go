package response

import (
	"strconv"

	"podmarket/domain/shared"

	"github.com/gin-gonic/gin"
)

// ParsePageRequest 从 query 读取分页参数；越界值由领域层 Normalize 收敛。
func ParsePageRequest(c *gin.Context) shared.PageRequest {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "24"))
	return shared.PageRequest{Page: page, PageSize: pageSize}
}

// PaginationFrom 把领域分页元数据转成响应结构。
func PaginationFrom[T any](p *shared.Page[T]) Pagination {
	return Pagination{
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalItems: p.TotalItems,
		TotalPages: p.TotalPages,
	}
}
