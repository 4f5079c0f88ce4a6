/*
Package shops - 店铺 API 控制器
*/
package shops

import (
	"net/http"

	"podmarket/api/ctxutil"
	"podmarket/api/response"
	shopsapp "podmarket/application/shops"
	"podmarket/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Controller 店铺控制器
type Controller struct {
	shopService *shopsapp.Service
}

// NewController 创建店铺控制器
func NewController(shopService *shopsapp.Service) *Controller {
	return &Controller{shopService: shopService}
}

// RegisterRoutes 注册店铺路由
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	shopGroup := router.Group("/shops")
	{
		shopGroup.POST("", c.CreateShop)
		shopGroup.GET("", c.ListShops)
		shopGroup.GET("/:id", c.GetShop)
		shopGroup.GET("/by-slug/:slug", c.GetShopBySlug)
		shopGroup.PATCH("/:id", c.UpdateShop)
		shopGroup.DELETE("/:id", c.DeleteShop)
	}
}

// CreateShop 开店
// POST /api/v1/shops
func (c *Controller) CreateShop(ctx *gin.Context) {
	var req shopsapp.CreateShopRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	shop, err := c.shopService.CreateShop(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, shop, "shop created successfully")
}

// GetShop 获取店铺（含统计读模型）
// GET /api/v1/shops/:id
func (c *Controller) GetShop(ctx *gin.Context) {
	shopID := ctx.Param("id")
	if shopID == "" {
		response.HandleError(ctx, errors.BadRequest("shop ID is required"), "shop ID is required", http.StatusBadRequest)
		return
	}

	shop, err := c.shopService.GetShop(ctxutil.WithRequestID(ctx), shopID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, shop, "shop retrieved successfully")
}

// GetShopBySlug 店面 URL 查询
// GET /api/v1/shops/by-slug/:slug
func (c *Controller) GetShopBySlug(ctx *gin.Context) {
	slug := ctx.Param("slug")
	if slug == "" {
		response.HandleError(ctx, errors.BadRequest("shop slug is required"), "shop slug is required", http.StatusBadRequest)
		return
	}

	shop, err := c.shopService.GetShopBySlug(ctxutil.WithRequestID(ctx), slug)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, shop, "shop retrieved successfully")
}

// ListShops 分页查询店铺
// GET /api/v1/shops?page=1&page_size=24
func (c *Controller) ListShops(ctx *gin.Context) {
	page, err := c.shopService.ListShops(ctxutil.WithRequestID(ctx), response.ParsePageRequest(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandlePaginated(ctx, page.Items, response.PaginationFrom(page), "shops retrieved successfully")
}

// UpdateShop 更新店铺（改名/停业）
// PATCH /api/v1/shops/:id
func (c *Controller) UpdateShop(ctx *gin.Context) {
	shopID := ctx.Param("id")
	if shopID == "" {
		response.HandleError(ctx, errors.BadRequest("shop ID is required"), "shop ID is required", http.StatusBadRequest)
		return
	}

	var req shopsapp.UpdateShopRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	shop, err := c.shopService.UpdateShop(ctxutil.WithRequestID(ctx), shopID, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, shop, "shop updated successfully")
}

// DeleteShop 删除店铺；仍有设计稿或商品时返回 409
// DELETE /api/v1/shops/:id
func (c *Controller) DeleteShop(ctx *gin.Context) {
	shopID := ctx.Param("id")
	if shopID == "" {
		response.HandleError(ctx, errors.BadRequest("shop ID is required"), "shop ID is required", http.StatusBadRequest)
		return
	}

	if err := c.shopService.DeleteShop(ctxutil.WithRequestID(ctx), shopID); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleNoContent(ctx)
}
