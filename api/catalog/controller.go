/*
Package catalog - 商品目录 API 控制器

职责:
1. 接收 HTTP 请求，解析参数
2. 调用应用服务处理业务逻辑
3. 使用 response 包统一处理响应和错误

错误处理原则:
1. 参数绑定错误: 使用 response.HandleError 直接返回 400
2. 业务错误: 使用 response.HandleAppError 自动映射状态码
*/
package catalog

import (
	"net/http"

	"podmarket/api/ctxutil"
	"podmarket/api/response"
	catalogapp "podmarket/application/catalog"
	"podmarket/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Controller 商品目录控制器，同时承载商品和设计稿路由
type Controller struct {
	productService *catalogapp.ProductService
	designService  *catalogapp.DesignService
}

// NewController 创建商品目录控制器
func NewController(productService *catalogapp.ProductService, designService *catalogapp.DesignService) *Controller {
	return &Controller{
		productService: productService,
		designService:  designService,
	}
}

// RegisterRoutes 注册商品目录路由
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	productGroup := router.Group("/products")
	{
		productGroup.POST("", c.CreateProduct)
		productGroup.GET("", c.ListProducts)
		productGroup.GET("/:id", c.GetProduct)
		productGroup.PATCH("/:id", c.UpdateProduct)
		productGroup.DELETE("/:id", c.DeleteProduct)
	}
	designGroup := router.Group("/designs")
	{
		designGroup.POST("", c.CreateDesign)
		designGroup.GET("", c.ListDesigns)
		designGroup.GET("/:id", c.GetDesign)
		designGroup.PATCH("/:id", c.UpdateDesign)
		designGroup.DELETE("/:id", c.DeleteDesign)
	}
}

// CreateProduct 创建商品
// POST /api/v1/products
func (c *Controller) CreateProduct(ctx *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	product, err := c.productService.CreateProduct(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, product, "product created successfully")
}

// GetProduct 获取商品（含引用解析后的 design/shop 摘要）
// GET /api/v1/products/:id
func (c *Controller) GetProduct(ctx *gin.Context) {
	productID := ctx.Param("id")
	if productID == "" {
		response.HandleError(ctx, errors.BadRequest("product ID is required"), "product ID is required", http.StatusBadRequest)
		return
	}

	view, err := c.productService.GetProduct(ctxutil.WithRequestID(ctx), productID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, view, "product retrieved successfully")
}

// ListProducts 分页查询商品
// GET /api/v1/products?page=1&page_size=24
func (c *Controller) ListProducts(ctx *gin.Context) {
	page, err := c.productService.ListProducts(ctxutil.WithRequestID(ctx), response.ParsePageRequest(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandlePaginated(ctx, page.Items, response.PaginationFrom(page), "products retrieved successfully")
}

// UpdateProduct 更新商品（部分字段）
// PATCH /api/v1/products/:id
func (c *Controller) UpdateProduct(ctx *gin.Context) {
	productID := ctx.Param("id")
	if productID == "" {
		response.HandleError(ctx, errors.BadRequest("product ID is required"), "product ID is required", http.StatusBadRequest)
		return
	}

	var req catalogapp.UpdateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	product, err := c.productService.UpdateProduct(ctxutil.WithRequestID(ctx), productID, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, product, "product updated successfully")
}

// DeleteProduct 删除商品
// DELETE /api/v1/products/:id
func (c *Controller) DeleteProduct(ctx *gin.Context) {
	productID := ctx.Param("id")
	if productID == "" {
		response.HandleError(ctx, errors.BadRequest("product ID is required"), "product ID is required", http.StatusBadRequest)
		return
	}

	if err := c.productService.DeleteProduct(ctxutil.WithRequestID(ctx), productID); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleNoContent(ctx)
}

// CreateDesign 上传设计稿元数据
// POST /api/v1/designs
func (c *Controller) CreateDesign(ctx *gin.Context) {
	var req catalogapp.CreateDesignRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	design, err := c.designService.CreateDesign(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, design, "design created successfully")
}

// GetDesign 获取设计稿
// GET /api/v1/designs/:id
func (c *Controller) GetDesign(ctx *gin.Context) {
	designID := ctx.Param("id")
	if designID == "" {
		response.HandleError(ctx, errors.BadRequest("design ID is required"), "design ID is required", http.StatusBadRequest)
		return
	}

	design, err := c.designService.GetDesign(ctxutil.WithRequestID(ctx), designID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, design, "design retrieved successfully")
}

// ListDesigns 分页查询设计稿
// GET /api/v1/designs?page=1&page_size=24
func (c *Controller) ListDesigns(ctx *gin.Context) {
	page, err := c.designService.ListDesigns(ctxutil.WithRequestID(ctx), response.ParsePageRequest(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandlePaginated(ctx, page.Items, response.PaginationFrom(page), "designs retrieved successfully")
}

// UpdateDesign 更新设计稿标题
// PATCH /api/v1/designs/:id
func (c *Controller) UpdateDesign(ctx *gin.Context) {
	designID := ctx.Param("id")
	if designID == "" {
		response.HandleError(ctx, errors.BadRequest("design ID is required"), "design ID is required", http.StatusBadRequest)
		return
	}

	var req catalogapp.UpdateDesignRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	design, err := c.designService.UpdateDesign(ctxutil.WithRequestID(ctx), designID, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, design, "design updated successfully")
}

// DeleteDesign 删除设计稿；被商品引用时返回 409
// DELETE /api/v1/designs/:id
func (c *Controller) DeleteDesign(ctx *gin.Context) {
	designID := ctx.Param("id")
	if designID == "" {
		response.HandleError(ctx, errors.BadRequest("design ID is required"), "design ID is required", http.StatusBadRequest)
		return
	}

	if err := c.designService.DeleteDesign(ctxutil.WithRequestID(ctx), designID); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleNoContent(ctx)
}
