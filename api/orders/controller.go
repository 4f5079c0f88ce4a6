/*
Package orders - 订单 API 控制器
*/
package orders

import (
	"net/http"

	"podmarket/api/ctxutil"
	"podmarket/api/response"
	ordersapp "podmarket/application/orders"
	"podmarket/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Controller 订单控制器
type Controller struct {
	orderService *ordersapp.Service
}

// NewController 创建订单控制器
func NewController(orderService *ordersapp.Service) *Controller {
	return &Controller{orderService: orderService}
}

// RegisterRoutes 注册订单路由
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	orderGroup := router.Group("/orders")
	{
		orderGroup.POST("", c.PlaceOrder)
		orderGroup.GET("", c.ListOrders)
		orderGroup.GET("/:id", c.GetOrder)
		orderGroup.POST("/:id/pay", c.PayOrder)
		orderGroup.POST("/:id/cancel", c.CancelOrder)
	}
}

// PlaceOrder 下单
// POST /api/v1/orders
func (c *Controller) PlaceOrder(ctx *gin.Context) {
	var req ordersapp.PlaceOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	order, err := c.orderService.PlaceOrder(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, order, "order placed successfully")
}

// GetOrder 获取订单（含商品摘要）
// GET /api/v1/orders/:id
func (c *Controller) GetOrder(ctx *gin.Context) {
	orderID := ctx.Param("id")
	if orderID == "" {
		response.HandleError(ctx, errors.BadRequest("order ID is required"), "order ID is required", http.StatusBadRequest)
		return
	}

	view, err := c.orderService.GetOrder(ctxutil.WithRequestID(ctx), orderID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, view, "order retrieved successfully")
}

// ListOrders 分页查询订单
// GET /api/v1/orders?page=1&page_size=24
func (c *Controller) ListOrders(ctx *gin.Context) {
	page, err := c.orderService.ListOrders(ctxutil.WithRequestID(ctx), response.ParsePageRequest(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandlePaginated(ctx, page.Items, response.PaginationFrom(page), "orders retrieved successfully")
}

// PayOrder 支付订单（NEW→PAID）
// POST /api/v1/orders/:id/pay
func (c *Controller) PayOrder(ctx *gin.Context) {
	orderID := ctx.Param("id")
	if orderID == "" {
		response.HandleError(ctx, errors.BadRequest("order ID is required"), "order ID is required", http.StatusBadRequest)
		return
	}

	order, err := c.orderService.PayOrder(ctxutil.WithRequestID(ctx), orderID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, order, "order paid successfully")
}

// CancelOrder 取消订单（NEW→CANCELLED）
// POST /api/v1/orders/:id/cancel
func (c *Controller) CancelOrder(ctx *gin.Context) {
	orderID := ctx.Param("id")
	if orderID == "" {
		response.HandleError(ctx, errors.BadRequest("order ID is required"), "order ID is required", http.StatusBadRequest)
		return
	}

	order, err := c.orderService.CancelOrder(ctxutil.WithRequestID(ctx), orderID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, order, "order cancelled successfully")
}
