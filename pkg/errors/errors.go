package errors

import (
	"errors"
	"fmt"
	"net/http"

	"podmarket/domain/catalog"
	"podmarket/domain/orders"
	"podmarket/domain/shared"
	"podmarket/domain/shops"
)

// ErrorCode 错误码
type ErrorCode string

const (
	// 通用错误码
	CodeInternal           ErrorCode = "INTERNAL_ERROR"
	CodeBadRequest         ErrorCode = "BAD_REQUEST"
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeNotFound           ErrorCode = "NOT_FOUND"
	CodeConflict           ErrorCode = "CONFLICT"
	CodeTooManyRequest     ErrorCode = "TOO_MANY_REQUESTS"
	CodeValidation         ErrorCode = "VALIDATION_ERROR"
	CodeInvalidIdentifier  ErrorCode = "INVALID_IDENTIFIER"
	CodeStorageUnavailable ErrorCode = "STORAGE_UNAVAILABLE"

	// 业务错误码
	CodeSlugTaken          ErrorCode = "SLUG_TAKEN"
	CodeShopClosed         ErrorCode = "SHOP_CLOSED"
	CodeDesignInUse        ErrorCode = "DESIGN_IN_USE"
	CodeProductUnavailable ErrorCode = "PRODUCT_UNAVAILABLE"
	CodeInvalidOrderState  ErrorCode = "INVALID_ORDER_STATE"
)

// AppError 应用错误
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatusCode 返回对应的HTTP状态码
func (e *AppError) HTTPStatusCode() int {
	switch e.Code {
	case CodeBadRequest, CodeValidation, CodeInvalidIdentifier:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeSlugTaken, CodeDesignInUse:
		return http.StatusConflict
	case CodeTooManyRequest:
		return http.StatusTooManyRequests
	case CodeShopClosed, CodeProductUnavailable, CodeInvalidOrderState:
		return http.StatusUnprocessableEntity
	case CodeStorageUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// New 创建新错误
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装错误
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// 常用错误构造函数

func BadRequest(message string) *AppError {
	return New(CodeBadRequest, message)
}

func NotFound(message string) *AppError {
	return New(CodeNotFound, message)
}

func Internal(message string) *AppError {
	return New(CodeInternal, message)
}

func Unauthorized(message string) *AppError {
	return New(CodeUnauthorized, message)
}

func Forbidden(message string) *AppError {
	return New(CodeForbidden, message)
}

func Conflict(message string) *AppError {
	return New(CodeConflict, message)
}

func TooManyRequests(message string) *AppError {
	return New(CodeTooManyRequest, message)
}

func Validation(message string) *AppError {
	return New(CodeValidation, message)
}

// Is 检查是否为特定错误码
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// AsAppError 将错误转换为 AppError
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	// 如果不是 AppError，包装为内部错误
	return Wrap(err, CodeInternal, "internal server error")
}

// FromDomainError 将领域错误映射为应用错误
//
// 映射只认哨兵，不做字符串匹配；领域层保证每个错误都包着一个哨兵。
// 更具体的业务哨兵要排在它包装的通用哨兵之前检查。
func FromDomainError(err error) *AppError {
	if err == nil {
		return nil
	}

	// 已经是 AppError
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, shops.ErrSlugTaken):
		return Wrap(err, CodeSlugTaken, "shop slug is already taken")
	case errors.Is(err, shops.ErrShopClosed):
		return Wrap(err, CodeShopClosed, "shop is closed")
	case errors.Is(err, catalog.ErrDesignInUse):
		return Wrap(err, CodeDesignInUse, "design is referenced by existing products")
	case errors.Is(err, orders.ErrProductUnavailable):
		return Wrap(err, CodeProductUnavailable, "product is not available for purchase")
	case errors.Is(err, orders.ErrInvalidTransition):
		return Wrap(err, CodeInvalidOrderState, err.Error())
	case errors.Is(err, shared.ErrInvalidIdentifier):
		return Wrap(err, CodeInvalidIdentifier, "malformed identifier")
	case errors.Is(err, shared.ErrNotFound):
		return Wrap(err, CodeNotFound, err.Error())
	case errors.Is(err, shared.ErrConflict), errors.Is(err, shared.ErrConstraintViolation):
		return Wrap(err, CodeConflict, err.Error())
	case errors.Is(err, shared.ErrInvalidInput):
		return Wrap(err, CodeValidation, err.Error())
	case errors.Is(err, shared.ErrForbidden):
		return Wrap(err, CodeForbidden, err.Error())
	case errors.Is(err, shared.ErrStorageUnavailable):
		return Wrap(err, CodeStorageUnavailable, "storage temporarily unavailable")
	default:
		return Wrap(err, CodeInternal, "internal server error")
	}
}
