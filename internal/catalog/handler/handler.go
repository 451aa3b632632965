package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rackwise/rackwise/internal/catalog/service"
)

// Handlers is the handler collection wired into the router.
type Handlers struct {
	Basket   *BasketHandler
	Project  *ProjectHandler
	Capacity *CapacityHandler
}

func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		Basket:   NewBasketHandler(svc.Basket),
		Project:  NewProjectHandler(svc.Project),
		Capacity: NewCapacityHandler(svc.Capacity),
	}
}

// Response is the common envelope.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{Code: 0, Message: "success", Data: data})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{Code: 0, Message: "success", Data: data})
}

func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{Code: code, Message: message})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, 40100, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

// QueryInt reads an integer query param, 0 when absent or malformed.
func QueryInt(c *gin.Context, key string) int {
	if v := c.Query(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return 0
}
