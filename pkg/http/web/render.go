package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/parkingwang/oasgen/pkg/http/code"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Renderer 渲染响应
type Renderer func(*gin.Context, any, error)

// DefaultRender 默认渲染函数
func DefaultRender(ctx *gin.Context, data any, err error) {
	if err != nil {
		e := code.FromError(err)
		span := trace.SpanFromContext(ctx)
		span.SetStatus(codes.Error, err.Error())
		ctx.JSON(e.Code, DefaultErrorResponse{
			Message: e.Message,
			Errors:  e.Errors,
			TraceID: span.SpanContext().TraceID().String(),
		})
		return
	}
	if data != nil {
		ctx.JSON(http.StatusOK, data)
	}
}

type DefaultErrorResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
	TraceID string              `json:"traceid"`
}

func warpRender(opt *option, ctx *gin.Context, data any, err error) {
	if err != nil {
		ctx.Set("gin.response.err", code.FromError(err).Message)
	}
	opt.render(ctx, data, err)
}
