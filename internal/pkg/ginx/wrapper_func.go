package ginx

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// W 不需要请求参数的wrapper函数
func W(fn func(ctx *gin.Context) (Result, error)) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		res, err := fn(ctx)
		render(ctx, res, err)
	}
}

// B 需求请求参数的包裹函数
func B[Req any](fn func(ctx *gin.Context, req Req) (Result, error)) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req Req
		if err := ctx.Bind(&req); err != nil {
			zap.L().Debug("绑定参数失败", zap.Error(err))
			return
		}
		res, err := fn(ctx, req)
		render(ctx, res, err)
	}
}

func render(ctx *gin.Context, res Result, err error) {
	if errors.Is(err, ErrNoResponse) {
		zap.L().Debug("不需要响应", zap.Error(err))
		return
	}
	if errors.Is(err, ErrUnauthorized) {
		zap.L().Debug("未授权", zap.Error(err))
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	if err != nil {
		zap.L().Error("执行业务逻辑失败",
			zap.String("path", ctx.FullPath()), zap.Error(err))
		ctx.PureJSON(http.StatusInternalServerError, res)
		return
	}
	ctx.PureJSON(http.StatusOK, res)
}
