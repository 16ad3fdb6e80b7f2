package id

import (
	"errors"
	"time"

	"github.com/ecodeclub/ekit/slice"
	"github.com/gin-gonic/gin"
	"go-idgen/internal/domain"
	"go-idgen/internal/errs"
	"go-idgen/internal/pkg/ginx"
	"go-idgen/internal/pkg/id_generator"
	"go-idgen/internal/service/idgen"
)

var _ ginx.Handler = &Handler{}

type Handler struct {
	svc idgen.Service
}

func NewHandler(svc idgen.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) PrivateRoutes(_ *gin.Engine) {
}

func (h *Handler) PublicRoutes(server *gin.Engine) {
	g := server.Group("/ids")
	g.GET("/next", ginx.W(h.NextID))
	g.POST("/batch", ginx.B[BatchNextIDReq](h.BatchNextID))
	g.POST("/decode", ginx.B[DecodeReq](h.Decode))
}

// NextID 生成一个 ID
func (h *Handler) NextID(ctx *gin.Context) (ginx.Result, error) {
	id, err := h.svc.NextID(ctx.Request.Context())
	if err != nil {
		return errorResult(err), err
	}
	return ginx.Result{
		Data: NextIDResp{ID: id.String()},
	}, nil
}

// BatchNextID 批量生成 ID
func (h *Handler) BatchNextID(ctx *gin.Context, req BatchNextIDReq) (ginx.Result, error) {
	ids, err := h.svc.BatchNextID(ctx.Request.Context(), req.Count)
	if errors.Is(err, errs.ErrInvalidBatchSize) {
		return invalidBatchSizeResult, nil
	}
	if err != nil {
		return errorResult(err), err
	}
	return ginx.Result{
		Data: BatchNextIDResp{
			IDs: slice.Map(ids, func(_ int, src domain.ID) string {
				return src.String()
			}),
		},
	}, nil
}

// Decode 解析 ID
func (h *Handler) Decode(ctx *gin.Context, req DecodeReq) (ginx.Result, error) {
	id, err := domain.ParseID(req.ID)
	if err != nil {
		return invalidIDResult, nil
	}
	parts, err := h.svc.Decode(ctx.Request.Context(), id)
	if errors.Is(err, errs.ErrInvalidID) {
		return invalidIDResult, nil
	}
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: DecodeResp{
			ID:           parts.ID.String(),
			Timestamp:    parts.Timestamp.UnixMilli(),
			Time:         parts.Timestamp.UTC().Format(time.RFC3339Nano),
			DatacenterID: parts.DatacenterID,
			WorkerID:     parts.WorkerID,
			Sequence:     parts.Sequence,
		},
	}, nil
}

func errorResult(err error) ginx.Result {
	if errors.Is(err, id_generator.ErrClockRolledBack) {
		return clockRolledBackResult
	}
	return systemErrorResult
}
