package ginx

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go-idgen/internal/pkg/logger"
)

// Server 包装 gin.Engine，负责监听和优雅退出
type Server struct {
	*gin.Engine
	Addr string
	L    logger.Logger

	srv *http.Server
}

func NewServer(engine *gin.Engine, addr string, l logger.Logger) *Server {
	return &Server{
		Engine: engine,
		Addr:   addr,
		L:      l,
		srv: &http.Server{
			Addr:    addr,
			Handler: engine,
		},
	}
}

func (s *Server) Start() error {
	s.L.Info("HTTP 服务启动", logger.String("addr", s.Addr))
	err := s.srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
