package ioc

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/viper"
	"go-idgen/internal/pkg/ginx"
	"go-idgen/internal/pkg/logger"
	"go-idgen/internal/web/id"
)

func InitGinServer(idHdl *id.Handler, l logger.Logger) *ginx.Server {
	type Config struct {
		Addr string `yaml:"addr"`
	}
	cfg := Config{Addr: ":8080"}
	if err := viper.UnmarshalKey("http.server", &cfg); err != nil {
		panic(err)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	idHdl.PublicRoutes(engine)
	idHdl.PrivateRoutes(engine)
	return ginx.NewServer(engine, cfg.Addr, l)
}
