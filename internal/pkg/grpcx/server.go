package grpcx

import (
	"context"
	"errors"
	"net"
	"strconv"
	"sync"
	"time"

	"go-idgen/internal/pkg/logger"
	"go-idgen/internal/pkg/netx"
	"go-idgen/internal/pkg/retry"
	clientv3 "go.etcd.io/etcd/client/v3"
	"go.etcd.io/etcd/client/v3/naming/endpoints"
	"google.golang.org/grpc"
)

// Server 在 grpc.Server 的基础上加了 etcd 注册
// EtcdAddrs 为空的时候只监听端口，不注册
type Server struct {
	*grpc.Server
	Port      int
	EtcdAddrs []string
	Name      string
	L         logger.Logger

	// 租约时长，单位秒，默认 5
	EtcdTTL int64

	// 注册 etcd 失败的重试策略，Type 为空不重试
	RegisterRetry retry.Config

	mu        sync.Mutex
	closed    bool
	regCancel context.CancelFunc
	client    *clientv3.Client
	cancel    context.CancelFunc
	key       string
}

var errServerClosed = errors.New("grpcx: 服务已经关闭")

// Serve 注册成功之后才开始处理请求。
// 注册过程中调用 Close 会中断注册，此时 Serve 返回 nil
func (s *Server) Serve() error {
	l, err := net.Listen("tcp", ":"+strconv.Itoa(s.Port))
	if err != nil {
		return err
	}
	if len(s.EtcdAddrs) > 0 {
		ctx, cancel := context.WithCancel(context.Background())
		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			cancel()
			_ = l.Close()
			return nil
		}
		s.regCancel = cancel
		s.mu.Unlock()

		// ctx 同时是 etcd 客户端的生命周期，由 Close 取消
		err = s.registerWithRetry(ctx)
		if err != nil {
			cancel()
			_ = l.Close()
			if s.isClosed() {
				return nil
			}
			return err
		}
	}
	err = s.Server.Serve(l)
	if errors.Is(err, grpc.ErrServerStopped) {
		return nil
	}
	return err
}

func (s *Server) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Server) registerWithRetry(ctx context.Context) error {
	if s.RegisterRetry.Type == "" {
		return s.register(ctx)
	}
	st, err := s.RegisterRetry.NewStrategy()
	if err != nil {
		return err
	}
	return retry.Do(ctx, st, func() error {
		er := s.register(ctx)
		if er != nil && !errors.Is(er, errServerClosed) {
			s.L.Warn("注册 etcd 失败", logger.String("name", s.Name), logger.Error(er))
		}
		return er
	})
}

func (s *Server) register(ctx context.Context) (err error) {
	client, err := clientv3.New(clientv3.Config{
		Endpoints:   s.EtcdAddrs,
		DialTimeout: 3 * time.Second,
		Context:     ctx,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = client.Close()
		}
	}()
	em, err := endpoints.NewManager(client, s.serviceKey())
	if err != nil {
		return err
	}
	ip, err := netx.LocalIPv4()
	if err != nil {
		return err
	}
	addr := net.JoinHostPort(ip.String(), strconv.Itoa(s.Port))
	key := s.serviceKey() + "/" + addr

	ttl := s.EtcdTTL
	if ttl <= 0 {
		ttl = 5
	}
	opCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	lease, err := client.Grant(opCtx, ttl)
	if err != nil {
		return err
	}
	err = em.AddEndpoint(opCtx, key, endpoints.Endpoint{Addr: addr}, clientv3.WithLease(lease.ID))
	if err != nil {
		return err
	}

	kaCtx, kaCancel := context.WithCancel(context.Background())
	ch, err := client.KeepAlive(kaCtx, lease.ID)
	if err != nil {
		kaCancel()
		return err
	}
	go func() {
		for range ch {
		}
		s.L.Debug("etcd 续约结束", logger.String("key", key))
	}()
	s.mu.Lock()
	if s.closed {
		// 注册期间已经 Close，撤销刚拿到的租约
		s.mu.Unlock()
		kaCancel()
		revokeCtx, revokeCancel := context.WithTimeout(context.Background(), time.Second)
		_, _ = client.Revoke(revokeCtx, lease.ID)
		revokeCancel()
		return errServerClosed
	}
	s.client, s.cancel, s.key = client, kaCancel, key
	s.mu.Unlock()
	s.L.Info("服务注册成功",
		logger.String("key", key),
		logger.Int64("lease", int64(lease.ID)))
	return nil
}

func (s *Server) serviceKey() string {
	return "service/" + s.Name
}

// Close 先摘掉注册信息，再优雅退出
func (s *Server) Close() error {
	err := s.deregister()
	s.Server.GracefulStop()
	return err
}

func (s *Server) deregister() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	// 客户端的 ctx 要等摘除注册信息之后再取消
	defer func() {
		if s.regCancel != nil {
			s.regCancel()
		}
	}()
	if s.cancel != nil {
		s.cancel()
	}
	if s.client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		em, err := endpoints.NewManager(s.client, s.serviceKey())
		if err == nil {
			err = em.DeleteEndpoint(ctx, s.key)
		}
		cancel()
		if err != nil {
			s.L.Warn("摘除注册信息失败", logger.String("key", s.key), logger.Error(err))
		}
		closeErr := s.client.Close()
		s.client = nil
		return closeErr
	}
	return nil
}
