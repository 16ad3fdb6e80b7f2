package grpcx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-idgen/internal/pkg/logger"
	"go-idgen/internal/pkg/retry"
	"google.golang.org/grpc"
)

func serveAsync(s *Server) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Serve()
	}()
	return errCh
}

func waitServe(t *testing.T, errCh <-chan error) {
	t.Helper()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve 没有退出")
	}
}

func TestServer_ServeWithoutEtcd(t *testing.T) {
	t.Parallel()
	s := &Server{
		Server: grpc.NewServer(),
		Port:   0,
		Name:   "idgen",
		L:      logger.NewNopLogger(),
	}
	errCh := serveAsync(s)
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, s.Close())
	waitServe(t, errCh)
}

func TestServer_CloseBeforeServe(t *testing.T) {
	t.Parallel()
	s := &Server{
		Server: grpc.NewServer(),
		Port:   0,
		Name:   "idgen",
		L:      logger.NewNopLogger(),
	}
	require.NoError(t, s.Close())
	// GracefulStop 之后再 Serve 属于正常退出
	waitServe(t, serveAsync(s))
}

func TestServer_CloseWhileRegistering(t *testing.T) {
	t.Parallel()
	// 没有 etcd 在监听，注册会一直失败重试
	s := &Server{
		Server:    grpc.NewServer(),
		Port:      0,
		EtcdAddrs: []string{"127.0.0.1:1"},
		Name:      "idgen",
		L:         logger.NewNopLogger(),
		RegisterRetry: retry.Config{
			Type:          "fixed",
			FixedInterval: &retry.FixedIntervalConfig{MaxRetries: 0, Interval: 10 * time.Millisecond},
		},
	}
	errCh := serveAsync(s)
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, s.Close())
	waitServe(t, errCh)

	s.mu.Lock()
	defer s.mu.Unlock()
	assert.Nil(t, s.client)
}

func TestServer_RegisterRetryConfig(t *testing.T) {
	t.Parallel()
	s := &Server{
		Server:    grpc.NewServer(),
		EtcdAddrs: []string{"localhost:1"},
		Name:      "idgen",
		L:         logger.NewNopLogger(),
	}
	s.RegisterRetry.Type = "abc"
	assert.Error(t, s.registerWithRetry(t.Context()))
}
