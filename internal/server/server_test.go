package server

import (
	"bytes"
	"context"
	"log"
	"net"
	"net/http"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wesleyorama2/cicd-template/internal/config"
)

// syncBuffer guards a bytes.Buffer shared between the server and the test
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func testServeConfig() config.ServeConfig {
	cfg := config.DefaultServeConfig(config.MapSource{})
	cfg.ShutdownTimeout = 2 * time.Second
	return cfg
}

func TestServer_ServeAndShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port

	var logs syncBuffer
	srv := New(testServeConfig(), NewRouter(Options{Env: config.MapSource{}}), log.New(&logs, "", 0))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(ctx, ln)
	}()

	resp, err := http.Get("http://" + ln.Addr().String() + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}

	out := logs.String()
	assert.Contains(t, out, "Servidor rodando na porta "+strconv.Itoa(port))
	assert.Contains(t, out, "Status endpoint: http://localhost:"+strconv.Itoa(port)+"/status")
	assert.Contains(t, out, "Home endpoint: http://localhost:"+strconv.Itoa(port)+"/")
	assert.Contains(t, out, "Servidor encerrado")
}

func TestServer_ShutdownTimeoutClosesPendingRequests(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	cfg := testServeConfig()
	cfg.ShutdownTimeout = 100 * time.Millisecond

	var logs syncBuffer
	srv := New(cfg, NewRouter(Options{Env: config.MapSource{}}), log.New(&logs, "", 0))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(ctx, ln)
	}()

	clientDone := make(chan struct{})
	go func() {
		defer close(clientDone)
		resp, err := http.Get("http://" + ln.Addr().String() + "/latency?ms=30000")
		if err == nil {
			resp.Body.Close()
		}
	}()

	// Let the request reach its timer before shutting down
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}

	select {
	case <-clientDone:
	case <-time.After(5 * time.Second):
		t.Fatal("pending request was not released")
	}
	assert.Contains(t, logs.String(), "Shutdown timeout exceeded")
}

func TestServer_RunListenError(t *testing.T) {
	cfg := testServeConfig()
	cfg.Port = "not-a-port"

	err := New(cfg, http.NotFoundHandler(), nil).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen on :not-a-port")
}
