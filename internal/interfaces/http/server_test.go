package http_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/keyip-mcs/internal/config"
	apihttp "github.com/turtacn/keyip-mcs/internal/interfaces/http"
	"github.com/turtacn/keyip-mcs/internal/testutil"
)

func TestServer_StartStop(t *testing.T) {
	cfg := config.Default().Server
	cfg.Host = "127.0.0.1"
	cfg.Port = 18089
	cfg.ShutdownTimeout = 2 * time.Second

	srv := apihttp.NewServer(cfg, newRouter(t), testutil.NewNopLogger())
	assert.Equal(t, "127.0.0.1:18089", srv.Addr())

	done := make(chan error, 1)
	go func() { done <- srv.Start() }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + srv.Addr() + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 3*time.Second, 20*time.Millisecond)

	require.NoError(t, srv.Stop(context.Background()))
	assert.NoError(t, <-done)
}

//Personal.AI order the ending
