package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/registrar/internal/app/repositories/sqlstore"
	"github.com/yigit/registrar/internal/bootstrap"
	"github.com/yigit/registrar/internal/server"
	"github.com/yigit/registrar/internal/testutil"
)

func TestServeStopsOnContextCancel(t *testing.T) {
	cfg := testutil.SQLiteConfig(t)
	database := testutil.OpenSQLite(t, cfg)

	closed := make(chan struct{})
	store := &bootstrap.Store{
		Repos: sqlstore.NewRepositories(database),
		Close: func() { close(closed) },
	}
	deps := bootstrap.BuildDependencies(store.Repos, zerolog.Nop())
	srv := server.New(cfg, bootstrap.SetupRouter(cfg, deps, zerolog.Nop()), store, zerolog.Nop())

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}

	select {
	case <-closed:
	default:
		t.Fatal("store was not closed")
	}
}
