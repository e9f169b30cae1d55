package main

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartServer_ServesAndShutsDown(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	server := startServer(handler, "0")
	require.NotNil(t, server)
	assert.Equal(t, ":0", server.Addr)
	assert.Equal(t, 15*time.Second, server.ReadTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.NoError(t, server.Shutdown(ctx))
}
