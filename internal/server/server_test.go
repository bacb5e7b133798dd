package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Timeouts(t *testing.T) {
	s := New(http.NewServeMux(), "8080", "", "")

	assert.Equal(t, ":8080", s.srv.Addr)
	assert.Equal(t, readTimeout, s.srv.ReadTimeout)
	assert.Equal(t, writeTimeout, s.srv.WriteTimeout)
	assert.Equal(t, idleTimeout, s.srv.IdleTimeout)
	assert.Equal(t, maxHeaderBytes, s.srv.MaxHeaderBytes)
	assert.Nil(t, s.srv.TLSConfig)
}

func TestServer_StartAndShutdown(t *testing.T) {
	// Port 0 lets the kernel pick a free port
	s := New(http.NewServeMux(), "0", "", "")

	require.NoError(t, s.Start())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))
}
