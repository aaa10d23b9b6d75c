package handler

import (
	"testing"

	"github.com/MKhiriev/go-story-sync/internal/config"
	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestConfig builds a config with the given transport addresses.
func newTestConfig(httpAddr, grpcAddr string) config.StructuredConfig {
	return config.StructuredConfig{
		Server: config.Server{HTTPAddress: httpAddr, GRPCAddress: grpcAddr},
	}
}

// NewHandlers only stores the service pointers, so nil dependencies are safe
// for construction-time tests.
func TestNewHandlers(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.StructuredConfig
		wantHTTP bool
		wantGRPC bool
		wantErr  error
	}{
		{name: "both addresses", cfg: newTestConfig(":8080", ":9090"), wantHTTP: true, wantGRPC: true},
		{name: "only http", cfg: newTestConfig(":8080", ""), wantHTTP: true},
		{name: "only grpc", cfg: newTestConfig("", ":9090"), wantGRPC: true},
		{name: "no addresses", cfg: newTestConfig("", ""), wantErr: errNoHandlersAreCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := NewHandlers(nil, nil, nil, tt.cfg, logger.Nop())
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, h)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantHTTP, h.HTTP != nil)
			assert.Equal(t, tt.wantGRPC, h.GRPC != nil)
		})
	}
}

func TestNewHandlers_IndependentInstances(t *testing.T) {
	cfg := newTestConfig(":8080", ":9090")

	h1, err1 := NewHandlers(nil, nil, nil, cfg, logger.Nop())
	h2, err2 := NewHandlers(nil, nil, nil, cfg, logger.Nop())

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.NotSame(t, h1, h2)
	assert.NotSame(t, h1.HTTP, h2.HTTP)
	assert.NotSame(t, h1.GRPC, h2.GRPC)
}
