package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/ana-muslim-newtab/internal/config"
	"github.com/MKhiriev/ana-muslim-newtab/internal/logger"
	"github.com/MKhiriev/ana-muslim-newtab/internal/service"
)

func TestNewHandlers(t *testing.T) {
	h, err := NewHandlers(&service.Services{}, &config.ServerConfig{HTTPAddress: "localhost:8080"}, logger.Nop())
	require.NoError(t, err)
	assert.NotNil(t, h.HTTP)
	assert.NotNil(t, h.HTTP.Init())
}

func TestNewHandlers_NoAddress(t *testing.T) {
	for _, cfg := range []*config.ServerConfig{nil, {}} {
		h, err := NewHandlers(&service.Services{}, cfg, logger.Nop())
		assert.ErrorIs(t, err, errNoHandlersAreCreated)
		assert.Nil(t, h)
	}
}
