// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/pdfconv/pkg/types"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		cfg       types.LogConfig
		wantLevel zapcore.Level
		wantErr   string
	}{
		{name: "defaults", cfg: types.LogConfig{}, wantLevel: zapcore.InfoLevel},
		{name: "debug console", cfg: types.LogConfig{Level: "debug", Format: types.LogConsole}, wantLevel: zapcore.DebugLevel},
		{name: "upper-case json", cfg: types.LogConfig{Level: "WARN", Format: types.LogJSON}, wantLevel: zapcore.WarnLevel},
		{name: "bad level", cfg: types.LogConfig{Level: "loud"}, wantErr: "invalid log level"},
		{name: "bad format", cfg: types.LogConfig{Format: "xml"}, wantErr: "invalid log format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.cfg)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, l.Core().Enabled(tt.wantLevel))
			assert.False(t, l.Core().Enabled(tt.wantLevel-1))
		})
	}
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
	l, err := New(types.LogConfig{})
	require.NoError(t, err)
	assert.Same(t, l, OrNop(l))
}
