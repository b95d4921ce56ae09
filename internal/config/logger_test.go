package config_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/handiism/mint-backgrounds/internal/config"
	"github.com/m-mizutani/gt"
)

func TestLogger_Configure(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		wantErr bool
	}{
		{name: "Valid level: debug", level: "debug"},
		{name: "Valid level: DEBUG (case insensitive)", level: "DEBUG"},
		{name: "Valid level: info", level: "info"},
		{name: "Valid level: warn", level: "warn"},
		{name: "Valid level: ERROR", level: "ERROR"},
		{name: "Invalid level: empty string", level: "", wantErr: true},
		{name: "Invalid level: random", level: "random", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Logger{Level: tt.level}

			logger, err := cfg.Configure(&bytes.Buffer{})
			if tt.wantErr {
				gt.Error(t, err)
				return
			}
			gt.NoError(t, err)
			gt.V(t, logger).NotNil()
		})
	}
}

func TestLogger_Configure_JSON(t *testing.T) {
	var buf bytes.Buffer
	cfg := &config.Logger{Level: "info", JSON: true}

	logger, err := cfg.Configure(&buf)
	gt.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("archive downloaded", "file", "mint-backgrounds-nadia_1.4.tar.gz")

	gt.String(t, buf.String()).Contains(`"msg":"archive downloaded"`)
	gt.String(t, buf.String()).Contains(`"file":"mint-backgrounds-nadia_1.4.tar.gz"`)
	gt.True(t, !strings.Contains(buf.String(), "hidden"))
}

func TestLogger_Flags(t *testing.T) {
	cfg := &config.Logger{}
	flags := cfg.Flags()
	gt.Equal(t, len(flags), 2)

	names := make(map[string]bool)
	for _, f := range flags {
		names[f.Names()[0]] = true
	}
	gt.True(t, names["log-level"])
	gt.True(t, names["log-json"])
}
