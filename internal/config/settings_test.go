package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/handiism/mint-backgrounds/internal/config"
	"github.com/m-mizutani/gt"
)

func TestDefaultSettings(t *testing.T) {
	s := config.DefaultSettings()

	gt.Equal(t, s.BaseURL, config.DefaultBaseURL)
	gt.Equal(t, s.PackagePrefix, "mint-backgrounds")
	gt.Equal(t, s.MinSizeBytes, int64(13631488))
	gt.Equal(t, s.DownloadWorkers, 16)
	gt.Equal(t, s.ExtractWorkers, 4)
	gt.Equal(t, s.OutputDir, "extracted_images")
	gt.NoError(t, s.Validate())
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	s, err := config.Load(filepath.Join(t.TempDir(), "nope.json"))
	gt.NoError(t, err)
	gt.Equal(t, s.DownloadWorkers, 16)
}

func TestLoad_JSONKeepsDefaultsForAbsentKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	gt.NoError(t, os.WriteFile(path, []byte(`{"download_workers": 3, "output_dir": "walls"}`), 0644))

	s, err := config.Load(path)
	gt.NoError(t, err)
	gt.Equal(t, s.DownloadWorkers, 3)
	gt.Equal(t, s.OutputDir, "walls")
	gt.Equal(t, s.ExtractWorkers, 4)
	gt.Equal(t, s.BaseURL, config.DefaultBaseURL)
}

func TestLoad_TOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	data := `
base_url = "http://mirror.example.com/pool/main/m"
min_size_bytes = 1048576
extract_workers = 2
`
	gt.NoError(t, os.WriteFile(path, []byte(data), 0644))

	s, err := config.Load(path)
	gt.NoError(t, err)
	gt.Equal(t, s.BaseURL, "http://mirror.example.com/pool/main/m")
	gt.Equal(t, s.MinSizeBytes, int64(1048576))
	gt.Equal(t, s.ExtractWorkers, 2)
	gt.Equal(t, s.DownloadWorkers, 16)
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	gt.NoError(t, os.WriteFile(path, []byte(`{"download_workers": "many"}`), 0644))

	_, err := config.Load(path)
	gt.Error(t, err)
	gt.String(t, err.Error()).Contains("failed to parse settings")
}

func TestSettings_SaveAndLoad(t *testing.T) {
	for _, name := range []string{"cfg/settings.json", "cfg/settings.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)

			s := config.DefaultSettings()
			s.OutputDir = "/srv/walls"
			s.ExtractWorkers = 7
			gt.NoError(t, s.Save(path))

			loaded, err := config.Load(path)
			gt.NoError(t, err)
			gt.Equal(t, loaded, s)
		})
	}
}

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Settings)
	}{
		{"empty base url", func(s *config.Settings) { s.BaseURL = " " }},
		{"empty prefix", func(s *config.Settings) { s.PackagePrefix = "" }},
		{"zero threshold", func(s *config.Settings) { s.MinSizeBytes = 0 }},
		{"zero download workers", func(s *config.Settings) { s.DownloadWorkers = 0 }},
		{"negative extract workers", func(s *config.Settings) { s.ExtractWorkers = -1 }},
		{"empty output", func(s *config.Settings) { s.OutputDir = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := config.DefaultSettings()
			tt.mutate(s)
			err := s.Validate()
			gt.Error(t, err)
			gt.True(t, errors.Is(err, config.ErrInvalidSettings))
		})
	}
}

func TestSettings_Override(t *testing.T) {
	base := config.DefaultSettings()
	base.OutputDir = "from-file"
	base.DownloadWorkers = 8

	flagged := config.DefaultSettings()
	flagged.OutputDir = "from-flag"
	flagged.DownloadWorkers = 2

	set := map[string]bool{"output": true}
	base.Override(func(name string) bool { return set[name] }, flagged)

	gt.Equal(t, base.OutputDir, "from-flag")
	gt.Equal(t, base.DownloadWorkers, 8)
}
