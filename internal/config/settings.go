package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/handiism/mint-backgrounds/internal/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
)

// DefaultBaseURL is the package pool directory holding the wallpaper packages.
const DefaultBaseURL = "http://packages.linuxmint.com/pool/main/m"

// ErrInvalidSettings is returned by Validate for unusable settings.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings holds all configuration options.
type Settings struct {
	// Remote index
	BaseURL       string `json:"base_url" toml:"base_url"`
	PackagePrefix string `json:"package_prefix" toml:"package_prefix"`
	MinSizeBytes  int64  `json:"min_size_bytes" toml:"min_size_bytes"`

	// Worker pools
	DownloadWorkers int `json:"download_workers" toml:"download_workers"`
	ExtractWorkers  int `json:"extract_workers" toml:"extract_workers"`

	// Local layout
	WorkDir     string `json:"work_dir" toml:"work_dir"`
	OutputDir   string `json:"output_dir" toml:"output_dir"`
	ScratchDir  string `json:"scratch_dir" toml:"scratch_dir"`
	SummaryPath string `json:"summary_path" toml:"summary_path"`

	// HTTP
	UserAgent             string `json:"user_agent" toml:"user_agent"`
	RequestTimeoutSeconds int    `json:"request_timeout_seconds" toml:"request_timeout_seconds"`
	RequestIntervalMillis int    `json:"request_interval_ms" toml:"request_interval_ms"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		BaseURL:       DefaultBaseURL,
		PackagePrefix: model.DefaultPackagePrefix,
		MinSizeBytes:  model.DefaultMinSizeBytes,

		DownloadWorkers: 16,
		ExtractWorkers:  4,

		WorkDir:     ".",
		OutputDir:   "extracted_images",
		ScratchDir:  "",
		SummaryPath: "",

		UserAgent:             "Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/115.0",
		RequestTimeoutSeconds: 300,
		RequestIntervalMillis: 250,
	}
}

// Load reads settings from a JSON or TOML file, chosen by extension.
// A missing file yields the defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, goerr.Wrap(err, "failed to read settings", goerr.V("path", path))
	}

	settings := DefaultSettings()
	if isTOML(path) {
		err = toml.Unmarshal(data, settings)
	} else {
		err = json.Unmarshal(data, settings)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse settings", goerr.V("path", path))
	}

	return settings, nil
}

// Save writes settings to a JSON or TOML file, chosen by extension.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return goerr.Wrap(err, "failed to create settings directory", goerr.V("dir", dir))
	}

	var (
		data []byte
		err  error
	)
	if isTOML(path) {
		data, err = toml.Marshal(s)
	} else {
		data, err = json.MarshalIndent(s, "", "  ")
	}
	if err != nil {
		return goerr.Wrap(err, "failed to encode settings")
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks that the settings can drive a run.
func (s *Settings) Validate() error {
	switch {
	case strings.TrimSpace(s.BaseURL) == "":
		return goerr.Wrap(ErrInvalidSettings, "base URL is empty")
	case s.PackagePrefix == "":
		return goerr.Wrap(ErrInvalidSettings, "package prefix is empty")
	case s.MinSizeBytes <= 0:
		return goerr.Wrap(ErrInvalidSettings, "minimum size must be positive", goerr.V("min_size_bytes", s.MinSizeBytes))
	case s.DownloadWorkers <= 0:
		return goerr.Wrap(ErrInvalidSettings, "download workers must be positive", goerr.V("download_workers", s.DownloadWorkers))
	case s.ExtractWorkers <= 0:
		return goerr.Wrap(ErrInvalidSettings, "extract workers must be positive", goerr.V("extract_workers", s.ExtractWorkers))
	case s.OutputDir == "":
		return goerr.Wrap(ErrInvalidSettings, "output directory is empty")
	}
	return nil
}

// RequestTimeout returns the HTTP timeout as a duration.
func (s *Settings) RequestTimeout() time.Duration {
	return time.Duration(s.RequestTimeoutSeconds) * time.Second
}

// RequestInterval returns the minimum spacing between HTTP requests.
func (s *Settings) RequestInterval() time.Duration {
	return time.Duration(s.RequestIntervalMillis) * time.Millisecond
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
