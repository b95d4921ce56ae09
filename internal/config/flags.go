package config

import (
	"github.com/urfave/cli/v3"
)

// flagOverride copies one flag-bound field from src onto dst.
type flagOverride struct {
	name  string
	apply func(dst, src *Settings)
}

var overrides = []flagOverride{
	{"base-url", func(d, s *Settings) { d.BaseURL = s.BaseURL }},
	{"prefix", func(d, s *Settings) { d.PackagePrefix = s.PackagePrefix }},
	{"min-size", func(d, s *Settings) { d.MinSizeBytes = s.MinSizeBytes }},
	{"download-workers", func(d, s *Settings) { d.DownloadWorkers = s.DownloadWorkers }},
	{"extract-workers", func(d, s *Settings) { d.ExtractWorkers = s.ExtractWorkers }},
	{"work-dir", func(d, s *Settings) { d.WorkDir = s.WorkDir }},
	{"output", func(d, s *Settings) { d.OutputDir = s.OutputDir }},
	{"scratch-dir", func(d, s *Settings) { d.ScratchDir = s.ScratchDir }},
	{"summary", func(d, s *Settings) { d.SummaryPath = s.SummaryPath }},
	{"user-agent", func(d, s *Settings) { d.UserAgent = s.UserAgent }},
	{"request-interval", func(d, s *Settings) { d.RequestIntervalMillis = s.RequestIntervalMillis }},
}

// Flags returns CLI flags bound to the settings fields. Flag defaults come
// from the current values of s.
func (s *Settings) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "base-url",
			Usage:       "Package index URL holding the background package directories",
			Value:       s.BaseURL,
			Destination: &s.BaseURL,
			Sources:     cli.EnvVars("MINT_BG_BASE_URL"),
		},
		&cli.StringFlag{
			Name:        "prefix",
			Usage:       "Package family prefix of directories and archives",
			Value:       s.PackagePrefix,
			Destination: &s.PackagePrefix,
			Sources:     cli.EnvVars("MINT_BG_PREFIX"),
		},
		&cli.Int64Flag{
			Name:        "min-size",
			Usage:       "Minimum archive size in bytes",
			Value:       s.MinSizeBytes,
			Destination: &s.MinSizeBytes,
			Sources:     cli.EnvVars("MINT_BG_MIN_SIZE"),
		},
		&cli.IntFlag{
			Name:        "download-workers",
			Usage:       "Number of parallel downloads",
			Value:       s.DownloadWorkers,
			Destination: &s.DownloadWorkers,
			Sources:     cli.EnvVars("MINT_BG_DOWNLOAD_WORKERS"),
		},
		&cli.IntFlag{
			Name:        "extract-workers",
			Usage:       "Number of parallel extractions",
			Value:       s.ExtractWorkers,
			Destination: &s.ExtractWorkers,
			Sources:     cli.EnvVars("MINT_BG_EXTRACT_WORKERS"),
		},
		&cli.StringFlag{
			Name:        "work-dir",
			Usage:       "Directory archives are downloaded into",
			Value:       s.WorkDir,
			Destination: &s.WorkDir,
			Sources:     cli.EnvVars("MINT_BG_WORK_DIR"),
		},
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Directory receiving one folder per release family",
			Value:       s.OutputDir,
			Destination: &s.OutputDir,
			Sources:     cli.EnvVars("MINT_BG_OUTPUT_DIR"),
		},
		&cli.StringFlag{
			Name:        "scratch-dir",
			Usage:       "Parent directory for temporary extraction workspaces (default: system temp)",
			Value:       s.ScratchDir,
			Destination: &s.ScratchDir,
			Sources:     cli.EnvVars("MINT_BG_SCRATCH_DIR"),
		},
		&cli.StringFlag{
			Name:        "summary",
			Usage:       "Write a JSON run summary to this path",
			Value:       s.SummaryPath,
			Destination: &s.SummaryPath,
			Sources:     cli.EnvVars("MINT_BG_SUMMARY"),
		},
		&cli.StringFlag{
			Name:        "user-agent",
			Usage:       "User-Agent header sent to the index",
			Value:       s.UserAgent,
			Destination: &s.UserAgent,
			Sources:     cli.EnvVars("MINT_BG_USER_AGENT"),
		},
		&cli.IntFlag{
			Name:        "request-interval",
			Usage:       "Minimum milliseconds between HTTP requests (0 disables)",
			Value:       s.RequestIntervalMillis,
			Destination: &s.RequestIntervalMillis,
			Sources:     cli.EnvVars("MINT_BG_REQUEST_INTERVAL_MS"),
		},
	}
}

// Override copies every flag the user explicitly set from flagged onto s.
// This lets a settings file provide the base and flags win over it.
func (s *Settings) Override(isSet func(name string) bool, flagged *Settings) {
	for _, o := range overrides {
		if isSet(o.name) {
			o.apply(s, flagged)
		}
	}
}
