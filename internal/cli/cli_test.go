package cli

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	nethttp "net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/handiism/mint-backgrounds/internal/config"
	"github.com/m-mizutani/gt"
)

func newMirror(t *testing.T) *httptest.Server {
	t.Helper()

	var archive bytes.Buffer
	gz := gzip.NewWriter(&archive)
	tw := tar.NewWriter(gz)
	for name, body := range map[string]string{"maya/one.jpg": "1", "maya/two.png": "2", "maya/CREDITS": "c"} {
		gt.NoError(t, tw.WriteHeader(&tar.Header{Name: name, Typeflag: tar.TypeReg, Mode: 0644, Size: int64(len(body))}))
		_, err := tw.Write([]byte(body))
		gt.NoError(t, err)
	}
	gt.NoError(t, tw.Close())
	gt.NoError(t, gz.Close())

	pages := map[string]string{
		"/m/": `<a href="mint-backgrounds-maya/">maya</a> <a href="mint-backgrounds-tiny/">tiny</a>`,
		"/m/mint-backgrounds-maya/": `<pre><a href="mint-backgrounds-maya_1.0.tar.gz">mint-backgrounds-maya_1.0.tar.gz</a>  2012-05-01 10:00  20M
</pre>`,
		"/m/mint-backgrounds-tiny/": `<pre><a href="mint-backgrounds-tiny_1.0.tar.gz">mint-backgrounds-tiny_1.0.tar.gz</a>  2012-05-01 10:00  4K
</pre>`,
	}

	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if page, ok := pages[r.URL.Path]; ok {
			w.Write([]byte(page))
			return
		}
		if r.URL.Path == "/m/mint-backgrounds-maya/mint-backgrounds-maya_1.0.tar.gz" {
			nethttp.ServeContent(w, r, "a.tar.gz", time.Time{}, bytes.NewReader(archive.Bytes()))
			return
		}
		nethttp.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), append([]string{"mint-backgrounds"}, args...), &stdout, &stderr)
	return stdout.String(), err
}

func TestList(t *testing.T) {
	srv := newMirror(t)

	out, err := execute(t, "list", "--base-url", srv.URL+"/m", "--request-interval", "0")
	gt.NoError(t, err)
	gt.String(t, out).Contains("2 directories, 2 archives, 1 above threshold")
	gt.String(t, out).Contains("mint-backgrounds-maya_1.0.tar.gz")
	gt.True(t, !strings.Contains(out, "mint-backgrounds-tiny_1.0.tar.gz"))

	out, err = execute(t, "list", "--all", "--base-url", srv.URL+"/m", "--request-interval", "0")
	gt.NoError(t, err)
	gt.String(t, out).Contains("mint-backgrounds-tiny_1.0.tar.gz")
}

func TestSync(t *testing.T) {
	srv := newMirror(t)
	root := t.TempDir()
	summaryPath := filepath.Join(root, "versions.json")

	out, err := execute(t, "--log-level", "warn", "sync",
		"--base-url", srv.URL+"/m",
		"--request-interval", "0",
		"--work-dir", filepath.Join(root, "work"),
		"--output", filepath.Join(root, "out"),
		"--scratch-dir", filepath.Join(root, "scratch"),
		"--summary", summaryPath,
	)
	gt.NoError(t, err)
	gt.String(t, out).Contains("Sync complete")
	gt.String(t, out).Contains("1/1")

	entries, err := os.ReadDir(filepath.Join(root, "out", "maya"))
	gt.NoError(t, err)
	gt.Equal(t, len(entries), 3)

	data, err := os.ReadFile(summaryPath)
	gt.NoError(t, err)
	var summary map[string]any
	gt.NoError(t, json.Unmarshal(data, &summary))
	gt.Equal(t, summary["total_images"], any(float64(2)))
	gt.Equal(t, summary["latest_mint_release"], any("Maya"))
}

func TestSync_DryRun(t *testing.T) {
	srv := newMirror(t)
	root := t.TempDir()

	out, err := execute(t, "sync", "--dry-run",
		"--base-url", srv.URL+"/m",
		"--request-interval", "0",
		"--output", filepath.Join(root, "out"),
	)
	gt.NoError(t, err)
	gt.String(t, out).Contains("1 above threshold")

	_, err = os.Stat(filepath.Join(root, "out"))
	gt.True(t, os.IsNotExist(err))
}

func TestSync_ConfigFileWithFlagOverride(t *testing.T) {
	srv := newMirror(t)
	root := t.TempDir()
	configPath := filepath.Join(root, "settings.toml")

	settings := config.DefaultSettings()
	settings.BaseURL = srv.URL + "/m"
	settings.RequestIntervalMillis = 0
	settings.MinSizeBytes = 100 * 1024 * 1024
	gt.NoError(t, settings.Save(configPath))

	out, err := execute(t, "list", "--config", configPath)
	gt.NoError(t, err)
	gt.String(t, out).Contains("0 above threshold")

	out, err = execute(t, "list", "--config", configPath, "--min-size", "1024")
	gt.NoError(t, err)
	gt.String(t, out).Contains("2 above threshold")
}

func TestSync_InvalidSettings(t *testing.T) {
	_, err := execute(t, "sync", "--download-workers", "0")
	gt.True(t, errors.Is(err, config.ErrInvalidSettings))
}

func TestRun_InvalidLogLevel(t *testing.T) {
	_, err := execute(t, "--log-level", "loud", "list")
	gt.Error(t, err)
	gt.String(t, err.Error()).Contains("invalid log level")
}

func TestSync_UnreachableIndex(t *testing.T) {
	srv := httptest.NewServer(nethttp.NotFoundHandler())
	defer srv.Close()

	_, err := execute(t, "sync", "--base-url", srv.URL, "--request-interval", "0")
	gt.Error(t, err)
}
