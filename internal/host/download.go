package host

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/egoavara/rau/internal/debug"
	"github.com/egoavara/rau/internal/rau"
)

var (
	ErrChecksumMismatch = errors.New("checksum verification failed")
	ErrDownloadFailed   = errors.New("download failed")
)

// HTTPDownloader fetches release assets over HTTP.
type HTTPDownloader struct {
	client *http.Client
	target string
}

// NewHTTPDownloader creates a downloader whose artifacts replace target.
// An empty target means the running executable.
func NewHTTPDownloader(target string) *HTTPDownloader {
	return &HTTPDownloader{
		client: &http.Client{},
		target: target,
	}
}

// Download streams the asset into a temp directory and verifies its checksum.
func (d *HTTPDownloader) Download(ctx context.Context, asset Asset) (*Artifact, error) {
	if asset.URL == "" {
		return nil, fmt.Errorf("%w: release has no asset url", ErrDownloadFailed)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, asset.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/octet-stream")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrDownloadFailed, resp.StatusCode)
	}

	dir, err := os.MkdirTemp("", "rau-update-*")
	if err != nil {
		return nil, fmt.Errorf("create temp directory: %w", err)
	}

	name := asset.Name
	if name == "" {
		name = "rau.new"
	}
	path := filepath.Join(dir, filepath.Base(name))

	if err := writeVerified(resp.Body, path, asset.SHA256); err != nil {
		_ = os.RemoveAll(dir)
		return nil, err
	}

	debug.Logf("downloaded %s to %s", asset.URL, path)
	return &Artifact{Path: path, dir: dir, target: d.target}, nil
}

func writeVerified(r io.Reader, path, checksum string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o755)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(io.MultiWriter(f, h), r); err != nil {
		return fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}

	if checksum == "" {
		return nil
	}
	got := hex.EncodeToString(h.Sum(nil))
	if !strings.EqualFold(got, strings.TrimSpace(checksum)) {
		return fmt.Errorf("%w: expected %s, got %s", ErrChecksumMismatch, checksum, got)
	}
	return nil
}

// Artifact is a verified download waiting to replace the target binary.
type Artifact struct {
	Path   string
	dir    string
	target string

	newReplacer func(target string) *BinaryReplacer
}

// UpdateAll replaces the target binary with the download and removes the
// temp directory.
func (a *Artifact) UpdateAll(ctx context.Context) error {
	defer func() { _ = os.RemoveAll(a.dir) }()

	target := a.target
	if target == "" {
		exe, err := ExecutablePath()
		if err != nil {
			return err
		}
		target = exe
	}

	newReplacer := a.newReplacer
	if newReplacer == nil {
		newReplacer = NewBinaryReplacer
	}
	return newReplacer(target).Replace(ctx, a.Path)
}

var _ rau.Artifact = (*Artifact)(nil)

// ExecutablePath returns the resolved path of the running binary.
func ExecutablePath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("get executable path: %w", err)
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("resolve symlinks: %w", err)
	}
	return exe, nil
}
