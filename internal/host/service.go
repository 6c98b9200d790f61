// Package host provides the terminal implementations of the collaborators the
// update workflow consumes: update service, downloader, connectivity,
// permissions and process control.
package host

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/egoavara/rau/internal/debug"
	"github.com/egoavara/rau/internal/rau"
)

const checkPath = "/api/v1/update"

// Release is the update service response body.
type Release struct {
	NewVersion string    `json:"newVersion"`
	Meta       *rau.Meta `json:"meta,omitempty"`
	Asset      Asset     `json:"asset"`
}

// Asset is the downloadable file of a release.
type Asset struct {
	URL    string `json:"url"`
	SHA256 string `json:"sha256"`
	Name   string `json:"name"`
}

// ServiceError is a structured error returned by the update service.
type ServiceError struct {
	StatusCode int    `json:"status"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *ServiceError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("update service returned status %d", e.StatusCode)
	}
	if e.Code == "" {
		return fmt.Sprintf("update service: %s", e.Message)
	}
	return fmt.Sprintf("update service: %s: %s", e.Code, e.Message)
}

// HTTPService queries the update service over HTTP.
type HTTPService struct {
	baseURL        string
	currentVersion string
	platform       string
	channel        string
	client         *http.Client
	downloader     *HTTPDownloader

	// shared is the client set by WithHTTPClient, bound to the downloader
	// once every option has run.
	shared *http.Client
}

// ServiceOption configures an HTTPService.
type ServiceOption func(*HTTPService)

// WithHTTPClient sets the client used for queries and downloads, whatever
// the order of other options.
func WithHTTPClient(client *http.Client) ServiceOption {
	return func(s *HTTPService) {
		s.client = client
		s.shared = client
	}
}

// WithDownloader replaces the downloader bound to results.
func WithDownloader(d *HTTPDownloader) ServiceOption {
	return func(s *HTTPService) {
		s.downloader = d
	}
}

// NewHTTPService creates a service for the given server.
func NewHTTPService(baseURL, currentVersion, platform, channel string, timeout time.Duration, opts ...ServiceOption) *HTTPService {
	s := &HTTPService{
		baseURL:        strings.TrimRight(baseURL, "/"),
		currentVersion: currentVersion,
		platform:       platform,
		channel:        channel,
		client:         &http.Client{Timeout: timeout},
		downloader:     NewHTTPDownloader(""),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.shared != nil {
		s.downloader.client = s.shared
	}
	return s
}

// Check asks the service for a newer version. It returns rau.ErrNoUpdate
// when the running version is current.
func (s *HTTPService) Check(ctx context.Context) (*rau.Result, error) {
	release, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	newer, err := IsNewer(s.currentVersion, release.NewVersion)
	if err != nil {
		return nil, err
	}
	if !newer {
		debug.Logf("service offered %s, running %s", release.NewVersion, s.currentVersion)
		return nil, rau.ErrNoUpdate
	}

	asset := release.Asset
	return &rau.Result{
		NewVersion: release.NewVersion,
		Meta:       release.Meta,
		Source: rau.DownloaderFunc(func(ctx context.Context) (rau.Artifact, error) {
			return s.downloader.Download(ctx, asset)
		}),
	}, nil
}

func (s *HTTPService) fetch(ctx context.Context) (*Release, error) {
	q := url.Values{}
	q.Set("version", s.currentVersion)
	q.Set("platform", s.platform)
	q.Set("channel", s.channel)
	endpoint := s.baseURL + checkPath + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "rau/"+s.currentVersion)

	debug.Logf("GET %s", endpoint)
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query update service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNoContent:
		return nil, rau.ErrNoUpdate
	default:
		return nil, decodeServiceError(resp)
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("decode update response: %w", err)
	}
	if release.NewVersion == "" {
		return nil, fmt.Errorf("update response has no version")
	}
	return &release, nil
}

func decodeServiceError(resp *http.Response) error {
	svcErr := &ServiceError{StatusCode: resp.StatusCode}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err := json.Unmarshal(body, svcErr); err != nil {
		svcErr.Message = strings.TrimSpace(string(body))
	}
	svcErr.StatusCode = resp.StatusCode
	return svcErr
}

// IsNewer reports whether candidate is a newer version than current.
// A development build is older than every release.
func IsNewer(current, candidate string) (bool, error) {
	next, err := semver.NewVersion(candidate)
	if err != nil {
		return false, fmt.Errorf("invalid version %q: %w", candidate, err)
	}
	if current == "" || current == "dev" {
		return true, nil
	}
	cur, err := semver.NewVersion(current)
	if err != nil {
		return true, nil
	}
	return next.GreaterThan(cur), nil
}
