package appinfo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"steamfetch/internal/config"
	"steamfetch/internal/logging"
)

// ErrBadTarget marks inputs that are neither an app ID nor a store URL.
var ErrBadTarget = errors.New("unrecognized app target")

// ErrNotFound marks apps the storefront does not know about.
var ErrNotFound = errors.New("app not found")

const userAgent = "steamfetch/0.1.0"

// Details is the subset of storefront metadata steamfetch surfaces.
type Details struct {
	AppID       string    `json:"app_id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Description string    `json:"short_description"`
	HeaderImage string    `json:"header_image"`
	IsFree      bool      `json:"is_free"`
	CachedAt    time.Time `json:"cached_at"`
}

// ParseTarget extracts a numeric app ID from user input. Accepted forms are
// a bare numeric ID and store URLs containing an /app/<id> path segment.
func ParseTarget(target string) (string, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return "", fmt.Errorf("%w: empty input", ErrBadTarget)
	}

	if isDigits(target) {
		return target, nil
	}

	parsed, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrBadTarget, target)
	}
	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	for i, segment := range segments {
		if segment == "app" && i+1 < len(segments) && isDigits(segments[i+1]) {
			return segments[i+1], nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrBadTarget, target)
}

func isDigits(value string) bool {
	if value == "" {
		return false
	}
	for _, ch := range value {
		if !unicode.IsDigit(ch) {
			return false
		}
	}
	return true
}

// Service fetches app details from the Steam storefront API.
type Service struct {
	baseURL  string
	cacheDir string
	client   *http.Client
	logger   *slog.Logger
}

// NewService builds a storefront lookup service. Caching is skipped when
// disabled in the configuration or when the cache directory is empty.
func NewService(cfg *config.Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = logging.NewNop()
	}
	timeout := time.Duration(cfg.Steam.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	cacheDir := ""
	if cfg.Steam.CacheEnabled {
		cacheDir = cfg.Paths.CacheDir
	}
	return &Service{
		baseURL:  strings.TrimRight(cfg.Steam.APIBaseURL, "/"),
		cacheDir: cacheDir,
		client:   &http.Client{Timeout: timeout},
		logger:   logging.NewComponentLogger(logger, "appinfo"),
	}
}

// Lookup resolves target to an app ID and returns its storefront details,
// consulting the on-disk cache first.
func (s *Service) Lookup(ctx context.Context, target string) (Details, error) {
	appID, err := ParseTarget(target)
	if err != nil {
		return Details{}, err
	}

	if cached, ok := s.fromCache(appID); ok {
		return cached, nil
	}

	details, err := s.fetch(ctx, appID)
	if err != nil {
		return Details{}, err
	}
	s.toCache(details)
	return details, nil
}

// appdetailsResponse mirrors the storefront payload, which keys the result
// by the requested app ID.
type appdetailsResponse map[string]struct {
	Success bool `json:"success"`
	Data    struct {
		Name             string `json:"name"`
		Type             string `json:"type"`
		ShortDescription string `json:"short_description"`
		HeaderImage      string `json:"header_image"`
		IsFree           bool   `json:"is_free"`
	} `json:"data"`
}

func (s *Service) fetch(ctx context.Context, appID string) (Details, error) {
	endpoint := fmt.Sprintf("%s/appdetails?appids=%s", s.baseURL, url.QueryEscape(appID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Details{}, fmt.Errorf("build storefront request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return Details{}, fmt.Errorf("storefront request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Details{}, fmt.Errorf("storefront returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Details{}, fmt.Errorf("read storefront response: %w", err)
	}

	var payload appdetailsResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return Details{}, fmt.Errorf("decode storefront response: %w", err)
	}

	entry, ok := payload[appID]
	if !ok || !entry.Success {
		return Details{}, fmt.Errorf("%w: %s", ErrNotFound, appID)
	}

	return Details{
		AppID:       appID,
		Name:        entry.Data.Name,
		Type:        entry.Data.Type,
		Description: entry.Data.ShortDescription,
		HeaderImage: entry.Data.HeaderImage,
		IsFree:      entry.Data.IsFree,
		CachedAt:    time.Now().UTC(),
	}, nil
}

func (s *Service) cachePath(appID string) string {
	return filepath.Join(s.cacheDir, "app_"+appID+".json")
}

func (s *Service) fromCache(appID string) (Details, bool) {
	if s.cacheDir == "" {
		return Details{}, false
	}
	data, err := os.ReadFile(s.cachePath(appID))
	if err != nil {
		return Details{}, false
	}
	var details Details
	if err := json.Unmarshal(data, &details); err != nil {
		s.logger.Warn("discarding corrupt cache entry",
			logging.String(logging.FieldAppID, appID),
			logging.Error(err),
		)
		return Details{}, false
	}
	return details, true
}

func (s *Service) toCache(details Details) {
	if s.cacheDir == "" {
		return
	}
	if err := os.MkdirAll(s.cacheDir, 0o755); err != nil {
		s.logger.Warn("cache directory unavailable", logging.Error(err))
		return
	}
	data, err := json.MarshalIndent(details, "", "  ")
	if err != nil {
		return
	}
	path := s.cachePath(details.AppID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		s.logger.Warn("cache write failed", logging.Error(err))
		return
	}
	if err := os.Rename(tmp, path); err != nil {
		s.logger.Warn("cache rename failed", logging.Error(err))
	}
}
