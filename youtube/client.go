// Package youtube provides a YouTube Data API v3 implementation of
// vast.VideoService, plus the URL pattern shared by the extractor for
// recognizing watch/embed/short video links.
package youtube

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"github.com/courseaudit/vast"
)

// DefaultBaseURL is the YouTube Data API v3 endpoint root.
const DefaultBaseURL = "https://www.googleapis.com/youtube/v3"

// DefaultTimeout is the per-call timeout for API requests.
const DefaultTimeout = 15 * time.Second

// watchPattern recognizes the major watch/embed/short YouTube URL shapes
// and captures the exact 11-character video identifier.
var watchPattern = regexp.MustCompile(`(?i)(?:https?://)?(?:[0-9A-Z-]+\.)?(?:youtube|youtu|youtube-nocookie)\.(?:com|be)/(?:watch\?v=|watch\?.+&v=|embed/|v/|.+\?v=)?([^&=\n%?]{11})`)

// MatchesWatchURL reports whether the URL looks like a YouTube video link.
func MatchesWatchURL(rawURL string) bool {
	return watchPattern.MatchString(rawURL)
}

// ExtractVideoID extracts the 11-character video identifier from a
// YouTube URL. The bool result is false if no identifier could be parsed.
func ExtractVideoID(rawURL string) (string, bool) {
	m := watchPattern.FindStringSubmatch(rawURL)
	if m == nil || m[1] == "" {
		return "", false
	}
	return m[1], true
}

// Ensure Client implements vast.VideoService at compile time.
var _ vast.VideoService = (*Client)(nil)

// Client queries the YouTube Data API for video durations and caption
// tracks.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
	timeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint root. Used by tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets the underlying HTTP client. The client's transport
// is used as-is, so callers can install logging or recording transports.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

// WithTimeout sets the per-call timeout. Defaults to DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// NewClient creates a new YouTube Data API client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.client == nil {
		c.client = &http.Client{}
	}
	return c
}

// videoListResponse is the subset of the videos.list response we consume.
type videoListResponse struct {
	Items []struct {
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
	} `json:"items"`
}

// captionListResponse is the subset of the captions.list response we consume.
type captionListResponse struct {
	Items []struct {
		Snippet struct {
			Language  string `json:"language"`
			TrackKind string `json:"trackKind"`
		} `json:"snippet"`
	} `json:"items"`
}

// Lookup fetches the video's duration via the content-details endpoint and
// its caption tracks via the captions-list endpoint.
// Returns ENOTFOUND if the metadata lookup yields an empty item set.
func (c *Client) Lookup(ctx context.Context, videoID string) (vast.Duration, []vast.CaptionTrack, error) {
	var videos videoListResponse
	query := url.Values{
		"part": {"contentDetails"},
		"id":   {videoID},
		"key":  {c.apiKey},
	}
	if err := c.getJSON(ctx, "/videos", query, &videos); err != nil {
		return vast.Duration{}, nil, err
	}
	if len(videos.Items) == 0 {
		return vast.Duration{}, nil, vast.Errorf(vast.ENOTFOUND, "video %q not found", videoID)
	}
	duration := ParseISO8601(videos.Items[0].ContentDetails.Duration)

	var captions captionListResponse
	query = url.Values{
		"part":    {"snippet"},
		"videoId": {videoID},
		"key":     {c.apiKey},
	}
	if err := c.getJSON(ctx, "/captions", query, &captions); err != nil {
		return vast.Duration{}, nil, err
	}

	tracks := make([]vast.CaptionTrack, 0, len(captions.Items))
	for _, item := range captions.Items {
		tracks = append(tracks, vast.CaptionTrack{
			Language: item.Snippet.Language,
			Kind:     item.Snippet.TrackKind,
		})
	}
	return duration, tracks, nil
}

// getJSON issues a GET request against the API and decodes the JSON body.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, v any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return vast.Errorf(vast.EUNAVAILABLE, "youtube api request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return vast.Errorf(vast.EUNAVAILABLE, "youtube api returned HTTP %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return vast.Errorf(vast.EINTERNAL, "failed to decode youtube response: %v", err)
	}
	return nil
}

// durationTokens matches the number+unit tokens of an ISO-8601-style
// duration ("PT1H2M3S"), any subset of which may be present.
var durationTokens = regexp.MustCompile(`([0-9]+)([HMS])`)

// ParseISO8601 parses an ISO-8601-style duration token stream into its
// hour/minute/second components. Missing components default to "0".
func ParseISO8601(duration string) vast.Duration {
	d := vast.Duration{Hours: "0", Minutes: "0", Seconds: "0"}
	for _, m := range durationTokens.FindAllStringSubmatch(duration, -1) {
		switch m[2] {
		case "H":
			d.Hours = m[1]
		case "M":
			d.Minutes = m[1]
		case "S":
			d.Seconds = m[1]
		}
	}
	return d
}

// Host returns the host of the configured API endpoint, used as the rate
// limiter key for this service.
func (c *Client) Host() string {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "youtube"
	}
	return u.Host
}
