// Package canvas provides a Canvas LMS REST implementation of
// vast.CourseService, vast.FileService, and vast.MediaInspector.
package canvas

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/courseaudit/vast"
)

// DefaultTimeout is the per-call timeout for content listing requests.
const DefaultTimeout = 30 * time.Second

// inspectTimeout bounds the cheaper file and media-object lookups.
const inspectTimeout = 10 * time.Second

// Media-object descriptor markers. The descriptor body is matched as raw
// text rather than decoded, mirroring how the upstream endpoint is
// actually consumed: the fields of interest always serialize in this
// exact shape.
const (
	subtitleMarker      = `"kind":"subtitles"`
	englishLocaleMarker = `"locale":"en"`
)

// Compile-time interface checks.
var (
	_ vast.CourseService  = (*Client)(nil)
	_ vast.FileService    = (*Client)(nil)
	_ vast.MediaInspector = (*Client)(nil)
)

// Client talks to the Canvas REST API using a bearer access token.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
	timeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client. The client's transport
// is used as-is, so callers can install logging or recording transports.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

// WithTimeout sets the per-call timeout for listing requests.
// Defaults to DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// NewClient creates a new Canvas client for the given API base URL and
// access token.
func NewClient(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   strings.TrimSpace(token),
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

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ParseCourseID extracts the course ID from a pasted course URL
// (".../courses/1834" or ".../courses/1834/pages?x=y"). Input without a
// "courses/" segment is returned trimmed, assuming it is already an ID.
func ParseCourseID(input string) string {
	if _, after, ok := strings.Cut(input, "courses/"); ok {
		after, _, _ = strings.Cut(after, "?")
		id, _, _ := strings.Cut(after, "/")
		return id
	}
	return strings.TrimSpace(input)
}

// courseResponse is the subset of the course object we consume.
type courseResponse struct {
	ID           json.Number `json:"id"`
	Name         string      `json:"name"`
	SyllabusBody string      `json:"syllabus_body"`
}

// FindCourseByID retrieves course metadata.
func (c *Client) FindCourseByID(ctx context.Context, courseID string) (*vast.Course, error) {
	var course courseResponse
	if err := c.getJSON(ctx, "/api/v1/courses/"+courseID, c.timeout, &course); err != nil {
		return nil, err
	}
	if course.Name == "" {
		return nil, vast.Errorf(vast.ENOTFOUND, "course %q not found", courseID)
	}
	return &vast.Course{ID: courseID, Name: course.Name}, nil
}

// Documents yields the HTML documents of one content section. A failure
// to fetch an individual page body skips that page; only a failure of the
// section listing itself is returned.
func (c *Client) Documents(ctx context.Context, courseID string, kind vast.DocumentKind) ([]*vast.Document, error) {
	switch kind {
	case vast.KindPage:
		return c.pageDocuments(ctx, courseID)
	case vast.KindAssignment:
		return c.assignmentDocuments(ctx, courseID)
	case vast.KindDiscussion:
		return c.discussionDocuments(ctx, courseID, false)
	case vast.KindSyllabus:
		return c.syllabusDocuments(ctx, courseID)
	case vast.KindAnnouncement:
		return c.discussionDocuments(ctx, courseID, true)
	default:
		return nil, vast.Errorf(vast.EINVALID, "unknown document kind %q", kind)
	}
}

func (c *Client) pageDocuments(ctx context.Context, courseID string) ([]*vast.Document, error) {
	var pages []struct {
		URL     string `json:"url"`
		HTMLURL string `json:"html_url"`
	}
	if err := c.getJSON(ctx, "/api/v1/courses/"+courseID+"/pages", c.timeout, &pages); err != nil {
		return nil, err
	}

	var docs []*vast.Document
	for _, page := range pages {
		var detail struct {
			Body string `json:"body"`
		}
		if err := c.getJSON(ctx, "/api/v1/courses/"+courseID+"/pages/"+page.URL, c.timeout, &detail); err != nil {
			// Per-document recoverable: skip the page, keep the section.
			continue
		}
		docs = append(docs, &vast.Document{
			Kind:     vast.KindPage,
			Body:     detail.Body,
			Location: page.HTMLURL,
		})
	}
	return docs, nil
}

func (c *Client) assignmentDocuments(ctx context.Context, courseID string) ([]*vast.Document, error) {
	var assignments []struct {
		Description string `json:"description"`
		HTMLURL     string `json:"html_url"`
	}
	if err := c.getJSON(ctx, "/api/v1/courses/"+courseID+"/assignments", c.timeout, &assignments); err != nil {
		return nil, err
	}

	docs := make([]*vast.Document, 0, len(assignments))
	for _, a := range assignments {
		docs = append(docs, &vast.Document{
			Kind:     vast.KindAssignment,
			Body:     a.Description,
			Location: a.HTMLURL,
		})
	}
	return docs, nil
}

func (c *Client) discussionDocuments(ctx context.Context, courseID string, announcements bool) ([]*vast.Document, error) {
	path := "/api/v1/courses/" + courseID + "/discussion_topics"
	kind := vast.KindDiscussion
	if announcements {
		path += "?only_announcements=true"
		kind = vast.KindAnnouncement
	}

	var topics []struct {
		Message string `json:"message"`
		HTMLURL string `json:"html_url"`
	}
	if err := c.getJSON(ctx, path, c.timeout, &topics); err != nil {
		return nil, err
	}

	docs := make([]*vast.Document, 0, len(topics))
	for _, topic := range topics {
		docs = append(docs, &vast.Document{
			Kind:     kind,
			Body:     topic.Message,
			Location: topic.HTMLURL,
		})
	}
	return docs, nil
}

func (c *Client) syllabusDocuments(ctx context.Context, courseID string) ([]*vast.Document, error) {
	var course courseResponse
	if err := c.getJSON(ctx, "/api/v1/courses/"+courseID+"?include[]=syllabus_body", c.timeout, &course); err != nil {
		return nil, err
	}
	return []*vast.Document{{
		Kind:     vast.KindSyllabus,
		Body:     course.SyllabusBody,
		Location: c.baseURL + "/courses/" + courseID + "/assignments/syllabus",
	}}, nil
}

// ModuleItems yields every item of every module. A failure to list one
// module's items skips that module.
func (c *Client) ModuleItems(ctx context.Context, courseID string) ([]*vast.ModuleItem, error) {
	var modules []struct {
		ID json.Number `json:"id"`
	}
	if err := c.getJSON(ctx, "/api/v1/courses/"+courseID+"/modules", c.timeout, &modules); err != nil {
		return nil, err
	}

	var items []*vast.ModuleItem
	for _, module := range modules {
		var moduleItems []struct {
			ID          json.Number `json:"id"`
			Type        string      `json:"type"`
			ExternalURL string      `json:"external_url"`
			ContentID   json.Number `json:"content_id"`
		}
		path := "/api/v1/courses/" + courseID + "/modules/" + module.ID.String() + "/items?include[]=content_details"
		if err := c.getJSON(ctx, path, c.timeout, &moduleItems); err != nil {
			continue
		}
		for _, item := range moduleItems {
			items = append(items, &vast.ModuleItem{
				Type:        vast.ModuleItemType(item.Type),
				ExternalURL: item.ExternalURL,
				ContentID:   item.ContentID.String(),
				Location:    c.baseURL + "/courses/" + courseID + "/modules/items/" + item.ID.String(),
			})
		}
	}
	return items, nil
}

// FindFileByID retrieves a file record.
func (c *Client) FindFileByID(ctx context.Context, fileID string) (*vast.File, error) {
	var file struct {
		URL         string `json:"url"`
		DisplayName string `json:"display_name"`
		MimeClass   string `json:"mime_class"`
	}
	if err := c.getJSON(ctx, "/api/v1/files/"+fileID, inspectTimeout, &file); err != nil {
		return nil, err
	}
	if file.URL == "" && file.DisplayName == "" {
		return nil, vast.Errorf(vast.ENOTFOUND, "file %q not found", fileID)
	}
	return &vast.File{
		URL:         file.URL,
		DisplayName: file.DisplayName,
		MimeClass:   file.MimeClass,
	}, nil
}

// Inspect fetches a media object's descriptor and derives its caption
// status from the subtitle-kind and English-locale markers. Any transport
// failure resolves to StatusMediaObjectUncheckable; the failure never
// propagates past this boundary.
func (c *Client) Inspect(ctx context.Context, rawURL string) string {
	ctx, cancel := context.WithTimeout(ctx, inspectTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return vast.StatusMediaObjectUncheckable
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return vast.StatusMediaObjectUncheckable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return vast.StatusMediaObjectUncheckable
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return vast.StatusMediaObjectUncheckable
	}

	text := string(body)
	if strings.Contains(text, subtitleMarker) {
		if strings.Contains(text, englishLocaleMarker) {
			return vast.StatusCaptionsInEnglish
		}
		return vast.StatusNoEnglishCaptions
	}
	return vast.StatusNoCaptions
}

// getJSON issues an authenticated GET request and decodes the JSON body.
func (c *Client) getJSON(ctx context.Context, path string, timeout time.Duration, v any) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return vast.Errorf(vast.EUNAVAILABLE, "canvas request failed: %v", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return vast.Errorf(vast.ENOTFOUND, "canvas returned HTTP 404 for %s", path)
	case resp.StatusCode == http.StatusUnauthorized:
		return vast.Errorf(vast.EUNAVAILABLE, "canvas rejected the access token (HTTP 401)")
	case resp.StatusCode != http.StatusOK:
		return vast.Errorf(vast.EUNAVAILABLE, "canvas returned HTTP %d for %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return vast.Errorf(vast.EINTERNAL, "failed to decode canvas response: %v", err)
	}
	return nil
}

// Host returns the host portion of the base URL, used as the rate limiter
// key for media-object inspections.
func (c *Client) Host() string {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(c.baseURL, "https://"), "http://")
	host, _, _ := strings.Cut(trimmed, "/")
	if host == "" {
		return "canvas"
	}
	return host
}
