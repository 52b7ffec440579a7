// Package goquery provides the HTML scanning implementations: the media
// extractor that classifies embedded media references, and the
// accessibility rule battery.
package goquery

import (
	"context"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/courseaudit/vast"
	"github.com/courseaudit/vast/youtube"
)

// Markers identifying LMS media-object endpoints. Iframe embeds use a
// dedicated marker token.
const (
	mediaObjectMarker       = "media_objects"
	mediaObjectIframeMarker = "media_objects_iframe"
)

// fileEndpointMarker identifies anchor data-api-endpoint attributes that
// point at the LMS file API.
const fileEndpointMarker = "/files/"

// Ensure Extractor implements vast.MediaExtractor at compile time.
var _ vast.MediaExtractor = (*Extractor)(nil)

// Extractor scans one HTML document and classifies every media reference
// into the run's inventory. Anchor file-endpoint attributes are resolved
// through the FileService; a nil FileService disables linked-file
// detection.
type Extractor struct {
	Files vast.FileService
}

// NewExtractor creates an Extractor backed by the given file service.
func NewExtractor(files vast.FileService) *Extractor {
	return &Extractor{Files: files}
}

// Extract parses the document and walks its anchor, iframe, video, source
// and audio elements. Elements without an href/src are skipped entirely.
func (e *Extractor) Extract(ctx context.Context, inv *vast.Inventory, html, location string) error {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return vast.Errorf(vast.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find("a").Each(func(_ int, sel *goquery.Selection) {
		e.extractAnchor(ctx, inv, sel, location)
	})

	doc.Find("iframe").Each(func(_ int, sel *goquery.Selection) {
		extractIframe(inv, sel, location)
	})

	doc.Find("video").Each(func(_ int, sel *goquery.Selection) {
		extractMediaComment(inv, sel, location, "Video Media Comment ")
	})

	doc.Find("source").Each(func(_ int, sel *goquery.Selection) {
		extractSource(inv, sel, location)
	})

	doc.Find("audio").Each(func(_ int, sel *goquery.Selection) {
		extractAudio(inv, sel, location)
	})

	return nil
}

// extractAnchor classifies one anchor element. The file-endpoint
// resolution does not short-circuit the href classification below it:
// both paths fire independently.
func (e *Extractor) extractAnchor(ctx context.Context, inv *vast.Inventory, sel *goquery.Selection, location string) {
	href, ok := sel.Attr("href")
	if !ok || href == "" {
		return
	}

	if endpoint, ok := sel.Attr("data-api-endpoint"); ok && strings.Contains(endpoint, fileEndpointMarker) {
		e.resolveLinkedFile(ctx, inv, endpoint, location)
	}

	switch {
	case youtube.MatchesWatchURL(href):
		inv.Add(vast.CategoryYouTube, href, location)
	case vast.IsLibraryMediaURL(href):
		ref := inv.Add(vast.CategoryLibraryMedia, href, location)
		ref.Status = vast.StatusManualCheck
	case strings.Contains(href, mediaObjectMarker):
		inv.Add(vast.CategoryMediaObject, href, location)
	}
}

// resolveLinkedFile resolves an anchor's file-endpoint attribute to a
// file record. Resolution failures are swallowed: a dangling file link is
// not itself an accessibility signal, so the anchor simply produces no
// linked-file entry and its href is still classified by the caller.
func (e *Extractor) resolveLinkedFile(ctx context.Context, inv *vast.Inventory, endpoint, location string) {
	if e.Files == nil {
		return
	}
	fileID := path.Base(endpoint)
	file, err := e.Files.FindFileByID(ctx, fileID)
	if err != nil || file == nil {
		return // swallow: per-reference silent-empty branch
	}
	inv.AddFile(file, location)
}

func extractIframe(inv *vast.Inventory, sel *goquery.Selection, location string) {
	src, ok := sel.Attr("src")
	if !ok || src == "" {
		return
	}

	switch {
	case youtube.MatchesWatchURL(src):
		inv.Add(vast.CategoryYouTube, src, location)
	case vast.IsLibraryMediaURL(src):
		ref := inv.Add(vast.CategoryLibraryMedia, src, location)
		ref.Status = vast.StatusManualCheck
	case strings.Contains(src, mediaObjectIframeMarker):
		inv.Add(vast.CategoryMediaObject, src, location)
	}
}

// extractMediaComment classifies a media-comment element. Caption status
// is a local determination from a <track> child, not a network
// resolution. Elements without a media-comment identifier are not
// classified at all; there is no src-based fallback for bare <video>
// elements.
func extractMediaComment(inv *vast.Inventory, sel *goquery.Selection, location, labelPrefix string) bool {
	id, ok := sel.Attr("data-media_comment_id")
	if !ok || id == "" {
		return false
	}

	ref := inv.Add(vast.CategoryMediaComment, labelPrefix+id, location)
	if sel.Find("track").Length() > 0 {
		ref.Status = vast.StatusCaptions
	} else {
		ref.Status = vast.StatusNoCaptions
	}
	return true
}

func extractSource(inv *vast.Inventory, sel *goquery.Selection, location string) {
	if typ, _ := sel.Attr("type"); typ != "video/mp4" {
		return
	}
	src, ok := sel.Attr("src")
	if !ok || src == "" {
		return
	}
	ref := inv.Add(vast.CategoryEmbeddedSource, "Embedded Canvas Video "+src, location)
	ref.Status = vast.StatusManualCheck
}

func extractAudio(inv *vast.Inventory, sel *goquery.Selection, location string) {
	if extractMediaComment(inv, sel, location, "Audio Media Comment ") {
		return
	}
	src, ok := sel.Attr("src")
	if !ok || src == "" {
		return
	}
	ref := inv.Add(vast.CategoryEmbeddedSource, "Embedded Canvas Audio "+src, location)
	ref.Status = vast.StatusManualCheck
}
