package vast

import (
	"context"
	"strings"
)

// MediaCategory classifies how a media reference was embedded in course
// content. The category determines how caption status is resolved.
type MediaCategory string

// Media reference categories.
const (
	// CategoryYouTube covers watch/embed/short YouTube URLs. Duration and
	// caption tracks are resolved through the YouTube Data API.
	CategoryYouTube MediaCategory = "youtube"

	// CategoryMediaObject covers LMS-hosted media objects with their own
	// descriptor endpoint exposing caption-track metadata.
	CategoryMediaObject MediaCategory = "media_object"

	// CategoryMediaComment covers inline <video>/<audio> media comments.
	// Caption status is determined locally from a <track> child element.
	CategoryMediaComment MediaCategory = "media_comment"

	// CategoryEmbeddedSource covers raw embedded <source>/<audio> media
	// with no caption metadata; always routed to manual review.
	CategoryEmbeddedSource MediaCategory = "embedded_source"

	// CategoryLibraryMedia covers third-party streaming library URLs;
	// always routed to manual review.
	CategoryLibraryMedia MediaCategory = "library_media"

	// CategoryLinkedFile covers LMS-hosted downloadable audio/video files
	// referenced through a file-endpoint link.
	CategoryLinkedFile MediaCategory = "linked_file"
)

// Caption status labels. These are enumerated strings rather than booleans
// so the report preserves distinctions like "no captions" vs "no captions
// in English" vs "unresolvable".
const (
	StatusCaptionsInEnglish    = "Captions in English"
	StatusNoEnglishCaptions    = "No English Captions"
	StatusNoCaptions           = "No Captions"
	StatusMediaObjectUncheckable = "Unable to Check Media Object"

	StatusPlaylist           = "This is a playlist, check individual videos"
	StatusUnparsableVideoID  = "Unable to parse Video ID"
	StatusVideoNotFound      = "Video not found or private"
	StatusEnglishCaptions    = "Captions found in English"
	StatusAutomaticCaptions  = "Automatic Captions in English"
	StatusUnknownKindCaptions = "Captions in English (unknown kind)"
	StatusNoEnglishTrack     = "No Captions in English"

	StatusManualCheck = "Manually Check for Captions"
	StatusCaptions    = "Captions"
)

// LibraryMediaHosts are domain substrings of known third-party streaming
// and licensing providers. References to these hosts cannot be checked
// programmatically and are always routed to manual review.
var LibraryMediaHosts = []string{
	"fod.infobase.com",
	"search.alexanderstreet.com",
	"kanopystreaming-com",
	"hosted.panopto.com",
}

// IsLibraryMediaURL reports whether the URL points at a known third-party
// streaming library.
func IsLibraryMediaURL(rawURL string) bool {
	for _, host := range LibraryMediaHosts {
		if strings.Contains(rawURL, host) {
			return true
		}
	}
	return false
}

// MediaReference is a single distinct media pointer found in course
// content. Identity within a scan run is the (SourceURL, Category) pair:
// repeated discovery appends to Locations, never duplicates the reference.
type MediaReference struct {
	// SourceURL is the href/src as found in markup. For locally labelled
	// media (media comments, embedded sources, linked files) it holds the
	// display label instead, which serves the same identity role.
	SourceURL string

	// Category determines how caption status is resolved.
	Category MediaCategory

	// Locations lists every document location where this reference was
	// encountered, in first-seen order, without duplicates.
	Locations []string

	// Status is the caption status. For media comments, embedded sources,
	// library media and linked files it is set at extraction time; for
	// YouTube and media-object references it is filled by the resolver.
	Status string

	// FileURL is the direct download URL for linked files, empty otherwise.
	FileURL string
}

// addLocation appends a location, preserving first-seen order and
// ignoring duplicates.
func (r *MediaReference) addLocation(location string) {
	for _, loc := range r.Locations {
		if loc == location {
			return
		}
	}
	r.Locations = append(r.Locations, location)
}

// Duration holds the raw hour/minute/second components reported by the
// video platform. Components are strings so an unresolved duration stays
// distinguishable from a zero-length one: the zero value renders as an
// empty duration cell and contributes nothing to the total.
type Duration struct {
	Hours   string
	Minutes string
	Seconds string
}

// IsZero reports whether no duration was resolved.
func (d Duration) IsZero() bool {
	return d.Hours == "" && d.Minutes == "" && d.Seconds == ""
}

// Resolution is the outcome of caption/duration resolution for one
// media reference.
type Resolution struct {
	Status   string
	Duration Duration
}

// CaptionTrack describes one caption track available for a video.
type CaptionTrack struct {
	// Language is the track's BCP-47-ish language code (e.g. "en", "en-US").
	Language string

	// Kind is the track kind reported by the platform ("standard", "asr", ...).
	Kind string
}

// Inventory accumulates classified media references across a scan run.
// It keeps one ordered bucket per report section so row emission order is
// deterministic: YouTube references first, then LMS media (media objects,
// media comments and embedded sources interleaved in discovery order),
// then library media, then linked files.
//
// Inventory is not safe for concurrent use; it is mutated only during the
// sequential document traversal phase.
type Inventory struct {
	YouTube []*MediaReference
	Media   []*MediaReference
	Library []*MediaReference
	Linked  []*MediaReference

	index map[inventoryKey]*MediaReference
}

type inventoryKey struct {
	sourceURL string
	category  MediaCategory
}

// NewInventory creates an empty Inventory.
func NewInventory() *Inventory {
	return &Inventory{index: make(map[inventoryKey]*MediaReference)}
}

// Add records a discovery of (sourceURL, category) at location and returns
// the canonical reference. A repeated discovery appends the location to
// the existing reference rather than creating a duplicate.
func (inv *Inventory) Add(category MediaCategory, sourceURL, location string) *MediaReference {
	key := inventoryKey{sourceURL: sourceURL, category: category}
	if ref, ok := inv.index[key]; ok {
		ref.addLocation(location)
		return ref
	}

	ref := &MediaReference{
		SourceURL: sourceURL,
		Category:  category,
		Locations: []string{location},
	}
	inv.index[key] = ref

	switch category {
	case CategoryYouTube:
		inv.YouTube = append(inv.YouTube, ref)
	case CategoryLibraryMedia:
		inv.Library = append(inv.Library, ref)
	case CategoryLinkedFile:
		inv.Linked = append(inv.Linked, ref)
	default:
		inv.Media = append(inv.Media, ref)
	}
	return ref
}

// AddFile routes a resolved LMS file record into linked-file references.
// Audio and video mime classes are checked independently; a file matching
// both produces two references. The file URL has its query string
// stripped so the report links the bare download location.
func (inv *Inventory) AddFile(file *File, location string) {
	fileURL, _, _ := strings.Cut(file.URL, "?")
	if strings.Contains(file.MimeClass, "audio") {
		ref := inv.Add(CategoryLinkedFile, "Linked Audio File: "+file.DisplayName, location)
		ref.Status = StatusManualCheck
		ref.FileURL = fileURL
	}
	if strings.Contains(file.MimeClass, "video") {
		ref := inv.Add(CategoryLinkedFile, "Linked Video File: "+file.DisplayName, location)
		ref.Status = StatusManualCheck
		ref.FileURL = fileURL
	}
}

// HasLinkedFiles reports whether any linked-file reference exists in the
// run. This is a run-global decision that controls the report's column
// shape.
func (inv *Inventory) HasLinkedFiles() bool {
	return len(inv.Linked) > 0
}

// MediaExtractor scans one HTML document and classifies every media
// reference into the inventory. Extraction is idempotent with respect to
// already-seen (sourceURL, category) pairs: rediscovery appends the
// location only.
type MediaExtractor interface {
	Extract(ctx context.Context, inv *Inventory, html, location string) error
}

// MediaInspector resolves caption status for an LMS media object by
// fetching its descriptor. Failures never propagate: any transport or
// parse failure resolves to StatusMediaObjectUncheckable.
type MediaInspector interface {
	Inspect(ctx context.Context, url string) (status string)
}

// VideoService looks up duration and available caption tracks for a video
// by its platform ID. Returns ENOTFOUND if the video does not exist or is
// private.
type VideoService interface {
	Lookup(ctx context.Context, videoID string) (Duration, []CaptionTrack, error)
}

// DomainLimiter rate limits requests per domain.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled before the wait completes.
	Wait(ctx context.Context, domain string) error
}
