package scan

import (
	"context"
	"strings"

	"github.com/courseaudit/vast"
	"github.com/courseaudit/vast/youtube"
	"golang.org/x/sync/errgroup"
)

// resolve fans out caption-status resolution over a bounded worker pool.
// Video resolutions are collected position-indexed so row order matches
// discovery order regardless of completion order; media-object workers
// write the status onto the reference directly.
func (s *Scanner) resolve(ctx context.Context, inv *vast.Inventory, progress ProgressFunc) []vast.Resolution {
	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = 10
	}

	var pending []*vast.MediaReference
	for _, ref := range inv.Media {
		if ref.Category == vast.CategoryMediaObject {
			pending = append(pending, ref)
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressResolving, Total: len(inv.YouTube) + len(pending)})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	resolutions := make([]vast.Resolution, len(inv.YouTube))
	for i, ref := range inv.YouTube {
		g.Go(func() error {
			resolutions[i] = s.resolveVideo(gctx, ref.SourceURL)
			return nil
		})
	}

	for _, ref := range pending {
		g.Go(func() error {
			if s.RateLimiter != nil && s.InspectorHost != "" {
				if err := s.RateLimiter.Wait(gctx, s.InspectorHost); err != nil {
					ref.Status = vast.StatusMediaObjectUncheckable
					return nil
				}
			}
			ref.Status = s.Inspector.Inspect(gctx, ref.SourceURL)
			return nil
		})
	}

	_ = g.Wait()

	return resolutions
}

// resolveVideo resolves one video URL to a caption status and duration.
// Every failure mode maps to a terminal status string.
func (s *Scanner) resolveVideo(ctx context.Context, rawURL string) vast.Resolution {
	if strings.Contains(rawURL, "list") {
		return vast.Resolution{Status: vast.StatusPlaylist}
	}

	videoID, ok := youtube.ExtractVideoID(rawURL)
	if !ok {
		return vast.Resolution{Status: vast.StatusUnparsableVideoID}
	}

	if s.RateLimiter != nil {
		if err := s.RateLimiter.Wait(ctx, s.videoHost()); err != nil {
			return vast.Resolution{Status: "Unable to Check Youtube Video: " + err.Error()}
		}
	}

	duration, tracks, err := s.Videos.Lookup(ctx, videoID)
	if err != nil {
		if vast.ErrorCode(err) == vast.ENOTFOUND {
			return vast.Resolution{Status: vast.StatusVideoNotFound}
		}
		return vast.Resolution{Status: "Unable to Check Youtube Video: " + vast.ErrorMessage(err)}
	}

	return vast.Resolution{Status: captionStatus(tracks), Duration: duration}
}

func (s *Scanner) videoHost() string {
	if s.VideoHost != "" {
		return s.VideoHost
	}
	return "youtube"
}

// captionStatus derives a caption status from the available tracks.
// Tracks are folded into a language to kind map, last entry wins, with
// "en" preferred over "en-US". Kind values are matched exactly; anything
// other than "standard" or "asr" reports as an unknown kind.
func captionStatus(tracks []vast.CaptionTrack) string {
	if len(tracks) == 0 {
		return vast.StatusNoCaptions
	}

	kinds := make(map[string]string, len(tracks))
	for _, track := range tracks {
		kinds[track.Language] = track.Kind
	}

	kind, ok := kinds["en"]
	if !ok {
		kind, ok = kinds["en-US"]
	}
	if !ok {
		return vast.StatusNoEnglishTrack
	}

	switch kind {
	case "standard":
		return vast.StatusEnglishCaptions
	case "asr":
		return vast.StatusAutomaticCaptions
	default:
		return vast.StatusUnknownKindCaptions
	}
}
