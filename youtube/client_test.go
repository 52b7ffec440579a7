package youtube_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/courseaudit/vast"
	"github.com/courseaudit/vast/youtube"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractVideoID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		id   string
		ok   bool
	}{
		{"watch URL", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"short URL", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"embed URL", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"nocookie URL", "https://www.youtube-nocookie.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"scheme-less URL", "youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"watch URL with extra params", "https://www.youtube.com/watch?feature=share&v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"not a video URL", "https://www.youtube.com/", "", false},
		{"unrelated URL", "https://example.com/watch?v=dQw4w9WgXcQ000", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			id, ok := youtube.ExtractVideoID(tt.url)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.id, id)
		})
	}
}

func TestParseISO8601(t *testing.T) {
	t.Parallel()

	tests := []struct {
		duration string
		want     vast.Duration
	}{
		{"PT1H2M3S", vast.Duration{Hours: "1", Minutes: "2", Seconds: "3"}},
		{"PT3M33S", vast.Duration{Hours: "0", Minutes: "3", Seconds: "33"}},
		{"PT45S", vast.Duration{Hours: "0", Minutes: "0", Seconds: "45"}},
		{"PT2H", vast.Duration{Hours: "2", Minutes: "0", Seconds: "0"}},
		{"P0D", vast.Duration{Hours: "0", Minutes: "0", Seconds: "0"}},
		{"", vast.Duration{Hours: "0", Minutes: "0", Seconds: "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.duration, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, youtube.ParseISO8601(tt.duration))
		})
	}
}

func TestClient_Lookup(t *testing.T) {
	t.Parallel()

	t.Run("returns duration and caption tracks", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/videos":
				assert.Equal(t, "contentDetails", r.URL.Query().Get("part"))
				assert.Equal(t, "dQw4w9WgXcQ", r.URL.Query().Get("id"))
				assert.Equal(t, "test-key", r.URL.Query().Get("key"))
				fmt.Fprint(w, `{"items":[{"contentDetails":{"duration":"PT3M33S"}}]}`)
			case "/captions":
				assert.Equal(t, "dQw4w9WgXcQ", r.URL.Query().Get("videoId"))
				fmt.Fprint(w, `{"items":[
					{"snippet":{"language":"de","trackKind":"standard"}},
					{"snippet":{"language":"en","trackKind":"asr"}}
				]}`)
			default:
				t.Errorf("unexpected path %s", r.URL.Path)
			}
		}))
		defer srv.Close()

		client := youtube.NewClient("test-key", youtube.WithBaseURL(srv.URL))
		duration, tracks, err := client.Lookup(context.Background(), "dQw4w9WgXcQ")

		require.NoError(t, err)
		assert.Equal(t, vast.Duration{Hours: "0", Minutes: "3", Seconds: "33"}, duration)
		require.Len(t, tracks, 2)
		assert.Equal(t, vast.CaptionTrack{Language: "en", Kind: "asr"}, tracks[1])
	})

	t.Run("empty item set returns ENOTFOUND", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"items":[]}`)
		}))
		defer srv.Close()

		client := youtube.NewClient("test-key", youtube.WithBaseURL(srv.URL))
		_, _, err := client.Lookup(context.Background(), "missingvide")

		assert.Equal(t, vast.ENOTFOUND, vast.ErrorCode(err))
	})

	t.Run("HTTP error returns EUNAVAILABLE", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer srv.Close()

		client := youtube.NewClient("bad-key", youtube.WithBaseURL(srv.URL))
		_, _, err := client.Lookup(context.Background(), "dQw4w9WgXcQ")

		assert.Equal(t, vast.EUNAVAILABLE, vast.ErrorCode(err))
	})
}
