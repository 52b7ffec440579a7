package vast_test

import (
	"testing"

	"github.com/courseaudit/vast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventory_Add(t *testing.T) {
	t.Parallel()

	t.Run("appends locations on rediscovery without duplicating the reference", func(t *testing.T) {
		t.Parallel()

		inv := vast.NewInventory()
		inv.Add(vast.CategoryYouTube, "https://youtu.be/dQw4w9WgXcQ", "https://lms.test/pages/one")
		inv.Add(vast.CategoryYouTube, "https://youtu.be/dQw4w9WgXcQ", "https://lms.test/pages/two")

		require.Len(t, inv.YouTube, 1)
		assert.Equal(t, []string{"https://lms.test/pages/one", "https://lms.test/pages/two"}, inv.YouTube[0].Locations)
	})

	t.Run("records the same location only once", func(t *testing.T) {
		t.Parallel()

		inv := vast.NewInventory()
		inv.Add(vast.CategoryMediaObject, "https://lms.test/media_objects/m-1", "https://lms.test/pages/one")
		inv.Add(vast.CategoryMediaObject, "https://lms.test/media_objects/m-1", "https://lms.test/pages/one")

		require.Len(t, inv.Media, 1)
		assert.Equal(t, []string{"https://lms.test/pages/one"}, inv.Media[0].Locations)
	})

	t.Run("same URL in different categories stays distinct", func(t *testing.T) {
		t.Parallel()

		inv := vast.NewInventory()
		inv.Add(vast.CategoryYouTube, "https://example.com/x", "loc-a")
		inv.Add(vast.CategoryLibraryMedia, "https://example.com/x", "loc-b")

		assert.Len(t, inv.YouTube, 1)
		assert.Len(t, inv.Library, 1)
	})

	t.Run("media comments and embedded sources share the media bucket in discovery order", func(t *testing.T) {
		t.Parallel()

		inv := vast.NewInventory()
		inv.Add(vast.CategoryMediaObject, "https://lms.test/media_objects/m-1", "loc")
		inv.Add(vast.CategoryMediaComment, "Video Media Comment 42", "loc")
		inv.Add(vast.CategoryEmbeddedSource, "Embedded Canvas Video movie.mp4", "loc")

		require.Len(t, inv.Media, 3)
		assert.Equal(t, vast.CategoryMediaObject, inv.Media[0].Category)
		assert.Equal(t, vast.CategoryMediaComment, inv.Media[1].Category)
		assert.Equal(t, vast.CategoryEmbeddedSource, inv.Media[2].Category)
	})
}

func TestInventory_AddFile(t *testing.T) {
	t.Parallel()

	t.Run("routes by mime class and strips the query string", func(t *testing.T) {
		t.Parallel()

		inv := vast.NewInventory()
		inv.AddFile(&vast.File{
			URL:         "https://lms.test/files/9/download?verifier=abc",
			DisplayName: "lecture.mp3",
			MimeClass:   "audio",
		}, "https://lms.test/pages/one")

		require.Len(t, inv.Linked, 1)
		assert.Equal(t, "Linked Audio File: lecture.mp3", inv.Linked[0].SourceURL)
		assert.Equal(t, vast.StatusManualCheck, inv.Linked[0].Status)
		assert.Equal(t, "https://lms.test/files/9/download", inv.Linked[0].FileURL)
		assert.True(t, inv.HasLinkedFiles())
	})

	t.Run("a file matching both mime classes produces two references", func(t *testing.T) {
		t.Parallel()

		inv := vast.NewInventory()
		inv.AddFile(&vast.File{
			URL:         "https://lms.test/files/9/download",
			DisplayName: "clip.webm",
			MimeClass:   "audio/video",
		}, "loc")

		require.Len(t, inv.Linked, 2)
		assert.Equal(t, "Linked Audio File: clip.webm", inv.Linked[0].SourceURL)
		assert.Equal(t, "Linked Video File: clip.webm", inv.Linked[1].SourceURL)
	})
}

func TestIsLibraryMediaURL(t *testing.T) {
	t.Parallel()

	assert.True(t, vast.IsLibraryMediaURL("https://fod.infobase.com/p_ViewVideo.aspx?xtid=1"))
	assert.True(t, vast.IsLibraryMediaURL("https://boisestate.hosted.panopto.com/Panopto/Pages/Viewer.aspx"))
	assert.False(t, vast.IsLibraryMediaURL("https://example.com/video"))
}

func TestReportRow_Fields(t *testing.T) {
	t.Parallel()

	row := vast.ReportRow{
		Media:         "https://youtu.be/dQw4w9WgXcQ",
		CaptionStatus: vast.StatusNoEnglishTrack,
		Duration:      "00:04",
		Location:      "https://lms.test/pages/one",
		FileLocation:  "https://lms.test/files/9/download",
	}

	assert.Len(t, row.Fields(false), 4)
	assert.Len(t, row.Fields(true), 5)
	assert.Equal(t, "https://lms.test/files/9/download", row.Fields(true)[4])
}
