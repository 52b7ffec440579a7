package canvas_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/courseaudit/vast"
	"github.com/courseaudit/vast/canvas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCourseID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"full course URL", "https://lms.test/courses/1834", "1834"},
		{"course URL with trailing path", "https://lms.test/courses/1834/pages/intro", "1834"},
		{"course URL with query string", "https://lms.test/courses/1834?invitation=x", "1834"},
		{"bare ID", " 1834 ", "1834"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, canvas.ParseCourseID(tt.input))
		})
	}
}

func TestClient_FindCourseByID(t *testing.T) {
	t.Parallel()

	t.Run("returns course metadata", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/courses/1834", r.URL.Path)
			assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
			fmt.Fprint(w, `{"id":1834,"name":"Intro to Testing"}`)
		}))
		defer srv.Close()

		client := canvas.NewClient(srv.URL, "secret")
		course, err := client.FindCourseByID(context.Background(), "1834")

		require.NoError(t, err)
		assert.Equal(t, "Intro to Testing", course.Name)
	})

	t.Run("missing course returns ENOTFOUND", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}))
		defer srv.Close()

		client := canvas.NewClient(srv.URL, "secret")
		_, err := client.FindCourseByID(context.Background(), "9999")

		assert.Equal(t, vast.ENOTFOUND, vast.ErrorCode(err))
	})
}

func TestClient_Documents(t *testing.T) {
	t.Parallel()

	t.Run("pages fetch each body and skip failed details", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/api/v1/courses/1/pages":
				fmt.Fprint(w, `[
					{"url":"intro","html_url":"https://lms.test/courses/1/pages/intro"},
					{"url":"broken","html_url":"https://lms.test/courses/1/pages/broken"}
				]`)
			case "/api/v1/courses/1/pages/intro":
				fmt.Fprint(w, `{"body":"<p>hello</p>"}`)
			case "/api/v1/courses/1/pages/broken":
				http.Error(w, "boom", http.StatusInternalServerError)
			default:
				t.Errorf("unexpected path %s", r.URL.Path)
			}
		}))
		defer srv.Close()

		client := canvas.NewClient(srv.URL, "secret")
		docs, err := client.Documents(context.Background(), "1", vast.KindPage)

		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "<p>hello</p>", docs[0].Body)
		assert.Equal(t, "https://lms.test/courses/1/pages/intro", docs[0].Location)
	})

	t.Run("syllabus uses the synthetic syllabus location", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "include[]=syllabus_body", r.URL.RawQuery)
			fmt.Fprint(w, `{"id":1,"name":"C","syllabus_body":"<p>read this</p>"}`)
		}))
		defer srv.Close()

		client := canvas.NewClient(srv.URL, "secret")
		docs, err := client.Documents(context.Background(), "1", vast.KindSyllabus)

		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "<p>read this</p>", docs[0].Body)
		assert.Equal(t, srv.URL+"/courses/1/assignments/syllabus", docs[0].Location)
	})

	t.Run("announcements use the announcements-only listing", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/courses/1/discussion_topics", r.URL.Path)
			assert.Equal(t, "only_announcements=true", r.URL.RawQuery)
			fmt.Fprint(w, `[{"message":"<p>news</p>","html_url":"https://lms.test/ann/1"}]`)
		}))
		defer srv.Close()

		client := canvas.NewClient(srv.URL, "secret")
		docs, err := client.Documents(context.Background(), "1", vast.KindAnnouncement)

		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, vast.KindAnnouncement, docs[0].Kind)
	})
}

func TestClient_ModuleItems(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/courses/1/modules":
			fmt.Fprint(w, `[{"id":10},{"id":11}]`)
		case "/api/v1/courses/1/modules/10/items":
			fmt.Fprint(w, `[
				{"id":100,"type":"ExternalUrl","external_url":"https://youtu.be/dQw4w9WgXcQ"},
				{"id":101,"type":"File","content_id":55}
			]`)
		case "/api/v1/courses/1/modules/11/items":
			http.Error(w, "boom", http.StatusInternalServerError)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	client := canvas.NewClient(srv.URL, "secret")
	items, err := client.ModuleItems(context.Background(), "1")

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, vast.ModuleItemExternalURL, items[0].Type)
	assert.Equal(t, "https://youtu.be/dQw4w9WgXcQ", items[0].ExternalURL)
	assert.Equal(t, srv.URL+"/courses/1/modules/items/100", items[0].Location)
	assert.Equal(t, vast.ModuleItemFile, items[1].Type)
	assert.Equal(t, "55", items[1].ContentID)
}

func TestClient_FindFileByID(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/files/55", r.URL.Path)
		fmt.Fprint(w, `{"url":"https://lms.test/files/55/download?verifier=v","display_name":"lecture.mp4","mime_class":"video"}`)
	}))
	defer srv.Close()

	client := canvas.NewClient(srv.URL, "secret")
	file, err := client.FindFileByID(context.Background(), "55")

	require.NoError(t, err)
	assert.Equal(t, "lecture.mp4", file.DisplayName)
	assert.Equal(t, "video", file.MimeClass)
}

func TestClient_Inspect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want string
	}{
		{"english subtitles", `{"media_tracks":[{"kind":"subtitles","locale":"en"}]}`, vast.StatusCaptionsInEnglish},
		{"non-english subtitles", `{"media_tracks":[{"kind":"subtitles","locale":"fr"}]}`, vast.StatusNoEnglishCaptions},
		{"no subtitle tracks", `{"media_tracks":[]}`, vast.StatusNoCaptions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tt.body)
			}))
			defer srv.Close()

			client := canvas.NewClient(srv.URL, "secret")
			assert.Equal(t, tt.want, client.Inspect(context.Background(), srv.URL+"/media_objects/m-1"))
		})
	}

	t.Run("transport failure is uncheckable, never an error", func(t *testing.T) {
		t.Parallel()

		client := canvas.NewClient("http://127.0.0.1:1", "secret")
		status := client.Inspect(context.Background(), "http://127.0.0.1:1/media_objects/m-1")
		assert.Equal(t, vast.StatusMediaObjectUncheckable, status)
	})
}
