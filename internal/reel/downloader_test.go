package reel

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"
)

func TestReelFilename(t *testing.T) {
	r := &Reel{
		Shortcode: "ABC123",
		Creator:   "some user!",
		PostedAt:  time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
	}
	want := "2024-03-15_some_user__reel_ABC123.mp4"
	if got := r.Filename(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFetchDownloadsVideoAndMetadata(t *testing.T) {
	videoBytes := []byte("not really an mp4")

	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/reel/ABC123/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"items":[{
			"media_type": 2,
			"taken_at": 1710498600,
			"video_duration": 34.5,
			"video_versions": [{"url": %q}],
			"caption": {"text": "the caption"},
			"user": {"username": "creator_1"}
		}]}`, server.URL+"/video.mp4")
	})
	mux.HandleFunc("/video.mp4", func(w http.ResponseWriter, r *http.Request) {
		w.Write(videoBytes)
	})

	d := NewDownloader(t.TempDir())
	d.baseURL = server.URL

	reel, err := d.Fetch(context.Background(), "ABC123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if reel.Creator != "creator_1" {
		t.Errorf("creator = %q", reel.Creator)
	}
	if reel.Caption != "the caption" {
		t.Errorf("caption = %q", reel.Caption)
	}
	if reel.DurationSeconds != 34.5 {
		t.Errorf("duration = %v", reel.DurationSeconds)
	}

	data, err := os.ReadFile(reel.LocalPath)
	if err != nil {
		t.Fatalf("read downloaded file: %v", err)
	}
	if string(data) != string(videoBytes) {
		t.Errorf("downloaded file content mismatch")
	}
}

func TestFetchRejectsNonVideoPost(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/reel/IMG1/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"items":[{"media_type": 1, "user": {"username": "u"}}]}`)
	})

	d := NewDownloader(t.TempDir())
	d.baseURL = server.URL

	if _, err := d.Fetch(context.Background(), "IMG1"); err == nil {
		t.Error("expected error for non-video post")
	}
}

func TestFetchMetadataErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	d := NewDownloader(t.TempDir())
	d.baseURL = server.URL

	if _, err := d.Fetch(context.Background(), "GONE"); err == nil {
		t.Error("expected error for missing post")
	}
}
