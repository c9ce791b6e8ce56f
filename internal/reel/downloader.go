package reel

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// defaultBaseURL is the Instagram web endpoint serving post metadata.
	defaultBaseURL = "https://www.instagram.com"

	// defaultTimeout covers both the metadata call and the media download.
	defaultTimeout = 60 * time.Second

	// defaultUserAgent mimics a desktop browser; the metadata endpoint
	// rejects clients without one.
	defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
)

// Reel holds the metadata and local media handle for a downloaded reel.
type Reel struct {
	Shortcode       string
	VideoURL        string
	LocalPath       string
	Creator         string
	Caption         string
	DurationSeconds float64
	PostedAt        time.Time
}

// Filename returns the media filename used for the blob key:
// {date}_{creator}_reel_{shortcode}.mp4.
func (r *Reel) Filename() string {
	date := r.PostedAt.UTC().Format("2006-01-02")
	return fmt.Sprintf("%s_%s_reel_%s.mp4", date, safeFilename(r.Creator), safeFilename(r.Shortcode))
}

// Downloader retrieves reel metadata and media over HTTP.
type Downloader struct {
	httpClient *http.Client
	baseURL    string
	tmpDir     string
}

// NewDownloader creates a Downloader writing media files to tmpDir
// (the Lambda-writable /tmp in production).
func NewDownloader(tmpDir string) *Downloader {
	return &Downloader{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		baseURL: defaultBaseURL,
		tmpDir:  tmpDir,
	}
}

// --- Metadata response types ---

// postResponse is the subset of the post metadata payload the pipeline needs.
type postResponse struct {
	Items []postItem `json:"items"`
}

type postItem struct {
	MediaType     int            `json:"media_type"` // 2 = video
	TakenAt       int64          `json:"taken_at"`
	VideoDuration float64        `json:"video_duration"`
	VideoVersions []videoVersion `json:"video_versions"`
	Caption       *captionNode   `json:"caption"`
	User          userNode       `json:"user"`
}

type videoVersion struct {
	URL string `json:"url"`
}

type captionNode struct {
	Text string `json:"text"`
}

type userNode struct {
	Username string `json:"username"`
}

// Fetch retrieves a reel's metadata and downloads its video to the local
// temp directory. The returned Reel carries the local path; the caller owns
// the file's lifetime.
func (d *Downloader) Fetch(ctx context.Context, shortcode string) (*Reel, error) {
	if shortcode == "" {
		return nil, fmt.Errorf("empty shortcode")
	}

	item, err := d.fetchMetadata(ctx, shortcode)
	if err != nil {
		return nil, err
	}

	if item.MediaType != 2 || len(item.VideoVersions) == 0 {
		return nil, fmt.Errorf("post %s is not a video", shortcode)
	}

	r := &Reel{
		Shortcode:       shortcode,
		VideoURL:        item.VideoVersions[0].URL,
		Creator:         item.User.Username,
		DurationSeconds: item.VideoDuration,
		PostedAt:        time.Unix(item.TakenAt, 0).UTC(),
	}
	if item.Caption != nil {
		r.Caption = item.Caption.Text
	}

	localPath := filepath.Join(d.tmpDir, r.Filename())
	if err := d.downloadVideo(ctx, r.VideoURL, localPath); err != nil {
		return nil, err
	}
	r.LocalPath = localPath

	log.Info().
		Str("shortcode", shortcode).
		Str("creator", r.Creator).
		Float64("durationSeconds", r.DurationSeconds).
		Str("localPath", localPath).
		Msg("Reel downloaded")
	return r, nil
}

// fetchMetadata requests the post metadata document for a shortcode.
func (d *Downloader) fetchMetadata(ctx context.Context, shortcode string) (*postItem, error) {
	endpoint := fmt.Sprintf("%s/reel/%s/?__a=1&__d=dis", d.baseURL, shortcode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("metadata request %s: %w", shortcode, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("metadata request %s: unexpected status %d", shortcode, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read metadata response: %w", err)
	}

	var post postResponse
	if err := json.Unmarshal(body, &post); err != nil {
		return nil, fmt.Errorf("parse metadata response: %w", err)
	}
	if len(post.Items) == 0 {
		return nil, fmt.Errorf("no post found for shortcode %s", shortcode)
	}

	return &post.Items[0], nil
}

// downloadVideo streams the video at url into localPath.
func (d *Downloader) downloadVideo(ctx context.Context, url, localPath string) error {
	log.Debug().Str("url", url).Str("localPath", localPath).Msg("Downloading video")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("video download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("video download: unexpected status %d", resp.StatusCode)
	}

	f, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", localPath, err)
	}
	defer f.Close()

	n, err := io.Copy(f, resp.Body)
	if err != nil {
		os.Remove(localPath)
		return fmt.Errorf("write video: %w", err)
	}

	log.Debug().Int64("bytes", n).Str("localPath", localPath).Msg("Video written to disk")
	return nil
}
