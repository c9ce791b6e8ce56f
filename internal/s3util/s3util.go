// Package s3util provides the blob-store operations for the reel pipeline:
// uploading downloaded media, persisting JSON artifacts (transcriptions and
// summaries), and pulling media back down for transcription when a record
// came from cache without a local copy.
//
// Object keys follow the convention {chat_id}/{video_code}/{artifact} where
// artifact is the original media filename, transcription.json, or summary.json.
package s3util

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

// Artifact filenames within a video's key prefix.
const (
	TranscriptionArtifact = "transcription.json"
	SummaryArtifact       = "summary.json"
)

const jsonContentType = "application/json"

// ObjectKey builds the blob key for an artifact of a (chat, video) pair.
func ObjectKey(chatID, videoCode, artifact string) string {
	return fmt.Sprintf("%s/%s/%s", chatID, videoCode, artifact)
}

// Client wraps an S3 client and bucket for pipeline blob operations.
type Client struct {
	s3     *s3.Client
	bucket string
}

// NewClient creates a blob-store client for the given bucket.
func NewClient(s3Client *s3.Client, bucket string) *Client {
	return &Client{s3: s3Client, bucket: bucket}
}

// UploadFile uploads a local media file under {chat_id}/{video_code}/{filename}
// and returns the object key. Spaces in the filename are replaced so the key
// stays URL-safe.
func (c *Client) UploadFile(ctx context.Context, localPath, chatID, videoCode string) (string, error) {
	filename := strings.ReplaceAll(filepath.Base(strings.TrimSpace(localPath)), " ", "_")
	key := ObjectKey(chatID, videoCode, filename)

	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", localPath, err)
	}
	defer f.Close()

	_, err = c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket: &c.bucket,
		Key:    &key,
		Body:   f,
	})
	if err != nil {
		return "", fmt.Errorf("S3 PutObject %s: %w", key, err)
	}

	log.Info().Str("key", key).Msg("Uploaded file to S3")
	return key, nil
}

// PutJSON marshals v and stores it under the given key with a JSON content type.
func (c *Client) PutJSON(ctx context.Context, key string, v interface{}) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}

	contentType := jsonContentType
	_, err = c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &c.bucket,
		Key:         &key,
		Body:        bytes.NewReader(body),
		ContentType: &contentType,
	})
	if err != nil {
		return fmt.Errorf("S3 PutObject %s: %w", key, err)
	}

	log.Debug().Str("key", key).Int("bytes", len(body)).Msg("JSON document stored in S3")
	return nil
}

// GetJSON retrieves the object at key and unmarshals it into out.
func (c *Client) GetJSON(ctx context.Context, key string, out interface{}) error {
	result, err := c.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &c.bucket,
		Key:    &key,
	})
	if err != nil {
		return fmt.Errorf("S3 GetObject %s: %w", key, err)
	}
	defer result.Body.Close()

	body, err := io.ReadAll(result.Body)
	if err != nil {
		return fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return nil
}

// DownloadToTempFile downloads an S3 object to a new temporary file and
// returns the file path plus a cleanup function that removes it. The file
// keeps the object's extension so downstream consumers can sniff the format.
func (c *Client) DownloadToTempFile(ctx context.Context, key string) (string, func(), error) {
	tmpFile, err := os.CreateTemp("", "reel-*"+path.Ext(key))
	if err != nil {
		return "", nil, fmt.Errorf("create temp file: %w", err)
	}

	result, err := c.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &c.bucket,
		Key:    &key,
	})
	if err != nil {
		tmpFile.Close()
		os.Remove(tmpFile.Name())
		return "", nil, fmt.Errorf("S3 GetObject %s: %w", key, err)
	}
	defer result.Body.Close()

	if _, err := io.Copy(tmpFile, result.Body); err != nil {
		tmpFile.Close()
		os.Remove(tmpFile.Name())
		return "", nil, fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpFile.Name())
		return "", nil, fmt.Errorf("close temp file: %w", err)
	}

	log.Debug().Str("key", key).Str("localPath", tmpFile.Name()).Msg("Downloaded object from S3")
	cleanup := func() { os.Remove(tmpFile.Name()) }
	return tmpFile.Name(), cleanup, nil
}
