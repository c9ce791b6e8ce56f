// Package store provides persistent per-video processing state for the reel
// pipeline. Each Instagram reel a chat has sent is tracked as one DynamoDB
// record keyed by (chat_id, video_code), recording where the raw media lives
// in S3 and which pipeline stages have completed.
//
// Stage flags are monotonic: once a record is marked transcribed or
// summarized it is never reset. Records are created by the fetch stage with
// both flags false and mutated only via targeted partial updates afterwards.
package store

import (
	"context"
)

// SummaryType is the classification assigned to a summarized transcript.
type SummaryType string

const (
	SummaryCompanies  SummaryType = "companies"
	SummaryTechnology SummaryType = "technology"
	SummaryGeneral    SummaryType = "general"
)

// Valid reports whether t is one of the known summary types.
func (t SummaryType) Valid() bool {
	switch t {
	case SummaryCompanies, SummaryTechnology, SummaryGeneral:
		return true
	}
	return false
}

// VideoRecord is the per-(chat, video) state document. ChatID and VideoCode
// are derived from the table keys on read and excluded from the marshalled
// attributes on write (via dynamodbav:"-").
type VideoRecord struct {
	ChatID    string `json:"chat_id" dynamodbav:"-"`
	VideoCode string `json:"video_code" dynamodbav:"-"`

	S3VideoPath     string  `json:"s3_video_path" dynamodbav:"s3_video_path"`
	Creator         string  `json:"creator,omitempty" dynamodbav:"creator,omitempty"`
	Caption         string  `json:"caption,omitempty" dynamodbav:"caption,omitempty"`
	DurationSeconds float64 `json:"duration_seconds,omitempty" dynamodbav:"duration_seconds,omitempty"`
	PostedAt        string  `json:"posted_at,omitempty" dynamodbav:"posted_at,omitempty"`

	IsTranscribed      bool   `json:"is_transcribed" dynamodbav:"is_transcribed"`
	TranscriptionS3Key string `json:"transcription_s3_key,omitempty" dynamodbav:"transcription_s3_key,omitempty"`

	IsSummarized bool        `json:"is_summarized" dynamodbav:"is_summarized"`
	SummaryS3Key string      `json:"summary_s3_key,omitempty" dynamodbav:"summary_s3_key,omitempty"`
	SummaryType  SummaryType `json:"summary_type,omitempty" dynamodbav:"summary_type,omitempty"`

	CreatedAt   int64 `json:"created_at" dynamodbav:"created_at"`
	ProcessedAt int64 `json:"processed_at,omitempty" dynamodbav:"processed_at,omitempty"`
}

// VideoStore defines the persistence interface for video records.
// GetVideo returns (nil, nil) when the requested record does not exist.
// PutVideo performs full-item replacement (upsert semantics). The Mark
// methods perform partial updates conditional on the record existing and
// never clear a stage flag.
type VideoStore interface {
	// GetVideo retrieves a record by its composite key. Returns nil, nil if not found.
	GetVideo(ctx context.Context, chatID, videoCode string) (*VideoRecord, error)

	// PutVideo creates or replaces a video record.
	PutVideo(ctx context.Context, record *VideoRecord) error

	// MarkTranscribed sets is_transcribed=true and the transcription blob key
	// on an existing record.
	MarkTranscribed(ctx context.Context, chatID, videoCode, transcriptionKey string) error

	// MarkSummarized sets is_summarized=true, the summary blob key, and the
	// summary type on an existing record.
	MarkSummarized(ctx context.Context, chatID, videoCode, summaryKey string, summaryType SummaryType) error
}
