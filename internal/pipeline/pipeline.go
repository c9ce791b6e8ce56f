// Package pipeline orchestrates reel processing: fetch the video, transcribe
// its audio, summarize the transcript, and hand the result back for delivery.
//
// Every stage is idempotent per (chat_id, video_code). The fetch stage skips
// download and upload when a record already exists; the transcribe and
// summarize stages serve from their persisted artifacts when the record's
// stage flag is set. A repeat request for a fully processed reel therefore
// performs no writes at all.
package pipeline

import (
	"context"
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/fpang/reel-digest/internal/metrics"
	"github.com/fpang/reel-digest/internal/reel"
	"github.com/fpang/reel-digest/internal/s3util"
	"github.com/fpang/reel-digest/internal/store"
	"github.com/fpang/reel-digest/internal/summarize"
	"github.com/fpang/reel-digest/internal/transcribe"
)

const metricsNamespace = "ReelDigest"

// Progress messages sent between stages.
const (
	MsgTranscribing = "Pre-processing completed, starting with transcription..."
	MsgSummarizing  = "Transcription completed, creating summary..."
)

// Fetcher retrieves a reel's metadata and media to local disk.
type Fetcher interface {
	Fetch(ctx context.Context, shortcode string) (*reel.Reel, error)
}

// Transcriber converts a local media file to text.
type Transcriber interface {
	Transcribe(ctx context.Context, localPath string) (*transcribe.Transcription, error)
}

// Summarizer classifies a transcript and generates a structured summary.
type Summarizer interface {
	Classify(ctx context.Context, transcript string) (store.SummaryType, error)
	Generate(ctx context.Context, t store.SummaryType, transcript string) (*summarize.Summary, error)
}

// BlobStore persists media files and JSON artifacts.
type BlobStore interface {
	UploadFile(ctx context.Context, localPath, chatID, videoCode string) (string, error)
	PutJSON(ctx context.Context, key string, v interface{}) error
	GetJSON(ctx context.Context, key string, out interface{}) error
	DownloadToTempFile(ctx context.Context, key string) (string, func(), error)
}

// Notifier delivers progress messages to the requesting chat. Notification
// failures do not abort the pipeline.
type Notifier interface {
	Progress(ctx context.Context, chatID int64, text string) error
}

// Request identifies one reel-processing job.
type Request struct {
	ChatID    int64
	VideoCode string
}

// Result is the outcome of a pipeline run.
type Result struct {
	Summary *summarize.Summary
	Record  *store.VideoRecord

	// CacheHit is true when the record was already fully processed and the
	// summary was served from blob storage without any model calls.
	CacheHit bool
}

// Pipeline wires the stores and stage services together.
type Pipeline struct {
	videos      store.VideoStore
	blobs       BlobStore
	fetcher     Fetcher
	transcriber Transcriber
	summarizer  Summarizer
	notifier    Notifier
}

// New creates a Pipeline. notifier may be nil, in which case progress
// messages are suppressed.
func New(videos store.VideoStore, blobs BlobStore, fetcher Fetcher, transcriber Transcriber, summarizer Summarizer, notifier Notifier) *Pipeline {
	return &Pipeline{
		videos:      videos,
		blobs:       blobs,
		fetcher:     fetcher,
		transcriber: transcriber,
		summarizer:  summarizer,
		notifier:    notifier,
	}
}

// Run processes one reel end to end and returns its summary.
func (p *Pipeline) Run(ctx context.Context, req Request) (result *Result, err error) {
	start := time.Now()
	chatKey := strconv.FormatInt(req.ChatID, 10)

	emf := metrics.New(metricsNamespace)
	emf.Count("PipelineRuns").
		Property("chat_id", chatKey).
		Property("video_code", req.VideoCode)
	defer func() {
		if err != nil {
			var stage *StageError
			if errors.As(err, &stage) {
				emf.Dimension("Stage", stage.Stage)
			}
			emf.Count("PipelineErrors")
		}
		emf.Duration("PipelineDuration", time.Since(start))
		emf.Flush()
	}()

	record, err := p.videos.GetVideo(ctx, chatKey, req.VideoCode)
	if err != nil {
		return nil, stageErr(StageFetch, err)
	}

	cacheHit := record != nil && record.IsTranscribed && record.IsSummarized
	if cacheHit {
		emf.Count("CacheHits")
	}

	record, localPath, cleanup, err := p.fetch(ctx, emf, chatKey, req.VideoCode, record)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	p.progress(ctx, req.ChatID, MsgTranscribing)

	transcript, err := p.transcribeStage(ctx, emf, record, localPath)
	if err != nil {
		return nil, err
	}

	p.progress(ctx, req.ChatID, MsgSummarizing)

	summary, err := p.summarizeStage(ctx, emf, record, transcript)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("chatID", chatKey).
		Str("videoCode", req.VideoCode).
		Str("summaryType", string(summary.Type)).
		Bool("cacheHit", cacheHit).
		Dur("duration", time.Since(start)).
		Msg("Pipeline run complete")

	return &Result{Summary: summary, Record: record, CacheHit: cacheHit}, nil
}

// fetch ensures a video record exists. When the record is new it downloads
// the reel, uploads the media to blob storage, and writes the record with
// both stage flags false. The returned localPath is non-empty only when the
// media was downloaded in this call; cleanup removes it.
func (p *Pipeline) fetch(ctx context.Context, emf *metrics.Recorder, chatKey, videoCode string, record *store.VideoRecord) (*store.VideoRecord, string, func(), error) {
	start := time.Now()
	defer func() { emf.Duration("FetchDuration", time.Since(start)) }()

	if record != nil {
		log.Info().
			Str("chatID", chatKey).
			Str("videoCode", videoCode).
			Msg("Video record found, skipping download")
		return record, "", func() {}, nil
	}

	r, err := p.fetcher.Fetch(ctx, videoCode)
	if err != nil {
		return nil, "", nil, stageErr(StageFetch, err)
	}
	cleanup := func() { os.Remove(r.LocalPath) }

	key, err := p.blobs.UploadFile(ctx, r.LocalPath, chatKey, videoCode)
	if err != nil {
		cleanup()
		return nil, "", nil, stageErr(StageFetch, err)
	}

	record = &store.VideoRecord{
		ChatID:          chatKey,
		VideoCode:       videoCode,
		S3VideoPath:     key,
		Creator:         r.Creator,
		Caption:         r.Caption,
		DurationSeconds: r.DurationSeconds,
		PostedAt:        r.PostedAt.UTC().Format(time.RFC3339),
	}
	if err := p.videos.PutVideo(ctx, record); err != nil {
		cleanup()
		return nil, "", nil, stageErr(StageFetch, err)
	}

	return record, r.LocalPath, cleanup, nil
}

// transcribeStage returns the transcript text with the reel caption appended.
// A record already marked transcribed is served from the stored artifact; a
// fresh transcription is persisted and the record flag set before returning.
func (p *Pipeline) transcribeStage(ctx context.Context, emf *metrics.Recorder, record *store.VideoRecord, localPath string) (string, error) {
	start := time.Now()
	defer func() { emf.Duration("TranscribeDuration", time.Since(start)) }()

	if record.IsTranscribed {
		var tr transcribe.Transcription
		if err := p.blobs.GetJSON(ctx, record.TranscriptionS3Key, &tr); err != nil {
			return "", stageErr(StageTranscribe, err)
		}
		log.Info().
			Str("key", record.TranscriptionS3Key).
			Msg("Serving transcription from storage")
		return withCaption(tr.Text, record.Caption), nil
	}

	// A record that exists but was never transcribed has no local media;
	// pull it back down from blob storage.
	if localPath == "" {
		path, cleanup, err := p.blobs.DownloadToTempFile(ctx, record.S3VideoPath)
		if err != nil {
			return "", stageErr(StageTranscribe, err)
		}
		defer cleanup()
		localPath = path
	}

	tr, err := p.transcriber.Transcribe(ctx, localPath)
	if err != nil {
		return "", stageErr(StageTranscribe, err)
	}

	key := s3util.ObjectKey(record.ChatID, record.VideoCode, s3util.TranscriptionArtifact)
	if err := p.blobs.PutJSON(ctx, key, tr); err != nil {
		return "", stageErr(StageTranscribe, err)
	}
	if err := p.videos.MarkTranscribed(ctx, record.ChatID, record.VideoCode, key); err != nil {
		return "", stageErr(StageTranscribe, err)
	}
	record.IsTranscribed = true
	record.TranscriptionS3Key = key

	return withCaption(tr.Text, record.Caption), nil
}

// summarizeStage returns the summary for a transcript. A record already
// marked summarized is served from the stored artifact; otherwise the
// transcript is classified, summarized, persisted, and the record flag set.
func (p *Pipeline) summarizeStage(ctx context.Context, emf *metrics.Recorder, record *store.VideoRecord, transcript string) (*summarize.Summary, error) {
	start := time.Now()
	defer func() { emf.Duration("SummarizeDuration", time.Since(start)) }()

	if record.IsSummarized {
		var s summarize.Summary
		if err := p.blobs.GetJSON(ctx, record.SummaryS3Key, &s); err != nil {
			return nil, stageErr(StageSummarize, err)
		}
		log.Info().
			Str("key", record.SummaryS3Key).
			Msg("Serving summary from storage")
		return &s, nil
	}

	summaryType, err := p.summarizer.Classify(ctx, transcript)
	if err != nil {
		return nil, stageErr(StageSummarize, err)
	}

	summary, err := p.summarizer.Generate(ctx, summaryType, transcript)
	if err != nil {
		return nil, stageErr(StageSummarize, err)
	}

	key := s3util.ObjectKey(record.ChatID, record.VideoCode, s3util.SummaryArtifact)
	if err := p.blobs.PutJSON(ctx, key, summary); err != nil {
		return nil, stageErr(StageSummarize, err)
	}
	if err := p.videos.MarkSummarized(ctx, record.ChatID, record.VideoCode, key, summaryType); err != nil {
		return nil, stageErr(StageSummarize, err)
	}
	record.IsSummarized = true
	record.SummaryS3Key = key
	record.SummaryType = summaryType

	return summary, nil
}

// withCaption appends the reel caption to the transcript so the summarizer
// sees both. The caption is appended exactly once, in this stage boundary.
func withCaption(text, caption string) string {
	if caption == "" {
		return text
	}
	return text + " Caption: " + caption
}

func (p *Pipeline) progress(ctx context.Context, chatID int64, text string) {
	if p.notifier == nil {
		return
	}
	if err := p.notifier.Progress(ctx, chatID, text); err != nil {
		log.Warn().Err(err).Int64("chatID", chatID).Msg("Progress notification failed")
	}
}
