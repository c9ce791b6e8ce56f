package store

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func TestSummaryTypeValid(t *testing.T) {
	valid := []SummaryType{SummaryCompanies, SummaryTechnology, SummaryGeneral}
	for _, st := range valid {
		if !st.Valid() {
			t.Errorf("expected %q to be valid", st)
		}
	}

	invalid := []SummaryType{"", "tech", "Companies", "news"}
	for _, st := range invalid {
		if st.Valid() {
			t.Errorf("expected %q to be invalid", st)
		}
	}
}

func TestVideoRecordMarshalExcludesKeys(t *testing.T) {
	record := &VideoRecord{
		ChatID:      "12345",
		VideoCode:   "ABC123",
		S3VideoPath: "12345/ABC123/reel.mp4",
		Caption:     "a caption",
		CreatedAt:   1700000000,
	}

	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	// Key fields carry dynamodbav:"-" and are added by PutVideo, not the marshaller.
	if _, ok := item[attrChatID]; ok {
		t.Error("chat_id should not be marshalled from the struct")
	}
	if _, ok := item[attrVideoCode]; ok {
		t.Error("video_code should not be marshalled from the struct")
	}

	pathAttr, ok := item["s3_video_path"].(*types.AttributeValueMemberS)
	if !ok || pathAttr.Value != "12345/ABC123/reel.mp4" {
		t.Errorf("unexpected s3_video_path attribute: %#v", item["s3_video_path"])
	}
}

func TestVideoRecordMarshalOmitsEmptyStageKeys(t *testing.T) {
	record := &VideoRecord{
		ChatID:      "12345",
		VideoCode:   "ABC123",
		S3VideoPath: "12345/ABC123/reel.mp4",
	}

	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	for _, attr := range []string{"transcription_s3_key", "summary_s3_key", "summary_type"} {
		if _, ok := item[attr]; ok {
			t.Errorf("empty %s should be omitted", attr)
		}
	}

	// Stage flags are always present, false on a fresh record.
	flag, ok := item["is_transcribed"].(*types.AttributeValueMemberBOOL)
	if !ok || flag.Value {
		t.Errorf("unexpected is_transcribed attribute: %#v", item["is_transcribed"])
	}
}

func TestVideoRecordRoundTrip(t *testing.T) {
	record := &VideoRecord{
		ChatID:             "9",
		VideoCode:          "XyZ_-9",
		S3VideoPath:        "9/XyZ_-9/reel.mp4",
		Creator:            "someone",
		Caption:            "hi",
		DurationSeconds:    12.5,
		IsTranscribed:      true,
		TranscriptionS3Key: "9/XyZ_-9/transcription.json",
		IsSummarized:       true,
		SummaryS3Key:       "9/XyZ_-9/summary.json",
		SummaryType:        SummaryTechnology,
		CreatedAt:          1700000000,
		ProcessedAt:        1700000100,
	}

	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got VideoRecord
	if err := attributevalue.UnmarshalMap(item, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got.ChatID = record.ChatID
	got.VideoCode = record.VideoCode

	if got != *record {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, *record)
	}
}
