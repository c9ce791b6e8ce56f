package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog/log"
)

// DynamoDB attribute names for the composite key.
const (
	attrChatID    = "chat_id"
	attrVideoCode = "video_code"
)

// DynamoStore implements VideoStore using AWS DynamoDB. The table uses
// chat_id as the partition key and video_code as the sort key, matching the
// blob-key convention {chat_id}/{video_code}/{artifact} in S3.
type DynamoStore struct {
	client    *dynamodb.Client
	tableName string
}

// Compile-time interface check.
var _ VideoStore = (*DynamoStore)(nil)

// NewDynamoStore creates a DynamoStore for the given table.
// The client should be initialized from the shared AWS config.
func NewDynamoStore(client *dynamodb.Client, tableName string) *DynamoStore {
	return &DynamoStore{
		client:    client,
		tableName: tableName,
	}
}

// recordKey builds the DynamoDB key map for a (chat, video) pair.
func recordKey(chatID, videoCode string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrChatID:    &types.AttributeValueMemberS{Value: chatID},
		attrVideoCode: &types.AttributeValueMemberS{Value: videoCode},
	}
}

func (s *DynamoStore) GetVideo(ctx context.Context, chatID, videoCode string) (*VideoRecord, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.tableName,
		Key:       recordKey(chatID, videoCode),
	})
	if err != nil {
		return nil, fmt.Errorf("GetItem chat=%s video=%s: %w", chatID, videoCode, err)
	}
	if result.Item == nil {
		return nil, nil
	}

	var record VideoRecord
	if err := attributevalue.UnmarshalMap(result.Item, &record); err != nil {
		return nil, fmt.Errorf("unmarshal chat=%s video=%s: %w", chatID, videoCode, err)
	}

	record.ChatID = chatID
	record.VideoCode = videoCode
	return &record, nil
}

func (s *DynamoStore) PutVideo(ctx context.Context, record *VideoRecord) error {
	if record.CreatedAt == 0 {
		record.CreatedAt = time.Now().Unix()
	}

	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	// Add key attributes (overwrite any conflicting keys from the data).
	item[attrChatID] = &types.AttributeValueMemberS{Value: record.ChatID}
	item[attrVideoCode] = &types.AttributeValueMemberS{Value: record.VideoCode}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &s.tableName,
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("PutItem chat=%s video=%s: %w", record.ChatID, record.VideoCode, err)
	}

	log.Debug().
		Str("chatId", record.ChatID).
		Str("videoCode", record.VideoCode).
		Str("s3VideoPath", record.S3VideoPath).
		Msg("Video record persisted to DynamoDB")
	return nil
}

func (s *DynamoStore) MarkTranscribed(ctx context.Context, chatID, videoCode, transcriptionKey string) error {
	_, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           &s.tableName,
		Key:                 recordKey(chatID, videoCode),
		ConditionExpression: aws.String("attribute_exists(chat_id)"),
		UpdateExpression:    aws.String("SET is_transcribed = :t, transcription_s3_key = :k, processed_at = :ts"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":t":  &types.AttributeValueMemberBOOL{Value: true},
			":k":  &types.AttributeValueMemberS{Value: transcriptionKey},
			":ts": &types.AttributeValueMemberN{Value: strconv.FormatInt(time.Now().Unix(), 10)},
		},
	})
	if err != nil {
		return fmt.Errorf("mark transcribed chat=%s video=%s: %w", chatID, videoCode, err)
	}

	log.Debug().
		Str("chatId", chatID).
		Str("videoCode", videoCode).
		Str("transcriptionKey", transcriptionKey).
		Msg("Video record marked transcribed")
	return nil
}

func (s *DynamoStore) MarkSummarized(ctx context.Context, chatID, videoCode, summaryKey string, summaryType SummaryType) error {
	_, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           &s.tableName,
		Key:                 recordKey(chatID, videoCode),
		ConditionExpression: aws.String("attribute_exists(chat_id)"),
		UpdateExpression:    aws.String("SET is_summarized = :s, summary_s3_key = :k, summary_type = :st, processed_at = :ts"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":s":  &types.AttributeValueMemberBOOL{Value: true},
			":k":  &types.AttributeValueMemberS{Value: summaryKey},
			":st": &types.AttributeValueMemberS{Value: string(summaryType)},
			":ts": &types.AttributeValueMemberN{Value: strconv.FormatInt(time.Now().Unix(), 10)},
		},
	})
	if err != nil {
		return fmt.Errorf("mark summarized chat=%s video=%s: %w", chatID, videoCode, err)
	}

	log.Debug().
		Str("chatId", chatID).
		Str("videoCode", videoCode).
		Str("summaryKey", summaryKey).
		Str("summaryType", string(summaryType)).
		Msg("Video record marked summarized")
	return nil
}
