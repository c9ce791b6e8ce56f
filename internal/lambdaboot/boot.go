// Package lambdaboot provides the Lambda cold-start bootstrap helpers: AWS
// config, S3 and DynamoDB clients, SSM secret loading, and startup logging.
// The bot Lambda's init() is a short composition of these.
package lambdaboot

import (
	"context"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/rs/zerolog/log"

	"github.com/fpang/reel-digest/internal/logging"
	"github.com/fpang/reel-digest/internal/s3util"
	"github.com/fpang/reel-digest/internal/store"
)

// AWSClients holds the core AWS SDK clients shared across components.
type AWSClients struct {
	Config aws.Config
	SSM    *ssm.Client
}

// InitAWS loads the default AWS config and returns it along with common clients.
func InitAWS() AWSClients {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load AWS config")
	}
	log.Debug().Str("region", cfg.Region).Msg("AWS config loaded")
	return AWSClients{
		Config: cfg,
		SSM:    ssm.NewFromConfig(cfg),
	}
}

// InitBlobStore creates the blob-store client for the media bucket.
func InitBlobStore(cfg aws.Config, bucket string) *s3util.Client {
	if bucket == "" {
		log.Fatal().Msg("Media bucket name is required")
	}
	return s3util.NewClient(s3.NewFromConfig(cfg), bucket)
}

// InitVideoStore creates the DynamoDB video record store.
func InitVideoStore(cfg aws.Config, tableName string) *store.DynamoStore {
	if tableName == "" {
		log.Fatal().Msg("Videos table name is required")
	}
	return store.NewDynamoStore(dynamodb.NewFromConfig(cfg), tableName)
}

// LoadSecret resolves a secret value: the environment variable wins when set,
// otherwise the SSM parameter at paramName is fetched with decryption.
// Fatals on SSM errors so a misconfigured Lambda fails at cold start rather
// than on the first request.
func LoadSecret(ssmClient *ssm.Client, envVar, paramName string) string {
	if v := os.Getenv(envVar); v != "" {
		log.Debug().Str("envVar", envVar).Msg("Secret taken from environment")
		return v
	}

	start := time.Now()
	result, err := ssmClient.GetParameter(context.Background(), &ssm.GetParameterInput{
		Name:           &paramName,
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		log.Fatal().Err(err).Str("param", paramName).Msg("Failed to read secret from SSM")
	}
	log.Debug().Str("param", paramName).Dur("elapsed", time.Since(start)).Msg("Secret loaded from SSM")
	return *result.Parameter.Value
}

// LoadOptionalSecret behaves like LoadSecret but returns an empty string,
// with a warning, when the parameter cannot be read.
func LoadOptionalSecret(ssmClient *ssm.Client, envVar, paramName string) string {
	if v := os.Getenv(envVar); v != "" {
		log.Debug().Str("envVar", envVar).Msg("Secret taken from environment")
		return v
	}

	result, err := ssmClient.GetParameter(context.Background(), &ssm.GetParameterInput{
		Name:           &paramName,
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		log.Warn().Err(err).Str("param", paramName).Msg("Optional secret not available")
		return ""
	}
	return *result.Parameter.Value
}

// StartupLog is a convenience wrapper for the startup logger.
func StartupLog(name string, initStart time.Time) *logging.StartupLogger {
	return logging.NewStartupLogger(name).InitDuration(time.Since(initStart))
}
