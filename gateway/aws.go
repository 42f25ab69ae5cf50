// Package gateway implements the core of the façade: a client factory for the
// three target services, a name resolver turning logical names into AWS-native
// identifiers, a subscription orchestrator wiring SNS topics to SQS queues or
// Lambda functions, and thin per-operation wrappers over the SDK calls.
package gateway

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/awsgate/awsgate"
	"github.com/awsgate/awsgate/config"
)

//go:generate go tool moq -pkg gateway_test -stub -out aws_mock_test.go . SNSAPI SQSAPI DynamoAPI

// SNSAPI defines the AWS SNS methods used by the gateway. This is used for
// testing purposes.
type SNSAPI interface {
	CreateTopic(
		ctx context.Context,
		params *sns.CreateTopicInput,
		optFns ...func(*sns.Options),
	) (*sns.CreateTopicOutput, error)
	ListTopics(
		ctx context.Context,
		params *sns.ListTopicsInput,
		optFns ...func(*sns.Options),
	) (*sns.ListTopicsOutput, error)
	Publish(
		ctx context.Context,
		params *sns.PublishInput,
		optFns ...func(*sns.Options),
	) (*sns.PublishOutput, error)
	Subscribe(
		ctx context.Context,
		params *sns.SubscribeInput,
		optFns ...func(*sns.Options),
	) (*sns.SubscribeOutput, error)
}

// SQSAPI defines the AWS SQS methods used by the gateway. This is used for
// testing purposes.
type SQSAPI interface {
	GetQueueUrl(
		ctx context.Context,
		params *sqs.GetQueueUrlInput,
		optFns ...func(*sqs.Options),
	) (*sqs.GetQueueUrlOutput, error)
	GetQueueAttributes(
		ctx context.Context,
		params *sqs.GetQueueAttributesInput,
		optFns ...func(*sqs.Options),
	) (*sqs.GetQueueAttributesOutput, error)
	SendMessage(
		ctx context.Context,
		params *sqs.SendMessageInput,
		optFns ...func(*sqs.Options),
	) (*sqs.SendMessageOutput, error)
	ReceiveMessage(
		ctx context.Context,
		params *sqs.ReceiveMessageInput,
		optFns ...func(*sqs.Options),
	) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(
		ctx context.Context,
		params *sqs.DeleteMessageInput,
		optFns ...func(*sqs.Options),
	) (*sqs.DeleteMessageOutput, error)
	PurgeQueue(
		ctx context.Context,
		params *sqs.PurgeQueueInput,
		optFns ...func(*sqs.Options),
	) (*sqs.PurgeQueueOutput, error)
	ListQueues(
		ctx context.Context,
		params *sqs.ListQueuesInput,
		optFns ...func(*sqs.Options),
	) (*sqs.ListQueuesOutput, error)
}

// DynamoAPI defines the AWS DynamoDB methods used by the gateway. This is
// used for testing purposes.
type DynamoAPI interface {
	Scan(
		ctx context.Context,
		params *dynamodb.ScanInput,
		optFns ...func(*dynamodb.Options),
	) (*dynamodb.ScanOutput, error)
	GetItem(
		ctx context.Context,
		params *dynamodb.GetItemInput,
		optFns ...func(*dynamodb.Options),
	) (*dynamodb.GetItemOutput, error)
}

// Clients bundles the three configured service clients. The underlying SDK
// clients are safe for concurrent reuse, so one Clients value is built at
// startup and shared by every request.
type Clients struct {
	SNS    *sns.Client
	SQS    *sqs.Client
	Dynamo *dynamodb.Client
}

// NewClients builds the service clients from the given configuration. Each
// client targets its configured endpoint with the configured static
// credentials. No network I/O happens here; a structurally invalid
// configuration yields a ConfigurationError.
func NewClients(ctx context.Context, cfg config.Config) (*Clients, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, awsgate.NewConfigurationError("loading aws config: %v", err)
	}

	return &Clients{
		SNS: sns.NewFromConfig(awsCfg, func(o *sns.Options) {
			o.BaseEndpoint = aws.String(cfg.SNSEndpoint)
		}),
		SQS: sqs.NewFromConfig(awsCfg, func(o *sqs.Options) {
			o.BaseEndpoint = aws.String(cfg.SQSEndpoint)
		}),
		Dynamo: dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
			o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
		}),
	}, nil
}
