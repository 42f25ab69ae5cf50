package gateway

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"github.com/awsgate/awsgate"
)

// DestinationType selects the delivery protocol of a subscription.
type DestinationType string

// Recognized subscription destinations.
const (
	DestinationSQS    DestinationType = "sqs"
	DestinationLambda DestinationType = "lambda"
)

// SQS destinations always receive the raw published payload instead of the
// SNS notification envelope.
const rawMessageDeliveryAttr = "RawMessageDelivery"

// SubscriptionRequest describes a topic-to-destination binding to create.
// Each side may be addressed by logical name or native identifier, except
// Lambda functions, which have no name-based lookup here and must come as an
// ARN.
type SubscriptionRequest struct {
	Topic     awsgate.Ref
	Type      DestinationType
	Queue     awsgate.Ref
	LambdaARN string
}

// ResolvedSubscription is the result of a successful orchestration.
type ResolvedSubscription struct {
	SubscriptionARN string `json:"subscription_arn"`
	TopicARN        string `json:"topic_arn"`
	Protocol        string `json:"protocol"`
	Endpoint        string `json:"endpoint"`
}

// validate checks the request shape before any network call is issued.
func (req SubscriptionRequest) validate() error {
	if _, _, err := req.Topic.Chosen("topic_name", "topic_arn"); err != nil {
		return err
	}

	switch req.Type {
	case DestinationSQS:
		if _, _, err := req.Queue.Chosen("queue_name", "queue_arn"); err != nil {
			return err
		}
	case DestinationLambda:
		if req.LambdaARN == "" {
			return awsgate.NewValidationError("lambda_arn is required for type %q", DestinationLambda)
		}
	default:
		return awsgate.NewValidationError("type must be %q or %q", DestinationSQS, DestinationLambda)
	}

	return nil
}

// Subscribe wires a topic to an SQS queue or Lambda function. It resolves
// both sides to native identifiers, then issues the single SNS subscribe
// call. Resolution failures short-circuit before the subscribe, so a failed
// orchestration never leaves a dangling subscription behind.
//
// The real backend additionally requires a Lambda-side permission grant for
// lambda deliveries; this system does not perform it.
func (g *Gateway) Subscribe(ctx context.Context, req SubscriptionRequest) (ResolvedSubscription, error) {
	if err := req.validate(); err != nil {
		return ResolvedSubscription{}, err
	}

	topicARN, kind, _ := req.Topic.Chosen("topic_name", "topic_arn")
	if kind == awsgate.RefName {
		var err error
		if topicARN, err = g.resolver.TopicARN(ctx, req.Topic.Name); err != nil {
			return ResolvedSubscription{}, err
		}
	}

	var (
		endpoint   string
		attributes map[string]string
	)

	switch req.Type {
	case DestinationSQS:
		queueRef, kind, _ := req.Queue.Chosen("queue_name", "queue_arn")
		endpoint = queueRef
		if kind == awsgate.RefName {
			var err error
			if endpoint, err = g.resolver.QueueARN(ctx, req.Queue.Name); err != nil {
				return ResolvedSubscription{}, err
			}
		}
		attributes = map[string]string{rawMessageDeliveryAttr: "true"}
	case DestinationLambda:
		endpoint = req.LambdaARN
	}

	out, err := g.sns.Subscribe(ctx, &sns.SubscribeInput{
		TopicArn:   aws.String(topicARN),
		Protocol:   aws.String(string(req.Type)),
		Endpoint:   aws.String(endpoint),
		Attributes: attributes,
	})
	if err != nil {
		return ResolvedSubscription{}, upstream("subscribing", err)
	}

	return ResolvedSubscription{
		SubscriptionARN: aws.ToString(out.SubscriptionArn),
		TopicARN:        topicARN,
		Protocol:        string(req.Type),
		Endpoint:        endpoint,
	}, nil
}
