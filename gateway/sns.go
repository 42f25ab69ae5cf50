package gateway

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"github.com/awsgate/awsgate"
)

// Topic pairs a topic's logical name with its ARN.
type Topic struct {
	Name string `json:"name"`
	ARN  string `json:"topic_arn"`
}

// PublishInput carries the message body and optional metadata for a topic
// publish.
type PublishInput struct {
	Message    string                      `json:"message"    validate:"required"`
	Subject    string                      `json:"subject,omitempty"`
	Attributes map[string]MessageAttribute `json:"attributes,omitempty" validate:"omitempty,dive"`
}

// CreateTopic creates an SNS topic. The backend call is idempotent: creating
// a topic whose name already exists returns the existing ARN.
func (g *Gateway) CreateTopic(ctx context.Context, name string) (Topic, error) {
	if name == "" {
		return Topic{}, awsgate.NewValidationError("topic name is required")
	}

	out, err := g.sns.CreateTopic(ctx, &sns.CreateTopicInput{
		Name: aws.String(name),
	})
	if err != nil {
		return Topic{}, upstream("creating topic", err)
	}

	return Topic{Name: name, ARN: aws.ToString(out.TopicArn)}, nil
}

// Publish sends a message to the topic identified by the resolved ARN and
// returns the generated message identifier.
func (g *Gateway) Publish(ctx context.Context, topicARN string, in PublishInput) (string, error) {
	if in.Message == "" {
		return "", awsgate.NewValidationError("message is required")
	}

	input := &sns.PublishInput{
		TopicArn:          aws.String(topicARN),
		Message:           aws.String(in.Message),
		MessageAttributes: snsAttributes(in.Attributes),
	}
	if in.Subject != "" {
		input.Subject = aws.String(in.Subject)
	}

	out, err := g.sns.Publish(ctx, input)
	if err != nil {
		return "", upstream("publishing message", err)
	}

	return aws.ToString(out.MessageId), nil
}

// ListTopics returns every topic, walking the full paginated listing. Names
// are derived from the final ARN segment.
func (g *Gateway) ListTopics(ctx context.Context) ([]Topic, error) {
	var topics []Topic

	pager := sns.NewListTopicsPaginator(g.sns, &sns.ListTopicsInput{})
	for pager.HasMorePages() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, upstream("listing topics", err)
		}

		for _, topic := range page.Topics {
			arn := aws.ToString(topic.TopicArn)
			topics = append(topics, Topic{Name: TopicNameFromARN(arn), ARN: arn})
		}
	}

	return topics, nil
}
