package gateway

import (
	"context"
	"errors"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"github.com/awsgate/awsgate"
)

// Resolver turns logical names into AWS-native identifiers. Every call
// resolves from scratch; nothing is cached, so a resource recreated between
// two requests always resolves to its current identifier.
type Resolver struct {
	sns SNSAPI
	sqs SQSAPI
}

// NewResolver creates a Resolver over the given SNS and SQS clients.
func NewResolver(snsCli SNSAPI, sqsCli SQSAPI) *Resolver {
	return &Resolver{sns: snsCli, sqs: sqsCli}
}

// TopicARN resolves a topic name to its ARN by walking the full topic listing
// and matching the final ARN segment. SNS offers no name-indexed lookup, so
// the scan is unavoidable; it stops at the first match. Listing order decides
// ties. Returns a NotFoundError after exhausting the listing without a match.
func (r *Resolver) TopicARN(ctx context.Context, name string) (string, error) {
	pager := sns.NewListTopicsPaginator(r.sns, &sns.ListTopicsInput{})

	for pager.HasMorePages() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return "", upstream("listing topics", err)
		}

		for _, topic := range page.Topics {
			arn := aws.ToString(topic.TopicArn)
			if TopicNameFromARN(arn) == name {
				return arn, nil
			}
		}
	}

	return "", awsgate.NewNotFoundError("topic %q not found", name)
}

// QueueURL resolves a queue name to its URL. SQS supports exact lookup by
// name, so no listing scan is needed.
func (r *Resolver) QueueURL(ctx context.Context, name string) (string, error) {
	out, err := r.sqs.GetQueueUrl(ctx, &sqs.GetQueueUrlInput{
		QueueName: aws.String(name),
	})
	if err != nil {
		var notExist *sqstypes.QueueDoesNotExist
		if errors.As(err, &notExist) {
			return "", awsgate.NewNotFoundError("queue %q not found", name)
		}

		return "", upstream("getting queue url", err)
	}

	return aws.ToString(out.QueueUrl), nil
}

// QueueARN resolves a queue name or URL to the queue's ARN. SQS operations
// use the URL form, but SNS subscribe endpoints need the ARN, which only the
// queue's attributes expose.
func (r *Resolver) QueueARN(ctx context.Context, nameOrURL string) (string, error) {
	queueURL := nameOrURL
	if !strings.Contains(nameOrURL, "://") {
		var err error
		if queueURL, err = r.QueueURL(ctx, nameOrURL); err != nil {
			return "", err
		}
	}

	attrs, err := r.sqs.GetQueueAttributes(ctx, &sqs.GetQueueAttributesInput{
		QueueUrl:       aws.String(queueURL),
		AttributeNames: []sqstypes.QueueAttributeName{sqstypes.QueueAttributeNameQueueArn},
	})
	if err != nil {
		return "", upstream("getting queue attributes", err)
	}

	arn, ok := attrs.Attributes[string(sqstypes.QueueAttributeNameQueueArn)]
	if !ok {
		return "", awsgate.NewNotFoundError("queue %q has no ARN attribute", nameOrURL)
	}

	return arn, nil
}

// TopicNameFromARN derives the logical topic name from an ARN's final path
// segment, e.g. arn:aws:sns:us-east-1:000000000000:orders -> orders.
func TopicNameFromARN(arn string) string {
	return arn[strings.LastIndex(arn, ":")+1:]
}
