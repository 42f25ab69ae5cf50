package gateway

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/awsgate/awsgate"
)

const (
	maxDelaySeconds = 900

	minReceiveMessages = 1
	maxReceiveMessages = 10
	maxWaitSeconds     = 20
)

// SendInput carries the message body and optional metadata for a queue send.
type SendInput struct {
	Message      string                      `json:"message"       validate:"required"`
	DelaySeconds *int32                      `json:"delay_seconds,omitempty"`
	Attributes   map[string]MessageAttribute `json:"attributes,omitempty" validate:"omitempty,dive"`
}

// ReceiveInput bounds a queue receive. Values outside the backend's accepted
// ranges are clamped before the call.
type ReceiveInput struct {
	MaxMessages int32
	WaitSeconds int32
}

// QueueMessage is a received message record, returned as the backend delivered
// it so the caller can delete it later by receipt handle.
type QueueMessage struct {
	MessageID     string            `json:"message_id"`
	Body          string            `json:"body"`
	ReceiptHandle string            `json:"receipt_handle"`
	Attributes    map[string]string `json:"attributes,omitempty"`
}

// Send delivers a message to the queue identified by the resolved URL and
// returns the generated message identifier. The optional delay must be within
// the backend-enforced 0-900s range.
func (g *Gateway) Send(ctx context.Context, queueURL string, in SendInput) (string, error) {
	if in.Message == "" {
		return "", awsgate.NewValidationError("message is required")
	}
	if in.DelaySeconds != nil && (*in.DelaySeconds < 0 || *in.DelaySeconds > maxDelaySeconds) {
		return "", awsgate.NewValidationError("delay_seconds must be between 0 and %d", maxDelaySeconds)
	}

	input := &sqs.SendMessageInput{
		QueueUrl:          aws.String(queueURL),
		MessageBody:       aws.String(in.Message),
		MessageAttributes: sqsAttributes(in.Attributes),
	}
	if in.DelaySeconds != nil {
		input.DelaySeconds = *in.DelaySeconds
	}

	out, err := g.sqs.SendMessage(ctx, input)
	if err != nil {
		return "", upstream("sending message", err)
	}

	return aws.ToString(out.MessageId), nil
}

// Receive fetches up to MaxMessages records from the queue, long-polling for
// WaitSeconds. Received messages are not deleted; deletion is a separate call
// by receipt handle.
func (g *Gateway) Receive(ctx context.Context, queueURL string, in ReceiveInput) ([]QueueMessage, error) {
	out, err := g.sqs.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:              aws.String(queueURL),
		MaxNumberOfMessages:   min(max(in.MaxMessages, minReceiveMessages), maxReceiveMessages),
		WaitTimeSeconds:       min(max(in.WaitSeconds, 0), maxWaitSeconds),
		MessageAttributeNames: []string{"All"},
	})
	if err != nil {
		return nil, upstream("receiving messages", err)
	}

	msgs := make([]QueueMessage, 0, len(out.Messages))
	for _, msg := range out.Messages {
		parsed := QueueMessage{
			MessageID:     aws.ToString(msg.MessageId),
			Body:          aws.ToString(msg.Body),
			ReceiptHandle: aws.ToString(msg.ReceiptHandle),
		}
		if len(msg.MessageAttributes) > 0 {
			parsed.Attributes = make(map[string]string, len(msg.MessageAttributes))
			for k, v := range msg.MessageAttributes {
				parsed.Attributes[k] = aws.ToString(v.StringValue)
			}
		}
		msgs = append(msgs, parsed)
	}

	return msgs, nil
}

// Delete removes exactly one message by receipt handle. The backend reports
// success for an already-consumed handle, so the call is idempotent from the
// caller's perspective.
func (g *Gateway) Delete(ctx context.Context, queueURL, receiptHandle string) error {
	if receiptHandle == "" {
		return awsgate.NewValidationError("receipt_handle is required")
	}

	if _, err := g.sqs.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(queueURL),
		ReceiptHandle: aws.String(receiptHandle),
	}); err != nil {
		return upstream("deleting message", err)
	}

	return nil
}

// Purge asks the backend to drop every message in the queue. The backend
// performs the deletion asynchronously and allows at most one purge per queue
// per 60 seconds; this returns as soon as the purge is accepted and surfaces
// a rate-limit rejection as-is.
func (g *Gateway) Purge(ctx context.Context, queueURL string) error {
	if _, err := g.sqs.PurgeQueue(ctx, &sqs.PurgeQueueInput{
		QueueUrl: aws.String(queueURL),
	}); err != nil {
		return upstream("purging queue", err)
	}

	return nil
}

// ListQueues returns the URLs of queues whose names start with the optional
// prefix. A single call covers the current scale; no pagination loop.
func (g *Gateway) ListQueues(ctx context.Context, prefix string) ([]string, error) {
	input := &sqs.ListQueuesInput{}
	if prefix != "" {
		input.QueueNamePrefix = aws.String(prefix)
	}

	out, err := g.sqs.ListQueues(ctx, input)
	if err != nil {
		return nil, upstream("listing queues", err)
	}

	return out.QueueUrls, nil
}
