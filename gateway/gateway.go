package gateway

import (
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/aws/smithy-go"

	"github.com/awsgate/awsgate"
)

// Gateway exposes the façade's operations over the three target services.
// It is stateless per request: the only shared state is the client handles,
// which are read-only after construction.
type Gateway struct {
	sns    SNSAPI
	sqs    SQSAPI
	dynamo DynamoAPI

	resolver *Resolver
}

// New creates a Gateway over the given service clients.
func New(snsCli SNSAPI, sqsCli SQSAPI, dynamoCli DynamoAPI) *Gateway {
	return &Gateway{
		sns:      snsCli,
		sqs:      sqsCli,
		dynamo:   dynamoCli,
		resolver: NewResolver(snsCli, sqsCli),
	}
}

// Resolver returns the name resolver backed by the same clients.
func (g *Gateway) Resolver() *Resolver {
	return g.resolver
}

// MessageAttribute is the wire shape for message attributes on publish and
// send, matching the AWS attribute value layout.
type MessageAttribute struct {
	DataType    string `json:"DataType"    validate:"required,oneof=String Number Binary String.Array"`
	StringValue string `json:"StringValue,omitempty"`
	BinaryValue []byte `json:"BinaryValue,omitempty"`
}

func snsAttributes(attrs map[string]MessageAttribute) map[string]snstypes.MessageAttributeValue {
	if len(attrs) == 0 {
		return nil
	}

	out := make(map[string]snstypes.MessageAttributeValue, len(attrs))
	for k, v := range attrs {
		att := snstypes.MessageAttributeValue{DataType: aws.String(v.DataType)}
		if v.BinaryValue != nil {
			att.BinaryValue = v.BinaryValue
		} else {
			att.StringValue = aws.String(v.StringValue)
		}
		out[k] = att
	}

	return out
}

func sqsAttributes(attrs map[string]MessageAttribute) map[string]sqstypes.MessageAttributeValue {
	if len(attrs) == 0 {
		return nil
	}

	out := make(map[string]sqstypes.MessageAttributeValue, len(attrs))
	for k, v := range attrs {
		att := sqstypes.MessageAttributeValue{DataType: aws.String(v.DataType)}
		if v.BinaryValue != nil {
			att.BinaryValue = v.BinaryValue
		} else {
			att.StringValue = aws.String(v.StringValue)
		}
		out[k] = att
	}

	return out
}

// upstream wraps a backend failure as an UpstreamError, surfacing the AWS
// error code when the SDK exposes one.
func upstream(op string, err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		op = fmt.Sprintf("%s (%s)", op, apiErr.ErrorCode())
	}

	return awsgate.WrapUpstreamError(op, err)
}
