package gateway

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/awsgate/awsgate"
)

// Item is a DynamoDB record unmarshalled into plain Go values.
type Item map[string]any

// ItemKey addresses a single item: partition key always, sort key only when
// the table's schema defines one. The table schema is not introspected here;
// a key-shape mismatch surfaces as a backend validation failure.
type ItemKey struct {
	PartitionKeyName  string
	PartitionKeyValue string
	SortKeyName       string
	SortKeyValue      string
}

func (k ItemKey) validate() error {
	if k.PartitionKeyName == "" || k.PartitionKeyValue == "" {
		return awsgate.NewValidationError("partition_key_name and partition_key_value are required")
	}
	if (k.SortKeyName == "") != (k.SortKeyValue == "") {
		return awsgate.NewValidationError("sort_key_name and sort_key_value must be supplied together")
	}

	return nil
}

// ScanAll reads every item in the table, walking the full paginated scan.
func (g *Gateway) ScanAll(ctx context.Context, table string) ([]Item, error) {
	if table == "" {
		return nil, awsgate.NewValidationError("table_name is required")
	}

	var items []Item

	pager := dynamodb.NewScanPaginator(g.dynamo, &dynamodb.ScanInput{
		TableName: aws.String(table),
	})
	for pager.HasMorePages() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, mapDynamoErr("scanning table", table, err)
		}

		var pageItems []Item
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &pageItems); err != nil {
			return nil, upstream("unmarshalling scan page", err)
		}
		items = append(items, pageItems...)
	}

	return items, nil
}

// GetItem reads a single item by key. A missing item is a NotFoundError.
func (g *Gateway) GetItem(ctx context.Context, table string, key ItemKey) (Item, error) {
	if table == "" {
		return nil, awsgate.NewValidationError("table_name is required")
	}
	if err := key.validate(); err != nil {
		return nil, err
	}

	ddbKey := map[string]ddbtypes.AttributeValue{
		key.PartitionKeyName: &ddbtypes.AttributeValueMemberS{Value: key.PartitionKeyValue},
	}
	if key.SortKeyName != "" {
		ddbKey[key.SortKeyName] = &ddbtypes.AttributeValueMemberS{Value: key.SortKeyValue}
	}

	out, err := g.dynamo.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key:       ddbKey,
	})
	if err != nil {
		return nil, mapDynamoErr("getting item", table, err)
	}

	if out.Item == nil {
		return nil, awsgate.NewNotFoundError("item not found in table %q", table)
	}

	var item Item
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, upstream("unmarshalling item", err)
	}

	return item, nil
}

// mapDynamoErr translates a missing table into a NotFoundError; anything else
// is an upstream failure.
func mapDynamoErr(op, table string, err error) error {
	var notFound *ddbtypes.ResourceNotFoundException
	if errors.As(err, &notFound) {
		return awsgate.NewNotFoundError("table %q not found", table)
	}

	return upstream(op, err)
}
