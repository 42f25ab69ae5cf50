// Runnable end to end demo: starts a LocalStack container, wires the full
// façade in front of it, keeps publishing orders to a topic and drains the
// subscribed queue, printing every delivery. Stop with ctrl-c.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssqs "github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/awsgate/awsgate"
	"github.com/awsgate/awsgate/gateway"
	"github.com/awsgate/awsgate/httpapi"
	"github.com/awsgate/awsgate/internal/testhelpers"
)

const (
	topicName = "orders"
	queueName = "orders-q"

	publishInterval = 10 * time.Second
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	awsContainer, err := testhelpers.CreateLocalStackContainer(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = awsContainer.Terminate(ctx) }()

	clients, err := gateway.NewClients(ctx, awsContainer.Config)
	if err != nil {
		return err
	}

	gw := gateway.New(clients.SNS, clients.SQS, clients.Dynamo)

	queueURL, err := setupResources(ctx, gw, clients.SQS)
	if err != nil {
		return err
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		return err
	}

	go func() {
		log.Println("listening at: http://localhost:8080")
		//nolint:gosec // leaving simple for the example.
		if err := http.ListenAndServe(":8080", httpapi.New(gw, logger).Router()); err != nil {
			log.Fatal(fmt.Errorf("serving http: %w", err))
		}
	}()

	go func() {
		if err := publishOrders(ctx, gw); err != nil {
			log.Fatal(fmt.Errorf("publishing orders: %w", err))
		}
	}()

	go func() {
		if err := consume(ctx, gw, queueURL); err != nil {
			log.Fatal(fmt.Errorf("consuming: %w", err))
		}
	}()

	<-ctx.Done()
	log.Println("got interruption signal")

	return nil
}

// setupResources creates the topic and queue and binds them with raw message
// delivery, returning the queue URL the consumer drains.
func setupResources(ctx context.Context, gw *gateway.Gateway, sqsClient *awssqs.Client) (string, error) {
	if _, err := gw.CreateTopic(ctx, topicName); err != nil {
		return "", err
	}

	// Queue creation stays outside the gateway surface; queues are expected
	// to exist already in normal operation.
	if _, err := sqsClient.CreateQueue(ctx, &awssqs.CreateQueueInput{
		QueueName: aws.String(queueName),
	}); err != nil {
		return "", err
	}

	sub, err := gw.Subscribe(ctx, gateway.SubscriptionRequest{
		Topic: awsgate.Ref{Name: topicName},
		Type:  gateway.DestinationSQS,
		Queue: awsgate.Ref{Name: queueName},
	})
	if err != nil {
		return "", err
	}
	log.Printf("subscribed %s to %s", sub.Endpoint, sub.TopicARN)

	return gw.Resolver().QueueURL(ctx, queueName)
}

func publishOrders(ctx context.Context, gw *gateway.Gateway) error {
	topicARN, err := gw.Resolver().TopicARN(ctx, topicName)
	if err != nil {
		return err
	}

	publish := func() error {
		_, err := gw.Publish(ctx, topicARN, gateway.PublishInput{
			Message: fmt.Sprintf(`{"order_id":%q}`, uuid.NewString()),
			Attributes: map[string]gateway.MessageAttribute{
				"trace_id": {DataType: "String", StringValue: uuid.NewString()},
			},
		})

		return err
	}

	if err := publish(); err != nil {
		return err
	}

	ticker := time.NewTicker(publishInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := publish(); err != nil {
				return err
			}
		}
	}
}

func consume(ctx context.Context, gw *gateway.Gateway, queueURL string) error {
	for {
		msgs, err := gw.Receive(ctx, queueURL, gateway.ReceiveInput{
			MaxMessages: 10,
			WaitSeconds: 20,
		})
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}

			return err
		}

		for _, msg := range msgs {
			bAtt, _ := json.Marshal(msg.Attributes)

			//nolint: forbidigo // need to print command line to show result
			fmt.Printf("\t - attributes: %s\n", string(bAtt))
			//nolint: forbidigo // need to print command line to show result
			fmt.Printf("\t - body: %s\n", msg.Body)

			if err := gw.Delete(ctx, queueURL, msg.ReceiptHandle); err != nil {
				return err
			}
		}
	}
}
