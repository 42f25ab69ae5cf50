// Package testhelpers spins up the LocalStack container backing the
// integration tests and the runnable example.
package testhelpers

import (
	"context"
	"net"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/localstack"

	"github.com/awsgate/awsgate/config"
)

// LocalStackContainer wraps a running LocalStack instance together with a
// façade configuration pointing every service at it.
type LocalStackContainer struct {
	Config config.Config

	*localstack.LocalStackContainer
}

// CreateLocalStackContainer starts LocalStack with the three target services
// enabled and returns a configuration resolving all of them to the mapped
// edge port.
func CreateLocalStackContainer(ctx context.Context) (*LocalStackContainer, error) {
	lsContainer, err := localstack.Run(ctx, "localstack/localstack:3.0.2",
		testcontainers.CustomizeRequest(testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Env: map[string]string{"SERVICES": "sns,sqs,dynamodb"},
			},
		}),
	)
	if err != nil {
		return nil, err
	}

	host, err := lsContainer.Host(ctx)
	if err != nil {
		return nil, err
	}

	port, err := lsContainer.MappedPort(ctx, nat.Port("4566/tcp"))
	if err != nil {
		return nil, err
	}

	endpoint := "http://" + net.JoinHostPort(host, port.Port())

	cfg := config.Config{
		ServerAddress:    ":0",
		Region:           "us-east-1",
		AccessKey:        "test",
		SecretKey:        "test",
		SNSEndpoint:      endpoint,
		SQSEndpoint:      endpoint,
		DynamoDBEndpoint: endpoint,
		LogLevel:         "debug",
	}

	return &LocalStackContainer{
		cfg,
		lsContainer,
	}, nil
}
