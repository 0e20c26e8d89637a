//go:build sagemaker

package sagemaker

import (
	"context"
	"os"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func getTestClient(t *testing.T) SMClient {
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "us-east-1"
	}
	sess, err := session.NewSessionWithOptions(session.Options{
		Config:            aws.Config{Region: aws.String(region), CredentialsChainVerboseErrors: aws.Bool(true)},
		SharedConfigState: session.SharedConfigEnable,
	})
	assert.NoError(t, err)
	return NewClient(SagemakerArgs{}, region, sess, zap.NewNop())
}

func TestIntegrationListEndpoints(t *testing.T) {
	c := getTestClient(t)
	_, err := c.ListEndpoints(context.Background())
	assert.NoError(t, err)
}

func TestIntegrationEndpointExists(t *testing.T) {
	c := getTestClient(t)
	exists, err := c.EndpointExists(context.Background(), "my-non-existing-endpoint")
	assert.NoError(t, err)
	assert.False(t, exists)
}
