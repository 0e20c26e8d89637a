package deployment

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	lib "travelassist/lib/sagemaker"
	"travelassist/test"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	tr, fakes := test.Tier()
	endpoints, err := List(context.Background(), tr)
	require.NoError(t, err)
	assert.Empty(t, endpoints)
	assert.Contains(t, fakes.Out.String(), "No endpoints found")

	tr, fakes = test.Tier()
	created := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	fakes.SageMaker.AddEndpoint("travel-assistant-endpoint", "InService", created)
	fakes.SageMaker.AddEndpoint("travel-assistant-serverless", "Creating", created.Add(time.Hour))
	fakes.SageMaker.PageSize = 1

	endpoints, err = List(context.Background(), tr)
	require.NoError(t, err)
	require.Len(t, endpoints, 2)
	assert.Equal(t, "travel-assistant-serverless", endpoints[0].Name)

	out := fakes.Out.String()
	assert.Contains(t, out, "📍 Existing SageMaker Endpoints:")
	assert.Contains(t, out, "   Name: travel-assistant-endpoint\n   Status: InService\n   Created: 2024-01-15 10:00:00 UTC\n")
	assert.Contains(t, out, "   Status: Creating\n")
	assert.Equal(t, 3, strings.Count(out, strings.Repeat("-", 60)))
}

func TestList_Error(t *testing.T) {
	tr, fakes := test.Tier()
	fakes.SageMaker.ListErr = errors.New("AccessDeniedException")
	_, err := List(context.Background(), tr)
	assert.ErrorIs(t, err, ErrList)
	assert.Equal(t, 8, ExitCode(err))
	assert.Contains(t, fakes.Out.String(), "Error listing endpoints")
}

func TestStatus(t *testing.T) {
	scenarios := []struct {
		status   string
		expected string
	}{
		{"InService", "✓ Endpoint is ready for inference!"},
		{"Creating", "⏳ Endpoint is being deployed..."},
		{"Updating", "⏳ Endpoint is being deployed..."},
		{"Failed", "Endpoint status: Failed"},
		{"RollingBack", "Endpoint status: RollingBack"},
	}
	for _, scenario := range scenarios {
		t.Run(scenario.status, func(t *testing.T) {
			tr, fakes := test.Tier()
			fakes.SageMaker.AddEndpoint("demo-ep", scenario.status, time.Now())

			status, err := Status(context.Background(), tr, "demo-ep")
			require.NoError(t, err)
			assert.Equal(t, lib.EndpointStatus(scenario.status), status)
			out := fakes.Out.String()
			assert.Contains(t, out, "📊 Endpoint 'demo-ep' status: "+scenario.status)
			assert.Contains(t, out, scenario.expected)
		})
	}
}

func TestStatus_NotFound(t *testing.T) {
	tr, fakes := test.Tier()
	_, err := Status(context.Background(), tr, "missing-ep")
	assert.ErrorIs(t, err, ErrEndpointNotFound)
	assert.Equal(t, 7, ExitCode(err))
	assert.Contains(t, fakes.Out.String(), "❌ Endpoint 'missing-ep' not found")
	assert.NotContains(t, fakes.Out.String(), "Error checking endpoint")
}

func TestStatus_OtherError(t *testing.T) {
	tr, fakes := test.Tier()
	fakes.SageMaker.DescribeErr = errors.New("ThrottlingException: Rate exceeded")
	_, err := Status(context.Background(), tr, "demo-ep")
	assert.ErrorIs(t, err, ErrStatus)
	assert.Equal(t, 9, ExitCode(err))
	assert.Contains(t, fakes.Out.String(), "❌ Error checking endpoint")
	assert.NotContains(t, fakes.Out.String(), "not found")
}

func TestDelete(t *testing.T) {
	tr, fakes := test.Tier()
	fakes.SageMaker.AddEndpoint("demo-ep", "InService", time.Now())

	require.NoError(t, Delete(context.Background(), tr, "demo-ep"))
	assert.Equal(t, []string{"demo-ep"}, fakes.SageMaker.DeletedEndpoints)
	assert.Equal(t, []string{"demo-ep"}, fakes.SageMaker.DeletedConfigs)
	assert.Equal(t, []string{"demo-ep"}, fakes.SageMaker.DeletedModels)
	assert.NotContains(t, fakes.SageMaker.Endpoints, "demo-ep")

	out := fakes.Out.String()
	assert.Contains(t, out, "Deleting endpoint: demo-ep")
	assert.Contains(t, out, "✓ Endpoint deletion initiated")
	assert.Contains(t, out, "✓ Endpoint config deleted")
}

func TestDelete_ConfigFailureIgnored(t *testing.T) {
	tr, fakes := test.Tier()
	fakes.SageMaker.AddEndpoint("demo-ep", "InService", time.Now())
	fakes.SageMaker.DeleteEndpointConfigErr = errors.New("ValidationException: Could not find endpoint configuration")
	fakes.SageMaker.DeleteModelErr = errors.New("ValidationException: Could not find model")

	err := Delete(context.Background(), tr, "demo-ep")
	assert.NoError(t, err)
	assert.Equal(t, []string{"demo-ep"}, fakes.SageMaker.DeletedConfigs)
	assert.Equal(t, []string{"demo-ep"}, fakes.SageMaker.DeletedModels)
	assert.NotContains(t, fakes.Out.String(), "Endpoint config deleted")
}

func TestDelete_NotFound(t *testing.T) {
	tr, fakes := test.Tier()
	err := Delete(context.Background(), tr, "missing-ep")
	assert.ErrorIs(t, err, ErrEndpointNotFound)
	assert.Equal(t, 7, ExitCode(err))
	assert.Empty(t, fakes.SageMaker.DeletedConfigs)
	assert.Contains(t, fakes.Out.String(), "Endpoint 'missing-ep' not found")
}

func TestDelete_Error(t *testing.T) {
	tr, fakes := test.Tier()
	fakes.SageMaker.DeleteEndpointErr = errors.New("AccessDeniedException")
	err := Delete(context.Background(), tr, "demo-ep")
	assert.ErrorIs(t, err, ErrDelete)
	assert.Equal(t, 10, ExitCode(err))
	assert.Empty(t, fakes.SageMaker.DeletedConfigs)
}
