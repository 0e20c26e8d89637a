package deployment

import (
	"context"
	"fmt"

	lib "travelassist/lib/sagemaker"
	"travelassist/lib/timer"
	"travelassist/lib/tracer"
	"travelassist/tier"

	"go.uber.org/zap"
)

const responsePreview = 200

type SmokeResult struct {
	Passed int
	Failed int
}

// SmokeTest sends each payload to the endpoint in order and prints the
// truncated responses. A failing payload does not stop the rest; the test as
// a whole fails only if no payload got an answer.
func SmokeTest(ctx context.Context, tier tier.Tier, endpointName string, suite []lib.Payload) (result SmokeResult, err error) {
	span := tracer.StartSpan(ctx, "deployment.smoke_test")
	span.SetStringAttribute("endpoint", endpointName)
	ctx = span.Context()
	defer func() { span.End(err) }()

	p := tier.Printer
	p.Info("\n🧪 Testing endpoint...")
	for i, payload := range suite {
		p.Info("\n🔍 Test %d: %s", i+1, payload.Inputs)
		resp, err := tier.SagemakerClient.Predict(ctx, &lib.PredictRequest{
			EndpointName: endpointName,
			Payload:      payload,
		})
		if err != nil {
			result.Failed++
			p.Failure("Test %d failed: %v", i+1, err)
			tier.Logger.Info("smoke test request failed", zap.String("endpoint", endpointName), zap.Int("test", i+1), zap.Error(err))
			continue
		}
		result.Passed++
		p.Success("Response: %s", lib.Truncate(resp.Text, responsePreview))
	}
	timer.Mark(ctx, "smoke_test_done")

	if len(suite) > 0 && result.Passed == 0 {
		return result, Wrap(ErrSmokeTest, fmt.Errorf("all %d requests to '%s' failed", len(suite), endpointName))
	}
	return result, nil
}
