package console

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestPrinter(t *testing.T) {
	color.NoColor = true
	buf := &bytes.Buffer{}
	p := NewPrinter(buf)

	p.Banner("Deploying %s", "demo-ep")
	p.Success("Using existing role: %s", "arn")
	p.Failure("Deployment failed: %v", "boom")
	p.Warn("Endpoint status: %s", "Failed")
	p.Field("Name", "demo-ep")
	p.Hints("Troubleshooting:", "Check AWS credentials are configured", "Check CloudWatch logs for details")

	out := buf.String()
	assert.Contains(t, out, "Deploying demo-ep\n")
	assert.Contains(t, out, "✓ Using existing role: arn\n")
	assert.Contains(t, out, "❌ Deployment failed: boom\n")
	assert.Contains(t, out, "Endpoint status: Failed\n")
	assert.Contains(t, out, "   Name: demo-ep\n")
	assert.Contains(t, out, "1. Check AWS credentials are configured\n2. Check CloudWatch logs for details\n")
}
