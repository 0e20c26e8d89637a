package role

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"travelassist/test"
	"travelassist/test/awsfake"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_ExistingRole(t *testing.T) {
	tier, fakes := test.Tier()
	fakes.IAM.Roles[Name] = awsfake.RoleArn(Name)

	role, err := Resolve(context.Background(), tier)
	require.NoError(t, err)
	assert.Equal(t, awsfake.RoleArn(Name), role.Arn)
	assert.Empty(t, fakes.IAM.CreateCalls)
	assert.Empty(t, fakes.IAM.AttachCalls)
	assert.Contains(t, fakes.Out.String(), "✓ Using existing role: "+awsfake.RoleArn(Name))
}

func TestResolve_CreatesMissingRole(t *testing.T) {
	tier, fakes := test.Tier()

	done := make(chan struct{})
	go func() {
		defer close(done)
		role, err := Resolve(context.Background(), tier)
		assert.NoError(t, err)
		assert.Equal(t, awsfake.RoleArn(Name), role.Arn)
		assert.Equal(t, PolicyArn, role.PolicyArn)
	}()
	test.AdvanceUntil(fakes.Clock, time.Second, done)

	require.Len(t, fakes.IAM.CreateCalls, 1)
	require.Len(t, fakes.IAM.AttachCalls, 1)
	assert.Equal(t, Description, aws.StringValue(fakes.IAM.CreateCalls[0].Description))
	assert.Equal(t, PolicyArn, aws.StringValue(fakes.IAM.AttachCalls[0].PolicyArn))

	var trust map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(aws.StringValue(fakes.IAM.CreateCalls[0].AssumeRolePolicyDocument)), &trust))
	assert.Equal(t, "2012-10-17", trust["Version"])
	assert.Contains(t, aws.StringValue(fakes.IAM.CreateCalls[0].AssumeRolePolicyDocument), ServicePrincipal)

	out := fakes.Out.String()
	assert.Contains(t, out, "Creating new IAM role: "+Name)
	assert.Contains(t, out, "Waiting for role to propagate...")
	assert.Contains(t, out, "✓ Created role: "+awsfake.RoleArn(Name))
}

func TestResolve_ConfiguredArn(t *testing.T) {
	args := test.DefaultArgs()
	args.SagemakerExecutionRole = "arn:aws:iam::999999999999:role/custom"
	tier, fakes := test.TierWithArgs(args)

	role, err := Resolve(context.Background(), tier)
	require.NoError(t, err)
	assert.Equal(t, "arn:aws:iam::999999999999:role/custom", role.Arn)
	assert.Empty(t, fakes.IAM.GetRoleCalls)
	assert.Empty(t, fakes.IAM.CreateCalls)
}

func TestResolve_Errors(t *testing.T) {
	tier, fakes := test.Tier()
	fakes.IAM.GetRoleErr = errors.New("AccessDenied")
	_, err := Resolve(context.Background(), tier)
	assert.Error(t, err)
	assert.Empty(t, fakes.IAM.CreateCalls)

	tier, fakes = test.Tier()
	fakes.IAM.CreateRoleErr = errors.New("LimitExceeded")
	_, err = Resolve(context.Background(), tier)
	assert.Error(t, err)
	assert.Empty(t, fakes.IAM.AttachCalls)

	tier, fakes = test.Tier()
	fakes.IAM.AttachErr = errors.New("AccessDenied")
	_, err = Resolve(context.Background(), tier)
	assert.Error(t, err)
	assert.Len(t, fakes.IAM.CreateCalls, 1)
}

func TestResolve_CancelledDuringPropagation(t *testing.T) {
	tier, _ := test.Tier()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() {
		_, err := Resolve(ctx, tier)
		done <- err
	}()
	cancel()
	err := <-done
	assert.ErrorIs(t, err, context.Canceled)
}
