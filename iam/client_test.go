package iam

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelassist/test/awsfake"
)

func TestGetRoleArn(t *testing.T) {
	fake := awsfake.NewIAM()
	c := NewClientWithAPI(fake, &awsfake.STS{})
	ctx := context.Background()

	_, err := c.GetRoleArn(ctx, "missing")
	assert.True(t, errors.Is(err, ErrRoleNotFound))

	fake.Roles["present"] = awsfake.RoleArn("present")
	arn, err := c.GetRoleArn(ctx, "present")
	require.NoError(t, err)
	assert.Equal(t, "arn:aws:iam::123456789012:role/present", arn)

	fake.GetRoleErr = awserr.New("AccessDenied", "no", nil)
	_, err = c.GetRoleArn(ctx, "present")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrRoleNotFound))
}

func TestCreateRole(t *testing.T) {
	fake := awsfake.NewIAM()
	c := NewClientWithAPI(fake, &awsfake.STS{})

	arn, err := c.CreateRole(context.Background(), "r", "desc", AssumeRolePolicy("sagemaker.amazonaws.com"))
	require.NoError(t, err)
	assert.Equal(t, awsfake.RoleArn("r"), arn)
	require.Len(t, fake.CreateCalls, 1)

	var doc PolicyDocument
	require.NoError(t, json.Unmarshal([]byte(aws.StringValue(fake.CreateCalls[0].AssumeRolePolicyDocument)), &doc))
	assert.Equal(t, "2012-10-17", doc.Version)
	require.Len(t, doc.Statement, 1)
	assert.Equal(t, "sagemaker.amazonaws.com", doc.Statement[0].Principal["Service"])
	assert.Equal(t, "sts:AssumeRole", doc.Statement[0].Action)
	assert.Equal(t, "desc", aws.StringValue(fake.CreateCalls[0].Description))
}

func TestCallerIdentity(t *testing.T) {
	c := NewClientWithAPI(awsfake.NewIAM(), &awsfake.STS{})
	id, err := c.CallerIdentity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, awsfake.Account, id.Account)

	c = NewClientWithAPI(awsfake.NewIAM(), &awsfake.STS{Err: errors.New("no credentials")})
	_, err = c.CallerIdentity(context.Background())
	assert.Error(t, err)
}
