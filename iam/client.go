package iam

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/client"
	"github.com/aws/aws-sdk-go/service/iam"
	"github.com/aws/aws-sdk-go/service/iam/iamiface"
	"github.com/aws/aws-sdk-go/service/sts"
	"github.com/aws/aws-sdk-go/service/sts/stsiface"

	"travelassist/lib/timer"
)

var ErrRoleNotFound = errors.New("role not found")

type Statement struct {
	Effect    string            `json:"Effect"`
	Principal map[string]string `json:"Principal"`
	Action    string            `json:"Action"`
}

type PolicyDocument struct {
	Version   string      `json:"Version"`
	Statement []Statement `json:"Statement"`
}

// AssumeRolePolicy lets the given service principal assume the role.
func AssumeRolePolicy(service string) PolicyDocument {
	return PolicyDocument{
		Version: "2012-10-17",
		Statement: []Statement{{
			Effect:    "Allow",
			Principal: map[string]string{"Service": service},
			Action:    "sts:AssumeRole",
		}},
	}
}

type Identity struct {
	Account string
	Arn     string
}

type Client struct {
	iamClient iamiface.IAMAPI
	stsClient stsiface.STSAPI
}

func NewClient(sess client.ConfigProvider) Client {
	return NewClientWithAPI(iam.New(sess), sts.New(sess))
}

func NewClientWithAPI(iamClient iamiface.IAMAPI, stsClient stsiface.STSAPI) Client {
	return Client{
		iamClient: iamClient,
		stsClient: stsClient,
	}
}

// GetRoleArn returns ErrRoleNotFound if no role with the name exists.
func (c Client) GetRoleArn(ctx context.Context, name string) (string, error) {
	defer timer.Start("iam.get_role").Stop()
	out, err := c.iamClient.GetRoleWithContext(ctx, &iam.GetRoleInput{
		RoleName: aws.String(name),
	})
	if err != nil {
		if e, ok := err.(awserr.Error); ok && e.Code() == iam.ErrCodeNoSuchEntityException {
			return "", fmt.Errorf("%s: %w", name, ErrRoleNotFound)
		}
		return "", fmt.Errorf("failed to get role '%s': %w", name, err)
	}
	return aws.StringValue(out.Role.Arn), nil
}

func (c Client) CreateRole(ctx context.Context, name, description string, trust PolicyDocument) (string, error) {
	defer timer.Start("iam.create_role").Stop()
	doc, err := json.Marshal(trust)
	if err != nil {
		return "", fmt.Errorf("failed to marshal trust policy: %w", err)
	}
	out, err := c.iamClient.CreateRoleWithContext(ctx, &iam.CreateRoleInput{
		RoleName:                 aws.String(name),
		AssumeRolePolicyDocument: aws.String(string(doc)),
		Description:              aws.String(description),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create role '%s': %w", name, err)
	}
	return aws.StringValue(out.Role.Arn), nil
}

func (c Client) AttachRolePolicy(ctx context.Context, name, policyArn string) error {
	defer timer.Start("iam.attach_role_policy").Stop()
	_, err := c.iamClient.AttachRolePolicyWithContext(ctx, &iam.AttachRolePolicyInput{
		RoleName:  aws.String(name),
		PolicyArn: aws.String(policyArn),
	})
	if err != nil {
		return fmt.Errorf("failed to attach policy '%s' to role '%s': %w", policyArn, name, err)
	}
	return nil
}

// CallerIdentity checks that the ambient credentials resolve to a principal.
func (c Client) CallerIdentity(ctx context.Context) (Identity, error) {
	out, err := c.stsClient.GetCallerIdentityWithContext(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return Identity{}, fmt.Errorf("failed to get caller identity: %w", err)
	}
	return Identity{
		Account: aws.StringValue(out.Account),
		Arn:     aws.StringValue(out.Arn),
	}, nil
}
