// Package awsfake holds in-memory stand-ins for the AWS service clients the
// orchestrator talks to. Each fake embeds the SDK interface so that calling
// an operation it does not implement panics loudly.
package awsfake

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/iam"
	"github.com/aws/aws-sdk-go/service/iam/iamiface"
	"github.com/aws/aws-sdk-go/service/sts"
	"github.com/aws/aws-sdk-go/service/sts/stsiface"
)

const Account = "123456789012"

type IAM struct {
	iamiface.IAMAPI

	// Roles maps role name to ARN.
	Roles map[string]string

	GetRoleErr    error
	CreateRoleErr error
	AttachErr     error

	GetRoleCalls []*iam.GetRoleInput
	CreateCalls  []*iam.CreateRoleInput
	AttachCalls  []*iam.AttachRolePolicyInput
}

func NewIAM() *IAM {
	return &IAM{Roles: map[string]string{}}
}

func RoleArn(name string) string {
	return fmt.Sprintf("arn:aws:iam::%s:role/%s", Account, name)
}

func (f *IAM) GetRoleWithContext(_ aws.Context, in *iam.GetRoleInput, _ ...request.Option) (*iam.GetRoleOutput, error) {
	f.GetRoleCalls = append(f.GetRoleCalls, in)
	if f.GetRoleErr != nil {
		return nil, f.GetRoleErr
	}
	arn, ok := f.Roles[aws.StringValue(in.RoleName)]
	if !ok {
		return nil, awserr.New(iam.ErrCodeNoSuchEntityException,
			fmt.Sprintf("The role with name %s cannot be found.", aws.StringValue(in.RoleName)), nil)
	}
	return &iam.GetRoleOutput{Role: &iam.Role{RoleName: in.RoleName, Arn: aws.String(arn)}}, nil
}

func (f *IAM) CreateRoleWithContext(_ aws.Context, in *iam.CreateRoleInput, _ ...request.Option) (*iam.CreateRoleOutput, error) {
	f.CreateCalls = append(f.CreateCalls, in)
	if f.CreateRoleErr != nil {
		return nil, f.CreateRoleErr
	}
	name := aws.StringValue(in.RoleName)
	if _, ok := f.Roles[name]; ok {
		return nil, awserr.New(iam.ErrCodeEntityAlreadyExistsException, "Role with name "+name+" already exists.", nil)
	}
	arn := RoleArn(name)
	f.Roles[name] = arn
	return &iam.CreateRoleOutput{Role: &iam.Role{RoleName: in.RoleName, Arn: aws.String(arn)}}, nil
}

func (f *IAM) AttachRolePolicyWithContext(_ aws.Context, in *iam.AttachRolePolicyInput, _ ...request.Option) (*iam.AttachRolePolicyOutput, error) {
	f.AttachCalls = append(f.AttachCalls, in)
	if f.AttachErr != nil {
		return nil, f.AttachErr
	}
	return &iam.AttachRolePolicyOutput{}, nil
}

type STS struct {
	stsiface.STSAPI

	Err error
}

func (f *STS) GetCallerIdentityWithContext(_ aws.Context, _ *sts.GetCallerIdentityInput, _ ...request.Option) (*sts.GetCallerIdentityOutput, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return &sts.GetCallerIdentityOutput{
		Account: aws.String(Account),
		Arn:     aws.String(fmt.Sprintf("arn:aws:iam::%s:user/deployer", Account)),
		UserId:  aws.String("AIDAEXAMPLE"),
	}, nil
}
