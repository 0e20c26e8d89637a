package sagemaker

import (
	"time"
)

const (
	// VariantName is the only production variant every endpoint config carries.
	VariantName = "AllTraffic"

	DefaultInstanceType  = "ml.t2.medium"
	DefaultInstanceCount = 1

	DefaultServerlessMemoryMB       = 4096
	DefaultServerlessMaxConcurrency = 10
)

type EndpointStatus string

const (
	StatusCreating       EndpointStatus = "Creating"
	StatusUpdating       EndpointStatus = "Updating"
	StatusSystemUpdating EndpointStatus = "SystemUpdating"
	StatusRollingBack    EndpointStatus = "RollingBack"
	StatusInService      EndpointStatus = "InService"
	StatusFailed         EndpointStatus = "Failed"
	StatusOutOfService   EndpointStatus = "OutOfService"
	StatusDeleting       EndpointStatus = "Deleting"
)

// InProgress reports whether the provider is still working on the endpoint.
func (s EndpointStatus) InProgress() bool {
	return s == StatusCreating || s == StatusUpdating
}

type FrameworkVersions struct {
	Transformers string
	PyTorch      string
	Python       string
}

// ModelDescriptor is the record of model identity, versions and environment
// submitted to the deploy call. It is built fresh on every run.
type ModelDescriptor struct {
	ModelID  string
	Task     string
	Versions FrameworkVersions
	Env      map[string]string
	// ModelData is an optional s3:// URL of a packaged model artifact.
	ModelData string
}

// HostingConfig is either InstanceHosting or ServerlessHosting.
type HostingConfig interface {
	hosting()
	Describe() string
}

type InstanceHosting struct {
	InstanceType  string
	InstanceCount uint
}

type ServerlessHosting struct {
	MemorySizeMB   uint
	MaxConcurrency uint
}

var _ HostingConfig = InstanceHosting{}
var _ HostingConfig = ServerlessHosting{}

func (InstanceHosting) hosting()   {}
func (ServerlessHosting) hosting() {}

func (ih InstanceHosting) Describe() string {
	return ih.InstanceType
}

func (sh ServerlessHosting) Describe() string {
	return "serverless"
}

type Tag struct {
	Key   string
	Value string
}

type Endpoint struct {
	Name             string
	ConfigName       string
	Status           EndpointStatus
	FailureReason    string
	CreationTime     time.Time
	LastModifiedTime time.Time
}

type DeployRequest struct {
	EndpointName string
	RoleArn      string
	Descriptor   ModelDescriptor
	Hosting      HostingConfig
	Tags         []Tag
}

type ExecutionRole struct {
	Name      string
	Arn       string
	PolicyArn string
}
