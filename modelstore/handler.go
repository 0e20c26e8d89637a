package modelstore

import (
	"context"
	"fmt"
	"os"
	"strings"

	"travelassist/s3"
)

const archiveName = "model.tar.gz"

type ModelStoreArgs struct {
	ModelData          string `arg:"--model-data,env:MODEL_DATA" help:"s3:// URL of an already packaged model artifact"`
	ModelArchive       string `arg:"--model-archive,env:MODEL_ARCHIVE" help:"local model.tar.gz to upload before deploying"`
	ModelStoreS3Bucket string `arg:"--artifact-bucket,env:ARTIFACT_BUCKET" help:"S3 bucket the model archive is uploaded to"`
}

func (args ModelStoreArgs) Valid() error {
	if args.ModelData != "" && args.ModelArchive != "" {
		return fmt.Errorf("--model-data and --model-archive are mutually exclusive")
	}
	if args.ModelData != "" && !strings.HasPrefix(args.ModelData, "s3://") {
		return fmt.Errorf("--model-data must be an s3:// URL, got '%s'", args.ModelData)
	}
	if args.ModelArchive != "" && args.ModelStoreS3Bucket == "" {
		return fmt.Errorf("--model-archive requires --artifact-bucket")
	}
	return nil
}

// ModelStore places optional model artifacts in S3 so that the container can
// load them instead of pulling from the Hugging Face hub.
type ModelStore struct {
	args   ModelStoreArgs
	client s3.Client
}

func NewModelStore(args ModelStoreArgs, client s3.Client) ModelStore {
	return ModelStore{
		args:   args,
		client: client,
	}
}

func (ms ModelStore) S3Bucket() string {
	return ms.args.ModelStoreS3Bucket
}

func (ms ModelStore) GetArtifactPath(endpointName string) string {
	return fmt.Sprintf("s3://%s/%s/%s", ms.S3Bucket(), endpointName, archiveName)
}

// Resolve returns the artifact URL to deploy with, uploading the local archive
// first if one was given. An empty string means no artifact.
func (ms ModelStore) Resolve(ctx context.Context, endpointName string) (string, error) {
	if ms.args.ModelData != "" {
		return ms.args.ModelData, nil
	}
	if ms.args.ModelArchive == "" {
		return "", nil
	}
	f, err := os.Open(ms.args.ModelArchive)
	if err != nil {
		return "", fmt.Errorf("failed to open model archive: %w", err)
	}
	defer f.Close()
	key := fmt.Sprintf("%s/%s", endpointName, archiveName)
	if err := ms.client.Upload(ctx, f, key, ms.S3Bucket()); err != nil {
		return "", err
	}
	return ms.GetArtifactPath(endpointName), nil
}
