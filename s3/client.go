package s3

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/client"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/s3/s3manager/s3manageriface"

	"travelassist/lib/timer"
)

type Client struct {
	uploader s3manageriface.UploaderAPI
}

func NewClient(sess client.ConfigProvider) Client {
	return NewClientWithAPI(s3manager.NewUploader(sess))
}

func NewClientWithAPI(uploader s3manageriface.UploaderAPI) Client {
	return Client{
		uploader: uploader,
	}
}

func (c Client) Upload(ctx context.Context, file io.Reader, fileName, bucketName string) error {
	defer timer.Start("s3.upload").Stop()
	input := s3manager.UploadInput{
		Body:   file,
		Bucket: aws.String(bucketName),
		Key:    aws.String(fileName),
	}
	_, err := c.uploader.UploadWithContext(ctx, &input)
	if err != nil {
		return fmt.Errorf("failed to upload '%s' to bucket '%s': %w", fileName, bucketName, err)
	}
	return nil
}
