package awsfake

import (
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/s3/s3manager/s3manageriface"
)

// Uploader stores uploaded objects keyed by "bucket/key".
type Uploader struct {
	s3manageriface.UploaderAPI

	Objects map[string][]byte
	Err     error
}

func NewUploader() *Uploader {
	return &Uploader{Objects: map[string][]byte{}}
}

func (f *Uploader) UploadWithContext(_ aws.Context, in *s3manager.UploadInput, _ ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("%s/%s", aws.StringValue(in.Bucket), aws.StringValue(in.Key))
	f.Objects[key] = data
	return &s3manager.UploadOutput{Location: "https://" + aws.StringValue(in.Bucket) + ".s3.amazonaws.com/" + aws.StringValue(in.Key)}, nil
}
