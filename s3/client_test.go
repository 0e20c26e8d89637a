package s3

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"travelassist/test/awsfake"
)

func TestUpload(t *testing.T) {
	fake := awsfake.NewUploader()
	c := NewClientWithAPI(fake)

	err := c.Upload(context.Background(), strings.NewReader("some random text"), "demo/model.tar.gz", "artifacts")
	assert.NoError(t, err)
	assert.Equal(t, []byte("some random text"), fake.Objects["artifacts/demo/model.tar.gz"])

	fake.Err = errors.New("access denied")
	err = c.Upload(context.Background(), strings.NewReader("x"), "f", "artifacts")
	assert.Error(t, err)
}
