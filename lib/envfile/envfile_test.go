package envfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsert_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, Upsert(path, map[string]string{"SAGEMAKER_ENDPOINT_NAME": "demo-ep"}))

	env, err := godotenv.Read(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"SAGEMAKER_ENDPOINT_NAME": "demo-ep"}, env)
}

func TestUpsert_KeepsOtherKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=4000\nSAGEMAKER_ENDPOINT_NAME=old\n"), 0o600))

	require.NoError(t, Upsert(path, map[string]string{
		"SAGEMAKER_ENDPOINT_NAME": "travel-assistant-endpoint",
		"AWS_REGION":              "us-east-1",
	}))

	env, err := godotenv.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "4000", env["PORT"])
	assert.Equal(t, "travel-assistant-endpoint", env["SAGEMAKER_ENDPOINT_NAME"])
	assert.Equal(t, "us-east-1", env["AWS_REGION"])
}
