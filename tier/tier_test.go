package tier

import (
	"bytes"
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"travelassist/modelstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestValid(t *testing.T) {
	args := TierArgs{Model: "blenderbot"}
	assert.NoError(t, args.Valid())

	assert.EqualError(t, TierArgs{}.Valid(), "missing fields: MODEL_PRESET")

	args.Timeout = -time.Second
	assert.Error(t, args.Valid())

	args = TierArgs{
		Model:          "dialogpt",
		ModelStoreArgs: modelstore.ModelStoreArgs{ModelArchive: "model.tar.gz"},
	}
	assert.Error(t, args.Valid())
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(true)
	assert.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = NewLogger(false)
	assert.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
}

func TestCreateFromArgs_LogsOnlyThroughZap(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("AWS_CONFIG_FILE", filepath.Join(dir, "config"))
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", filepath.Join(dir, "credentials"))
	t.Setenv("AWS_ACCESS_KEY_ID", "AKIDEXAMPLE")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "secret")
	var stdlog bytes.Buffer
	log.SetOutput(&stdlog)
	defer log.SetOutput(os.Stderr)

	// cancelled so the credential check fails without reaching AWS
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := CreateFromArgs(ctx, &TierArgs{Model: "blenderbot", Region: "us-east-1"}, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AWS credentials are not usable")
	assert.Empty(t, stdlog.String())
}
