package deployment

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(errors.New("boom")))
	assert.Equal(t, 2, ExitCode(Wrap(ErrConfig, errors.New("missing fields: MODEL_PRESET"))))
	assert.Equal(t, 5, ExitCode(fmt.Errorf("outer: %w", Wrap(ErrDeployment, errors.New("boom")))))
	assert.Equal(t, 1, ExitCode(context.Canceled))
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(ErrDelete, nil))

	inner := fmt.Errorf("endpoint 'demo-ep': %w", context.DeadlineExceeded)
	err := Wrap(ErrDeployment, inner)
	assert.ErrorIs(t, err, ErrDeployment)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, ErrDelete)
	assert.Equal(t, "deployment failed: endpoint 'demo-ep': context deadline exceeded", err.Error())
}
