package simerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelMatching(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		exit     int
	}{
		{"config", Config("waveform.Resolve", "period %g too short", 1.0), ErrConfig, ExitConfig},
		{"unimplemented", Unimplemented("companion.Resolve", "vtrigger"), ErrUnimplemented, ExitUnimplemented},
		{"solve", Solve("analysis.Transient", 3, 0.3, errors.New("zero pivot")), ErrSolve, ExitSolve},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("run: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.sentinel)
			assert.Equal(t, tt.exit, ExitCode(wrapped))
		})
	}
}

func TestExitCodeFallbacks(t *testing.T) {
	assert.Equal(t, ExitSuccess, ExitCode(nil))
	assert.Equal(t, ExitFailure, ExitCode(errors.New("boom")))
}

func TestErrorMessage(t *testing.T) {
	err := Solve("analysis.Transient", 2, 0.5, errors.New("zero pivot at step 1"))
	assert.Equal(t, "SOLVE: analysis.Transient at step 2 (t=0.5): zero pivot at step 1", err.Error())

	cfg := Config("circuit.AddResistor", "resistance must be positive")
	assert.Equal(t, "CONFIG: circuit.AddResistor: resistance must be positive", cfg.Error())
}

func TestWithComponent(t *testing.T) {
	orig := Config("waveform.Resolve", "bad")
	err := WithComponent(orig, "V1")

	var se *Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "V1", se.Component)
	assert.Empty(t, orig.Component)
	assert.ErrorIs(t, err, ErrConfig)

	plain := errors.New("plain")
	assert.Same(t, plain, WithComponent(plain, "V1"))
}
