package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false)

	log.Debug().Msg("hidden")
	log.Info().Str("build_env", "production").Msg("visible")

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, `"build_env":"production"`)
	require.Contains(t, out, `"caller"`)
}

func TestNew_Dev(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, true)

	log.Debug().Msg("shown in dev")

	require.Contains(t, buf.String(), "shown in dev")
	require.NotContains(t, buf.String(), `"message"`)
}
