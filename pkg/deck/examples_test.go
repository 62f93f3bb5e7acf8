package deck_test

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edp1096/transpice/pkg/analysis"
	"github.com/edp1096/transpice/pkg/deck"
)

func TestExampleDecksRun(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "examples", "decks", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			ckt, err := deck.LoadCircuit(path)
			require.NoError(t, err)

			res, err := analysis.Run(ckt, analysis.Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
			require.NoError(t, err)
			assert.Len(t, res.Points, ckt.Analysis.Points())
		})
	}
}

func TestExampleDivider(t *testing.T) {
	ckt, err := deck.LoadCircuit(filepath.Join("..", "..", "examples", "decks", "divider.yaml"))
	require.NoError(t, err)

	res, err := analysis.Run(ckt, analysis.Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	require.NoError(t, err)
	v2, ok := res.Voltage("2")
	require.True(t, ok)
	assert.InDelta(t, 5.0, v2[0], 1e-9)
}
