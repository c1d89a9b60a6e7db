package cfr_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cfr "github.com/equilibre-games/go-cfr"
	"github.com/equilibre-games/go-cfr/kuhn"
)

func TestMarshalTo_Deterministic(t *testing.T) {
	solver := cfr.New(kuhn.NewGame(), cfr.Params{AlternatingUpdates: true})
	for i := 0; i < 100; i++ {
		solver.RunIteration()
	}

	var first, second bytes.Buffer
	require.NoError(t, solver.MarshalTo(&first))
	require.NoError(t, solver.MarshalTo(&second))
	assert.True(t, bytes.Equal(first.Bytes(), second.Bytes()),
		"marshaling the same solver twice should be byte-identical")
}

func TestLoadSolver_RoundTrip(t *testing.T) {
	game := kuhn.NewGame()
	params := cfr.Params{
		AlternatingUpdates: true,
		RegretMatchingPlus: true,
		LinearAveraging:    true,
		Seed:               3,
	}

	solver := cfr.New(game, params)
	for i := 0; i < 100; i++ {
		solver.RunIteration()
	}

	var buf bytes.Buffer
	require.NoError(t, solver.MarshalTo(&buf))

	restored, err := cfr.LoadSolver(game, &buf)
	require.NoError(t, err)
	assert.Equal(t, solver.Iter(), restored.Iter())
	assert.Equal(t, solver.NumInfoStates(), restored.NumInfoStates())
	assert.Equal(t, params, restored.Params())

	// A reloaded solver must resume bit-identical to the original.
	for i := 0; i < 50; i++ {
		solver.RunIteration()
		restored.RunIteration()
	}

	var origBuf, restoredBuf bytes.Buffer
	require.NoError(t, solver.MarshalTo(&origBuf))
	require.NoError(t, restored.MarshalTo(&restoredBuf))
	assert.True(t, bytes.Equal(origBuf.Bytes(), restoredBuf.Bytes()))
}
