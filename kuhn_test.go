package cfr_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cfr "github.com/equilibre-games/go-cfr"
	"github.com/equilibre-games/go-cfr/kuhn"
)

func TestKuhnPoker_SolverTracksAllInfoSets(t *testing.T) {
	solver := cfr.New(kuhn.NewGame(), cfr.Params{})
	assert.Equal(t, 12, solver.NumInfoStates())
}

func TestKuhnPoker_CFRPlusConvergence(t *testing.T) {
	game := kuhn.NewGame()
	solver := cfr.New(game, cfr.Params{
		AlternatingUpdates: true,
		RegretMatchingPlus: true,
		LinearAveraging:    true,
	})

	var early float32
	for i := 1; i <= 2000; i++ {
		solver.RunIteration()
		if i == 500 {
			early = cfr.Exploitability(game, solver.Finalize())
		}
	}

	avg := solver.Finalize()
	final := cfr.Exploitability(game, avg)
	assert.Less(t, final, float32(0.01), "CFR+ should drive exploitability toward zero")
	assert.LessOrEqual(t, final, early+1e-4, "exploitability should not grow with more iterations")

	// The equilibrium value of Kuhn poker is -1/18 for the first player.
	value := cfr.ExpectedValue(game, avg, 0)
	assert.InDelta(t, -1.0/18.0, value, 0.01)
}

func TestKuhnPoker_VanillaCFRConvergence(t *testing.T) {
	game := kuhn.NewGame()
	solver := cfr.New(game, cfr.Params{})
	for i := 0; i < 2000; i++ {
		solver.RunIteration()
	}

	avg := solver.Finalize()
	assert.Less(t, cfr.Exploitability(game, avg), float32(0.05))
	assert.InDelta(t, -1.0/18.0, cfr.ExpectedValue(game, avg, 0), 0.02)
}

func TestKuhnPoker_DeterministicAcrossRuns(t *testing.T) {
	run := func() []byte {
		solver := cfr.New(kuhn.NewGame(), cfr.Params{
			AlternatingUpdates: true,
			RegretMatchingPlus: true,
			LinearAveraging:    true,
			Seed:               7,
		})

		for i := 0; i < 200; i++ {
			solver.RunIteration()
		}

		var buf bytes.Buffer
		require.NoError(t, solver.MarshalTo(&buf))
		return buf.Bytes()
	}

	first := run()
	second := run()
	assert.True(t, bytes.Equal(first, second),
		"identical configurations should produce bit-identical node tables")
}
