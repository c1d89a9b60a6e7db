package ldbstore_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cfr "github.com/equilibre-games/go-cfr"
	"github.com/equilibre-games/go-cfr/kuhn"
	"github.com/equilibre-games/go-cfr/ldbstore"
)

func TestStore_SaveLoadSolver(t *testing.T) {
	game := kuhn.NewGame()
	params := cfr.Params{
		AlternatingUpdates: true,
		RegretMatchingPlus: true,
		LinearAveraging:    true,
		Seed:               11,
	}

	solver := cfr.New(game, params)
	for i := 0; i < 100; i++ {
		solver.RunIteration()
	}

	path := filepath.Join(t.TempDir(), "kuhn.ldb")
	store, err := ldbstore.Open(path, nil)
	require.NoError(t, err)
	require.NoError(t, store.SaveSolver(solver))
	require.NoError(t, store.Close())

	store, err = ldbstore.Open(path, nil)
	require.NoError(t, err)
	defer store.Close()

	restored, err := store.LoadSolver(game)
	require.NoError(t, err)
	assert.Equal(t, solver.Iter(), restored.Iter())
	assert.Equal(t, solver.NumInfoStates(), restored.NumInfoStates())
	assert.Equal(t, params, restored.Params())

	var origBuf, restoredBuf bytes.Buffer
	require.NoError(t, solver.MarshalTo(&origBuf))
	require.NoError(t, restored.MarshalTo(&restoredBuf))
	assert.True(t, bytes.Equal(origBuf.Bytes(), restoredBuf.Bytes()),
		"snapshot must preserve vector lengths and ordering exactly")
}

func TestStore_GetNode(t *testing.T) {
	game := kuhn.NewGame()
	solver := cfr.New(game, cfr.Params{})
	for i := 0; i < 10; i++ {
		solver.RunIteration()
	}

	path := filepath.Join(t.TempDir(), "kuhn.ldb")
	store, err := ldbstore.Open(path, nil)
	require.NoError(t, err)
	defer store.Close()
	require.NoError(t, store.SaveSolver(solver))

	node, err := store.GetNode("J-rr")
	require.NoError(t, err)
	assert.Equal(t, 2, node.NumActions())

	_, err = store.GetNode("no-such-infoset")
	assert.Error(t, err)
}
