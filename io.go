package cfr

import (
	"encoding/gob"
	"io"
	"math/rand"

	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/equilibre-games/go-cfr/internal/policy"
)

// MarshalTo serializes the solver's configuration, iteration counter and
// node table to w. Nodes are written in sorted key order so that output
// is deterministic. Vector lengths and per-node action ordering are
// preserved exactly, so a reloaded solver resumes bit-identical.
func (s *Solver) MarshalTo(w io.Writer) error {
	enc := gob.NewEncoder(w)
	if err := enc.Encode(s.params); err != nil {
		return errors.Wrap(err, "encoding params")
	}

	if err := enc.Encode(s.iter); err != nil {
		return errors.Wrap(err, "encoding iteration counter")
	}

	keys := maps.Keys(s.nodes)
	slices.Sort(keys)
	if err := enc.Encode(len(keys)); err != nil {
		return errors.Wrap(err, "encoding table size")
	}

	for _, key := range keys {
		if err := enc.Encode(key); err != nil {
			return errors.Wrapf(err, "encoding key %q", key)
		}

		if err := enc.Encode(s.nodes[key]); err != nil {
			return errors.Wrapf(err, "encoding node %q", key)
		}
	}

	return nil
}

// LoadSolver deserializes a solver previously written with MarshalTo.
// The given game must be the same game the solver was built for; the
// loaded node table replaces the one a fresh initialization would build.
func LoadSolver(game Game, r io.Reader) (*Solver, error) {
	dec := gob.NewDecoder(r)
	var params Params
	if err := dec.Decode(&params); err != nil {
		return nil, errors.Wrap(err, "decoding params")
	}

	var iter int
	if err := dec.Decode(&iter); err != nil {
		return nil, errors.Wrap(err, "decoding iteration counter")
	}

	var nNodes int
	if err := dec.Decode(&nNodes); err != nil {
		return nil, errors.Wrap(err, "decoding table size")
	}

	nodes := make(map[string]*policy.Node, nNodes)
	for i := 0; i < nNodes; i++ {
		var key string
		if err := dec.Decode(&key); err != nil {
			return nil, errors.Wrap(err, "decoding key")
		}

		var n policy.Node
		if err := dec.Decode(&n); err != nil {
			return nil, errors.Wrapf(err, "decoding node %q", key)
		}

		nodes[key] = &n
	}

	return &Solver{
		params:    params,
		game:      game,
		nPlayers:  game.NumPlayers(),
		nodes:     nodes,
		iter:      iter,
		rng:       rand.New(rand.NewSource(params.Seed)),
		slicePool: &floatSlicePool{},
	}, nil
}
