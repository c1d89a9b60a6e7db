// Package ldbstore persists trained CFR node tables in a LevelDB
// database, one record per information state.
//
// A stored table preserves exact vector lengths and per-node action
// ordering, so a solver reloaded from disk resumes bit-identical to the
// one that was saved.
package ldbstore

import (
	"bytes"
	"encoding/gob"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"

	cfr "github.com/equilibre-games/go-cfr"
	"github.com/equilibre-games/go-cfr/internal/policy"
)

// Node records are stored under 'n'-prefixed keys so they can never
// collide with the metadata record.
var (
	nodePrefix = []byte("n")
	metaKey    = []byte("m")
)

type metadata struct {
	Params cfr.Params
	Iter   int
}

// Store is a LevelDB-backed snapshot of a solver's node table.
type Store struct {
	path string
	db   *leveldb.DB

	rOpts *opt.ReadOptions
	wOpts *opt.WriteOptions
}

// Open opens (creating if necessary) a store at the given path.
func Open(path string, opts *opt.Options) (*Store, error) {
	db, err := leveldb.OpenFile(path, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "opening leveldb at %v", path)
	}

	return &Store{path: path, db: db}, nil
}

// Close implements io.Closer.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveSolver writes the solver's configuration, iteration counter and
// every node to the database, replacing any previous snapshot contents
// under the same keys.
func (s *Store) SaveSolver(solver *cfr.Solver) error {
	var metaBuf bytes.Buffer
	meta := metadata{Params: solver.Params(), Iter: solver.Iter()}
	if err := gob.NewEncoder(&metaBuf).Encode(meta); err != nil {
		return errors.Wrap(err, "encoding metadata")
	}

	batch := new(leveldb.Batch)
	batch.Put(metaKey, metaBuf.Bytes())

	var saveErr error
	n := 0
	solver.VisitNodes(func(key string, node *policy.Node) {
		if saveErr != nil {
			return
		}

		buf, err := node.GobEncode()
		if err != nil {
			saveErr = errors.Wrapf(err, "encoding node %q", key)
			return
		}

		batch.Put(nodeKey(key), buf)
		n++
	})

	if saveErr != nil {
		return saveErr
	}

	if err := s.db.Write(batch, s.wOpts); err != nil {
		return errors.Wrap(err, "writing batch")
	}

	glog.V(1).Infof("Saved %d information states to %v", n, s.path)
	return nil
}

// LoadSolver reconstructs a solver from the snapshot. The given game
// must be the same game the snapshot was built for.
func (s *Store) LoadSolver(game cfr.Game) (*cfr.Solver, error) {
	metaBuf, err := s.db.Get(metaKey, s.rOpts)
	if err != nil {
		return nil, errors.Wrap(err, "reading metadata")
	}

	var meta metadata
	if err := gob.NewDecoder(bytes.NewReader(metaBuf)).Decode(&meta); err != nil {
		return nil, errors.Wrap(err, "decoding metadata")
	}

	nodes := make(map[string]*policy.Node)
	iter := s.db.NewIterator(util.BytesPrefix(nodePrefix), s.rOpts)
	for iter.Next() {
		key := string(iter.Key()[len(nodePrefix):])
		node := &policy.Node{}
		if err := node.GobDecode(iter.Value()); err != nil {
			iter.Release()
			return nil, errors.Wrapf(err, "decoding node %q", key)
		}

		nodes[key] = node
	}

	iter.Release()
	if err := iter.Error(); err != nil {
		return nil, errors.Wrap(err, "iterating nodes")
	}

	glog.V(1).Infof("Loaded %d information states from %v", len(nodes), s.path)
	return cfr.RestoreSolver(game, meta.Params, meta.Iter, nodes), nil
}

// GetNode reads back the accumulators stored for one information state.
// It returns leveldb.ErrNotFound if the key has never been saved.
func (s *Store) GetNode(key string) (*policy.Node, error) {
	buf, err := s.db.Get(nodeKey(key), s.rOpts)
	if err != nil {
		return nil, err
	}

	node := &policy.Node{}
	if err := node.GobDecode(buf); err != nil {
		return nil, errors.Wrapf(err, "decoding node %q", key)
	}

	return node, nil
}

func nodeKey(key string) []byte {
	result := make([]byte, 0, len(nodePrefix)+len(key))
	result = append(result, nodePrefix...)
	return append(result, key...)
}
