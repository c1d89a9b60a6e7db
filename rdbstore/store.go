//go:build cgo

// Package rdbstore persists trained CFR node tables in a RocksDB
// database, one record per information state.
//
// It is the RocksDB counterpart of ldbstore, for tables too large to
// snapshot comfortably in a single LevelDB database.
package rdbstore

import (
	"bytes"
	"encoding/gob"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	rocksdb "github.com/tecbot/gorocksdb"

	cfr "github.com/equilibre-games/go-cfr"
	"github.com/equilibre-games/go-cfr/internal/policy"
)

var (
	nodePrefix = []byte("n")
	metaKey    = []byte("m")
)

type metadata struct {
	Params cfr.Params
	Iter   int
}

// Params bundles the RocksDB handles needed to open a store.
type Params struct {
	Path         string
	Options      *rocksdb.Options
	ReadOptions  *rocksdb.ReadOptions
	WriteOptions *rocksdb.WriteOptions
}

// DefaultParams returns Params with default RocksDB options, creating
// the database if missing.
func DefaultParams(path string) Params {
	opts := rocksdb.NewDefaultOptions()
	opts.SetCreateIfMissing(true)

	return Params{
		Path:         path,
		Options:      opts,
		ReadOptions:  rocksdb.NewDefaultReadOptions(),
		WriteOptions: rocksdb.NewDefaultWriteOptions(),
	}
}

// Close releases the option handles.
func (p Params) Close() {
	p.Options.Destroy()
	p.ReadOptions.Destroy()
	p.WriteOptions.Destroy()
}

// Store is a RocksDB-backed snapshot of a solver's node table.
type Store struct {
	params Params
	db     *rocksdb.DB
}

// Open opens a store with the given Params.
func Open(params Params) (*Store, error) {
	db, err := rocksdb.OpenDb(params.Options, params.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening rocksdb at %v", params.Path)
	}

	return &Store{params: params, db: db}, nil
}

// Close implements io.Closer.
func (s *Store) Close() error {
	s.db.Close()
	return nil
}

// SaveSolver writes the solver's configuration, iteration counter and
// every node to the database.
func (s *Store) SaveSolver(solver *cfr.Solver) error {
	var metaBuf bytes.Buffer
	meta := metadata{Params: solver.Params(), Iter: solver.Iter()}
	if err := gob.NewEncoder(&metaBuf).Encode(meta); err != nil {
		return errors.Wrap(err, "encoding metadata")
	}

	batch := rocksdb.NewWriteBatch()
	defer batch.Destroy()
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

	if err := s.db.Write(s.params.WriteOptions, batch); err != nil {
		return errors.Wrap(err, "writing batch")
	}

	glog.V(1).Infof("Saved %d information states to %v", n, s.params.Path)
	return nil
}

// LoadSolver reconstructs a solver from the snapshot. The given game
// must be the same game the snapshot was built for.
func (s *Store) LoadSolver(game cfr.Game) (*cfr.Solver, error) {
	result, err := s.db.Get(s.params.ReadOptions, metaKey)
	if err != nil {
		return nil, errors.Wrap(err, "reading metadata")
	}
	defer result.Free()
	if len(result.Data()) == 0 {
		return nil, errors.Errorf("no solver snapshot at %v", s.params.Path)
	}

	var meta metadata
	if err := gob.NewDecoder(bytes.NewReader(result.Data())).Decode(&meta); err != nil {
		return nil, errors.Wrap(err, "decoding metadata")
	}

	nodes := make(map[string]*policy.Node)
	iter := s.db.NewIterator(s.params.ReadOptions)
	defer iter.Close()
	for iter.Seek(nodePrefix); iter.ValidForPrefix(nodePrefix); iter.Next() {
		key := string(iter.Key().Data()[len(nodePrefix):])
		node := &policy.Node{}
		err := node.GobDecode(iter.Value().Data())
		iter.Key().Free()
		iter.Value().Free()
		if err != nil {
			return nil, errors.Wrapf(err, "decoding node %q", key)
		}

		nodes[key] = node
	}

	if err := iter.Err(); err != nil {
		return nil, errors.Wrap(err, "iterating nodes")
	}

	glog.V(1).Infof("Loaded %d information states from %v", len(nodes), s.params.Path)
	return cfr.RestoreSolver(game, meta.Params, meta.Iter, nodes), nil
}

func nodeKey(key string) []byte {
	result := make([]byte, 0, len(nodePrefix)+len(key))
	result = append(result, nodePrefix...)
	return append(result, key...)
}
