// Package policy implements the per-information-state accumulators at the
// heart of tabular CFR: the current strategy, the cumulative regret, and the
// cumulative (weighted) strategy sum used to form the average strategy.
package policy

import (
	"bytes"
	"encoding/gob"

	"github.com/equilibre-games/go-cfr/internal/f32"
)

// Node holds the learned statistics for a single information state.
// All three vectors have length equal to the number of legal actions at
// that information state, fixed for the lifetime of the Node.
type Node struct {
	strategy    []float32
	regretSum   []float32
	strategySum []float32
}

// New returns a Node for an information state with the given number of
// legal actions. The initial strategy is uniform.
func New(nActions int) *Node {
	return &Node{
		strategy:    uniformDist(nActions),
		regretSum:   make([]float32, nActions),
		strategySum: make([]float32, nActions),
	}
}

// NumActions returns the number of legal actions at this information state.
func (n *Node) NumActions() int {
	return len(n.regretSum)
}

// Strategy returns the current strategy. The caller must not modify it.
func (n *Node) Strategy() []float32 {
	return n.strategy
}

// RegretSum returns the cumulative regret vector. The caller must not modify it.
func (n *Node) RegretSum() []float32 {
	return n.regretSum
}

// StrategySum returns the cumulative strategy vector. The caller must not modify it.
func (n *Node) StrategySum() []float32 {
	return n.strategySum
}

// AddRegret accumulates instantaneous per-action advantages, weighted by the
// counterfactual probability that the opponents (and chance) reached this
// information state.
func (n *Node) AddRegret(counterfactualP float32, advantages []float32) {
	f32.AxpyUnitary(counterfactualP, advantages, n.regretSum)
}

// AccumulateStrategy adds w times the current strategy to the cumulative
// strategy sum. w already includes the acting player's own reach probability
// and any iteration weight.
func (n *Node) AccumulateStrategy(w float32) {
	f32.AxpyUnitary(w, n.strategy, n.strategySum)
}

// NextStrategy recomputes the current strategy from the cumulative regret by
// regret matching. If resetNegative is true (regret matching⁺), negative
// cumulative regrets are first clamped to zero in place.
func (n *Node) NextStrategy(resetNegative bool) {
	if resetNegative {
		makePositive(n.regretSum)
	}

	n.regretMatching()
}

// AverageStrategy returns the normalized cumulative strategy, or the uniform
// distribution if this node was never updated.
func (n *Node) AverageStrategy() []float32 {
	total := f32.Sum(n.strategySum)
	if total > 0 {
		avgStrat := make([]float32, len(n.strategySum))
		f32.ScalUnitaryTo(avgStrat, 1.0/total, n.strategySum)
		return avgStrat
	}

	return uniformDist(len(n.regretSum))
}

// regretMatching sets the current strategy proportional to positive
// cumulative regret, falling back to uniform when no regret is positive.
func (n *Node) regretMatching() {
	copy(n.strategy, n.regretSum)
	makePositive(n.strategy)
	total := f32.Sum(n.strategy)
	if total > 0 {
		f32.ScalUnitary(1.0/total, n.strategy)
	} else {
		for i := range n.strategy {
			n.strategy[i] = 1.0 / float32(len(n.strategy))
		}
	}
}

// GobDecode implements gob.GobDecoder.
func (n *Node) GobDecode(buf []byte) error {
	r := bytes.NewReader(buf)
	dec := gob.NewDecoder(r)

	var nActions int
	if err := dec.Decode(&nActions); err != nil {
		return err
	}

	regretSum := make([]float32, 0, nActions)
	if err := dec.Decode(&regretSum); err != nil {
		return err
	}

	strategySum := make([]float32, 0, nActions)
	if err := dec.Decode(&strategySum); err != nil {
		return err
	}

	n.regretSum = regretSum
	n.strategySum = strategySum
	n.strategy = make([]float32, nActions)
	n.regretMatching()
	return nil
}

// GobEncode implements gob.GobEncoder.
func (n *Node) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)

	if err := enc.Encode(n.NumActions()); err != nil {
		return nil, err
	}

	if err := enc.Encode(n.regretSum); err != nil {
		return nil, err
	}

	if err := enc.Encode(n.strategySum); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func uniformDist(n int) []float32 {
	result := make([]float32, n)
	p := 1.0 / float32(n)
	f32.AddConst(p, result)
	return result
}

func makePositive(v []float32) {
	for i := range v {
		if v[i] < 0 {
			v[i] = 0.0
		}
	}
}
