package cfr

import (
	"testing"
)

func TestIterationWeight_Constant(t *testing.T) {
	p := Params{}
	for _, iter := range []int{1, 2, 100, 100000} {
		if w := p.iterationWeight(iter); w != 1.0 {
			t.Errorf("iteration %d: expected weight 1.0, got %v", iter, w)
		}
	}
}

func TestIterationWeight_Linear(t *testing.T) {
	p := Params{LinearAveraging: true}
	for _, iter := range []int{1, 2, 17} {
		if w := p.iterationWeight(iter); w != float32(iter) {
			t.Errorf("iteration %d: expected weight %d, got %v", iter, iter, w)
		}
	}
}

func TestIterationWeight_LinearWithDelay(t *testing.T) {
	p := Params{LinearAveraging: true, AveragingDelay: 10}

	cases := []struct {
		iter int
		want float32
	}{
		{1, 0},
		{9, 0},
		{10, 0},
		{11, 1},
		{25, 15},
	}

	for _, tc := range cases {
		if w := p.iterationWeight(tc.iter); w != tc.want {
			t.Errorf("iteration %d: expected weight %v, got %v", tc.iter, tc.want, w)
		}
	}
}

func TestIterationWeight_DelayIgnoredWithoutLinearAveraging(t *testing.T) {
	p := Params{AveragingDelay: 10}
	if w := p.iterationWeight(1); w != 1.0 {
		t.Errorf("expected weight 1.0, got %v", w)
	}
}
