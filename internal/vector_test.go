package internal

import (
	"math"
	"testing"
)

func TestCosineIdentical(t *testing.T) {
	v := []float64{0.5, 0.5, 0.7071}

	got := Cosine(v, v)
	if math.Abs(got-1.0) > 1e-9 {
		t.Errorf("Cosine(v, v) = %f, want 1.0", got)
	}
}

func TestCosineOrthogonal(t *testing.T) {
	a := []float64{1, 0}
	b := []float64{0, 1}

	if got := Cosine(a, b); math.Abs(got) > 1e-9 {
		t.Errorf("Cosine = %f, want 0", got)
	}
}

func TestCosineOpposite(t *testing.T) {
	a := []float64{1, 2, 3}
	b := []float64{-1, -2, -3}

	if got := Cosine(a, b); math.Abs(got+1.0) > 1e-9 {
		t.Errorf("Cosine = %f, want -1.0", got)
	}
}

func TestCosineZeroVector(t *testing.T) {
	a := []float64{0, 0, 0}
	b := []float64{1, 2, 3}

	if got := Cosine(a, b); got != 0 {
		t.Errorf("Cosine with zero vector = %f, want 0", got)
	}
}

func TestCosineMismatchedLengths(t *testing.T) {
	a := []float64{1, 2}
	b := []float64{1, 2, 3}

	if got := Cosine(a, b); got != 0 {
		t.Errorf("Cosine with mismatched lengths = %f, want 0", got)
	}
}
