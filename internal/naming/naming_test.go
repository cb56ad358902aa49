package naming

import (
	"errors"
	"math/big"
	"regexp"
	"testing"
)

func TestGenerateDeterministic(t *testing.T) {
	calls := 0
	fakeRand := func(max *big.Int) (*big.Int, error) {
		calls++
		if calls == 1 {
			return big.NewInt(18), nil
		}
		return new(big.Int).Sub(max, big.NewInt(5)), nil
	}

	got, err := generateWith(fakeRand)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	const want = "upbeat_summit"
	if got != want {
		t.Fatalf("Generate = %q, want %q", got, want)
	}
}

func TestGenerateProducesRailsNames(t *testing.T) {
	pattern := regexp.MustCompile(`^[a-z]+_[a-z]+$`)
	for i := 0; i < 20; i++ {
		name, err := Generate()
		if err != nil {
			t.Fatal(err)
		}
		if !pattern.MatchString(name) {
			t.Fatalf("Generate = %q", name)
		}
	}
}

func TestGeneratePropagatesRandomnessFailure(t *testing.T) {
	boom := errors.New("entropy exhausted")
	_, err := generateWith(func(*big.Int) (*big.Int, error) { return nil, boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}
