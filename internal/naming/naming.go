// Package naming picks memorable application names for `railskit new`
// when the caller does not supply one.
package naming

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

var (
	adjectives = []string{
		"amber", "brisk", "calm", "dapper", "eager", "fuzzy", "gentle", "hardy",
		"jolly", "keen", "lively", "mellow", "nimble", "plucky", "quiet", "rustic",
		"sunny", "tidy", "upbeat", "vivid", "witty", "zesty",
	}
	nouns = []string{
		"anchor", "badger", "canyon", "delta", "ember", "falcon", "garden", "harbor",
		"island", "juniper", "kettle", "lantern", "meadow", "orchard", "pebble", "quarry",
		"ridge", "summit", "thicket", "valley", "willow", "zephyr",
	}
)

// Generate returns an adjective_noun pair that is a valid Rails app name.
func Generate() (string, error) {
	return generateWith(cryptoRandInt)
}

func generateWith(randInt func(*big.Int) (*big.Int, error)) (string, error) {
	adj, err := pick(randInt, adjectives)
	if err != nil {
		return "", err
	}
	noun, err := pick(randInt, nouns)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s_%s", adj, noun), nil
}

func cryptoRandInt(max *big.Int) (*big.Int, error) {
	return rand.Int(rand.Reader, max)
}

func pick(randInt func(*big.Int) (*big.Int, error), options []string) (string, error) {
	i, err := randInt(big.NewInt(int64(len(options))))
	if err != nil {
		return "", fmt.Errorf("pick name: %w", err)
	}
	return options[i.Int64()], nil
}
