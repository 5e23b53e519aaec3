package commit

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashSeedMatchesSHA256OfDecimalString(t *testing.T) {
	sum := sha256.Sum256([]byte("2863311530"))
	assert.Equal(t, hex.EncodeToString(sum[:]), HashSeed(2863311530))
}

func TestVerifyCommitmentRoundTrip(t *testing.T) {
	seed := uint32(777)
	assert.True(t, VerifyCommitment(seed, HashSeed(seed)))
	assert.False(t, VerifyCommitment(seed, "definitely_wrong_hash"))
	assert.False(t, VerifyCommitment(seed+1, HashSeed(seed)))
}

func TestCombineSeeds(t *testing.T) {
	assert.Equal(t, uint32(0xFFFFFFFF), CombineSeeds(0xAAAAAAAA, 0x55555555))
	assert.Equal(t, uint32(0), CombineSeeds(100, 100))
	assert.Equal(t, uint32(12345), CombineSeeds(0, 12345))
}

func TestCombineSeedsIsInvolutive(t *testing.T) {
	a, b := uint32(11111), uint32(22222)
	combined := CombineSeeds(a, b)
	assert.Equal(t, a, CombineSeeds(combined, b))
}

func TestDeriveSubSeedIsPureAndStable(t *testing.T) {
	master := uint32(123456789)
	labels := []string{"sign", "magnitude", "volatility", "momentum", "turbo"}
	seen := map[uint32]bool{}
	for _, label := range labels {
		s1 := DeriveSubSeed(master, label)
		s2 := DeriveSubSeed(master, label)
		assert.Equal(t, s1, s2, "derivation must be pure")
		seen[s1] = true
	}
	assert.Len(t, seen, len(labels), "each label should derive a distinct sub-seed")
}
