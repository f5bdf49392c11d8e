package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMintProducesValidSessionIDs(t *testing.T) {
	seen := make(map[string]struct{})
	for range 100 {
		id := Mint()
		assert.True(t, Looks(id), id)

		_, dup := seen[id]
		assert.False(t, dup, "minted a duplicate session id")
		seen[id] = struct{}{}
	}
}

func TestLooksRejectsMalformedIDs(t *testing.T) {
	cases := []string{
		"",
		"not-a-uuid",
		"123456",
		"d9428888-122b-11e1-b85c-61cd3cbb3210x",
		"d9428888122b11e1b85c61cd3cbb3210",
	}
	for _, c := range cases {
		assert.False(t, Looks(c), c)
	}
}
