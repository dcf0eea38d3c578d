package keyhash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSHA256Deterministic(t *testing.T) {
	a := SHA256(Domain, "running shoes")
	b := SHA256(Domain, "running shoes")
	require.Equal(t, a, b)
	require.Len(t, a, Size)
}

func TestSHA256TrimsKeyword(t *testing.T) {
	assert.Equal(t, SHA256(Domain, "shoes"), SHA256(Domain, "  shoes\t"))
}

func TestSHA256BindsDomain(t *testing.T) {
	assert.NotEqual(t, SHA256(Domain, "shoes"), SHA256("other", "shoes"))
	assert.NotEqual(t, SHA256(Domain, "shoes"), SHA256(Domain, "boots"))
}
