package fs_test

import (
	"testing"

	"github.com/fwojciec/knowdoc/fs"
	"github.com/stretchr/testify/assert"
)

func TestComputeHash(t *testing.T) {
	t.Parallel()

	t.Run("returns consistent hash for same content", func(t *testing.T) {
		t.Parallel()
		content := "test content"
		hash1 := fs.ComputeHash(content)
		hash2 := fs.ComputeHash(content)
		assert.Equal(t, hash1, hash2)
	})

	t.Run("returns different hashes for different content", func(t *testing.T) {
		t.Parallel()
		hash1 := fs.ComputeHash("content a")
		hash2 := fs.ComputeHash("content b")
		assert.NotEqual(t, hash1, hash2)
	})

	t.Run("returns hex string", func(t *testing.T) {
		t.Parallel()
		hash := fs.ComputeHash("test")
		assert.Regexp(t, `^[0-9a-f]+$`, hash)
	})
}
