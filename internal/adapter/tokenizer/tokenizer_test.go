package tokenizer

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFile(t *testing.T) {
	tk, err := Load(filepath.Join(t.TempDir(), "tokenizer.json"), 512)

	assert.Error(t, err)
	assert.Nil(t, tk)
	assert.Contains(t, err.Error(), "failed to load tokenizer")
}

func TestToEncoding(t *testing.T) {
	t.Run("copies ids and mask", func(t *testing.T) {
		enc := toEncoding([]int{101, 2023, 102}, []int{1, 1, 1}, 512)

		assert.Equal(t, []int64{101, 2023, 102}, enc.IDs)
		assert.Equal(t, []int64{1, 1, 1}, enc.AttentionMask)
		assert.Equal(t, 3, enc.Len())
	})

	t.Run("caps at max tokens", func(t *testing.T) {
		ids := make([]int, 600)
		for i := range ids {
			ids[i] = i
		}

		enc := toEncoding(ids, nil, 512)

		require.Equal(t, 512, enc.Len())
		assert.Len(t, enc.AttentionMask, 512)
		assert.Equal(t, int64(511), enc.IDs[511])
	})

	t.Run("missing mask defaults to attended", func(t *testing.T) {
		enc := toEncoding([]int{101, 102}, nil, 512)

		assert.Equal(t, []int64{1, 1}, enc.AttentionMask)
	})

	t.Run("keeps padding mask", func(t *testing.T) {
		enc := toEncoding([]int{101, 102, 0}, []int{1, 1, 0}, 512)

		assert.Equal(t, []int64{1, 1, 0}, enc.AttentionMask)
	})
}
