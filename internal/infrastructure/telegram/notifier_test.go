package telegram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitMessageShortDigest(t *testing.T) {
	t.Parallel()

	chunks := splitMessage("# Digest")
	assert.Equal(t, []string{"# Digest"}, chunks)
}

func TestSplitMessageLongDigest(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("다", maxMessageRunes+100)
	chunks := splitMessage(long)

	require.Len(t, chunks, 2)
	assert.Len(t, []rune(chunks[0]), maxMessageRunes)
	assert.Len(t, []rune(chunks[1]), 100)
	assert.Equal(t, long, strings.Join(chunks, ""))
}
