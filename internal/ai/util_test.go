package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanReplyStripsThinkBlocks(t *testing.T) {
	reply := cleanReply("<think>internal reasoning</think>the actual answer")
	assert.Equal(t, "the actual answer", reply)
}

func TestCleanReplyTrimsWrappingQuotes(t *testing.T) {
	assert.Equal(t, "hello", cleanReply(`"hello"`))
	assert.Equal(t, "hello", cleanReply("“hello”"))
}

func TestCleanReplyKeepsLongText(t *testing.T) {
	long := strings.Repeat("x", 5000)
	assert.Equal(t, long, cleanReply(long))
}

func TestIsGarbageResponse(t *testing.T) {
	assert.True(t, isGarbageResponse("<html><body>error</body></html>"))
	assert.True(t, isGarbageResponse("not allowed"))
	assert.True(t, isGarbageResponse("  x "))
	assert.False(t, isGarbageResponse("a perfectly fine reply"))
}
