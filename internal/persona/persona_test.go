package persona

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStyleForMirror(t *testing.T) {
	r := DefaultResolver()

	style := r.StyleFor("mirror")
	assert.Contains(t, style, "The Mirror")
	assert.NotEqual(t, FallbackStyle(), style)
}

func TestStyleForIsCaseInsensitive(t *testing.T) {
	r := DefaultResolver()

	assert.Equal(t, r.StyleFor("mirror"), r.StyleFor("Mirror"))
	assert.Equal(t, r.StyleFor("mirror"), r.StyleFor(" MIRROR "))
}

func TestStyleForUnknownFallsBack(t *testing.T) {
	r := DefaultResolver()

	assert.Equal(t, FallbackStyle(), r.StyleFor("oracle"))
	assert.Equal(t, FallbackStyle(), r.StyleFor(""))
}

func TestStyleForNilResolver(t *testing.T) {
	var r *StaticResolver

	assert.Equal(t, FallbackStyle(), r.StyleFor("mirror"))
}
