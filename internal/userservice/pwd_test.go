package userservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordSetAndCompare(t *testing.T) {
	var p Password

	require.NoError(t, p.set("sekret"))
	assert.NotEmpty(t, p.hash)
	assert.NotEqual(t, []byte("sekret"), p.hash)

	ok, err := p.compare("sekret")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.compare("wrongpw")
	require.NoError(t, err)
	assert.False(t, ok)
}
