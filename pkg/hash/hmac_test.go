package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeHmac256(t *testing.T) {
	secret := "da02e221bc331c9875c5e1299fa8d765"

	a, err := ComputeHmac256("foo@gmail.com", secret)
	require.NoError(t, err)
	b, err := ComputeHmac256("foo@gmail.com", secret)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.NotContains(t, a, "+")
	assert.NotContains(t, a, "/")

	other, err := ComputeHmac256("bar@gmail.com", secret)
	require.NoError(t, err)
	assert.NotEqual(t, a, other)
}

func TestVerifyHmac256(t *testing.T) {
	secret := "da02e221bc331c9875c5e1299fa8d765"
	h, err := ComputeHmac256("foo@gmail.com", secret)
	require.NoError(t, err)

	ok, err := VerifyHmac256("foo@gmail.com", h, secret)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyHmac256("foo@gmail.com", h, "another secret")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = VerifyHmac256("foo@gmail.com", "", secret)
	require.NoError(t, err)
	assert.False(t, ok)
}
