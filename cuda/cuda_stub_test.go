//go:build !cuda

package cuda

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStub(t *testing.T) {
	assert.False(t, Available())

	assert.ErrorIs(t, SetDevice(0), ErrNotBuilt)

	_, err := MallocHost(64)
	assert.ErrorIs(t, err, ErrNotBuilt)

	_, err = MallocDevice(64)
	assert.ErrorIs(t, err, ErrNotBuilt)

	assert.ErrorIs(t, FreeHost(nil), ErrNotBuilt)
	assert.ErrorIs(t, FreeDevice(nil), ErrNotBuilt)
}
