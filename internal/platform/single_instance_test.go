package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTryLockIsExclusive(t *testing.T) {
	const appID = "focusclock-lock-test"

	first, err := TryLock(appID)
	require.NoError(t, err)
	defer first.Release()

	_, err = TryLock(appID)
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	first.Release()

	second, err := TryLock(appID)
	require.NoError(t, err)
	second.Release()
}

func TestLockPortIsDeterministicAndDynamic(t *testing.T) {
	portA := lockPort("focusclock")
	portB := lockPort("focusclock")
	assert.Equal(t, portA, portB)
	assert.GreaterOrEqual(t, portA, 49152)
	assert.Less(t, portA, 65536)
}

func TestReleaseNilLock(t *testing.T) {
	var lock *Lock
	lock.Release()
}
