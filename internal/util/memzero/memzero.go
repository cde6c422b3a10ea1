// Package memzero overwrites secret material once it is no longer needed.
package memzero

import (
	"crypto/subtle"
	"runtime"
)

// Zero overwrites b with zeros in a constant-time friendly way.
func Zero(b []byte) {
	if len(b) == 0 {
		return
	}
	zero := make([]byte, len(b))
	subtle.ConstantTimeCopy(1, b, zero)
	runtime.KeepAlive(b)
}

// Array zeroes a fixed-size key or seed in place.
func Array[T ~[32]byte | ~[64]byte](k *T) {
	if k == nil {
		return
	}
	var zero T
	*k = zero
	runtime.KeepAlive(k)
}
