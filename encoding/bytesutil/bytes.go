// Package bytesutil defines helper methods for byte slices holding secrets.
package bytesutil

// Zero overwrites every byte of b with zero. Callers use it to purge
// passwords and key material from memory once they are no longer needed.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// SafeCopyBytes will copy and return a non-nil byte slice, otherwise it returns nil.
func SafeCopyBytes(cp []byte) []byte {
	if cp != nil {
		copied := make([]byte, len(cp))
		copy(copied, cp)
		return copied
	}
	return nil
}
