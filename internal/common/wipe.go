package common

// Wipe zeroes b in place so secrets read from a terminal do not linger in
// memory longer than needed. A nil slice is ignored.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
