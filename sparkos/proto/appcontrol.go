package proto

// AppControlPayload encodes an activate/deactivate command: one byte, non-zero activates.
func AppControlPayload(active bool) []byte {
	if active {
		return []byte{1}
	}
	return []byte{0}
}

func DecodeAppControlPayload(b []byte) (active bool, ok bool) {
	if len(b) != 1 {
		return false, false
	}
	return b[0] != 0, true
}
