package proto

// LogLinePayload copies a log line for MsgLogLine.
//
// The payload is UTF-8 without a trailing newline and is truncated to
// maxLen bytes on a rune boundary. Delivery is best effort.
func LogLinePayload(line string, maxLen int) []byte {
	if len(line) > maxLen {
		cut := maxLen
		for cut > 0 && line[cut]&0xC0 == 0x80 {
			cut--
		}
		line = line[:cut]
	}
	return []byte(line)
}
