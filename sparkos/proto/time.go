package proto

import "encoding/binary"

// SleepPayload encodes a MsgSleep request.
//
// Layout (little-endian):
//   - u32: requestID
//   - u32: dt ticks
func SleepPayload(requestID, dt uint32) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint32(buf[0:4], requestID)
	binary.LittleEndian.PutUint32(buf[4:8], dt)
	return buf
}

// DecodeSleepPayload decodes a SleepPayload.
func DecodeSleepPayload(payload []byte) (requestID, dt uint32, ok bool) {
	if len(payload) < 8 {
		return 0, 0, false
	}
	return binary.LittleEndian.Uint32(payload[0:4]), binary.LittleEndian.Uint32(payload[4:8]), true
}

// RequestIDPayload encodes the u32 request ID shared by MsgSleepCancel and MsgWake.
func RequestIDPayload(requestID uint32) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, requestID)
	return buf
}

// DecodeRequestIDPayload decodes a RequestIDPayload.
func DecodeRequestIDPayload(payload []byte) (requestID uint32, ok bool) {
	if len(payload) < 4 {
		return 0, false
	}
	return binary.LittleEndian.Uint32(payload[0:4]), true
}
