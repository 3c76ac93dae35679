package proto

// Kind identifies the message type carried in kernel.Message.Kind.
type Kind uint16

const (
	MsgLogLine Kind = iota + 1
	MsgSleep
	MsgSleepCancel
	MsgWake
	MsgError
	MsgTermInput
	MsgAppControl
	MsgAppShutdown
)

func (k Kind) String() string {
	switch k {
	case MsgLogLine:
		return "log_line"
	case MsgSleep:
		return "sleep"
	case MsgSleepCancel:
		return "sleep_cancel"
	case MsgWake:
		return "wake"
	case MsgError:
		return "error"
	case MsgTermInput:
		return "term_input"
	case MsgAppControl:
		return "app_control"
	case MsgAppShutdown:
		return "app_shutdown"
	default:
		return "unknown"
	}
}

// ErrCode is a generic error category for MsgError responses.
type ErrCode uint16

const (
	ErrUnknown ErrCode = iota
	ErrBadMessage
	ErrUnauthorized
	ErrNotFound
	ErrOverflow
	ErrInternal
)

func (c ErrCode) String() string {
	switch c {
	case ErrBadMessage:
		return "bad_message"
	case ErrUnauthorized:
		return "unauthorized"
	case ErrNotFound:
		return "not_found"
	case ErrOverflow:
		return "overflow"
	case ErrInternal:
		return "internal"
	default:
		return "unknown"
	}
}
