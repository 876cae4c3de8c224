package protocol

// ErrorCode identifies the type of error.
type ErrorCode uint16

const (
	ErrUnknown        ErrorCode = 0x0000 // Unknown error
	ErrInvalidFrame   ErrorCode = 0x0001 // Malformed frame
	ErrInvalidEvent   ErrorCode = 0x0002 // Malformed event
	ErrUnknownTarget  ErrorCode = 0x0003 // Event target not in the document
	ErrHandlerPanic   ErrorCode = 0x0004 // Handler panicked
	ErrSessionLimit   ErrorCode = 0x0005 // Too many sessions
	ErrServerError    ErrorCode = 0x0100 // Internal server error
	ErrServerShutdown ErrorCode = 0x0101 // Server is shutting down
)

// String returns the string representation of the error code.
func (ec ErrorCode) String() string {
	switch ec {
	case ErrInvalidFrame:
		return "InvalidFrame"
	case ErrInvalidEvent:
		return "InvalidEvent"
	case ErrUnknownTarget:
		return "UnknownTarget"
	case ErrHandlerPanic:
		return "HandlerPanic"
	case ErrSessionLimit:
		return "SessionLimit"
	case ErrServerError:
		return "ServerError"
	case ErrServerShutdown:
		return "ServerShutdown"
	default:
		return "Unknown"
	}
}

// ErrorMessage is sent when an error occurs.
type ErrorMessage struct {
	Code    ErrorCode // Error code
	Message string    // Human-readable error message
	Fatal   bool      // If true, the connection will be closed
}

// Error implements the error interface.
func (em *ErrorMessage) Error() string {
	return "protocol: " + em.Code.String() + ": " + em.Message
}

// EncodeErrorMessage encodes an ErrorMessage payload.
func EncodeErrorMessage(em *ErrorMessage) []byte {
	e := NewEncoder()
	e.WriteUint16(uint16(em.Code))
	e.WriteString(em.Message)
	e.WriteBool(em.Fatal)
	return e.Bytes()
}

// DecodeErrorMessage decodes an ErrorMessage payload.
func DecodeErrorMessage(data []byte) (*ErrorMessage, error) {
	d := NewDecoder(data)
	code, err := d.ReadUint16()
	if err != nil {
		return nil, err
	}
	msg, err := d.ReadString()
	if err != nil {
		return nil, err
	}
	fatal, err := d.ReadBool()
	if err != nil {
		return nil, err
	}
	return &ErrorMessage{Code: ErrorCode(code), Message: msg, Fatal: fatal}, nil
}

// NewError creates a non-fatal error message.
func NewError(code ErrorCode, message string) *ErrorMessage {
	return &ErrorMessage{Code: code, Message: message}
}

// NewFatalError creates a fatal error message.
func NewFatalError(code ErrorCode, message string) *ErrorMessage {
	return &ErrorMessage{Code: code, Message: message, Fatal: true}
}
