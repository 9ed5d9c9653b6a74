package models

// Chat error codes returned in the response envelope.
const (
	ErrCodeInvalidInput       = "INVALID_INPUT"
	ErrCodeMessageTooLong     = "MESSAGE_TOO_LONG"
	ErrCodeImageTooLarge      = "IMAGE_TOO_LARGE"
	ErrCodeRateLimited        = "RATE_LIMITED"
	ErrCodeAPIKeyInvalid      = "AI_API_KEY_INVALID"
	ErrCodeServiceUnavailable = "AI_SERVICE_UNAVAILABLE"
	ErrCodeInternal           = "INTERNAL_ERROR"
)

// Chat roles in a conversation transcript.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Assistant variants.
const (
	VariantCustomer = "customer"
	VariantAdmin    = "admin"
)

// ChatTurn is one prior exchange in a conversation transcript.
type ChatTurn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// ChatRequest is the inbound payload for a single conversational turn.
// Image is an optional base64-encoded photo, with or without a data URL
// prefix. History carries the client-side transcript; when empty, the
// server-side session history is used instead.
type ChatRequest struct {
	Message   string     `json:"message"`
	Image     string     `json:"image,omitempty"`
	ImageMIME string     `json:"imageMime,omitempty"`
	History   []ChatTurn `json:"history,omitempty"`
	SessionID string     `json:"sessionId,omitempty"`
	Variant   string     `json:"variant,omitempty"`
}

// BookingResult reports a booking side effect committed during a turn.
// Mode is "created" or "updated".
type BookingResult struct {
	Mode   string        `json:"mode"`
	Ticket ServiceTicket `json:"ticket"`
}

// ChatResponse is the outbound envelope for a chat turn. BookingError is
// set when the reply promised a booking but persistence failed; the turn
// still succeeds and Text carries manual contact instructions.
type ChatResponse struct {
	Text         string         `json:"text,omitempty"`
	Booking      *BookingResult `json:"booking,omitempty"`
	BookingError bool           `json:"bookingError,omitempty"`
	Error        string         `json:"error,omitempty"`
	Message      string         `json:"message,omitempty"`
	RetryAfter   int            `json:"retryAfter,omitempty"`
}
