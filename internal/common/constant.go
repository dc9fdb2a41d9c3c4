package common

// RequestIDHeaderName carries the per-request correlation id on HTTP
// requests and responses.
const RequestIDHeaderName = "X-Request-ID"

// DefaultMessagesLimit is the page size used when a caller omits a limit.
const DefaultMessagesLimit = 50
