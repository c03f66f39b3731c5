package dto

// ErrorCode is a short machine-readable code the frontend branches on
type ErrorCode string

const (
	CodeAuthRequired       ErrorCode = "AUTH_TOKEN_REQUIRED"
	CodeAuthExpired        ErrorCode = "AUTH_TOKEN_EXPIRED"
	CodeAuthInvalid        ErrorCode = "AUTH_TOKEN_INVALID"
	CodeInvalidCredentials ErrorCode = "AUTH_INVALID_CREDENTIALS"
	CodePermissionDenied   ErrorCode = "PERMISSION_DENIED"
	CodeValidationError    ErrorCode = "VALIDATION_ERROR"
	CodeNotFound           ErrorCode = "NOT_FOUND"
	CodeConflict           ErrorCode = "CONFLICT"
	CodeRateLimited        ErrorCode = "RATE_LIMITED"
	CodeServerError        ErrorCode = "SERVER_ERROR"
)

// APIResponse is the uniform response envelope for every endpoint
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Code    ErrorCode   `json:"code,omitempty"`
}

// NewSuccessResponse wraps data in a success envelope
func NewSuccessResponse(data interface{}) APIResponse {
	return APIResponse{
		Success: true,
		Data:    data,
	}
}

// NewMessageResponse wraps a human-readable message in a success envelope
func NewMessageResponse(message string) APIResponse {
	return APIResponse{
		Success: true,
		Message: message,
	}
}

// NewErrorResponse builds an error envelope with a machine-readable code
func NewErrorResponse(code ErrorCode, errMsg string) APIResponse {
	return APIResponse{
		Success: false,
		Error:   errMsg,
		Code:    code,
	}
}

// PaginationInfo describes an offset-paginated result set
type PaginationInfo struct {
	CurrentPage int   `json:"currentPage"`
	PageSize    int   `json:"pageSize"`
	TotalItems  int64 `json:"totalItems"`
	TotalPages  int   `json:"totalPages"`
}
