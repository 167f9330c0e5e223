package models

// ErrorResponse is the structured error body returned by the API on
// error-range statuses.
type ErrorResponse struct {
	Code             string            `json:"code,omitempty"`
	ErrorType        string            `json:"error_type,omitempty"`
	Message          string            `json:"message,omitempty"`
	ValidationErrors []ValidationError `json:"validation_errors,omitempty"`
}

// ValidationError names a request parameter the API rejected
type ValidationError struct {
	Code  string `json:"code,omitempty"`
	Param string `json:"param,omitempty"`
}

// IsZero reports whether no structured field was decoded
func (e *ErrorResponse) IsZero() bool {
	return e == nil || (e.Code == "" && e.ErrorType == "" && e.Message == "" && len(e.ValidationErrors) == 0)
}

// ErrorInternalTokenResponse is the error body of the transaction gateway endpoints
type ErrorInternalTokenResponse struct {
	Error *ErrorInternalTokenDetail `json:"error,omitempty"`
}

// ErrorInternalTokenDetail is the nested error of ErrorInternalTokenResponse
type ErrorInternalTokenDetail struct {
	Type    string `json:"type,omitempty"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

// ToErrorResponse flattens the nested gateway error into the common shape
func (e *ErrorInternalTokenResponse) ToErrorResponse() *ErrorResponse {
	if e == nil || e.Error == nil {
		return nil
	}
	return &ErrorResponse{
		Code:      e.Error.Code,
		ErrorType: e.Error.Type,
		Message:   e.Error.Message,
	}
}
