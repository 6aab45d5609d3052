// Package response holds the JSON body written for every failed request.
package response

import "fmt"

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

func Error(msg string) ErrorResponse {
	return ErrorResponse{Error: msg}
}

// InternalError reports an unexpected fault. detail may be an error or a recovered panic value.
func InternalError(detail any) ErrorResponse {
	return ErrorResponse{Error: fmt.Sprintf("internal error: %v", detail)}
}
