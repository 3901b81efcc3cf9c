package pricing

import (
	"fmt"
	"strings"
)

// ErrorCode classifies a single validation problem.
type ErrorCode string

const (
	CodeUnknownServiceName   ErrorCode = "UNKNOWN_SERVICE_NAME"
	CodeInvalidCount         ErrorCode = "INVALID_COUNT"
	CodeInvalidCustomPrice   ErrorCode = "INVALID_CUSTOM_PRICE"
	CodeMissingRequiredField ErrorCode = "MISSING_REQUIRED_FIELD"
)

// Issue is one validation problem found in a pricing request.
type Issue struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func issuef(code ErrorCode, format string, args ...interface{}) Issue {
	return Issue{Code: code, Message: fmt.Sprintf(format, args...)}
}

// ValidationErrors is the collected, non-empty list of problems for a
// rejected pricing computation. Validation never short-circuits: a
// caller gets every problem at once.
type ValidationErrors []Issue

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, issue := range v {
		msgs[i] = issue.Message
	}
	return strings.Join(msgs, "; ")
}

// Details renders the issues as a field map for the API error envelope.
func (v ValidationErrors) Details() map[string]string {
	details := make(map[string]string, len(v))
	for i, issue := range v {
		details[fmt.Sprintf("%s_%d", strings.ToLower(string(issue.Code)), i)] = issue.Message
	}
	return details
}
