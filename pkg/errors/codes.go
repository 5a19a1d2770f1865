package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.  Codes
// are grouped per module by prefix: COMMON_* for cross-cutting failures,
// SRC_* for upstream data-source (provider) failures, RES_* for resolution
// failures.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Module prefixes.
const (
	ModuleCommon  = "COMMON"
	ModuleSource  = "SRC"
	ModuleResolve = "RES"
)

// Common error codes.
const (
	CodeInternal   ErrorCode = "COMMON_001"
	CodeBadRequest ErrorCode = "COMMON_002"
	CodeNotFound   ErrorCode = "COMMON_003"
	CodeValidation ErrorCode = "COMMON_004"
	CodeCacheError ErrorCode = "COMMON_005"
	CodeTimeout    ErrorCode = "COMMON_006"

	CodeOK      ErrorCode = "OK"
	CodeUnknown ErrorCode = "UNKNOWN"
)

// Data-source (provider adapter) error codes.  Every failure that crosses an
// adapter boundary carries one of these; the resolver absorbs them all and
// advances its fallback chain instead of surfacing them.
const (
	CodeSourceUnavailable ErrorCode = "SRC_001"
	CodeSourceTimeout     ErrorCode = "SRC_002"
	CodeSourceBadStatus   ErrorCode = "SRC_003"
	CodeSourceParseError  ErrorCode = "SRC_004"
)

// Resolution error codes.
const (
	CodeResolveFailed ErrorCode = "RES_001"
)

// errorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var errorCodeHTTPStatus = map[ErrorCode]int{
	CodeInternal:   http.StatusInternalServerError,
	CodeBadRequest: http.StatusBadRequest,
	CodeNotFound:   http.StatusNotFound,
	CodeValidation: http.StatusBadRequest,
	CodeCacheError: http.StatusInternalServerError,
	CodeTimeout:    http.StatusGatewayTimeout,

	CodeSourceUnavailable: http.StatusBadGateway,
	CodeSourceTimeout:     http.StatusGatewayTimeout,
	CodeSourceBadStatus:   http.StatusBadGateway,
	CodeSourceParseError:  http.StatusBadGateway,

	CodeResolveFailed: http.StatusInternalServerError,
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.  Unknown
// codes map to 500.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// Module returns the module prefix of an ErrorCode ("COMMON", "SRC", "RES").
func (c ErrorCode) Module() string {
	parts := strings.SplitN(string(c), "_", 2)
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}
