package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.  The
// prefix before the underscore names the module that owns it.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_005"
	ErrCodeConflict           ErrorCode = "COMMON_006"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_008"
	ErrCodeTimeout            ErrorCode = "COMMON_009"
	ErrCodeValidation         ErrorCode = "COMMON_010"
	ErrCodeSerialization      ErrorCode = "COMMON_011"
	ErrCodeNotImplemented     ErrorCode = "COMMON_016"
	ErrCodeCanceled           ErrorCode = "COMMON_017"
)

// Aliases
const (
	CodeUnknown        = ErrorCode("UNKNOWN")
	CodeOK             = ErrorCode("OK")
	CodeInternal       = ErrCodeInternal
	CodeInvalidParam   = ErrCodeBadRequest
	CodeNotFound       = ErrCodeNotFound
	CodeConflict       = ErrCodeConflict
	CodeNotImplemented = ErrCodeNotImplemented

	CodeMoleculeNotFound = ErrCodeMoleculeNotFound
)

// Molecule Graph Error Codes
const (
	ErrCodeMoleculeInvalidFormat ErrorCode = "MOL_003"
	ErrCodeMoleculeNotFound      ErrorCode = "MOL_004"
	ErrCodeMoleculeAlreadyExists ErrorCode = "MOL_005"
	ErrCodeMoleculeParsingFailed ErrorCode = "MOL_006"
	ErrCodeAtomIndexOutOfRange   ErrorCode = "MOL_016"
	ErrCodeBondInvalid           ErrorCode = "MOL_017"
	ErrCodeChemistryModel        ErrorCode = "MOL_018"
)

// Matching Error Codes
const (
	ErrCodeMappingIntegrity ErrorCode = "MCS_001"
	ErrCodeUnknownAlgorithm ErrorCode = "MCS_002"
	ErrCodeSearchFailed     ErrorCode = "MCS_003"
)

// Reaction Error Codes
const (
	ErrCodeReactionInvalid   ErrorCode = "RXN_001"
	ErrCodeReactionUnmapped  ErrorCode = "RXN_002"
	ErrCodeBondEnergyUnknown ErrorCode = "RXN_003"
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeNotImplemented:     http.StatusNotImplemented,
	ErrCodeCanceled:           499,

	ErrCodeMoleculeInvalidFormat: http.StatusBadRequest,
	ErrCodeMoleculeNotFound:      http.StatusNotFound,
	ErrCodeMoleculeAlreadyExists: http.StatusConflict,
	ErrCodeMoleculeParsingFailed: http.StatusBadRequest,
	ErrCodeAtomIndexOutOfRange:   http.StatusBadRequest,
	ErrCodeBondInvalid:           http.StatusBadRequest,
	ErrCodeChemistryModel:        http.StatusInternalServerError,

	ErrCodeMappingIntegrity: http.StatusInternalServerError,
	ErrCodeUnknownAlgorithm: http.StatusBadRequest,
	ErrCodeSearchFailed:     http.StatusInternalServerError,

	ErrCodeReactionInvalid:   http.StatusBadRequest,
	ErrCodeReactionUnmapped:  http.StatusUnprocessableEntity,
	ErrCodeBondEnergyUnknown: http.StatusUnprocessableEntity,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeNotFound:           "resource not found",
	ErrCodeConflict:           "resource conflict",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeTimeout:            "request timeout",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeNotImplemented:     "not implemented",
	ErrCodeCanceled:           "request canceled",

	ErrCodeMoleculeInvalidFormat: "unsupported molecule format",
	ErrCodeMoleculeNotFound:      "molecule not found",
	ErrCodeMoleculeAlreadyExists: "molecule already exists",
	ErrCodeMoleculeParsingFailed: "failed to parse molecule",
	ErrCodeAtomIndexOutOfRange:   "atom index out of range",
	ErrCodeBondInvalid:           "invalid bond",
	ErrCodeChemistryModel:        "chemistry model query failed",

	ErrCodeMappingIntegrity: "atom-atom mapping integrity violated",
	ErrCodeUnknownAlgorithm: "unknown matching algorithm",
	ErrCodeSearchFailed:     "common substructure search failed",

	ErrCodeReactionInvalid:   "invalid reaction",
	ErrCodeReactionUnmapped:  "reaction has no atom mapping",
	ErrCodeBondEnergyUnknown: "no tabulated energy for bond",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError returns true if the ErrorCode corresponds to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 1 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}

//Personal.AI order the ending
