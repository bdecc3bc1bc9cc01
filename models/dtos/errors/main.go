package errors

import (
	"beacon/api/models/dtos"
)

/*
	The closed set of error objects this beacon can
	return, each a distinct machine-readable name plus
	human message. Codes double as HTTP response statuses.
*/

// -- request validation errors (400)
func NoMandatoryParams() *dtos.BeaconError {
	return &dtos.BeaconError{
		ErrorCode:    400,
		ErrorName:    "NO_MANDATORY_PARAMS",
		ErrorMessage: "Missing one or more mandatory parameters (referenceName, referenceBases, assemblyId)",
	}
}
func NoSecondaryParams() *dtos.BeaconError {
	return &dtos.BeaconError{
		ErrorCode:    400,
		ErrorName:    "NO_SECONDARY_PARAMS",
		ErrorMessage: "Either 'alternateBases' or 'variantType' param is required",
	}
}
func NoPositionParams() *dtos.BeaconError {
	return &dtos.BeaconError{
		ErrorCode:    400,
		ErrorName:    "NO_POSITION_PARAMS",
		ErrorMessage: "Start coordinate or range coordinate params are required",
	}
}
func NoSvEndParam() *dtos.BeaconError {
	return &dtos.BeaconError{
		ErrorCode:    400,
		ErrorName:    "NO_SV_END_PARAM",
		ErrorMessage: "Structural variant queries require an end position",
	}
}
func InvalidCoordinates() *dtos.BeaconError {
	return &dtos.BeaconError{
		ErrorCode:    400,
		ErrorName:    "INVALID_COORDINATES",
		ErrorMessage: "invalid coordinates. Variant start and stop positions must be numbers",
	}
}
func InvalidCoordRange() *dtos.BeaconError {
	return &dtos.BeaconError{
		ErrorCode:    400,
		ErrorName:    "INVALID_COORD_RANGE",
		ErrorMessage: "invalid coordinate range. Range bounds must satisfy startMin <= startMax <= endMin <= endMax",
	}
}
func BuildMismatch() *dtos.BeaconError {
	return &dtos.BeaconError{
		ErrorCode:    400,
		ErrorName:    "BUILD_MISMATCH",
		ErrorMessage: "Requested genome assembly is in conflict with the assembly of one or more requested datasets",
	}
}

// -- credential presence errors (401)
func MissingToken() *dtos.BeaconError {
	return &dtos.BeaconError{
		ErrorCode:    401,
		ErrorName:    "MISSING_TOKEN",
		ErrorMessage: "Authorization header is present but contains no usable token",
	}
}
func WrongScheme() *dtos.BeaconError {
	return &dtos.BeaconError{
		ErrorCode:    401,
		ErrorName:    "WRONG_SCHEME",
		ErrorMessage: "Authorization header scheme must be 'Bearer'",
	}
}

// -- token verification / authorization errors (403)
func MissingPublicKey() *dtos.BeaconError {
	return &dtos.BeaconError{
		ErrorCode:    403,
		ErrorName:    "MISSING_PUBLIC_KEY",
		ErrorMessage: "Could not retrieve OAuth2 public key from the issuer",
	}
}
func MissingTokenClaims() *dtos.BeaconError {
	return &dtos.BeaconError{
		ErrorCode:    403,
		ErrorName:    "MISSING_TOKEN_CLAIMS",
		ErrorMessage: "Auth token is not valid: missing claims",
	}
}
func InvalidTokenClaims() *dtos.BeaconError {
	return &dtos.BeaconError{
		ErrorCode:    403,
		ErrorName:    "INVALID_TOKEN_CLAIMS",
		ErrorMessage: "Auth token error: Invalid claims",
	}
}
func ExpiredTokenSignature() *dtos.BeaconError {
	return &dtos.BeaconError{
		ErrorCode:    403,
		ErrorName:    "EXPIRED_TOKEN_SIGNATURE",
		ErrorMessage: "Auth token contains an expired signature",
	}
}
func InvalidTokenAuth() *dtos.BeaconError {
	return &dtos.BeaconError{
		ErrorCode:    403,
		ErrorName:    "INVALID_TOKEN_AUTH",
		ErrorMessage: "Invalid auth token error",
	}
}
func NoGa4ghUserdata() *dtos.BeaconError {
	return &dtos.BeaconError{
		ErrorCode:    403,
		ErrorName:    "NO_GA4GH_USERDATA",
		ErrorMessage: "Could not retrieve GA4GH passports from the userinfo endpoint",
	}
}
func PassportsError() *dtos.BeaconError {
	return &dtos.BeaconError{
		ErrorCode:    403,
		ErrorName:    "PASSPORTS_ERROR",
		ErrorMessage: "One or more GA4GH passport visas failed validation",
	}
}
func GenericAuthError(message string) *dtos.BeaconError {
	return &dtos.BeaconError{
		ErrorCode:    403,
		ErrorName:    "TOKEN_ERROR",
		ErrorMessage: message,
	}
}

// -- internal/datastore errors (500)
func InternalServerError(message string) *dtos.BeaconError {
	return &dtos.BeaconError{
		ErrorCode:    500,
		ErrorName:    "INTERNAL",
		ErrorMessage: message,
	}
}
