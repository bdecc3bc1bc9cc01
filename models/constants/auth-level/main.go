package authLevel

import (
	"beacon/api/models/constants"
	"strings"
)

const (
	Unknown constants.AuthLevel = ""

	Public     constants.AuthLevel = "public"
	Registered constants.AuthLevel = "registered"
	Controlled constants.AuthLevel = "controlled"
)

func CastToAuthLevel(text string) constants.AuthLevel {
	switch strings.ToLower(text) {
	case "public":
		return Public
	case "registered":
		return Registered
	case "controlled":
		return Controlled
	default:
		return Unknown
	}
}

func IsKnownAuthLevel(text string) bool {
	return CastToAuthLevel(text) != Unknown
}
