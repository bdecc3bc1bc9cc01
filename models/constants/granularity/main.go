package granularity

import (
	"beacon/api/models/constants"
	"strings"
)

/*
	'includeDatasetResponses' values accepted
	by the Beacon v1 protocol
*/
const (
	Undefined constants.ResponseGranularity = ""

	All  constants.ResponseGranularity = "ALL"
	Hit  constants.ResponseGranularity = "HIT"
	Miss constants.ResponseGranularity = "MISS"
	None constants.ResponseGranularity = "NONE"
)

func CastToGranularity(text string) constants.ResponseGranularity {
	switch strings.ToUpper(text) {
	case "ALL":
		return All
	case "HIT":
		return Hit
	case "MISS":
		return Miss
	case "NONE":
		return None
	default:
		return Undefined
	}
}

func IsKnownGranularity(text string) bool {
	return CastToGranularity(text) != Undefined
}
