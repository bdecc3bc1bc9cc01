package variantType

import (
	"beacon/api/models/constants"
	"strings"
)

/*
	Structural variant classes understood
	by the Beacon v1 protocol
*/
const (
	Unknown constants.VariantType = ""

	INS constants.VariantType = "INS"
	DUP constants.VariantType = "DUP"
	DEL constants.VariantType = "DEL"
	INV constants.VariantType = "INV"
	BND constants.VariantType = "BND"
)

func CastToVariantType(text string) constants.VariantType {
	switch strings.ToUpper(text) {
	case "INS":
		return INS
	case "DUP":
		return DUP
	case "DEL":
		return DEL
	case "INV":
		return INV
	case "BND":
		return BND
	default:
		return Unknown
	}
}

func IsKnownVariantType(text string) bool {
	return CastToVariantType(text) != Unknown
}
