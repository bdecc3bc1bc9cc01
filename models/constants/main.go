package constants

/*
	Defines a set of base level
	constants and enums to be used
	throughout the Beacon and it's
	associated services.
*/
type AssemblyId string
type AuthLevel string
type ResponseGranularity string

type VariantType string
