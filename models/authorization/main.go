package authorization

/*
	The reduction of a caller's bearer token and
	GA4GH passport visas down to the capabilities
	this beacon cares about.

	Naming note: 'RegisteredDatasetIds' holds the dataset ids
	granted by 'ControlledAccessGrants' passport visas (the
	upstream protocol uses 'controlled' terminology for these
	per-dataset grants). The separate 'BonaFide' flag unlocks
	every dataset of the 'controlled' tier wholesale.
*/
type AuthContext struct {
	// public access is always true; kept explicit
	// to mirror the (public, registered, bona-fide) triple
	PublicAccess bool

	RegisteredDatasetIds map[string]bool

	BonaFide bool
}

func NewPublicAuthContext() *AuthContext {
	return &AuthContext{
		PublicAccess:         true,
		RegisteredDatasetIds: map[string]bool{},
		BonaFide:             false,
	}
}
