package utils

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

/*
	Deterministic identity of an exact SNV/indel allele.

	The ingestion pipeline writes variant documents under this
	id; exact-match queries recompute it from the same six
	fields. Both sides must use this function, or exact
	lookups silently return false negatives.
*/
func VariantFingerprint(referenceName string, start int, end int,
	referenceBases string, alternateBases string, assemblyId string) string {

	joined := strings.Join([]string{
		referenceName,
		fmt.Sprint(start),
		fmt.Sprint(end),
		referenceBases,
		alternateBases,
		assemblyId,
	}, "_")

	sum := md5.Sum([]byte(joined))
	return hex.EncodeToString(sum[:])
}
