package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVariantFingerprint(t *testing.T) {
	t.Run("should be deterministic and match the indexed layout", func(t *testing.T) {
		// md5 of "1_100_101_A_T_GRCh37"
		shouldBe := "61104a0ee5f57316d332e6aba79ab9f5"

		firstRun := VariantFingerprint("1", 100, 101, "A", "T", "GRCh37")
		secondRun := VariantFingerprint("1", 100, 101, "A", "T", "GRCh37")

		assert.Equal(t, shouldBe, firstRun)
		assert.Equal(t, firstRun, secondRun)
	})

	t.Run("should change when any identity field changes", func(t *testing.T) {
		base := VariantFingerprint("1", 100, 101, "A", "T", "GRCh37")

		assert.NotEqual(t, base, VariantFingerprint("2", 100, 101, "A", "T", "GRCh37"))
		assert.NotEqual(t, base, VariantFingerprint("1", 99, 101, "A", "T", "GRCh37"))
		assert.NotEqual(t, base, VariantFingerprint("1", 100, 102, "A", "T", "GRCh37"))
		assert.NotEqual(t, base, VariantFingerprint("1", 100, 101, "G", "T", "GRCh37"))
		assert.NotEqual(t, base, VariantFingerprint("1", 100, 101, "A", "C", "GRCh37"))
		assert.NotEqual(t, base, VariantFingerprint("1", 100, 101, "A", "T", "GRCh38"))
	})
}
