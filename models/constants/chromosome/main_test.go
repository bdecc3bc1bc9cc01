package chromosome

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidHumanChromosome(t *testing.T) {
	for _, chrom := range ValidListOfHumanChromosomes() {
		assert.True(t, IsValidHumanChromosome(chrom), chrom)
	}

	assert.False(t, IsValidHumanChromosome("0"))
	assert.False(t, IsValidHumanChromosome("23"))
	assert.False(t, IsValidHumanChromosome("chr1"))
	assert.False(t, IsValidHumanChromosome(""))

	// only the exact mitochondrial name counts
	assert.False(t, IsValidHumanChromosome("m"))
	assert.False(t, IsValidHumanChromosome("mm"))
	assert.False(t, IsValidHumanChromosome("chrm"))
}
