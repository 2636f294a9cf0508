package evolution

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelevo/neatcore/neat/genetics"
)

func TestGenerationLog_columnExtractorsMatchAppendedStats(t *testing.T) {
	var log GenerationLog
	log.Append(GenerationStats{Generation: 0, BestFitness: genetics.FitnessInfo{Primary: 1}, MeanFitness: 0.5, MeanComplexity: 3, SpeciesCount: 2})
	log.Append(GenerationStats{Generation: 1, BestFitness: genetics.FitnessInfo{Primary: 2}, MeanFitness: 1.5, MeanComplexity: 4, SpeciesCount: 3})

	assert.Equal(t, Floats{0.5, 1.5}, log.MeanFitnesses())
	assert.Equal(t, Floats{1, 2}, log.BestFitnesses())
	assert.Equal(t, Floats{3, 4}, log.MeanComplexities())
	assert.Equal(t, Floats{2, 3}, log.SpeciesCounts())
}

func TestGenerationLog_summarizeEmptyLog(t *testing.T) {
	var log GenerationLog
	assert.Equal(t, "no generations recorded", log.Summarize())
}

func TestGenerationLog_summarizeReportsLastGeneration(t *testing.T) {
	var log GenerationLog
	log.Append(GenerationStats{Generation: 0, BestFitness: genetics.FitnessInfo{Primary: 1}, MeanFitness: 0.5, SpeciesCount: 1})
	log.Append(GenerationStats{Generation: 1, BestFitness: genetics.FitnessInfo{Primary: 9}, MeanFitness: 4, SpeciesCount: 2, Stopped: true})

	summary := log.Summarize()
	assert.True(t, strings.Contains(summary, "stopped: true"))
	assert.True(t, strings.Contains(summary, "species: 2"))
}

func TestGenerationLog_writeNPZProducesNonEmptyOutput(t *testing.T) {
	var log GenerationLog
	log.Append(GenerationStats{Generation: 0, BestFitness: genetics.FitnessInfo{Primary: 1}, MeanFitness: 0.5, MeanComplexity: 2, SpeciesCount: 1})
	log.Append(GenerationStats{Generation: 1, BestFitness: genetics.FitnessInfo{Primary: 2}, MeanFitness: 1.0, MeanComplexity: 3, SpeciesCount: 2})

	var buf bytes.Buffer
	require.NoError(t, log.WriteNPZ(&buf))
	assert.NotZero(t, buf.Len())
}
