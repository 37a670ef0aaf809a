package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRepairFragmentsBelowThresholdUnchanged(t *testing.T) {
	options := []string{"Paris", "london", "Berlin", "and Madrid"}
	merged, correct := RepairFragments(options, 1)

	assert.Equal(t, options, merged)
	assert.Equal(t, 1, correct)
}

func TestRepairFragmentsMergesContinuations(t *testing.T) {
	options := []string{
		"The cell divides",
		"and produces two daughter cells",
		"The cell stops growing.",
		"Energy is stored",
		"in the mitochondria",
		"Nothing happens.",
	}

	merged, correct := RepairFragments(options, 0)

	assert.Equal(t, []string{
		"The cell divides and produces two daughter cells",
		"The cell stops growing.",
		"Energy is stored in the mitochondria",
		"Nothing happens.",
	}, merged)
	assert.Equal(t, 0, correct)
}

func TestRepairFragmentsRemapsCorrectIndex(t *testing.T) {
	options := []string{
		"The cell divides",
		"and produces two daughter cells",
		"The cell stops growing.",
		"Energy is stored",
		"in the mitochondria",
		"Nothing happens.",
	}

	// The correct option's own fragment merges into an earlier slot.
	_, correct := RepairFragments(options, 4)
	assert.Equal(t, 2, correct)

	// A later option shifts down after earlier merges are removed.
	_, correct = RepairFragments(options, 5)
	assert.Equal(t, 3, correct)

	_, correct = RepairFragments(options, 2)
	assert.Equal(t, 1, correct)
}

func TestRepairFragmentsContinuationSignals(t *testing.T) {
	options := []string{
		"Keeps the membrane intact",
		", which prevents leakage",
		"Breaks down proteins.",
		"And nothing else",
		"Stops all activity.",
		"Produces ATP.",
	}

	merged, _ := RepairFragments(options, 0)

	// Leading punctuation attaches; a capitalized continuation word does
	// not attach when the previous option already ended a sentence.
	assert.Equal(t, []string{
		"Keeps the membrane intact , which prevents leakage",
		"Breaks down proteins.",
		"And nothing else",
		"Stops all activity.",
		"Produces ATP.",
	}, merged)
}

func TestRepairFragmentsTerminalPunctuationBlocksMerge(t *testing.T) {
	options := []string{
		"It increases.",
		"it decreases.",
		"It stays constant.",
		"It oscillates.",
		"It vanishes.",
	}

	// Every previous option ends a sentence, so the lowercase start of
	// option 1 must not trigger a merge.
	merged, correct := RepairFragments(options, 3)
	assert.Equal(t, options, merged)
	assert.Equal(t, 3, correct)
}

func TestRepairFragmentsIdempotent(t *testing.T) {
	options := []string{
		"The cell divides",
		"and produces two daughter cells",
		"The cell stops growing",
		"Energy is stored",
		"in the mitochondria",
		"Nothing happens",
		"Proteins denature",
	}

	merged, correct := RepairFragments(options, 4)
	again, correctAgain := RepairFragments(merged, correct)

	assert.Equal(t, merged, again)
	assert.Equal(t, correct, correctAgain)
}

func TestRepairFragmentsNeverCollapsesBelowTwo(t *testing.T) {
	options := []string{
		"a first piece",
		"and a second",
		"and a third",
		"and a fourth",
		"and a fifth",
	}

	// Everything would merge into one option; the heuristic must back off
	// and return the input untouched.
	merged, correct := RepairFragments(options, 2)
	assert.Equal(t, options, merged)
	assert.Equal(t, 2, correct)
}
