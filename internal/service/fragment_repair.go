package service

import (
	"strings"
	"unicode"
)

// Options produced by a model (or an OCR-style source) sometimes arrive with
// one logical answer broken into several consecutive short fragments. The
// repair below re-joins them. It is a heuristic: false positives and false
// negatives are acceptable outcomes, not errors.

// minOptionsForRepair keeps the heuristic away from genuinely short answer
// sets, where merging would almost always be a false positive.
const minOptionsForRepair = 5

var continuationWords = map[string]bool{
	"and":     true,
	"or":      true,
	"to":      true,
	"because": true,
	"but":     true,
	"nor":     true,
	"so":      true,
	"than":    true,
	"then":    true,
	"that":    true,
	"which":   true,
	"with":    true,
	"of":      true,
	"for":     true,
	"as":      true,
	"if":      true,
	"while":   true,
}

const continuationPunct = ",;:.)]"
const terminalPunct = ".!?)"

// RepairFragments merges continuation fragments into their preceding option
// and remaps correctIndex in lockstep. Pure: the input slice is never
// mutated. If fewer than minOptionsForRepair options come in, or merging
// would leave fewer than 2 options, the input is returned unchanged.
func RepairFragments(options []string, correctIndex int) ([]string, int) {
	if len(options) < minOptionsForRepair {
		return options, correctIndex
	}

	merged := []string{options[0]}
	remap := make([]int, len(options))
	remap[0] = 0

	for i := 1; i < len(options); i++ {
		frag := options[i]
		prev := merged[len(merged)-1]

		if isContinuation(frag) && !endsSentence(prev) {
			merged[len(merged)-1] = prev + " " + frag
		} else {
			merged = append(merged, frag)
		}
		remap[i] = len(merged) - 1
	}

	if len(merged) < 2 {
		return options, correctIndex
	}

	if correctIndex >= 0 && correctIndex < len(remap) {
		correctIndex = remap[correctIndex]
	}
	return merged, correctIndex
}

// isContinuation reports whether the fragment looks like the tail of the
// previous option rather than the start of a new one.
func isContinuation(frag string) bool {
	frag = strings.TrimSpace(frag)
	if frag == "" {
		return true
	}

	first := []rune(frag)[0]
	if unicode.IsLower(first) {
		return true
	}
	if strings.ContainsRune(continuationPunct, first) {
		return true
	}

	word := strings.ToLower(strings.TrimRight(strings.Fields(frag)[0], ",.;:"))
	return continuationWords[word]
}

func endsSentence(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	runes := []rune(s)
	return strings.ContainsRune(terminalPunct, runes[len(runes)-1])
}
