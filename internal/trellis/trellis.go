// Package trellis implements the CTC expanded-state lattice and the
// Viterbi decoder used by every alignment backend to turn an emission
// matrix into a frame-level state path.
package trellis

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidState is returned when the expanded state sequence is empty.
var ErrInvalidState = errors.New("trellis: empty expanded state sequence")

// ErrDecoderInvariant is returned when the decoder cannot recover any
// finite score at the final frame — a fatal condition per the decoder's
// invariants, not one that falls back silently.
var ErrDecoderInvariant = errors.New("trellis: no finite path reaches the last frame")

// BuildStateSymbols produces the CTC expanded state sequence
// [blankID, tokens[0], blankID, tokens[1], ..., blankID] of length 2N+1
// for N input tokens. It is pure: the same tokens and blankID always
// produce the same sequence.
func BuildStateSymbols(tokens []int, blankID int) []int {
	s := make([]int, 2*len(tokens)+1)
	s[0] = blankID
	for i, tok := range tokens {
		s[2*i+1] = tok
		s[2*i+2] = blankID
	}

	return s
}

var negInf = math.Inf(-1)

// Viterbi runs the classical CTC Viterbi decode over the expanded state
// lattice S against the T×V log-probability matrix E. Transitions from
// state j at frame t-1 to state j at frame t ("stay") or state j+1
// ("advance") are the only ones permitted; ties between stay and advance
// prefer stay. The returned path has length T and each entry indexes
// into S.
//
// An empty S is a hard error. An empty E (T=0) returns an empty path.
func Viterbi(emissions [][]float64, states []int) ([]int, error) {
	if len(states) == 0 {
		return nil, ErrInvalidState
	}

	t := len(emissions)
	if t == 0 {
		return []int{}, nil
	}

	numStates := len(states)

	scores := make([][]float64, t)
	backptr := make([][]int, t)
	for i := range scores {
		scores[i] = make([]float64, numStates)
		backptr[i] = make([]int, numStates)
		for j := range scores[i] {
			scores[i][j] = negInf
		}
	}

	if err := validateRow(emissions[0], states[0]); err != nil {
		return nil, err
	}
	scores[0][0] = emissions[0][states[0]]
	if numStates > 1 {
		if err := validateRow(emissions[0], states[1]); err != nil {
			return nil, err
		}
		scores[0][1] = emissions[0][states[1]]
	}

	for frame := 1; frame < t; frame++ {
		for j := 0; j < numStates; j++ {
			stay := scores[frame-1][j]

			move := negInf
			if j > 0 {
				move = scores[frame-1][j-1]
			}

			var best float64
			var bestPrev int

			switch {
			case stay == negInf && move == negInf:
				continue
			case stay >= move:
				best, bestPrev = stay, j
			default:
				best, bestPrev = move, j-1
			}

			if err := validateRow(emissions[frame], states[j]); err != nil {
				return nil, err
			}

			scores[frame][j] = best + emissions[frame][states[j]]
			backptr[frame][j] = bestPrev
		}
	}

	last := t - 1

	endCandidates := []int{numStates - 1}
	if numStates >= 2 {
		endCandidates = []int{numStates - 2, numStates - 1}
	}

	bestEnd := -1
	bestScore := negInf
	for _, j := range endCandidates {
		if scores[last][j] > bestScore {
			bestScore = scores[last][j]
			bestEnd = j
		}
	}

	if bestEnd < 0 || bestScore == negInf {
		return nil, ErrDecoderInvariant
	}

	path := make([]int, t)
	cur := bestEnd
	for frame := last; frame >= 0; frame-- {
		path[frame] = cur
		if frame > 0 {
			cur = backptr[frame][cur]
		}
	}

	return path, nil
}

func validateRow(row []float64, symbol int) error {
	if symbol < 0 || symbol >= len(row) {
		return fmt.Errorf("trellis: symbol id %d out of range for row of width %d", symbol, len(row))
	}

	return nil
}

// Span is a half-open frame interval [Start, End) assigned to a token.
type Span struct {
	Start int
	End   int
}

// TokenSpans collects, for each of N input tokens, the half-open frame
// interval during which the decoded path occupied that token's state
// (index 2k+1 in the expanded sequence). A token the path never visits
// yields the degenerate span {0, 0}.
func TokenSpans(path []int, n int) []Span {
	spans := make([]Span, n)

	for k := range spans {
		state := 2*k + 1
		start, end := -1, -1

		for t, s := range path {
			if s == state {
				if start < 0 {
					start = t
				}
				end = t
			}
		}

		if start < 0 {
			spans[k] = Span{Start: 0, End: 0}
			continue
		}

		spans[k] = Span{Start: start, End: end + 1}
	}

	return spans
}
