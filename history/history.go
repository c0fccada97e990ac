/*
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

// Package history provides data structures and functionality to manage
// history driven move tables (e.g. history counter, counter moves, etc.)
package history

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/frankkopp/FrankyGo/position"
	. "github.com/frankkopp/FrankyGo/types"
)

var out = message.NewPrinter(language.German)

// historyMax bounds the history counters. The gravity formula in
// UpdateHistory keeps values within [-historyMax, historyMax] so the
// counter saturates instead of overflowing on long searches.
const historyMax = 16_000

// correctionTableSize is the number of buckets the pawn-structure keyed
// correction history is hashed into. A power of two so the index can be
// taken with a simple mask.
const correctionTableSize = 1 << 14

// correctionGrain scales the stored correction so it can accumulate a
// weighted average across many updates without losing precision while
// staying inside an int32.
const correctionGrain = 256

// correctionMax bounds the correction term (after dividing by
// correctionGrain) that may be applied to a static evaluation.
const correctionMax = 128

// History is a data structure updated during search to provide the move
// generator with valuable information for move sorting, and to keep a
// running correction between static evaluation and search results keyed
// on pawn structure.
type History struct {
	HistoryCount [2][64][64]int64
	CounterMoves [64][64]Move

	// pawnCorrection accumulates, per side to move, a weighted-average
	// correction between the static evaluation and the value a search
	// actually found for positions sharing the same pawn structure.
	pawnCorrection [2][correctionTableSize]int32
}

// NewHistory creates a new History instance.
func NewHistory() *History {
	return &History{}
}

// Clear resets all history counters, counter moves and correction history
// entries to zero.
func (h *History) Clear() {
	*h = History{}
}

// UpdateHistory applies a gravity-bounded bonus (or malus, with a negative
// bonus) to the history counter for a move of the given color. The update
// shrinks towards zero as the counter approaches historyMax so repeated
// cutoffs saturate instead of growing without bound.
// https://www.chessprogramming.org/History_Heuristic
func (h *History) UpdateHistory(us Color, from Square, to Square, bonus int64) {
	if bonus > historyMax {
		bonus = historyMax
	} else if bonus < -historyMax {
		bonus = -historyMax
	}
	current := &h.HistoryCount[us][from][to]
	*current += bonus - *current*abs64(bonus)/historyMax
}

// correctionIndex maps a pawn structure key to a correction table bucket.
// The side to move is not part of the index.
func correctionIndex(key position.Key) uint64 {
	return uint64(key) & (correctionTableSize - 1)
}

// UpdateCorrection folds the difference between a static evaluation and the
// value a search found for the same position into the pawn-structure keyed
// correction table. The update is weighted by search depth (deeper searches
// are trusted more) and bounded the same way as UpdateHistory so the
// correction converges to a running average rather than drifting.
func (h *History) UpdateCorrection(us Color, pawnKey position.Key, depth int, diff Value) {
	idx := correctionIndex(pawnKey)
	weight := int32(depth)
	if weight > 16 {
		weight = 16
	}
	bonus := int32(diff) * correctionGrain * weight / 16
	bound := int32(correctionMax * correctionGrain)
	if bonus > bound {
		bonus = bound
	} else if bonus < -bound {
		bonus = -bound
	}
	current := &h.pawnCorrection[us][idx]
	*current += bonus - *current*abs32(bonus)/bound
}

// CorrectedEval applies the accumulated pawn-structure correction for the
// given side and pawn key to a static evaluation.
func (h *History) CorrectedEval(us Color, pawnKey position.Key, staticEval Value) Value {
	idx := correctionIndex(pawnKey)
	correction := Value(h.pawnCorrection[us][idx] / correctionGrain)
	corrected := staticEval + correction
	if corrected > ValueCheckMateThreshold {
		corrected = ValueCheckMateThreshold
	} else if corrected < -ValueCheckMateThreshold {
		corrected = -ValueCheckMateThreshold
	}
	return corrected
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

func (h History) String() string {
	sb := strings.Builder{}
	for sf := SqA1; sf < SqNone; sf++ {
		for st := SqA1; st < SqNone; st++ {
			sb.WriteString(out.Sprintf("Move=%s%s: ", sf.String(), st.String()))
			for c := White; c <= 1; c++ {
				count := h.HistoryCount[c][sf][st]
				sb.WriteString(out.Sprintf("%s=%-7d ", c.String(), count))
			}
			m := h.CounterMoves[sf][st]
			sb.WriteString(out.Sprintf("cm=%s\n", m.StringUci()))
		}
	}
	return sb.String()
}
