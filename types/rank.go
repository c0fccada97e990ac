/*
 * FrankyGo - UCI chess engine in GO for learning purposes
 *
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

package types

// Rank represents a rank (row) on the chess board, rank 1..8 == 0..7
type Rank int8

//noinspection GoUnusedConst
const (
	Rank1    Rank = iota // 0
	Rank2                // 1
	Rank3                // 2
	Rank4                // 3
	Rank5                // 4
	Rank6                // 5
	Rank7                // 6
	Rank8                // 7
	RankNone             // 8
	RankLength = 8
)

// IsValid checks if r represents a valid rank on a chess board (0..7)
func (r Rank) IsValid() bool {
	return r >= Rank1 && r <= Rank8
}

// Bb returns a bitboard with all squares of this rank set
func (r Rank) Bb() Bitboard {
	return Rank1_Bb << (8 * r)
}

// Str returns the single digit label for the rank, "-" if invalid
func (r Rank) Str() string {
	if !r.IsValid() {
		return "-"
	}
	return string(rune('1') + rune(r))
}

// String returns the single digit label for the rank, "-" if invalid
func (r Rank) String() string {
	return r.Str()
}
