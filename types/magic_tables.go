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

// rook/bishop magic tables and non-sliding pseudo attack tables.
// The per-square {magic, shift} triples themselves are computed offline by
// initMagics (types/magic.go) rather than embedded as literals; both are
// acceptable per the design notes as long as the resulting attack sets are
// correct, and computing them avoids shipping two more kilobyte tables.
var (
	rookTable   []Bitboard
	bishopTable []Bitboard
	rookMagics   [SqLength]Magic
	bishopMagics [SqLength]Magic

	rookDirections   = [4]Direction{North, East, South, West}
	bishopDirections = [4]Direction{Northeast, Southeast, Southwest, Northwest}

	// pseudoAttacks holds attack bitboards on an empty board for the
	// non-sliding piece types (King, Knight); sliding piece types are
	// looked up through AttacksBb instead.
	pseudoAttacks [PtLength][SqLength]Bitboard

	// pawnAttacks holds pawn capture attack bitboards per color and square.
	pawnAttacks [2][SqLength]Bitboard

	// between[a][b] is the bitboard of squares strictly between a and b,
	// plus b itself, if a and b share a rank/file/diagonal; zero otherwise.
	between [SqLength][SqLength]Bitboard
)

var knightDeltas = [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}

var allDirections = [8]Direction{North, East, South, West, Northeast, Southeast, Southwest, Northwest}

// initAttackTables computes the magic bitboard tables for sliding pieces,
// the pseudo attack tables for king/knight/pawn, and the between table.
// Called once from init() after the basic square bitboards are ready.
func initAttackTables() {
	rookTable = make([]Bitboard, 102400)
	bishopTable = make([]Bitboard, 5248)
	initMagics(&rookTable, &rookMagics, &rookDirections)
	initMagics(&bishopTable, &bishopMagics, &bishopDirections)

	for sq := SqA1; sq <= SqH8; sq++ {
		f := int(sq.FileOf())
		r := int(sq.RankOf())

		// knight
		var knight Bitboard
		for _, d := range knightDeltas {
			nf, nr := f+d[0], r+d[1]
			if nf >= 0 && nf < 8 && nr >= 0 && nr < 8 {
				knight.PushSquare(SquareOf(File(nf), Rank(nr)))
			}
		}
		pseudoAttacks[Knight][sq] = knight

		// king
		var king Bitboard
		for _, d := range allDirections {
			to := sq.To(d)
			if to.IsValid() {
				king.PushSquare(to)
			}
		}
		pseudoAttacks[King][sq] = king

		// pawn attacks (diagonal captures only)
		var whitePawn, blackPawn Bitboard
		if ne := sq.To(Northeast); ne.IsValid() {
			whitePawn.PushSquare(ne)
		}
		if nw := sq.To(Northwest); nw.IsValid() {
			whitePawn.PushSquare(nw)
		}
		if se := sq.To(Southeast); se.IsValid() {
			blackPawn.PushSquare(se)
		}
		if sw := sq.To(Southwest); sw.IsValid() {
			blackPawn.PushSquare(sw)
		}
		pawnAttacks[White][sq] = whitePawn
		pawnAttacks[Black][sq] = blackPawn
	}

	for a := SqA1; a <= SqH8; a++ {
		for b := SqA1; b <= SqH8; b++ {
			if a == b {
				continue
			}
			rookA := AttacksBb(Rook, a, BbZero)
			if rookA.Has(b) {
				between[a][b] = (AttacksBb(Rook, a, b.Bitboard()) & AttacksBb(Rook, b, a.Bitboard())) | b.Bitboard()
				continue
			}
			bishA := AttacksBb(Bishop, a, BbZero)
			if bishA.Has(b) {
				between[a][b] = (AttacksBb(Bishop, a, b.Bitboard()) & AttacksBb(Bishop, b, a.Bitboard())) | b.Bitboard()
			}
		}
	}
}

// Between returns the bitboard of squares strictly between a and b plus b
// itself, or zero if a and b do not share a rank, file, or diagonal.
func Between(a, b Square) Bitboard {
	return between[a][b]
}

// PawnAttacks returns the squares a pawn of color c on square s attacks.
func PawnAttacks(c Color, s Square) Bitboard {
	return pawnAttacks[c][s]
}

// KnightAttacks returns the squares a knight on square s attacks.
func KnightAttacks(s Square) Bitboard {
	return pseudoAttacks[Knight][s]
}

// KingAttacks returns the squares a king on square s attacks (not counting castling).
func KingAttacks(s Square) Bitboard {
	return pseudoAttacks[King][s]
}
