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

// Package movegen contains functionality to create moves on a chess
// position. It implements pseudo legal move generation, legal move
// generation (filtered through Position.IsLegalMove) and an on demand,
// phased generator for use in the search's move loop.
package movegen

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/frankkopp/FrankyGo/history"
	"github.com/frankkopp/FrankyGo/logging"
	"github.com/frankkopp/FrankyGo/moveslice"
	"github.com/frankkopp/FrankyGo/position"
	. "github.com/frankkopp/FrankyGo/types"
)

var log = logging.GetLog("movegen")

// GenMode selects which kind of moves GeneratePseudoLegalMoves /
// GenerateLegalMoves / GetNextMove should produce.
type GenMode int

// GenMode bit flags. GenAll is the union of GenCap and GenNonCap.
const (
	GenZero   GenMode = 0b00
	GenCap    GenMode = 0b01
	GenNonCap GenMode = 0b10
	GenAll    GenMode = 0b11
)

// states for the on demand move generator's phase state machine
const (
	odNew = iota
	odPv
	od1
	od2
	od3
	od4
	od5
	od6
	od7
	od8
	odEnd
)

// Movegen holds reusable move buffers plus PV/killer state for the on
// demand generator. Create one with NewMoveGen() - the zero value is not
// usable.
type Movegen struct {
	pseudoLegalMoves *moveslice.MoveSlice
	legalMoves       *moveslice.MoveSlice
	onDemandMoves    *moveslice.MoveSlice
	killerMoves      [2]Move

	pvMove       Move
	pvMovePushed bool

	historyData *history.History

	currentODStage     int
	currentIteratorKey position.Key
	takeIndex          int
}

// NewMoveGen creates a new, ready to use move generator.
func NewMoveGen() *Movegen {
	pseudoLegalMoves := moveslice.New(MaxMoves)
	legalMoves := moveslice.New(MaxMoves)
	onDemandMoves := moveslice.New(MaxMoves)
	return &Movegen{
		pseudoLegalMoves:   &pseudoLegalMoves,
		legalMoves:         &legalMoves,
		onDemandMoves:      &onDemandMoves,
		killerMoves:        [2]Move{MoveNone, MoveNone},
		pvMove:             MoveNone,
		historyData:        nil,
		currentODStage:     odNew,
		currentIteratorKey: 0,
	}
}

// SetHistoryData provides a pointer to the search's history data for the
// move generator so it can fold history count and counter move bonuses
// into its move ordering.
func (mg *Movegen) SetHistoryData(historyData *history.History) {
	mg.historyData = historyData
}

// GeneratePseudoLegalMoves generates all pseudo legal moves for the next
// player. Does not check if the king is left in check, or if it crosses an
// attacked square while castling - use GenerateLegalMoves or filter with
// Position.IsLegalMove for that.
func (mg *Movegen) GeneratePseudoLegalMoves(p *position.Position, mode GenMode) *moveslice.MoveSlice {
	mg.pseudoLegalMoves.Clear()
	if mode&GenCap != 0 {
		mg.generatePawnMoves(p, GenCap, mg.pseudoLegalMoves)
		mg.generateCastling(p, GenCap, mg.pseudoLegalMoves)
		mg.generateKingMoves(p, GenCap, mg.pseudoLegalMoves)
		mg.generateMoves(p, GenCap, mg.pseudoLegalMoves)
	}
	if mode&GenNonCap != 0 {
		mg.generatePawnMoves(p, GenNonCap, mg.pseudoLegalMoves)
		mg.generateCastling(p, GenNonCap, mg.pseudoLegalMoves)
		mg.generateKingMoves(p, GenNonCap, mg.pseudoLegalMoves)
		mg.generateMoves(p, GenNonCap, mg.pseudoLegalMoves)
	}
	// tag PV/killer moves with an extreme sort value so they bubble to
	// the front, then strip the tag back off before returning. Remaining
	// moves fall back to history count / counter move bonuses when history
	// data has been provided by the search.
	us := p.NextPlayer()
	mg.pseudoLegalMoves.ForEach(func(i int) {
		at := mg.pseudoLegalMoves.At(i)
		switch {
		case at.MoveOf() == mg.pvMove:
			mg.pseudoLegalMoves.Set(i, at.SetValue(ValueMax))
		case at.MoveOf() == mg.killerMoves[0]:
			mg.pseudoLegalMoves.Set(i, at.SetValue(-4000))
		case at.MoveOf() == mg.killerMoves[1]:
			mg.pseudoLegalMoves.Set(i, at.SetValue(-4001))
		case mg.historyData != nil:
			bonus := Value(mg.historyData.HistoryCount[us][at.From()][at.To()] / 100)
			if mg.historyData.CounterMoves[p.LastMove().From()][p.LastMove().To()] == at.MoveOf() {
				bonus += 500
			}
			mg.pseudoLegalMoves.Set(i, at.SetValue(bonus))
		}
	})
	mg.pseudoLegalMoves.Sort()
	mg.pseudoLegalMoves.ForEach(func(i int) {
		mg.pseudoLegalMoves.Set(i, mg.pseudoLegalMoves.At(i).MoveOf())
	})
	return mg.pseudoLegalMoves
}

// GenerateLegalMoves generates pseudo legal moves and filters out every
// move which would leave the mover's own king in check (or which crosses
// an attacked square while castling).
func (mg *Movegen) GenerateLegalMoves(p *position.Position, mode GenMode) *moveslice.MoveSlice {
	mg.GeneratePseudoLegalMoves(p, mode)
	mg.legalMoves.Clear()
	mg.pseudoLegalMoves.FilterCopy(mg.legalMoves, func(i int) bool {
		return p.IsLegalMove(mg.pseudoLegalMoves.At(i))
	})
	return mg.legalMoves
}

// GetNextMove returns the next move for the given position, phased
// (captures/non-captures, most valuable first) for use in a search move
// loop.
//
// If a PV move has been set with SetPvMove it is returned first, ahead of
// its normal place in the phase order, and is not repeated once the
// generator reaches the phase it would naturally appear in. Killer moves
// are moved to the front of the phase they are generated in, since we
// cannot know in advance whether a killer is even legal on this position
// without generating it.
//
// To reuse the generator on the same position call ResetOnDemand(). Moving
// to a different position resets the generator automatically.
func (mg *Movegen) GetNextMove(p *position.Position, mode GenMode) Move {
	if p.ZobristKey() != mg.currentIteratorKey {
		mg.onDemandMoves.Clear()
		mg.currentODStage = odNew
		mg.pvMovePushed = false
		mg.takeIndex = 0
		mg.currentIteratorKey = p.ZobristKey()
	}

	// takeIndex lets us consume moves from the front of the buffer
	// without shifting the remaining elements on every call.
	if mg.onDemandMoves.Len() == 0 {
		mg.fillOnDemandMoveList(p, mode)
	}

	if mg.onDemandMoves.Len() != 0 {
		if mg.currentODStage != od1 &&
			mg.pvMovePushed &&
			mg.onDemandMoves.At(mg.takeIndex).MoveOf() == mg.pvMove.MoveOf() {

			mg.takeIndex++
			mg.pvMovePushed = false

			if mg.takeIndex >= mg.onDemandMoves.Len() {
				mg.takeIndex = 0
				mg.onDemandMoves.Clear()
				mg.fillOnDemandMoveList(p, mode)
				if mg.onDemandMoves.Len() == 0 {
					return MoveNone
				}
			}
		}

		move := mg.onDemandMoves.At(mg.takeIndex).MoveOf()
		mg.takeIndex++
		if mg.takeIndex >= mg.onDemandMoves.Len() {
			mg.takeIndex = 0
			mg.onDemandMoves.Clear()
		}
		return move
	}

	mg.takeIndex = 0
	mg.pvMovePushed = false
	return MoveNone
}

// ResetOnDemand resets the on demand generator's phase state so it starts
// fresh on the next call to GetNextMove. Also clears the PV and killer
// moves.
func (mg *Movegen) ResetOnDemand() {
	mg.onDemandMoves.Clear()
	mg.currentODStage = odNew
	mg.currentIteratorKey = 0
	mg.pvMove = MoveNone
	mg.pvMovePushed = false
	mg.takeIndex = 0
}

// SetPvMove sets the move the on demand generator should return first.
func (mg *Movegen) SetPvMove(move Move) {
	mg.pvMove = move.MoveOf()
}

// StoreKiller records a killer move candidate. Keeps the two most recent
// distinct killers, most recent first.
func (mg *Movegen) StoreKiller(move Move) {
	moveOf := move.MoveOf()
	switch {
	case mg.killerMoves[0] == moveOf:
		return
	case mg.killerMoves[1] == moveOf:
		mg.killerMoves[1] = mg.killerMoves[0]
		mg.killerMoves[0] = moveOf
	default:
		mg.killerMoves[1] = mg.killerMoves[0]
		mg.killerMoves[0] = moveOf
	}
}

// HasLegalMove returns true if the next player has at least one legal
// move, without generating (and filtering) the full move list. Tries
// king moves first, then pawns, then officers, as these are the most
// likely to find a legal move quickly.
func (mg *Movegen) HasLegalMove(p *position.Position) bool {
	nextPlayer := p.NextPlayer()
	nextPlayerBb := p.OccupiedBb(nextPlayer)

	// king - castling is never the only legal move, as it always implies
	// a king or rook move is also available
	kingSquare := p.KingSquare(nextPlayer)
	tmpMoves := KingAttacks(kingSquare) &^ nextPlayerBb
	for tmpMoves != 0 {
		toSquare := tmpMoves.PopLsb()
		if p.IsLegalMove(CreateMove(kingSquare, toSquare, Normal, PtNone)) {
			return true
		}
	}

	myPawns := p.PiecesBb(nextPlayer, Pawn)
	opponentBb := p.OccupiedBb(nextPlayer.Flip())

	// pawn captures to the west
	tmpMoves = ShiftBitboard(myPawns, Direction(nextPlayer.MoveDirection())*North+West) & opponentBb
	for tmpMoves != 0 {
		toSquare := tmpMoves.PopLsb()
		fromSquare := toSquare.To(Direction(nextPlayer.Flip().MoveDirection())*North + East)
		if p.IsLegalMove(CreateMove(fromSquare, toSquare, Normal, PtNone)) {
			return true
		}
	}

	// pawn captures to the east
	tmpMoves = ShiftBitboard(myPawns, Direction(nextPlayer.MoveDirection())*North+East) & opponentBb
	for tmpMoves != 0 {
		toSquare := tmpMoves.PopLsb()
		fromSquare := toSquare.To(Direction(nextPlayer.Flip().MoveDirection())*North + West)
		if p.IsLegalMove(CreateMove(fromSquare, toSquare, Normal, PtNone)) {
			return true
		}
	}

	occupiedBb := p.OccupiedAll()

	// pawn single pushes - double pushes would be redundant here, since
	// finding one legal move is all we need
	tmpMoves = ShiftBitboard(myPawns, Direction(nextPlayer.MoveDirection())*North) &^ occupiedBb
	for tmpMoves != 0 {
		toSquare := tmpMoves.PopLsb()
		fromSquare := toSquare.To(Direction(nextPlayer.Flip().MoveDirection()) * North)
		if p.IsLegalMove(CreateMove(fromSquare, toSquare, Normal, PtNone)) {
			return true
		}
	}

	// officers
	for pt := Knight; pt <= Queen; pt++ {
		pieces := p.PiecesBb(nextPlayer, pt)
		for pieces != 0 {
			fromSquare := pieces.PopLsb()
			var moves Bitboard
			if pt == Knight {
				moves = KnightAttacks(fromSquare) &^ nextPlayerBb
			} else {
				moves = AttacksBb(pt, fromSquare, occupiedBb) &^ nextPlayerBb
			}
			for moves != 0 {
				toSquare := moves.PopLsb()
				if p.IsLegalMove(CreateMove(fromSquare, toSquare, Normal, PtNone)) {
					return true
				}
			}
		}
	}

	// en passant captures
	if enPassantSquare := p.GetEnPassantSquare(); enPassantSquare != SqNone {
		tmpMoves = ShiftBitboard(enPassantSquare.Bb(), Direction(nextPlayer.Flip().MoveDirection())*North+West) & myPawns
		if tmpMoves != 0 {
			fromSquare := tmpMoves.PopLsb()
			to := fromSquare.To(Direction(nextPlayer.MoveDirection())*North + East)
			if p.IsLegalMove(CreateMove(fromSquare, to, EnPassant, PtNone)) {
				return true
			}
		}
		tmpMoves = ShiftBitboard(enPassantSquare.Bb(), Direction(nextPlayer.Flip().MoveDirection())*North+East) & myPawns
		if tmpMoves != 0 {
			fromSquare := tmpMoves.PopLsb()
			to := fromSquare.To(Direction(nextPlayer.MoveDirection())*North + West)
			if p.IsLegalMove(CreateMove(fromSquare, to, EnPassant, PtNone)) {
				return true
			}
		}
	}

	return false
}

var regexUciMove = regexp.MustCompile("([a-h][1-8][a-h][1-8])([NBRQnbrq])?")

// GetMoveFromUci generates all legal moves and returns the one matching
// the given UCI move string, or MoveNone if there is no match. Not
// efficient - string based - so only use where performance doesn't
// matter (e.g. parsing a "position moves ..." command).
func (mg *Movegen) GetMoveFromUci(p *position.Position, uciMove string) Move {
	matches := regexUciMove.FindStringSubmatch(uciMove)
	if matches == nil {
		return MoveNone
	}
	movePart := matches[1]
	promotionPart := ""
	if len(matches) == 3 {
		promotionPart = strings.ToUpper(matches[2])
	}

	mg.GenerateLegalMoves(p, GenAll)
	for i := 0; i < mg.legalMoves.Len(); i++ {
		m := mg.legalMoves.At(i)
		if m.StringUci() == movePart+promotionPart {
			return m
		}
	}
	return MoveNone
}

var regexSanMove = regexp.MustCompile("([NBRQK])?([a-h])?([1-8])?x?([a-h][1-8]|O-O-O|O-O)(=?([NBRQ]))?([!?+#]*)?")

// GetMoveFromSan generates all legal moves and returns the one matching
// the given SAN move string, or MoveNone if there is no (unambiguous)
// match. Not efficient - string based - so only use where performance
// doesn't matter.
func (mg *Movegen) GetMoveFromSan(p *position.Position, sanMove string) Move {
	matches := regexSanMove.FindStringSubmatch(sanMove)
	if matches == nil {
		return MoveNone
	}

	pieceType := matches[1]
	disambFile := matches[2]
	disambRank := matches[3]
	toSquare := matches[4]
	promotion := matches[6]

	movesFound := 0
	moveFromSan := MoveNone

	mg.GenerateLegalMoves(p, GenAll)
	for i := 0; i < mg.legalMoves.Len(); i++ {
		genMove := mg.legalMoves.At(i)

		if genMove.MoveType() == Castling {
			var castlingString string
			switch genMove.To() {
			case SqG1, SqG8:
				castlingString = "O-O"
			case SqC1, SqC8:
				castlingString = "O-O-O"
			default:
				log.Errorf("move type Castling but unexpected to-square: %s", genMove.To().String())
				continue
			}
			if castlingString == toSquare {
				moveFromSan = genMove
				movesFound++
			}
			continue
		}

		if genMove.To().String() != toSquare {
			continue
		}

		legalPt := p.GetPiece(genMove.From()).TypeOf()
		legalPtChar := legalPt.Char()
		if (len(pieceType) == 0 || legalPtChar != pieceType) &&
			(len(pieceType) != 0 || legalPt != Pawn) {
			continue
		}
		if len(disambFile) != 0 && genMove.From().FileOf().String() != disambFile {
			continue
		}
		if len(disambRank) != 0 && genMove.From().RankOf().String() != disambRank {
			continue
		}
		if (len(promotion) != 0 && genMove.PromotionType().Char() != promotion) ||
			(len(promotion) == 0 && genMove.MoveType() == Promotion) {
			continue
		}

		moveFromSan = genMove
		movesFound++
	}

	switch {
	case movesFound > 1:
		log.Warningf("SAN move %s is ambiguous (%d matches) on %s", sanMove, movesFound, p.StringFen())
	case movesFound == 0 || !moveFromSan.IsValid():
		log.Warningf("SAN move %s not found on position %s", sanMove, p.StringFen())
	default:
		return moveFromSan
	}
	return MoveNone
}

// ValidateMove returns true if move is a legal move on position p.
func (mg *Movegen) ValidateMove(p *position.Position, move Move) bool {
	if move == MoveNone {
		return false
	}
	ml := mg.GenerateLegalMoves(p, GenAll)
	moveOf := move.MoveOf()
	for i := 0; i < ml.Len(); i++ {
		if ml.At(i).MoveOf() == moveOf {
			return true
		}
	}
	return false
}

// PvMove returns the currently set PV move.
func (mg *Movegen) PvMove() Move {
	return mg.pvMove
}

// KillerMoves returns a pointer to the two stored killer moves, most
// recent first.
func (mg *Movegen) KillerMoves() *[2]Move {
	return &mg.killerMoves
}

// String returns a short debug representation of the generator's state.
func (mg *Movegen) String() string {
	return fmt.Sprintf("MoveGen: { OnDemand Stage: %d, PV Move: %s, Killer 1: %s, Killer 2: %s }",
		mg.currentODStage, mg.pvMove.String(), mg.killerMoves[0].String(), mg.killerMoves[1].String())
}

// //////////////////////////////////////////////////////
// // Private
// //////////////////////////////////////////////////////

// fillOnDemandMoveList runs the phase state machine forward until a
// non-empty batch of moves has been produced, or there is nothing left to
// generate.
func (mg *Movegen) fillOnDemandMoveList(p *position.Position, mode GenMode) {
	for mg.onDemandMoves.Len() == 0 && mg.currentODStage < odEnd {
		switch mg.currentODStage {
		case odNew:
			mg.currentODStage = odPv
			fallthrough
		case odPv:
			if mg.pvMove != MoveNone {
				switch mode {
				case GenAll:
					mg.pvMovePushed = true
					mg.onDemandMoves.PushBack(mg.pvMove)
				case GenCap:
					if p.IsCapturingMove(mg.pvMove) {
						mg.pvMovePushed = true
						mg.onDemandMoves.PushBack(mg.pvMove)
					}
				case GenNonCap:
					if !p.IsCapturingMove(mg.pvMove) {
						mg.pvMovePushed = true
						mg.onDemandMoves.PushBack(mg.pvMove)
					}
				}
			}
			if mode&GenCap != 0 {
				mg.currentODStage = od1
			} else {
				mg.currentODStage = od4
			}
		case od1: // captures
			mg.generatePawnMoves(p, GenCap, mg.onDemandMoves)
			mg.currentODStage = od2
		case od2:
			mg.generateMoves(p, GenCap, mg.onDemandMoves)
			mg.currentODStage = od3
		case od3:
			mg.generateKingMoves(p, GenCap, mg.onDemandMoves)
			mg.currentODStage = od4
		case od4:
			if mode&GenNonCap != 0 {
				mg.currentODStage = od5
			} else {
				mg.currentODStage = odEnd
			}
		case od5: // non captures
			mg.generatePawnMoves(p, GenNonCap, mg.onDemandMoves)
			mg.pushKiller(mg.onDemandMoves)
			mg.currentODStage = od6
		case od6:
			mg.generateCastling(p, GenNonCap, mg.onDemandMoves)
			mg.pushKiller(mg.onDemandMoves)
			mg.currentODStage = od7
		case od7:
			mg.generateMoves(p, GenNonCap, mg.onDemandMoves)
			mg.pushKiller(mg.onDemandMoves)
			mg.currentODStage = od8
		case od8:
			mg.generateKingMoves(p, GenNonCap, mg.onDemandMoves)
			mg.pushKiller(mg.onDemandMoves)
			mg.currentODStage = odEnd
		}
		if mg.onDemandMoves.Len() > 0 {
			mg.onDemandMoves.Sort()
		}
	}
}

// pushKiller re-tags stored killer moves with an extreme sort value, once
// they actually show up in a generated batch, so the next Sort() moves
// them to the front.
func (mg *Movegen) pushKiller(ml *moveslice.MoveSlice) {
	for i := 0; i < ml.Len(); i++ {
		move := ml.At(i)
		switch move.MoveOf() {
		case mg.killerMoves[1]:
			ml.Set(i, move.SetValue(-4001))
		case mg.killerMoves[0]:
			ml.Set(i, move.SetValue(-4000))
		}
	}
}

func (mg *Movegen) generatePawnMoves(p *position.Position, mode GenMode, ml *moveslice.MoveSlice) {
	nextPlayer := p.NextPlayer()
	myPawns := p.PiecesBb(nextPlayer, Pawn)
	oppPieces := p.OccupiedBb(nextPlayer.Flip())
	gamePhase := p.GamePhase()
	piece := MakePiece(nextPlayer, Pawn)

	// Moves are tagged with a sort value so that, once sorted descending,
	// captures come first ordered by victim value minus attacker value,
	// then castling, then non-capturing queen and knight promotions, then
	// quiet moves by positional value; non-capturing rook and bishop
	// promotions sort last. Killer/PV moves are re-tagged separately so
	// they win any tie.

	if mode&GenCap != 0 {
		var tmpCaptures, promCaptures Bitboard

		for _, dir := range []Direction{West, East} {
			tmpCaptures = ShiftBitboard(myPawns, Direction(nextPlayer.MoveDirection())*North+dir) & oppPieces
			promCaptures = tmpCaptures & nextPlayer.PromotionRankBb()

			for promCaptures != 0 {
				toSquare := promCaptures.PopLsb()
				fromSquare := toSquare.To(Direction(nextPlayer.Flip().MoveDirection())*North - dir)
				value := Value(p.GetPiece(toSquare).ValueOf()-p.GetPiece(fromSquare).ValueOf()) +
					PosValue(piece, toSquare, gamePhase)
				ml.PushBack(CreateMoveValue(fromSquare, toSquare, Promotion, Queen, value+Value(Queen.ValueOf())))
				ml.PushBack(CreateMoveValue(fromSquare, toSquare, Promotion, Knight, value+Value(Knight.ValueOf())))
				ml.PushBack(CreateMoveValue(fromSquare, toSquare, Promotion, Rook, value+Value(Rook.ValueOf())-2000))
				ml.PushBack(CreateMoveValue(fromSquare, toSquare, Promotion, Bishop, value+Value(Bishop.ValueOf())-2000))
			}

			tmpCaptures &= ^nextPlayer.PromotionRankBb()
			for tmpCaptures != 0 {
				toSquare := tmpCaptures.PopLsb()
				fromSquare := toSquare.To(Direction(nextPlayer.Flip().MoveDirection())*North - dir)
				value := Value(p.GetPiece(toSquare).ValueOf()-p.GetPiece(fromSquare).ValueOf()) +
					PosValue(piece, toSquare, gamePhase)
				ml.PushBack(CreateMoveValue(fromSquare, toSquare, Normal, PtNone, value))
			}
		}

		if enPassantSquare := p.GetEnPassantSquare(); enPassantSquare != SqNone {
			for _, dir := range []Direction{West, East} {
				tmpCaptures = ShiftBitboard(enPassantSquare.Bb(), Direction(nextPlayer.Flip().MoveDirection())*North+dir) & myPawns
				if tmpCaptures != 0 {
					fromSquare := tmpCaptures.PopLsb()
					toSquare := fromSquare.To(Direction(nextPlayer.MoveDirection())*North - dir)
					value := PosValue(piece, toSquare, gamePhase)
					ml.PushBack(CreateMoveValue(fromSquare, toSquare, EnPassant, PtNone, value))
				}
			}
		}
	}

	if mode&GenNonCap != 0 {
		tmpMoves := ShiftBitboard(myPawns, Direction(nextPlayer.MoveDirection())*North) &^ p.OccupiedAll()
		tmpMovesDouble := ShiftBitboard(tmpMoves&nextPlayer.PawnDoubleRank(), Direction(nextPlayer.MoveDirection())*North) &^ p.OccupiedAll()

		promMoves := tmpMoves & nextPlayer.PromotionRankBb()
		for promMoves != 0 {
			toSquare := promMoves.PopLsb()
			fromSquare := toSquare.To(Direction(nextPlayer.Flip().MoveDirection()) * North)
			value := Value(-10_000)
			ml.PushBack(CreateMoveValue(fromSquare, toSquare, Promotion, Queen, value+Value(Queen.ValueOf())))
			ml.PushBack(CreateMoveValue(fromSquare, toSquare, Promotion, Knight, value+Value(Knight.ValueOf())))
			ml.PushBack(CreateMoveValue(fromSquare, toSquare, Promotion, Rook, value+Value(Rook.ValueOf())-2000))
			ml.PushBack(CreateMoveValue(fromSquare, toSquare, Promotion, Bishop, value+Value(Bishop.ValueOf())-2000))
		}

		for tmpMovesDouble != 0 {
			toSquare := tmpMovesDouble.PopLsb()
			fromSquare := toSquare.
				To(Direction(nextPlayer.Flip().MoveDirection()) * North).
				To(Direction(nextPlayer.Flip().MoveDirection()) * North)
			value := Value(-10_000) + PosValue(piece, toSquare, gamePhase)
			ml.PushBack(CreateMoveValue(fromSquare, toSquare, Normal, PtNone, value))
		}

		tmpMoves &= ^nextPlayer.PromotionRankBb()
		for tmpMoves != 0 {
			toSquare := tmpMoves.PopLsb()
			fromSquare := toSquare.To(Direction(nextPlayer.Flip().MoveDirection()) * North)
			value := Value(-10_000) + PosValue(piece, toSquare, gamePhase)
			ml.PushBack(CreateMoveValue(fromSquare, toSquare, Normal, PtNone, value))
		}
	}
}

func (mg *Movegen) generateCastling(p *position.Position, mode GenMode, ml *moveslice.MoveSlice) {
	if mode&GenNonCap == 0 {
		return
	}
	cr := p.CastlingRights()
	if cr == CastlingNone {
		return
	}
	occupied := p.OccupiedAll()
	nextPlayer := p.NextPlayer()

	// The castling path must be empty between king and rook. We reuse
	// Between() (which, unlike the teacher's old Intermediate(), includes
	// the far endpoint) and explicitly exclude the rook's own square.
	if nextPlayer == White {
		if cr.Has(CastlingWhiteOO) && Between(SqE1, SqH1)&^SqH1.Bb()&occupied == 0 {
			ml.PushBack(CreateMoveValue(SqE1, SqG1, Castling, PtNone, Value(-5000)))
		}
		if cr.Has(CastlingWhiteOOO) && Between(SqE1, SqA1)&^SqA1.Bb()&occupied == 0 {
			ml.PushBack(CreateMoveValue(SqE1, SqC1, Castling, PtNone, Value(-5000)))
		}
	} else {
		if cr.Has(CastlingBlackOO) && Between(SqE8, SqH8)&^SqH8.Bb()&occupied == 0 {
			ml.PushBack(CreateMoveValue(SqE8, SqG8, Castling, PtNone, Value(-5000)))
		}
		if cr.Has(CastlingBlackOOO) && Between(SqE8, SqA8)&^SqA8.Bb()&occupied == 0 {
			ml.PushBack(CreateMoveValue(SqE8, SqC8, Castling, PtNone, Value(-5000)))
		}
	}
}

func (mg *Movegen) generateKingMoves(p *position.Position, mode GenMode, ml *moveslice.MoveSlice) {
	nextPlayer := p.NextPlayer()
	piece := MakePiece(nextPlayer, King)
	gamePhase := p.GamePhase()
	fromSquare := p.PiecesBb(nextPlayer, King).PopLsb()

	pseudoMoves := KingAttacks(fromSquare)

	if mode&GenCap != 0 {
		captures := pseudoMoves & p.OccupiedBb(nextPlayer.Flip())
		for captures != 0 {
			toSquare := captures.PopLsb()
			value := Value(p.GetPiece(toSquare).ValueOf()-p.GetPiece(fromSquare).ValueOf()) +
				PosValue(piece, toSquare, gamePhase)
			ml.PushBack(CreateMoveValue(fromSquare, toSquare, Normal, PtNone, value))
		}
	}

	if mode&GenNonCap != 0 {
		nonCaptures := pseudoMoves &^ p.OccupiedAll()
		for nonCaptures != 0 {
			toSquare := nonCaptures.PopLsb()
			value := Value(-10_000) + PosValue(piece, toSquare, gamePhase)
			ml.PushBack(CreateMoveValue(fromSquare, toSquare, Normal, PtNone, value))
		}
	}
}

// generateMoves generates knight, bishop, rook and queen moves using the
// magic bitboard attack tables - occupancy-aware, so no separate blocked
// path check is needed for sliders.
func (mg *Movegen) generateMoves(p *position.Position, mode GenMode, ml *moveslice.MoveSlice) {
	nextPlayer := p.NextPlayer()
	gamePhase := p.GamePhase()
	occupiedBb := p.OccupiedAll()

	for pt := Knight; pt <= Queen; pt++ {
		pieces := p.PiecesBb(nextPlayer, pt)
		piece := MakePiece(nextPlayer, pt)

		for pieces != 0 {
			fromSquare := pieces.PopLsb()

			var moves Bitboard
			if pt == Knight {
				moves = KnightAttacks(fromSquare)
			} else {
				moves = AttacksBb(pt, fromSquare, occupiedBb)
			}

			if mode&GenCap != 0 {
				captures := moves & p.OccupiedBb(nextPlayer.Flip())
				for captures != 0 {
					toSquare := captures.PopLsb()
					value := Value(p.GetPiece(toSquare).ValueOf()-p.GetPiece(fromSquare).ValueOf()) +
						PosValue(piece, toSquare, gamePhase)
					ml.PushBack(CreateMoveValue(fromSquare, toSquare, Normal, PtNone, value))
				}
			}

			if mode&GenNonCap != 0 {
				nonCaptures := moves &^ occupiedBb
				for nonCaptures != 0 {
					toSquare := nonCaptures.PopLsb()
					value := Value(-10_000) + PosValue(piece, toSquare, gamePhase)
					ml.PushBack(CreateMoveValue(fromSquare, toSquare, Normal, PtNone, value))
				}
			}
		}
	}
}
