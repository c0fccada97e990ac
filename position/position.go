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

// Package position represents data structures and functions for a chess
// board and its position.
// It uses an 8x8 piece board plus magic-bitboard piece sets, a stack of
// per-ply game states for undo and repetition detection, zobrist keys for
// transposition tables, and incrementally maintained material and
// positional value counters.
//
// Create a new instance with NewPosition(...) or NewPositionFen(fen) to
// get a position based on a FEN string.
package position

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/frankkopp/FrankyGo/assert"
	"github.com/frankkopp/FrankyGo/logging"
	. "github.com/frankkopp/FrankyGo/types"
)

var log = logging.GetLog("position")

// StartFen is the fen of the standard chess starting position.
const StartFen string = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Key is used for zobrist keys in chess positions.
// Zobrist keys need all 64 bits for distribution.
type Key uint64

// RepetitionHistory is the sequence of zobrist keys produced by the moves
// played so far on a Position, in play order. Exposed so search-level
// draw handling can inspect the history directly if ever needed.
type RepetitionHistory []Key

// GameState is the per-ply state saved before a move is made so that
// UndoMove/UndoNullMove can restore the position exactly.
type GameState struct {
	zobristKey      Key
	move            Move
	fromPiece       Piece
	capturedPiece   Piece
	castlingRights  CastlingRights
	enpassantSquare Square
	halfMoveClock   int
	hasCheckFlag    int
}

const maxHistory int = MaxMoves

// state flags for cached values
const (
	flagTBD   int = 0
	flagFalse int = 1
	flagTrue  int = 2
)

var zobristInitialized = false

// Position represents the chess board and its position.
// It uses an 8x8 piece board and magic bitboards, a stack for undo moves,
// zobrist keys for transposition tables, and material/positional value
// counters.
//
// Needs to be created with NewPosition() or NewPositionFen(fen).
type Position struct {

	// The zobrist key to use as a hash key in transposition tables.
	// Updated incrementally every time a state variable changes.
	zobristKey Key

	// Board State
	// unique chess position (exception is 3-fold repetition which is
	// also not represented in a FEN string)
	board           [SqLength]Piece
	castlingRights  CastlingRights
	enPassantSquare Square
	halfMoveClock   int
	nextPlayer      Color

	// Extended Board State
	// not necessary for a unique position
	kingSquare         [ColorLength]Square
	nextHalfMoveNumber int
	piecesBb           [ColorLength][PtLength]Bitboard
	occupiedBb         [ColorLength]Bitboard

	// history information for undo and repetition detection
	historyCounter int
	history        [maxHistory]GameState

	// Calculated by doMove/undoMove.

	// Material value will always be up to date
	material        [ColorLength]Value
	materialNonPawn [ColorLength]Value
	// Positional value will always be up to date
	psqMidValue [ColorLength]Value
	psqEndValue [ColorLength]Value
	// Game phase value
	gamePhase int

	// caches a hasCheck flag for the current position. Set after a call
	// to HasCheck() and reset to flagTBD every time a move is made or
	// unmade.
	hasCheckFlag int
}

// //////////////////////////////////////////////////////
// // Public functions
// //////////////////////////////////////////////////////

// NewPosition creates a new position.
// Called without an argument it returns the standard starting position.
// Given a fen string it builds a position from it, ignoring any further
// arguments. Panics if the fen is invalid - use NewPositionFen if the fen
// comes from an untrusted source and the error needs to be handled.
func NewPosition(fen ...string) *Position {
	if len(fen) == 0 {
		p, _ := NewPositionFen(StartFen)
		return p
	}
	p, err := NewPositionFen(fen[0])
	if err != nil {
		panic(fmt.Sprintf("fen for position setup not valid and position can't be created: %s", err))
	}
	return p
}

// NewPositionFen creates a new position from the given fen string.
// Returns nil and a wrapped error (see errors.go) if the fen was invalid.
func NewPositionFen(fen string) (*Position, error) {
	if !zobristInitialized {
		initZobrist()
		zobristInitialized = true
	}
	p := &Position{}
	if e := p.setupBoard(fen); e != nil {
		log.Warningf("fen for position setup not valid and position can't be created: %s", e)
		return nil, e
	}
	return p, nil
}

// DoMove commits a move to the board. Due to performance there is no check
// if this move is legal on the current position - legal check needs to be
// done beforehand. Usually the move will be generated by a MoveGenerator
// and therefore assumed legal anyway.
func (p *Position) DoMove(m Move) {
	fromSq := m.From()
	fromPc := p.board[fromSq]
	myColor := fromPc.ColorOf()
	toSq := m.To()
	targetPc := p.board[toSq]

	assert.Assert(m.IsValid(), "Position DoMove: Invalid move %s", m.String())
	assert.Assert(fromPc != PieceNone, "Position DoMove: No piece on %s for move %s", fromSq.String(), m.StringUci())
	assert.Assert(myColor == p.nextPlayer, "Position DoMove: Piece to move does not belong to next player %s", fromPc.String())
	assert.Assert(targetPc.TypeOf() != King, "Position DoMove: King cannot be captured yet target piece is %s", targetPc.String())

	// save state of board for undo - overwrite the history slot in place,
	// no allocation
	h := p.historyCounter
	p.history[h] = GameState{
		zobristKey:      p.zobristKey,
		move:            m,
		fromPiece:       fromPc,
		capturedPiece:   targetPc,
		castlingRights:  p.castlingRights,
		enpassantSquare: p.enPassantSquare,
		halfMoveClock:   p.halfMoveClock,
		hasCheckFlag:    p.hasCheckFlag,
	}
	p.historyCounter++
	assert.Assert(p.historyCounter < MaxMoves, "Position DoMove: Can't have more moves than MaxMoves=%d", MaxMoves)

	switch m.MoveType() {
	case Normal:
		p.doNormalMove(fromSq, toSq, targetPc, fromPc, myColor)
	case Promotion:
		p.doPromotionMove(m, fromPc, myColor, toSq, targetPc, fromSq)
	case EnPassant:
		p.doEnPassantMove(toSq, myColor, fromPc, fromSq)
	case Castling:
		p.doCastlingMove(fromPc, myColor, toSq, fromSq)
	}

	p.hasCheckFlag = flagTBD
	p.nextHalfMoveNumber++
	p.nextPlayer = p.nextPlayer.Flip()
	p.zobristKey ^= zobristBase.nextPlayer
}

// UndoMove resets the position to the state before the last move was made.
func (p *Position) UndoMove() {
	assert.Assert(p.historyCounter > 0, "Position UndoMove: Cannot undo initial position")

	p.historyCounter--
	p.nextHalfMoveNumber--
	p.nextPlayer = p.nextPlayer.Flip()
	h := p.historyCounter
	move := p.history[h].move

	switch move.MoveType() {
	case Normal:
		p.movePiece(move.To(), move.From())
		if p.history[h].capturedPiece != PieceNone {
			p.putPiece(p.history[h].capturedPiece, move.To())
		}
	case Promotion:
		p.removePiece(move.To())
		p.putPiece(MakePiece(p.nextPlayer, Pawn), move.From())
		if p.history[h].capturedPiece != PieceNone {
			p.putPiece(p.history[h].capturedPiece, move.To())
		}
	case EnPassant:
		p.movePiece(move.To(), move.From())
		p.putPiece(MakePiece(p.nextPlayer.Flip(), Pawn), move.To().To(Direction(p.nextPlayer.Flip().MoveDirection())*North))
	case Castling:
		p.movePiece(move.To(), move.From()) // King
		switch move.To() {
		case SqG1:
			p.movePiece(SqF1, SqH1) // Rook
		case SqC1:
			p.movePiece(SqD1, SqA1) // Rook
		case SqG8:
			p.movePiece(SqF8, SqH8) // Rook
		case SqC8:
			p.movePiece(SqD8, SqA8) // Rook
		default:
			panic("Invalid castle move!")
		}
	}

	p.castlingRights = p.history[h].castlingRights
	p.enPassantSquare = p.history[h].enpassantSquare
	p.halfMoveClock = p.history[h].halfMoveClock
	p.hasCheckFlag = p.history[h].hasCheckFlag
	p.zobristKey = p.history[h].zobristKey
}

// DoNullMove is used for null move pruning. The position is unchanged
// except that the next player to move flips and any en passant square is
// cleared. The state before the null move is saved so UndoNullMove can
// restore it.
func (p *Position) DoNullMove() {
	h := p.historyCounter
	p.history[h] = GameState{
		zobristKey:      p.zobristKey,
		move:            MoveNone,
		fromPiece:       PieceNone,
		capturedPiece:   PieceNone,
		castlingRights:  p.castlingRights,
		enpassantSquare: p.enPassantSquare,
		halfMoveClock:   p.halfMoveClock,
		hasCheckFlag:    p.hasCheckFlag,
	}
	p.historyCounter++
	p.hasCheckFlag = flagTBD
	p.clearEnPassant()
	p.nextHalfMoveNumber++
	p.nextPlayer = p.nextPlayer.Flip()
	p.zobristKey ^= zobristBase.nextPlayer
}

// UndoNullMove restores the state from before the matching DoNullMove call.
func (p *Position) UndoNullMove() {
	p.historyCounter--
	p.nextHalfMoveNumber--
	p.nextPlayer = p.nextPlayer.Flip()
	h := p.historyCounter
	p.castlingRights = p.history[h].castlingRights
	p.enPassantSquare = p.history[h].enpassantSquare
	p.halfMoveClock = p.history[h].halfMoveClock
	p.hasCheckFlag = p.history[h].hasCheckFlag
	p.zobristKey = p.history[h].zobristKey
}

// IsAttacked checks if the given square is attacked by a piece of the
// given color.
func (p *Position) IsAttacked(sq Square, by Color) bool {
	occupied := p.OccupiedAll()

	if PawnAttacks(by.Flip(), sq)&p.piecesBb[by][Pawn] != 0 ||
		KnightAttacks(sq)&p.piecesBb[by][Knight] != 0 ||
		KingAttacks(sq)&p.piecesBb[by][King] != 0 {
		return true
	}

	if AttacksBb(Bishop, sq, occupied)&(p.piecesBb[by][Bishop]|p.piecesBb[by][Queen]) != 0 ||
		AttacksBb(Rook, sq, occupied)&(p.piecesBb[by][Rook]|p.piecesBb[by][Queen]) != 0 {
		return true
	}

	if p.enPassantSquare != SqNone {
		switch by {
		case White:
			capturer := p.enPassantSquare.To(South)
			if p.board[capturer] == BlackPawn && capturer == sq {
				if p.board[sq.To(West)] == WhitePawn {
					return true
				}
				return p.board[sq.To(East)] == WhitePawn
			}
		case Black:
			capturer := p.enPassantSquare.To(North)
			if p.board[capturer] == WhitePawn && capturer == sq {
				if p.board[sq.To(West)] == BlackPawn {
					return true
				}
				return p.board[sq.To(East)] == BlackPawn
			}
		}
	}
	return false
}

// IsLegalMove tests if a move is legal on the current position: the king
// must not be left in check afterwards, and may not cross an attacked
// square while castling.
func (p *Position) IsLegalMove(move Move) bool {
	if move.MoveType() == Castling {
		if p.IsAttacked(move.From(), p.nextPlayer.Flip()) {
			return false
		}
		switch move.To() {
		case SqG1:
			if p.IsAttacked(SqF1, p.nextPlayer.Flip()) {
				return false
			}
		case SqC1:
			if p.IsAttacked(SqD1, p.nextPlayer.Flip()) {
				return false
			}
		case SqG8:
			if p.IsAttacked(SqF8, p.nextPlayer.Flip()) {
				return false
			}
		case SqC8:
			if p.IsAttacked(SqD8, p.nextPlayer.Flip()) {
				return false
			}
		}
	}
	p.DoMove(move)
	legal := !p.IsAttacked(p.kingSquare[p.nextPlayer.Flip()], p.nextPlayer)
	p.UndoMove()
	return legal
}

// WasLegalMove tests if the last move made on this position was legal:
// the king of the player who just moved must not be in check, and if the
// last move was castling, the king must not have crossed or started on
// an attacked square. If there is no last move, it simply checks if the
// opponent's king is currently attacked.
func (p *Position) WasLegalMove() bool {
	if p.IsAttacked(p.kingSquare[p.nextPlayer.Flip()], p.nextPlayer) {
		return false
	}
	if p.historyCounter > 0 {
		move := p.history[p.historyCounter-1].move
		if move.MoveType() == Castling {
			if p.IsAttacked(move.From(), p.nextPlayer) {
				return false
			}
			switch move.To() {
			case SqG1:
				if p.IsAttacked(SqF1, p.nextPlayer) {
					return false
				}
			case SqC1:
				if p.IsAttacked(SqD1, p.nextPlayer) {
					return false
				}
			case SqG8:
				if p.IsAttacked(SqF8, p.nextPlayer) {
					return false
				}
			case SqC8:
				if p.IsAttacked(SqD8, p.nextPlayer) {
					return false
				}
			}
		}
	}
	return true
}

// HasCheck returns true if the next player is in check. Cached for the
// current position, so repeated calls between moves are cheap.
func (p *Position) HasCheck() bool {
	if p.hasCheckFlag != flagTBD {
		return p.hasCheckFlag == flagTrue
	}
	check := p.IsAttacked(p.kingSquare[p.nextPlayer], p.nextPlayer.Flip())
	if check {
		p.hasCheckFlag = flagTrue
	} else {
		p.hasCheckFlag = flagFalse
	}
	return check
}

// IsCapturingMove returns true if the move captures an enemy piece
// (including en passant).
func (p *Position) IsCapturingMove(move Move) bool {
	return p.occupiedBb[p.nextPlayer.Flip()].Has(move.To()) || move.MoveType() == EnPassant
}

// GivesCheck returns true if playing move on the current position would
// put the opponent's king in check.
func (p *Position) GivesCheck(move Move) bool {
	us := p.nextPlayer
	them := us.Flip()
	kingSq := p.kingSquare[them]

	fromSq := move.From()
	toSq := move.To()
	fromPt := p.board[fromSq].TypeOf()
	epTargetSq := SqNone
	moveType := move.MoveType()

	switch moveType {
	case Promotion:
		fromPt = move.PromotionType()
	case Castling:
		fromPt = Rook
		switch toSq {
		case SqG1:
			toSq = SqF1
		case SqC1:
			toSq = SqD1
		case SqG8:
			toSq = SqF8
		case SqC8:
			toSq = SqD8
		}
	case EnPassant:
		epTargetSq = toSq.To(Direction(them.MoveDirection()) * North)
	}

	boardAfterMove := p.OccupiedAll()
	boardAfterMove.PopSquare(fromSq)
	boardAfterMove.PushSquare(toSq)
	if moveType == EnPassant {
		boardAfterMove.PopSquare(epTargetSq)
	}

	switch fromPt {
	case Pawn:
		if PawnAttacks(us, toSq).Has(kingSq) {
			return true
		}
	case King:
		// king moves can't give direct check
	default:
		if AttacksBb(fromPt, toSq, boardAfterMove).Has(kingSq) {
			return true
		}
	}

	// revealed checks - only sliding pieces can be uncovered; en passant
	// is handled above by removing the captured pawn from boardAfterMove
	switch {
	case AttacksBb(Bishop, kingSq, boardAfterMove)&p.piecesBb[us][Bishop] != 0:
		return true
	case AttacksBb(Rook, kingSq, boardAfterMove)&p.piecesBb[us][Rook] != 0:
		return true
	case AttacksBb(Queen, kingSq, boardAfterMove)&p.piecesBb[us][Queen] != 0:
		return true
	}
	return false
}

// CheckRepetitions returns true if the current position has occurred
// reps times before in the move history (3-fold repetition is
// CheckRepetitions(2)).
func (p *Position) CheckRepetitions(reps int) bool {
	counter := 0
	i := p.historyCounter - 2
	lastHalfMove := p.halfMoveClock
	for i >= 0 {
		// once the half move clock resets, no position before that point
		// can repeat the current one - an irreversible move was made
		if p.history[i].halfMoveClock >= lastHalfMove {
			break
		}
		lastHalfMove = p.history[i].halfMoveClock
		if p.zobristKey == p.history[i].zobristKey {
			counter++
		}
		if counter >= reps {
			return true
		}
		i -= 2
	}
	return false
}

// RepetitionHistory returns the zobrist keys of the moves played so far
// on this position, in play order.
func (p *Position) RepetitionHistory() RepetitionHistory {
	keys := make(RepetitionHistory, p.historyCounter)
	for i := 0; i < p.historyCounter; i++ {
		keys[i] = p.history[i].zobristKey
	}
	return keys
}

// HasInsufficientMaterial returns true if no side has enough material to
// force a mate (does not rule out a helpmate where the opponent
// cooperates in being mated).
func (p *Position) HasInsufficientMaterial() bool {
	if p.piecesBb[White][Pawn].PopCount() != 0 || p.piecesBb[Black][Pawn].PopCount() != 0 {
		return false
	}
	whiteNonPawn := int(p.materialNonPawn[White])
	blackNonPawn := int(p.materialNonPawn[Black])
	bishopValue := Bishop.ValueOf()
	knightValue := Knight.ValueOf()

	if whiteNonPawn == 0 && blackNonPawn == 0 {
		return true
	}
	if whiteNonPawn <= bishopValue && blackNonPawn == 0 {
		return true
	}
	if blackNonPawn <= bishopValue && whiteNonPawn == 0 {
		return true
	}
	if whiteNonPawn == 2*knightValue && blackNonPawn == 0 {
		return true
	}
	if blackNonPawn == 2*knightValue && whiteNonPawn == 0 {
		return true
	}
	if whiteNonPawn == 2*bishopValue && blackNonPawn == bishopValue {
		return true
	}
	if blackNonPawn == 2*bishopValue && whiteNonPawn == bishopValue {
		return true
	}
	if whiteNonPawn == 2*bishopValue || blackNonPawn == 2*bishopValue {
		return false
	}
	if (whiteNonPawn < 2*bishopValue && blackNonPawn <= bishopValue) ||
		(blackNonPawn < 2*bishopValue && whiteNonPawn <= bishopValue) {
		return true
	}
	return false
}

// String returns a string representing the position: fen, board matrix,
// game phase, and material/positional values.
func (p *Position) String() string {
	var os strings.Builder
	os.WriteString(p.StringFen())
	os.WriteString("\n")
	os.WriteString(p.StringBoard())
	os.WriteString("\n")
	os.WriteString(fmt.Sprintf("Next Player    : %s\n", p.nextPlayer.String()))
	os.WriteString(fmt.Sprintf("Game Phase     : %d\n", p.gamePhase))
	os.WriteString(fmt.Sprintf("Material White : %d\n", p.material[White]))
	os.WriteString(fmt.Sprintf("Material Black : %d\n", p.material[Black]))
	os.WriteString(fmt.Sprintf("Pos Value White: %d/%d\n", p.psqMidValue[White], p.psqEndValue[White]))
	os.WriteString(fmt.Sprintf("Pos Value Black: %d/%d\n", p.psqMidValue[Black], p.psqEndValue[Black]))
	return os.String()
}

// StringFen returns a string with the FEN of the current position.
func (p *Position) StringFen() string {
	return p.fen()
}

// StringBoard returns a visual matrix of the board and pieces.
func (p *Position) StringBoard() string {
	var os strings.Builder
	os.WriteString("+---+---+---+---+---+---+---+---+\n")
	for r := Rank1; r <= Rank8; r++ {
		for f := FileA; f <= FileH; f++ {
			os.WriteString("| ")
			os.WriteString(p.board[SquareOf(f, Rank8-r)].Char())
			os.WriteString(" ")
		}
		os.WriteString("|\n+---+---+---+---+---+---+---+---+\n")
	}
	return os.String()
}

// //////////////////////////////////////////////////////
// // Getters
// //////////////////////////////////////////////////////

// ZobristKey returns the current zobrist key for this position.
func (p *Position) ZobristKey() Key {
	return p.zobristKey
}

// NextPlayer returns the player to move.
func (p *Position) NextPlayer() Color {
	return p.nextPlayer
}

// GetPiece returns the piece on the given square, or PieceNone if empty.
func (p *Position) GetPiece(sq Square) Piece {
	return p.board[sq]
}

// PiecesBb returns the bitboard for the given piece type of the given color.
func (p *Position) PiecesBb(c Color, pt PieceType) Bitboard {
	return p.piecesBb[c][pt]
}

// PawnKey returns a Zobrist key derived only from the pawns currently on the
// board, independent of piece placement elsewhere, side to move, castling
// rights or en passant state. Used to index pawn-structure keyed tables such
// as search correction history.
func (p *Position) PawnKey() Key {
	var key Key
	whitePawns := p.piecesBb[White][Pawn]
	for whitePawns != 0 {
		sq := whitePawns.PopLsb()
		key ^= zobristBase.pieces[WhitePawn][sq]
	}
	blackPawns := p.piecesBb[Black][Pawn]
	for blackPawns != 0 {
		sq := blackPawns.PopLsb()
		key ^= zobristBase.pieces[BlackPawn][sq]
	}
	return key
}

// OccupiedAll returns a bitboard of all occupied squares.
func (p *Position) OccupiedAll() Bitboard {
	return p.occupiedBb[White] | p.occupiedBb[Black]
}

// OccupiedBb returns a bitboard of all pieces of the given color.
func (p *Position) OccupiedBb(c Color) Bitboard {
	return p.occupiedBb[c]
}

// GamePhase returns the current game phase value, 24 at the start of the
// game, decreasing as officers come off the board.
func (p *Position) GamePhase() int {
	return p.gamePhase
}

// GamePhaseFactor returns a value between 0 and 1 reflecting the ratio
// between the actual game phase and the maximum game phase.
func (p *Position) GamePhaseFactor() float64 {
	return float64(p.gamePhase) / GamePhaseMax
}

// GetEnPassantSquare returns the en passant target square, or SqNone.
func (p *Position) GetEnPassantSquare() Square {
	return p.enPassantSquare
}

// CastlingRights returns the castling rights of the position.
func (p *Position) CastlingRights() CastlingRights {
	return p.castlingRights
}

// KingSquare returns the current square of the king of color c.
func (p *Position) KingSquare(c Color) Square {
	return p.kingSquare[c]
}

// HalfMoveClock returns the position's half move clock.
func (p *Position) HalfMoveClock() int {
	return p.halfMoveClock
}

// NextHalfMoveNumber returns the next ply number (1-based).
func (p *Position) NextHalfMoveNumber() int {
	return p.nextHalfMoveNumber
}

// Material returns the material value of the given color's pieces.
func (p *Position) Material(c Color) Value {
	return p.material[c]
}

// MaterialNonPawn returns the non-pawn material value of the given color.
func (p *Position) MaterialNonPawn(c Color) Value {
	return p.materialNonPawn[c]
}

// PsqMidValue returns the positional value for early game phases.
func (p *Position) PsqMidValue(c Color) Value {
	return p.psqMidValue[c]
}

// PsqEndValue returns the positional value for late game phases.
func (p *Position) PsqEndValue(c Color) Value {
	return p.psqEndValue[c]
}

// LastMove returns the last move made on the position, or MoveNone.
func (p *Position) LastMove() Move {
	if p.historyCounter <= 0 {
		return MoveNone
	}
	return p.history[p.historyCounter-1].move
}

// LastCapturedPiece returns the piece captured by the last move, or
// PieceNone if the last move was non-capturing or there is no history.
func (p *Position) LastCapturedPiece() Piece {
	if p.historyCounter <= 0 {
		return PieceNone
	}
	return p.history[p.historyCounter-1].capturedPiece
}

// WasCapturingMove returns true if the last move was a capturing move.
func (p *Position) WasCapturingMove() bool {
	return p.LastCapturedPiece() != PieceNone
}

// //////////////////////////////////////////////////////
// // Private functions
// //////////////////////////////////////////////////////

func (p *Position) doNormalMove(fromSq Square, toSq Square, targetPc Piece, fromPc Piece, myColor Color) {
	if p.castlingRights != CastlingNone {
		cr := GetCastlingRights(fromSq) | GetCastlingRights(toSq)
		if cr != CastlingNone {
			p.zobristKey ^= zobristBase.castlingRights[p.castlingRights] // out
			p.castlingRights.Remove(cr)
			p.zobristKey ^= zobristBase.castlingRights[p.castlingRights] // in
		}
	}
	p.clearEnPassant()
	if targetPc != PieceNone { // capture
		p.removePiece(toSq)
		p.halfMoveClock = 0
	} else if fromPc.TypeOf() == Pawn {
		p.halfMoveClock = 0
		if SquareDistance(fromSq, toSq) == 2 { // pawn double move - set en passant
			p.enPassantSquare = toSq.To(Direction(myColor.Flip().MoveDirection()) * North)
			p.zobristKey ^= zobristBase.enPassantFile[p.enPassantSquare.FileOf()] // in
		}
	} else {
		p.halfMoveClock++
	}
	p.movePiece(fromSq, toSq)
}

func (p *Position) doPromotionMove(m Move, fromPc Piece, myColor Color, toSq Square, targetPc Piece, fromSq Square) {
	assert.Assert(fromPc == MakePiece(myColor, Pawn), "Position DoMove: Move type promotion but From piece not Pawn")
	assert.Assert(myColor.PromotionRankBb().Has(toSq), "Position DoMove: Promotion move but wrong Rank")
	if targetPc != PieceNone { // capture
		p.removePiece(toSq)
	}
	if p.castlingRights != CastlingNone {
		cr := GetCastlingRights(fromSq) | GetCastlingRights(toSq)
		if cr != CastlingNone {
			p.zobristKey ^= zobristBase.castlingRights[p.castlingRights] // out
			p.castlingRights.Remove(cr)
			p.zobristKey ^= zobristBase.castlingRights[p.castlingRights] // in
		}
	}
	p.removePiece(fromSq)
	p.putPiece(MakePiece(myColor, m.PromotionType()), toSq)
	p.clearEnPassant()
	p.halfMoveClock = 0
}

func (p *Position) doEnPassantMove(toSq Square, myColor Color, fromPc Piece, fromSq Square) {
	capSq := toSq.To(Direction(myColor.Flip().MoveDirection()) * North)
	assert.Assert(fromPc == MakePiece(myColor, Pawn), "Position DoMove: Move type en passant but from piece not pawn")
	assert.Assert(p.enPassantSquare != SqNone, "Position DoMove: EnPassant move type without en passant")
	assert.Assert(p.board[capSq] == MakePiece(myColor.Flip(), Pawn), "Position DoMove: Captured en passant piece invalid")
	p.removePiece(capSq)
	p.movePiece(fromSq, toSq)
	p.clearEnPassant()
	p.halfMoveClock = 0
}

func (p *Position) doCastlingMove(fromPc Piece, myColor Color, toSq Square, fromSq Square) {
	assert.Assert(fromPc == MakePiece(myColor, King), "Position DoMove: Move type castling but from piece not king")
	switch toSq {
	case SqG1:
		assert.Assert(p.castlingRights.Has(CastlingWhiteOO), "Position DoMove: White king side castling not available")
		p.movePiece(fromSq, toSq) // King
		p.movePiece(SqH1, SqF1)   // Rook
		p.zobristKey ^= zobristBase.castlingRights[p.castlingRights] // out
		p.castlingRights.Remove(CastlingWhite)
		p.zobristKey ^= zobristBase.castlingRights[p.castlingRights] // in
	case SqC1:
		assert.Assert(p.castlingRights.Has(CastlingWhiteOOO), "Position DoMove: White queen side castling not available")
		p.movePiece(fromSq, toSq) // King
		p.movePiece(SqA1, SqD1)   // Rook
		p.zobristKey ^= zobristBase.castlingRights[p.castlingRights] // out
		p.castlingRights.Remove(CastlingWhite)
		p.zobristKey ^= zobristBase.castlingRights[p.castlingRights] // in
	case SqG8:
		assert.Assert(p.castlingRights.Has(CastlingBlackOO), "Position DoMove: Black king side castling not available")
		p.movePiece(fromSq, toSq) // King
		p.movePiece(SqH8, SqF8)   // Rook
		p.zobristKey ^= zobristBase.castlingRights[p.castlingRights] // out
		p.castlingRights.Remove(CastlingBlack)
		p.zobristKey ^= zobristBase.castlingRights[p.castlingRights] // in
	case SqC8:
		assert.Assert(p.castlingRights.Has(CastlingBlackOOO), "Position DoMove: Black queen side castling not available")
		p.movePiece(fromSq, toSq) // King
		p.movePiece(SqA8, SqD8)   // Rook
		p.zobristKey ^= zobristBase.castlingRights[p.castlingRights] // out
		p.castlingRights.Remove(CastlingBlack)
		p.zobristKey ^= zobristBase.castlingRights[p.castlingRights] // in
	default:
		panic("Invalid castle move!")
	}
	p.clearEnPassant()
	p.halfMoveClock++
}

func (p *Position) movePiece(fromSq Square, toSq Square) {
	p.putPiece(p.removePiece(fromSq), toSq)
}

func (p *Position) putPiece(piece Piece, square Square) {
	color := piece.ColorOf()
	pieceType := piece.TypeOf()

	assert.Assert(p.board[square] == PieceNone, "tried to put piece on an occupied square: %s", square.String())
	assert.Assert(!p.piecesBb[color][pieceType].Has(square), "tried to set bit on pieceBb which is already set: %s", square.String())
	assert.Assert(!p.occupiedBb[color].Has(square), "tried to set bit on occupiedBb which is already set: %s", square.String())

	p.board[square] = piece
	if pieceType == King {
		p.kingSquare[color] = square
	}
	p.piecesBb[color][pieceType].PushSquare(square)
	p.occupiedBb[color].PushSquare(square)
	p.zobristKey ^= zobristBase.pieces[piece][square]

	p.gamePhase += pieceType.GamePhaseValue()
	if p.gamePhase > GamePhaseMax {
		p.gamePhase = GamePhaseMax
	}
	p.material[color] += Value(pieceType.ValueOf())
	if pieceType > Pawn {
		p.materialNonPawn[color] += Value(pieceType.ValueOf())
	}
	p.psqMidValue[color] += PosMidValue(piece, square)
	p.psqEndValue[color] += PosEndValue(piece, square)
}

func (p *Position) removePiece(square Square) Piece {
	removed := p.board[square]
	color := removed.ColorOf()
	pieceType := removed.TypeOf()

	assert.Assert(p.board[square] != PieceNone, "tried to remove piece from an empty square: %s", square.String())
	assert.Assert(p.piecesBb[color][pieceType].Has(square), "tried to clear bit from pieceBb which is not set: %s", square.String())
	assert.Assert(p.occupiedBb[color].Has(square), "tried to clear bit from occupiedBb which is not set: %s", square.String())

	p.board[square] = PieceNone
	p.piecesBb[color][pieceType].PopSquare(square)
	p.occupiedBb[color].PopSquare(square)
	p.zobristKey ^= zobristBase.pieces[removed][square]

	p.gamePhase -= pieceType.GamePhaseValue()
	if p.gamePhase < 0 {
		p.gamePhase = 0
	}
	p.material[color] -= Value(pieceType.ValueOf())
	if pieceType > Pawn {
		p.materialNonPawn[color] -= Value(pieceType.ValueOf())
	}
	p.psqMidValue[color] -= PosMidValue(removed, square)
	p.psqEndValue[color] -= PosEndValue(removed, square)
	return removed
}

func (p *Position) clearEnPassant() {
	if p.enPassantSquare != SqNone {
		p.zobristKey ^= zobristBase.enPassantFile[p.enPassantSquare.FileOf()] // out
		p.enPassantSquare = SqNone
	}
}

func (p *Position) fen() string {
	var fen strings.Builder
	for r := Rank1; r <= Rank8; r++ {
		emptySquares := 0
		for f := FileA; f <= FileH; f++ {
			pc := p.board[SquareOf(f, Rank8-r)]
			if pc == PieceNone {
				emptySquares++
			} else {
				if emptySquares > 0 {
					fen.WriteString(strconv.Itoa(emptySquares))
					emptySquares = 0
				}
				fen.WriteString(pc.String())
			}
		}
		if emptySquares > 0 {
			fen.WriteString(strconv.Itoa(emptySquares))
		}
		if r < Rank8 {
			fen.WriteString("/")
		}
	}
	fen.WriteString(" ")
	fen.WriteString(p.nextPlayer.String())
	fen.WriteString(" ")
	fen.WriteString(p.castlingRights.String())
	fen.WriteString(" ")
	fen.WriteString(p.enPassantSquare.String())
	fen.WriteString(" ")
	fen.WriteString(strconv.Itoa(p.halfMoveClock))
	fen.WriteString(" ")
	fen.WriteString(strconv.Itoa((p.nextHalfMoveNumber + 1) / 2))
	return fen.String()
}

// regexes used to validate the individual fen fields before parsing them
var (
	regexFenPos       = regexp.MustCompile(`^[0-8pPnNbBrRqQkK/]+$`)
	regexFenSide      = regexp.MustCompile(`^[wb]$`)
	regexFenCastling  = regexp.MustCompile(`^(K?Q?k?q?|-)$`)
	regexFenEnPassant = regexp.MustCompile(`^([a-h][36]|-)$`)
)

// setupBoard sets up a board based on a fen string. This is the only way
// to populate a Position; internal state is zero-initialized and then
// built up field by field.
func (p *Position) setupBoard(fen string) error {
	fen = strings.TrimSpace(fen)
	if fen == "" {
		return fmt.Errorf("%w: fen must not be empty", ErrFenFieldCount)
	}
	fenParts := strings.Split(fen, " ")
	if len(fenParts) > 6 {
		return fmt.Errorf("%w: too many fields in fen: %s", ErrFenFieldCount, fen)
	}

	if !regexFenPos.MatchString(fenParts[0]) {
		return fmt.Errorf("%w: fen position contains invalid characters: %s", ErrFenPlacement, fenParts[0])
	}

	// fen string starts at a8 and runs to h8, "/" jumps to file A of the
	// next lower rank
	currentSquare := SqA8
	for _, c := range fenParts[0] {
		switch {
		case c >= '1' && c <= '8':
			currentSquare = Square(int(currentSquare) + int(c-'0'))
		case c == '/':
			currentSquare = currentSquare.To(South).To(South)
		default:
			piece := PieceFromChar(string(c))
			if piece == PieceNone {
				return fmt.Errorf("%w: invalid piece character: %s", ErrFenPlacement, string(c))
			}
			if !currentSquare.IsValid() {
				return fmt.Errorf("%w: piece placement overruns the board", ErrFenPlacement)
			}
			p.putPiece(piece, currentSquare)
			currentSquare++
		}
	}
	if currentSquare != SqA2 { // after h1++ we land on a2 - must be the last square visited
		return fmt.Errorf("%w: did not reach last square (h1) after reading fen piece placement", ErrFenPlacement)
	}

	// defaults
	p.nextHalfMoveNumber = 1
	p.enPassantSquare = SqNone

	// everything below is optional - defaults apply if absent

	if len(fenParts) >= 2 {
		if !regexFenSide.MatchString(fenParts[1]) {
			return fmt.Errorf("%w: fen next player contains invalid characters: %s", ErrFenSide, fenParts[1])
		}
		switch fenParts[1] {
		case "w":
			p.nextPlayer = White
		case "b":
			p.nextPlayer = Black
			p.zobristKey ^= zobristBase.nextPlayer
			p.nextHalfMoveNumber++
		}
	}

	if len(fenParts) >= 3 {
		if !regexFenCastling.MatchString(fenParts[2]) {
			return fmt.Errorf("%w: fen castling rights contains invalid characters: %s", ErrFenCastling, fenParts[2])
		}
		if fenParts[2] != "-" {
			for _, c := range fenParts[2] {
				switch c {
				case 'K':
					p.castlingRights.Add(CastlingWhiteOO)
				case 'Q':
					p.castlingRights.Add(CastlingWhiteOOO)
				case 'k':
					p.castlingRights.Add(CastlingBlackOO)
				case 'q':
					p.castlingRights.Add(CastlingBlackOOO)
				}
			}
		}
		p.zobristKey ^= zobristBase.castlingRights[p.castlingRights]
	}

	if len(fenParts) >= 4 {
		if !regexFenEnPassant.MatchString(fenParts[3]) {
			return fmt.Errorf("%w: fen en passant square contains invalid characters: %s", ErrFenEnPassant, fenParts[3])
		}
		if fenParts[3] != "-" {
			p.enPassantSquare = MakeSquare(fenParts[3])
			p.zobristKey ^= zobristBase.enPassantFile[p.enPassantSquare.FileOf()]
		}
	}

	if len(fenParts) >= 5 {
		number, e := strconv.Atoi(fenParts[4])
		if e != nil || number < 0 {
			return fmt.Errorf("%w: %s", ErrFenHalfmove, fenParts[4])
		}
		p.halfMoveClock = number
	}

	if len(fenParts) >= 6 {
		moveNumber, e := strconv.Atoi(fenParts[5])
		if e != nil || moveNumber < 0 {
			return fmt.Errorf("%w: %s", ErrFenFullmove, fenParts[5])
		}
		if moveNumber == 0 {
			moveNumber = 1
		}
		p.nextHalfMoveNumber = 2*moveNumber - (1 - int(p.nextPlayer))
	}

	return nil
}
