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

// Package types contains the Move encoding: a 32 bit packed integer
// carrying from-square, to-square, promotion piece type, move type in
// its lower 16 bits and a search ordering Value in its upper 16 bits.
package types

import (
	"fmt"
	"strings"
)

// MoveType distinguishes the four shapes a move can take.
type MoveType int8

//noinspection GoUnusedConst
const (
	Normal    MoveType = 0
	Promotion MoveType = 1
	EnPassant MoveType = 2
	Castling  MoveType = 3
)

func (t MoveType) String() string {
	switch t {
	case Normal:
		return "Normal"
	case Promotion:
		return "Promotion"
	case EnPassant:
		return "EnPassant"
	case Castling:
		return "Castling"
	default:
		return "Unknown"
	}
}

// Move is a packed representation of a chess move plus its search
// ordering value.
//
//  Bit 0-5:   to square   (0..63)
//  Bit 6-11:  from square (0..63)
//  Bit 12-13: promotion piece type code (PieceType - Knight, i.e. 0..3)
//  Bit 14-15: MoveType
//  Bit 16-31: packed search Value (move ordering / TT storage)
type Move int32

// MoveNone represents the absence of a move ("null move" notation is "0000")
const MoveNone Move = 0

const (
	moveToMask    = 0x3f
	moveFromShift = 6
	moveFromMask  = 0x3f << moveFromShift
	movePromoShift = 12
	movePromoMask  = 0x3 << movePromoShift
	moveTypeShift  = 14
	moveTypeMask   = 0x3 << moveTypeShift
	moveValueShift = 16
)

// CreateMove creates a packed Move from its components. The value field
// starts at zero and can be set later with SetValue.
func CreateMove(from Square, to Square, t MoveType, promType PieceType) Move {
	var promoCode PieceType
	if promType.IsValid() {
		promoCode = promType - Knight
	}
	return Move(int32(to) |
		int32(from)<<moveFromShift |
		int32(promoCode)<<movePromoShift |
		int32(t)<<moveTypeShift)
}

// CreateMoveValue creates a packed Move and immediately sets its
// ordering value.
func CreateMoveValue(from Square, to Square, t MoveType, promType PieceType, value Value) Move {
	m := CreateMove(from, to, t, promType)
	m.SetValue(value)
	return m
}

// From returns the origin square encoded in the move.
func (m Move) From() Square {
	return Square((int32(m) & moveFromMask) >> moveFromShift)
}

// To returns the destination square encoded in the move.
func (m Move) To() Square {
	return Square(int32(m) & moveToMask)
}

// MoveType returns the move type encoded in the move.
func (m Move) MoveType() MoveType {
	return MoveType((int32(m) & moveTypeMask) >> moveTypeShift)
}

// PromotionType returns the promotion piece type encoded in the move.
// Only meaningful when MoveType() == Promotion.
func (m Move) PromotionType() PieceType {
	return PieceType((int32(m)&movePromoMask)>>movePromoShift) + Knight
}

// IsValid returns true if the move has a from/to square that differ, i.e.
// is not the zero-value MoveNone.
func (m Move) IsValid() bool {
	return m != MoveNone && m.From() != m.To()
}

// ValueOf returns the search ordering value packed into the upper bits.
func (m Move) ValueOf() Value {
	return Value(int32(m) >> moveValueShift)
}

// MoveOf returns the move with its packed ordering value stripped, leaving
// only the from/to/promotion/type bits. Used to compare or store moves
// independent of whatever sort value they were last tagged with.
func (m Move) MoveOf() Move {
	return Move(int32(m) & 0xffff)
}

// SetValue sets the search ordering value packed into the upper bits,
// preserving the from/to/promotion/type bits, and returns the updated move.
func (m *Move) SetValue(v Value) Move {
	*m = Move((int32(*m) & 0xffff) | (int32(int16(v)) << moveValueShift))
	return *m
}

// Str returns the move as from and to square with an upper case promotion
// letter, e.g. "e2e4" or "a2a1Q". StringUci gives the lower case UCI form.
func (m Move) Str() string {
	if m == MoveNone {
		return "0000"
	}
	var sb strings.Builder
	sb.WriteString(m.From().String())
	sb.WriteString(m.To().String())
	if m.MoveType() == Promotion {
		sb.WriteString(strings.ToUpper(m.PromotionType().Char()))
	}
	return sb.String()
}

// StringUci returns the move in UCI notation using a lower case
// promotion letter, as expected on the wire.
func (m Move) StringUci() string {
	if m == MoveNone {
		return "0000"
	}
	var sb strings.Builder
	sb.WriteString(m.From().String())
	sb.WriteString(m.To().String())
	if m.MoveType() == Promotion {
		sb.WriteString(strings.ToLower(m.PromotionType().Char()))
	}
	return sb.String()
}

// String is the default fmt.Stringer.
func (m Move) String() string {
	return fmt.Sprintf("%s (%s)", m.Str(), m.ValueOf().String())
}

// StrBits returns a debug string showing the raw bit fields of a move.
func (m Move) StrBits() string {
	return fmt.Sprintf("%032b (from=%s to=%s type=%s promo=%s value=%d)",
		uint32(m), m.From(), m.To(), m.MoveType(), m.PromotionType().Char(), m.ValueOf())
}
