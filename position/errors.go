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

package position

import "errors"

// Sentinel errors for FEN parsing failures. setupBoard wraps one of these
// with fmt.Errorf("%w: %s", ErrFenXxx, detail) so callers can distinguish
// failure categories with errors.Is regardless of the detail message.
var (
	ErrFenFieldCount = errors.New("fen: wrong number of fields")
	ErrFenPlacement  = errors.New("fen: invalid piece placement field")
	ErrFenSide       = errors.New("fen: invalid side to move field")
	ErrFenCastling   = errors.New("fen: invalid castling availability field")
	ErrFenEnPassant  = errors.New("fen: invalid en passant target field")
	ErrFenHalfmove   = errors.New("fen: invalid half move clock field")
	ErrFenFullmove   = errors.New("fen: invalid full move number field")
)
