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

package transpositiontable

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/frankkopp/FrankyGo/logging"
	"github.com/frankkopp/FrankyGo/position"
	. "github.com/frankkopp/FrankyGo/types"
)

var logTest = logging.GetLog("test")

func TestNew(t *testing.T) {
	tt := NewTtTable(2)
	assert.Equal(t, uint64(2*MB)/uint64(TtEntrySize), tt.length)
	assert.Equal(t, int(tt.length), cap(tt.data))
	log.Debug(tt.String())

	tt = NewTtTable(64)
	assert.Equal(t, uint64(64*MB)/uint64(TtEntrySize), tt.length)
	assert.Equal(t, int(tt.length), len(tt.data))

	tt = NewTtTable(0)
	assert.EqualValues(t, 0, tt.length)
	assert.Equal(t, 0, len(tt.data))
}

func TestGetAndProbe(t *testing.T) {
	tt := NewTtTable(64)
	assert.True(t, tt.length > 0)

	pos := position.NewPosition()
	move := CreateMove(SqE2, SqE4, Normal, PtNone)
	idx := tt.index(pos.ZobristKey())
	tt.data[idx] = TtEntry{
		Key:        verifierOf(pos.ZobristKey()),
		Move:       move,
		Depth:      5,
		Type:       EXACT,
		MateThreat: false,
	}
	tt.numberOfEntries++

	// unaltered entry, found via GetEntry (bypasses verifier check)
	e := tt.GetEntry(pos.ZobristKey())
	assert.Equal(t, verifierOf(pos.ZobristKey()), e.Key)
	assert.Equal(t, move, e.Move)
	assert.EqualValues(t, 5, e.Depth)
	assert.Equal(t, EXACT, e.Type)

	// found via Probe, verifier matches
	e = tt.Probe(pos.ZobristKey())
	if assert.NotNil(t, e) {
		assert.Equal(t, verifierOf(pos.ZobristKey()), e.Key)
		assert.Equal(t, move, e.Move)
		assert.EqualValues(t, 5, e.Depth)
		assert.Equal(t, EXACT, e.Type)
	}

	// a different position almost certainly does not map to the same slot
	pos.DoMove(move)
	if tt.index(pos.ZobristKey()) != idx {
		assert.Nil(t, tt.Probe(pos.ZobristKey()))
	}
}

func TestClear(t *testing.T) {
	tt := NewTtTable(1)

	pos := position.NewPosition()
	move := CreateMove(SqE2, SqE4, Normal, PtNone)
	tt.Put(pos.ZobristKey(), move, Value(0), 5, EXACT, false)
	assert.EqualValues(t, 1, tt.numberOfEntries)

	e := tt.Probe(pos.ZobristKey())
	assert.NotNil(t, e)

	tt.Clear()

	// entry is gone
	e = tt.Probe(pos.ZobristKey())
	assert.Nil(t, e)
	assert.EqualValues(t, 0, tt.numberOfEntries)
}

func TestPut(t *testing.T) {
	tt := NewTtTable(4)
	move := CreateMove(SqE2, SqE4, Normal, PtNone)

	// first put into an empty slot
	tt.Put(111, move, Value(111), 4, ALPHA, false)
	assert.EqualValues(t, 1, tt.Len())
	assert.EqualValues(t, 1, tt.Stats.numberOfPuts)
	e := tt.Probe(111)
	if assert.NotNil(t, e) {
		assert.EqualValues(t, verifierOf(111), e.Key)
		assert.EqualValues(t, move, e.Move.MoveOf())
		assert.EqualValues(t, 111, e.Move.ValueOf())
		assert.EqualValues(t, 4, e.Depth)
		assert.EqualValues(t, ALPHA, e.Type)
		assert.EqualValues(t, false, e.MateThreat)
	}

	// same key updates the existing entry in place, not a collision
	tt.Put(111, move, Value(112), 5, BETA, true)
	assert.EqualValues(t, 1, tt.Len())
	assert.EqualValues(t, 2, tt.Stats.numberOfPuts)
	assert.EqualValues(t, 1, tt.Stats.numberOfUpdates)
	assert.EqualValues(t, 0, tt.Stats.numberOfCollisions)
	e = tt.Probe(111)
	if assert.NotNil(t, e) {
		assert.EqualValues(t, 112, e.Move.ValueOf())
		assert.EqualValues(t, 5, e.Depth)
		assert.EqualValues(t, BETA, e.Type)
		assert.EqualValues(t, true, e.MateThreat)
	}

	// a different key mapping to the same slot always overwrites, even at a
	// lower depth - there is no age/depth-preferred comparison anymore
	collisionKey := position.Key(111 + tt.length)
	if tt.index(collisionKey) == tt.index(111) && verifierOf(collisionKey) != verifierOf(111) {
		tt.Put(collisionKey, move, Value(113), 1, EXACT, false)
		assert.EqualValues(t, 1, tt.Len())
		assert.EqualValues(t, 1, tt.Stats.numberOfCollisions)
		assert.EqualValues(t, 1, tt.Stats.numberOfOverwrites)
		e = tt.Probe(collisionKey)
		if assert.NotNil(t, e) {
			assert.EqualValues(t, 113, e.Move.ValueOf())
			assert.EqualValues(t, 1, e.Depth)
			assert.EqualValues(t, EXACT, e.Type)
		}
		// the old entry for 111 is gone - always-replace, no survivors
		assert.Nil(t, tt.Probe(position.Key(111)))
	}
}

func TestHashfull(t *testing.T) {
	tt := NewTtTable(1)
	assert.EqualValues(t, 0, tt.Hashfull())
	move := CreateMove(SqE2, SqE4, Normal, PtNone)
	n := tt.length / 10
	for i := uint64(0); i < n; i++ {
		tt.Put(position.Key(rand.Uint64()), move, Value(0), 1, EXACT, false)
	}
	assert.True(t, tt.Hashfull() > 0)
}

func TestPerformance(t *testing.T) {
	tt := NewTtTable(1_024)
	move := CreateMove(SqE2, SqE4, Normal, PtNone)

	const rounds = 2
	const iterations uint64 = 1_000_000

	for r := 1; r <= rounds; r++ {
		key := position.Key(rand.Uint64())
		depth := int8(rand.Int31n(128))
		value := Value(rand.Int31n(int32(ValueMax)))
		valueType := ValueType(1 + rand.Int31n(3))
		start := time.Now()
		for i := uint64(0); i < iterations; i++ {
			tt.Put(key+position.Key(i), move, value, depth, valueType, false)
		}
		for i := uint64(0); i < iterations; i++ {
			probeKey := key + position.Key(2*i)
			_ = tt.Probe(probeKey)
		}
		elapsed := time.Since(start)
		logTest.Debug(tt.String())
		logTest.Debugf("TimingTT took %d ns for %d iterations (1 put 1 probe)", elapsed.Nanoseconds(), iterations)
	}
}
