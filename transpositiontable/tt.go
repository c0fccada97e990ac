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

// Package transpositiontable implements a transposition table (cache)
// data structure and functionality for a chess engine search.
// The TtTable class is not thread safe and needs to be synchronized
// externally if used from multiple threads. Is especially relevant
// for Resize and Clear which should not be called in parallel
// while searching.
package transpositiontable

import (
	"math/bits"
	"unsafe"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/frankkopp/FrankyGo/assert"
	"github.com/frankkopp/FrankyGo/logging"
	"github.com/frankkopp/FrankyGo/position"
	. "github.com/frankkopp/FrankyGo/types"
	"github.com/frankkopp/FrankyGo/util"
)

var out = message.NewPrinter(language.German)
var log = logging.GetLog("tt")

// TtEntry struct is the data structure for each entry in the transposition
// table.
//
// Key only stores the low 32 bits of the position's Zobrist key (a
// verifier), not the full 64 bits - the slot itself is already selected by
// the high bits of the key via TtTable.index, so the low bits are what is
// left to disambiguate a collision. A Vnone Type marks a slot that has
// never been written, the same zero-value-as-empty-sentinel idiom the rest
// of this table uses for Key==0 in its previous, full-64-bit-key form.
type TtEntry struct {
	Move       Move      // 32-bit Move and Value
	Key        uint32    // low 32 bits of the Zobrist key, collision verifier
	Depth      int8      // depth this entry was stored at
	Type       ValueType // None, Exact, Alpha (upper), Beta (lower)
	MateThreat bool
}

const (
	// TtEntrySize is the size in bytes for each TtEntry
	TtEntrySize = unsafe.Sizeof(TtEntry{})

	// MaxSizeInMB maximal memory usage of tt
	MaxSizeInMB = 65_536
)

// TtTable is the actual transposition table
// object holding data and state.
// Create with NewTtTable()
type TtTable struct {
	data            []TtEntry
	sizeInByte      uint64
	length          uint64 // number of slots - need not be a power of 2
	numberOfEntries uint64
	Stats           TtStats
}

// TtStats holds statistical data on tt usage
type TtStats struct {
	numberOfPuts       uint64
	numberOfCollisions uint64
	numberOfOverwrites uint64
	numberOfUpdates    uint64
	numberOfProbes     uint64
	numberOfHits       uint64
	numberOfMisses     uint64
}

// NewTtTable creates a new TtTable with the given number of bytes
// as a maximum of memory usage. Actual size is however many entries
// fit into this many bytes - unlike the classic power-of-2 scheme this
// does not need to be rounded down to a power of 2.
func NewTtTable(sizeInMByte int) *TtTable {
	tt := TtTable{
		data:            nil,
		sizeInByte:      0,
		length:          0,
		numberOfEntries: 0,
	}
	tt.Resize(sizeInMByte)
	return &tt
}

// Resize resizes the tt table. All entries will be cleared.
// The TtTable class is not thread safe and needs to be synchronized
// externally if used from multiple threads. Is especially relevant
// for Resize and Clear which should not be called in parallel
// while searching.
func (tt *TtTable) Resize(sizeInMByte int) {
	if sizeInMByte > MaxSizeInMB {
		log.Error(out.Sprintf("Requested size for TT of %d MB reduced to max of %d MB", sizeInMByte, MaxSizeInMB))
		sizeInMByte = MaxSizeInMB
	}

	// calculate the number of entries fitting into the given size in MB
	tt.sizeInByte = uint64(sizeInMByte) * MB
	tt.length = tt.sizeInByte / uint64(TtEntrySize)

	// if TT is resized to 0 we cant have any entries.
	if tt.sizeInByte == 0 {
		tt.length = 0
	}

	// calculate the real memory usage
	tt.sizeInByte = tt.length * uint64(TtEntrySize)

	// Create new slice/array - garbage collections takes care of cleanup
	tt.data = make([]TtEntry, tt.length, tt.length)
	tt.numberOfEntries = 0
	tt.Stats = TtStats{}

	log.Info(out.Sprintf("TT Size %d MByte, Capacity %d entries (size=%dByte) (Requested were %d MBytes)",
		tt.sizeInByte/MB, tt.length, TtEntrySize, sizeInMByte))
	log.Debug(util.MemStat())
}

// index computes the slot for key: the high 64 bits of the 128-bit product
// of the key and the table length. This distributes uniformly over
// [0, length) for any length, not just a power of 2, so the table size is
// not constrained to the next-lower power of 2 of the requested memory.
func (tt *TtTable) index(key position.Key) uint64 {
	if tt.length == 0 {
		return 0
	}
	hi, _ := bits.Mul64(uint64(key), tt.length)
	return hi
}

// verifierOf returns the low 32 bits of key, stored in a slot to
// disambiguate the (much rarer, but possible) collision of two different
// keys mapping to the same slot.
func verifierOf(key position.Key) uint32 {
	return uint32(key)
}

// GetEntry returns a pointer to the slot key maps to, regardless of
// whether it is actually occupied by key. Does not change statistics.
func (tt *TtTable) GetEntry(key position.Key) *TtEntry {
	return &tt.data[tt.index(key)]
}

// Probe returns a pointer to the entry for key, or nil if the slot key maps
// to is empty or holds a different key (a verifier mismatch). The caller
// decides whether the entry is actually usable by comparing its stored
// Depth and Type against the current search window.
func (tt *TtTable) Probe(key position.Key) *TtEntry {
	tt.Stats.numberOfProbes++
	e := &tt.data[tt.index(key)]
	if e.Type != Vnone && e.Key == verifierOf(key) {
		tt.Stats.numberOfHits++
		return e
	}
	tt.Stats.numberOfMisses++
	return nil
}

// Put stores an entry for key, always replacing whatever was in its slot.
// This is deliberately simpler than a depth/age-preferred scheme: with a
// reasonably sized table the loss from an occasional premature overwrite is
// smaller than the cost of tracking and comparing replacement priority on
// every write.
func (tt *TtTable) Put(key position.Key, move Move, value Value, depth int8, valueType ValueType, mateThreat bool) {
	if assert.DEBUG {
		assert.Assert(depth >= 0, "TT:put Depth must be > 0")
	}
	// if the size of the TT = 0 we
	// do not store anything
	if tt.length == 0 {
		return
	}

	tt.Stats.numberOfPuts++
	entryDataPtr := tt.GetEntry(key)
	verifier := verifierOf(key)
	valueMove := move.SetValue(value)

	switch {
	case entryDataPtr.Type == Vnone:
		tt.numberOfEntries++
	case entryDataPtr.Key != verifier:
		tt.Stats.numberOfCollisions++
		tt.Stats.numberOfOverwrites++
	default:
		tt.Stats.numberOfUpdates++
	}

	entryDataPtr.Key = verifier
	entryDataPtr.Move = valueMove
	entryDataPtr.Depth = depth
	entryDataPtr.Type = valueType
	entryDataPtr.MateThreat = mateThreat

	if assert.DEBUG {
		assert.Assert(tt.Stats.numberOfPuts == (tt.numberOfEntries+tt.Stats.numberOfCollisions+tt.Stats.numberOfUpdates),
			"TT:put - stat values do not match")
	}
}

// Clear clears all entries of the tt
// The TtTable class is not thread safe and needs to be synchronized
// externally if used from multiple threads. Is especially relevant
// for Resize and Clear which should not be called in parallel
// while searching.
func (tt *TtTable) Clear() {
	// Create new slice/array - garbage collections takes care of cleanup
	tt.data = make([]TtEntry, tt.length, tt.length)
	tt.numberOfEntries = 0
	tt.Stats = TtStats{}
}

// Hashfull returns how full the transposition table is in permill as per UCI
func (tt *TtTable) Hashfull() int {
	if tt.length == 0 {
		return 0
	}
	return int((1000 * tt.numberOfEntries) / tt.length)
}

// String returns a string representation of this TtTable instance
func (tt *TtTable) String() string {
	return out.Sprintf("TT: size %d MB max entries %d of size %d Bytes entries %d (%d) puts %d "+
		"updates %d collisions %d overwrites %d probes %d hits %d (%d) misses %d (%d)",
		tt.sizeInByte/MB, tt.length, TtEntrySize, tt.numberOfEntries, tt.Hashfull(),
		tt.Stats.numberOfPuts, tt.Stats.numberOfUpdates, tt.Stats.numberOfCollisions, tt.Stats.numberOfOverwrites, tt.Stats.numberOfProbes,
		tt.Stats.numberOfHits, (tt.Stats.numberOfHits*100)/(1+tt.Stats.numberOfProbes),
		tt.Stats.numberOfMisses, (tt.Stats.numberOfMisses*100)/(1+tt.Stats.numberOfProbes))
}

// Len returns the number of non empty entries in the tt
func (tt *TtTable) Len() uint64 {
	return tt.numberOfEntries
}
