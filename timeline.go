/*
 * timeline.go, part of goreac.
 *
 * Copyright 2026 Raul Mera A. (raulpuntomeraatusachpuntocl)
 *
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU Lesser General Public License as published by
    the Free Software Foundation, either version 2.1 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU Lesser General Public License
    along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 *
*/

package reac

import (
	"bytes"
	"encoding/binary"
	"io"
	"runtime"

	"github.com/klauspost/compress/zlib"
)

// Record is what a Sink stores for one distinct molecule: its canonical
// key, the encoded bond list of its first occurrence, and its
// zlib-compressed occurrence list (see UnpackSteps).
type Record struct {
	Key   []byte
	Bonds []byte
	Steps []byte
}

type entry struct {
	bonds []byte
	steps []int
}

// Timeline is the catalog of every distinct molecule found along a
// trajectory and the steps at which each was seen. It is built by Detect,
// which is its only writer: Timeline does no locking of its own, so it must
// never be mutated from more than one goroutine.
type Timeline struct {
	order []Key
	mols  map[Key]*entry
	times []int
}

// NewTimeline returns an empty Timeline.
func NewTimeline() *Timeline {
	T := new(Timeline)
	T.mols = make(map[Key]*entry)
	return T
}

// Add records one occurrence of the molecule with the given key at the
// given (0-based, processed) step. The bond payload is kept only for the
// first occurrence of each key. Steps must arrive in non-decreasing order;
// the same key at the same step is fine (several copies of a molecule in
// one timestep are several occurrences).
func (T *Timeline) Add(key Key, bonds []byte, step int) {
	e, ok := T.mols[key]
	if !ok {
		e = &entry{bonds: bonds}
		T.mols[key] = e
		T.order = append(T.order, key)
	}
	e.steps = append(e.steps, step)
}

// SetTime records the simulation timestep number of one processed step.
func (T *Timeline) SetTime(step, simtime int) {
	for len(T.times) <= step {
		T.times = append(T.times, 0)
	}
	T.times[step] = simtime
}

// Steps returns the number of processed steps.
func (T *Timeline) Steps() int { return len(T.times) }

// Time returns the simulation timestep number of the processed step i.
// It panics if i is out of range.
func (T *Timeline) Time(i int) int { return T.times[i] }

// Molecules returns the number of distinct molecules in the catalog.
func (T *Timeline) Molecules() int { return len(T.order) }

// Keys returns the distinct molecule keys, in first-appearance order.
func (T *Timeline) Keys() []Key {
	r := make([]Key, len(T.order))
	copy(r, T.order)
	return r
}

// Occurrences returns the steps at which the molecule with the given key
// was seen, in the order they were recorded, or nil for an unknown key.
func (T *Timeline) Occurrences(key Key) []int {
	e, ok := T.mols[key]
	if !ok {
		return nil
	}
	r := make([]int, len(e.steps))
	copy(r, e.steps)
	return r
}

// Bonds returns the encoded bond payload stored for the given key, or nil
// for an unknown key.
func (T *Timeline) Bonds(key Key) []byte {
	e, ok := T.mols[key]
	if !ok {
		return nil
	}
	return e.bonds
}

// Save writes the whole catalog to the given Sink, one Record per distinct
// molecule, in first-appearance order. The occurrence lists are compressed
// concurrently, in batches of cpus goroutines (all the available logical
// CPUs, if cpus is not given). On the first error nothing else is written
// and the error is returned; the Sink is not closed by Save either way.
func (T *Timeline) Save(s Sink, cpus ...int) error {
	gor := runtime.NumCPU()
	if len(cpus) > 0 && cpus[0] > 0 {
		gor = cpus[0]
	}
	type packed struct {
		rec *Record
		err error
	}
	for start := 0; start < len(T.order); start += gor {
		end := start + gor
		if end > len(T.order) {
			end = len(T.order)
		}
		chans := make([]chan *packed, end-start)
		for i := range chans {
			//buffered, so an early return on error does not leak the
			//rest of the batch.
			chans[i] = make(chan *packed, 1)
			go func(key Key, c chan *packed) {
				e := T.mols[key]
				st, err := packSteps(e.steps)
				c <- &packed{rec: &Record{Key: []byte(key), Bonds: e.bonds, Steps: st}, err: err}
			}(T.order[start+i], chans[i])
		}
		for _, c := range chans {
			p := <-c
			if p.err != nil {
				return errDecorate(p.err, "Timeline.Save")
			}
			if err := s.Write(p.rec); err != nil {
				return errDecorate(err, "Timeline.Save")
			}
		}
	}
	return nil
}

//packSteps serializes an occurrence list (big-endian uint32 count, then the
//steps as uint32) and compresses it with zlib.
func packSteps(steps []int) ([]byte, error) {
	raw := make([]byte, 4+4*len(steps))
	binary.BigEndian.PutUint32(raw, uint32(len(steps)))
	for i, s := range steps {
		binary.BigEndian.PutUint32(raw[4+4*i:], uint32(s))
	}
	var b bytes.Buffer
	zw := zlib.NewWriter(&b)
	if _, err := zw.Write(raw); err != nil {
		zw.Close()
		return nil, CError{msg: err.Error(), deco: []string{"packSteps"}}
	}
	if err := zw.Close(); err != nil {
		return nil, CError{msg: err.Error(), deco: []string{"packSteps"}}
	}
	return b.Bytes(), nil
}

// UnpackSteps recovers an occurrence-step list from the compressed payload
// of a Record, i.e. it is the inverse of the encoding used by Save. Tools
// reading the catalog back from a Sink are expected to use it.
func UnpackSteps(p []byte) ([]int, error) {
	zr, err := zlib.NewReader(bytes.NewReader(p))
	if err != nil {
		return nil, CError{msg: err.Error(), deco: []string{"UnpackSteps"}}
	}
	raw, err := io.ReadAll(zr)
	zr.Close()
	if err != nil {
		return nil, CError{msg: err.Error(), deco: []string{"UnpackSteps"}}
	}
	if len(raw) < 4 {
		return nil, CError{msg: "step payload truncated", deco: []string{"UnpackSteps"}}
	}
	n := int(binary.BigEndian.Uint32(raw))
	if len(raw) < 4+4*n {
		return nil, CError{msg: "step payload truncated", deco: []string{"UnpackSteps"}}
	}
	steps := make([]int, n)
	for i := range steps {
		steps[i] = int(binary.BigEndian.Uint32(raw[4+4*i:]))
	}
	return steps, nil
}
