/*
 * encode.go, part of goreac.
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
	"encoding/binary"
	"sort"
	"strconv"
)

// Key is the canonical identity of a molecule: a byte-exact encoding of its
// atom composition and bond orders, independent of the timestep, of the
// order in which the atoms were discovered, and of which goroutine computed
// it. Two molecules are "the same molecule" exactly when their Keys are
// equal. Note that the bond topology itself is not encoded, so two isomers
// with the same composition and the same multiset of bond orders share a
// Key and are counted as the same molecule.
type Key string

// Key computes the canonical key of the molecule. types must hold the
// 0-based atom type of every atom in the timestep, as given by the
// trajectory Header (or by the Step, for formats that re-read types every
// step). The key is the big-endian binary sequence: number of atoms, the
// sorted atom types, number of bonds, the sorted bond orders, all as
// uint32. It cannot fail on well-formed input; a negative type or order is
// a programming error and panics.
func (M *Molecule) Key(types []int) Key {
	ts := make([]int, len(M.Atoms))
	for i, a := range M.Atoms {
		ts[i] = types[a]
	}
	sort.Ints(ts)
	or := make([]int, len(M.Orders))
	copy(or, M.Orders)
	sort.Ints(or)
	buf := make([]byte, 4+4*len(ts)+4+4*len(or))
	binary.BigEndian.PutUint32(buf, uint32(len(ts)))
	offset := 4
	for _, t := range ts {
		if t < 0 {
			panic("goreac: negative atom type. This is a bug in the caller of Molecule.Key")
		}
		binary.BigEndian.PutUint32(buf[offset:], uint32(t))
		offset += 4
	}
	binary.BigEndian.PutUint32(buf[offset:], uint32(len(or)))
	offset += 4
	for _, o := range or {
		if o < 0 {
			panic("goreac: negative bond order. This is a bug in the caller of Molecule.Key")
		}
		binary.BigEndian.PutUint32(buf[offset:], uint32(o))
		offset += 4
	}
	return Key(buf)
}

// EncodeBonds serializes the bond list of the molecule: big-endian uint32
// bond count, then one (atom, atom, order) uint32 triplet per bond, bonds
// in the order they appear in the molecule, atoms as timestep indexes.
func (M *Molecule) EncodeBonds() []byte {
	buf := make([]byte, 4+12*len(M.Bonds))
	binary.BigEndian.PutUint32(buf, uint32(len(M.Bonds)))
	offset := 4
	for i, b := range M.Bonds {
		binary.BigEndian.PutUint32(buf[offset:], uint32(b[0]))
		binary.BigEndian.PutUint32(buf[offset+4:], uint32(b[1]))
		binary.BigEndian.PutUint32(buf[offset+8:], uint32(M.Orders[i]))
		offset += 12
	}
	return buf
}

// KeyFormula renders the composition half of a key as a formula string,
// say, "C2H6", using the given atom-type-to-symbol table. Types outside the
// table are rendered as "T" plus the type number. It returns "" for a
// malformed key, which can happen when reading keys back from storage.
func KeyFormula(k Key, names []string) string {
	b := []byte(k)
	if len(b) < 4 {
		return ""
	}
	n := int(binary.BigEndian.Uint32(b))
	if len(b) < 4+4*n {
		return ""
	}
	var out []byte
	prev := -1
	count := 0
	flush := func() {
		if count == 0 {
			return
		}
		sym := "T" + strconv.Itoa(prev)
		if prev < len(names) {
			sym = names[prev]
		}
		out = append(out, sym...)
		if count > 1 {
			out = append(out, strconv.Itoa(count)...)
		}
	}
	for i := 0; i < n; i++ {
		t := int(binary.BigEndian.Uint32(b[4+4*i:]))
		if t != prev {
			flush()
			prev, count = t, 1
		} else {
			count++
		}
	}
	flush()
	return string(out)
}
