/*
 * reac.go, part of goreac.
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

//Package reac detects the molecules present at each step of a reactive
//molecular dynamics trajectory. A molecule is a connected component of the
//bond graph of one timestep, tagged with its atom composition and bond
//orders. The package reads trajectories through the Traj interface
//(implementations for LAMMPS/ReaxFF bond files and LAMMPS dump files are in
//the traj subdirectory), extracts the molecules of each step concurrently,
//and accumulates a Timeline: a catalog of every distinct molecule seen and
//the steps at which it was seen, which can then be handed to a Sink for
//storage.
//
//In goreac, errors that can only be programming errors cause a panic.
//Errors that can be caused by the user or the environment are returned.
package reac

// Bond is one detected bond between the atoms with (0-based) indexes A and
// B, with an integer bond order. Order 12 is the aromatic-bond convention,
// amide bonds are reported with order 1.
type Bond struct {
	A     int
	B     int
	Order int
}

// BondGraph holds the bonds of every atom in one timestep. Neigh[i] is the
// list of atoms bound to the atom i, and Order[i][j] is the order of the
// bond between i and Neigh[i][j]. A nil row means the atom has no recorded
// bonds. The graph is symmetric: if b appears in Neigh[a], a appears in
// Neigh[b], with the same order.
type BondGraph struct {
	Neigh [][]int
	Order [][]int
}

// NewBondGraph returns a BondGraph for n atoms, with no bonds recorded.
func NewBondGraph(n int) *BondGraph {
	G := new(BondGraph)
	G.Neigh = make([][]int, n)
	G.Order = make([][]int, n)
	return G
}

// Len returns the number of atoms in the graph, bonded or not.
func (G *BondGraph) Len() int {
	return len(G.Neigh)
}

// AddBond records a bond between atoms a and b, in both directions.
func (G *BondGraph) AddBond(a, b, order int) {
	G.Neigh[a] = append(G.Neigh[a], b)
	G.Order[a] = append(G.Order[a], order)
	G.Neigh[b] = append(G.Neigh[b], a)
	G.Order[b] = append(G.Order[b], order)
}

// Molecule is one connected component of a BondGraph. Atoms contains the
// (0-based, sorted) indexes of the member atoms in the timestep. Bonds
// contains each internal bond once, as an (a,b) pair with a < b, in the
// order the bonds were found, and Orders contains the matching bond orders.
// Atom indexes are only meaningful within the timestep the molecule was
// extracted from.
type Molecule struct {
	Atoms  []int
	Bonds  [][2]int
	Orders []int
}

// Header holds the trajectory-wide data obtained by the one-time header
// scan of a Traj: the number of atoms per timestep N, the 0-based atom type
// of each atom, and the number of raw lines spanned by one timestep block.
type Header struct {
	N     int
	Types []int
	Span  int
}

// Step is the result of parsing one timestep block. Time is the simulation
// timestep number declared in the block (0 if the format does not carry
// one). Types is only filled by formats that re-read atom types on every
// step; when nil, the types from the Header apply.
type Step struct {
	Graph *BondGraph
	Time  int
	Types []int
}
