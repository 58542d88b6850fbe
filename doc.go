/*
 * doc.go, part of goreac.
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
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

/*Package reac detects the molecular species present at each timestep of a
reactive molecular-dynamics trajectory, and follows them along the
simulation. A molecule is a connected component of the bond graph of one
timestep, identified by its atom composition and bond orders.


	**goReac Capabilities**


    Reads LAMMPS/ReaxFF bond-order files, which carry their own
	connectivity, and LAMMPS dump files, whose bonds are assigned by a
	bonding "oracle": the built-in covalent-radii one, or OpenBabel.

    Detects bonds across periodic boundaries in orthorhombic cells.

    Splits every timestep into its molecules and computes a canonical key
	per molecule, so the same species is recognized whatever the atom
	numbering, the timestep, or the goroutine that found it.

    Parses the timestep blocks concurrently, with a deterministic,
	in-order merge: a given trajectory and settings always produce the
	same catalog.

    Accumulates a Timeline with every distinct species and the steps where
	it was seen, and saves it through a Sink: a plain text file, an
	in-memory catalog or a Badger database.

    Exports molecules as gonum graphs (package molgraph), so graph
	algorithms can be run on them, and summarizes runs with population
	series, rankings and plots (package report).

Trajectory formats live in the traj subdirectory and implement the Traj
interface; readers for other reactive codes only need to produce a bond
graph per timestep to plug into the same machinery.*/
package reac
