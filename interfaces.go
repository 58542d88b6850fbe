/*
 * interfaces.go, part of goreac.
 *
 *
 * Copyright 2026 Raul Mera A. (raulpuntomeraatusachpuntocl)
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package reac

import "gonum.org/v1/gonum/mat"

// Traj is the interface for a trajectory of per-timestep bond information.
// The two formats supported (LAMMPS/ReaxFF bond files and LAMMPS dump
// files, in the traj subdirectory) both implement it. A Traj is consumed in
// two passes: ReadHeader once, then Next/Parse over the timestep blocks.
type Traj interface {

	//ReadHeader scans the trajectory once for the per-trajectory data
	//(atoms per step, atom types, lines per timestep block) and leaves the
	//trajectory positioned at its first block. It must be called before Next.
	ReadHeader() (*Header, error)

	//Next returns the raw lines of the next timestep block, or discards
	//them if keep is false (the lines are still consumed either way).
	//The end of the trajectory is signaled with a LastStepError.
	Next(keep bool) ([]string, error)

	//Parse builds the bond graph of one block obtained from Next.
	//It must be safe to call concurrently on different blocks.
	Parse(block []string) (*Step, error)

	//Is the trajectory ready to be read?
	Readable() bool

	//Returns the number of atoms per timestep
	Len() int

	//Close closes the underlying file. The Traj is not readable afterwards.
	Close()
}

// Bonder finds the bonds of a set of atoms from their symbols and their
// Nx3 Cartesian coordinates. It is only needed for trajectory formats that
// record positions instead of bonds... which of course means asking some
// oracle, here or elsewhere, what the bonds are. Implementations are in the
// bonder package.
type Bonder interface {

	//Bonds returns the bonds among the given atoms, with integer bond
	//orders (aromatic bonds as order 12, amide bonds as order 1).
	Bonds(symbols []string, pos *mat.Dense) ([]Bond, error)
}

// Sink stores the final molecule catalog, one Record per distinct molecule,
// in the order given. The on-disk (or wherever) layout belongs to the Sink,
// not to this package. Implementations are in the sink package.
type Sink interface {

	//Write stores one record. Records arrive in first-appearance order.
	Write(r *Record) error

	//Close flushes and releases the storage.
	Close() error
}

//Errors

//This error predates the "wrapping" error system of Go (i.e. the "%w" directive and the errors package). We should avoid
//using the Decorate method and/or make it use the "%w" directive internally.

// Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //This is the new thing for errors. It allows you to add information when you pass it up. Each call also returns the "decoration" slice of strins resulting from the current call. If passed an empty string, it should just return the current value, not add the empty string to the slice.
	//The decorate slice should contain a list of functions in the calling stack, plus, for each function any relevant information, or nothing. If information is to be added to an element of the slice, it should be in this format: "FunctionName: Extra info"
}

// TrajError is the interface for errors in trajectories
type TrajError interface {
	Error
	Critical() bool
	FileName() string
	Format() string
}

// LastStepError has a useless function to distinguish the harmless errors (i.e. last timestep) so they can be
// filtered in a typeswitch that looks for this interface.
type LastStepError interface {
	TrajError
	NormalLastStepTermination() //does nothing, just to separate this interface from other TrajError's

}
