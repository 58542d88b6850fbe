/*
 * detect.go, part of goreac.
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
	"fmt"
	"runtime"
)

// Options contains the settings for a detection run.
type Options struct {
	cpus     int
	interval int
}

// DefaultOptions returns an Options with the default values: as many
// goroutines as logical CPUs, and every timestep processed.
func DefaultOptions() *Options {
	ret := new(Options)
	ret.cpus = runtime.NumCPU()
	ret.interval = 1
	return ret
}

//Returns the current value of the Cpus option (the number of goroutines to
//use on the concurrent parts of the run) and sets it, if a valid value is
//given.
func (r *Options) Cpus(cpus ...int) int {
	ret := r.cpus
	if len(cpus) > 0 && cpus[0] > 0 {
		r.cpus = cpus[0]
	}
	return ret
}

//Returns the current value of the Interval option (only every Interval-th
//timestep of the trajectory is processed; the rest are read and discarded)
//and sets it, if a valid value is given.
func (r *Options) Interval(interval ...int) int {
	ret := r.interval
	if len(interval) > 0 && interval[0] > 0 {
		r.interval = interval[0]
	}
	return ret
}

type molRec struct {
	key   Key
	bonds []byte
}

type stepRes struct {
	step int
	time int
	mols []molRec
	err  error
}

// Detect runs the whole detection on a trajectory: it scans the header,
// then reads the timestep blocks, parses every Interval-th one, extracts
// its molecules and computes their keys, processing up to Cpus blocks
// concurrently, and merges everything into a Timeline. The merge happens
// on a single goroutine and in step order, whatever the order in which the
// workers finish, so a given trajectory and options always produce the same
// Timeline. On the first failed step the run stops, no further block is
// dispatched, and the error comes back decorated with the step number. opt
// can be nil for the defaults.
func Detect(traj Traj, opt *Options) (*Timeline, error) {
	if opt == nil {
		opt = DefaultOptions()
	}
	cpus := opt.Cpus()
	interval := opt.Interval()
	hdr, err := traj.ReadHeader()
	if err != nil {
		return nil, errDecorate(err, "Detect")
	}
	T := NewTimeline()
	raw := 0  //timesteps seen in the file
	step := 0 //timesteps actually processed
	var goterr error
	eof := false
	for !eof && goterr == nil {
		chans := make([]chan *stepRes, 0, cpus)
		for len(chans) < cpus {
			keep := raw%interval == 0
			block, err := traj.Next(keep)
			if err != nil {
				if _, ok := err.(LastStepError); ok {
					eof = true
					break
				}
				return nil, errDecorate(err, "Detect")
			}
			raw++
			if !keep {
				continue
			}
			c := make(chan *stepRes, 1) //buffered so workers never block, even if we bail out early
			chans = append(chans, c)
			go func(block []string, step int, c chan *stepRes) {
				res := &stepRes{step: step}
				st, err := traj.Parse(block)
				if err != nil {
					res.err = errDecorate(err, fmt.Sprintf("Detect: step %d", step))
					c <- res
					return
				}
				res.time = st.Time
				types := hdr.Types
				if st.Types != nil {
					types = st.Types
				}
				for _, M := range st.Graph.Molecules() {
					res.mols = append(res.mols, molRec{key: M.Key(types), bonds: M.EncodeBonds()})
				}
				c <- res
			}(block, step, c)
			step++
		}
		//the channels are received in dispatch order, which is step order,
		//so the merge, and the first error reported, do not depend on
		//which worker finishes first.
		for _, c := range chans {
			res := <-c
			if res.err != nil && goterr == nil {
				goterr = res.err
			}
			if goterr != nil {
				continue //still drain the rest of the batch
			}
			T.SetTime(res.step, res.time)
			for _, m := range res.mols {
				T.Add(m.key, m.bonds, res.step)
			}
		}
	}
	if goterr != nil {
		return nil, goterr
	}
	return T, nil
}
