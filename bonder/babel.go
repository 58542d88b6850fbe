/*
 * babel.go, part of goreac.
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

package bonder

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	reac "github.com/rmera/goreac"
)

// Babel is a bonding oracle that delegates bond perception, bond orders
// included, to OpenBabel's obabel program, which has to be installed
// separately. Each call runs one obabel process, so Babel is safe for
// concurrent use.
type Babel struct {
	command string
}

// NewBabel returns a Babel oracle using the obabel executable found in the
// PATH, or the one set in the OBABEL environment variable, if any.
func NewBabel() (*Babel, error) {
	B := new(Babel)
	B.command = os.Getenv("OBABEL")
	if B.command == "" {
		B.command = "obabel"
	}
	if _, err := exec.LookPath(B.command); err != nil {
		return nil, Error{fmt.Sprintf("%s executable not found: %s", B.command, err.Error()), "Babel", []string{"exec.LookPath", "NewBabel"}}
	}
	return B, nil
}

// Bonds feeds the atoms to obabel in xyz format, asks for a mol2
// conversion, and reads the bonds back from its @<TRIPOS>BOND section.
func (B *Babel) Bonds(symbols []string, pos *mat.Dense) ([]reac.Bond, error) {
	n := len(symbols)
	r, c := pos.Dims()
	if r != n || c != 3 {
		return nil, Error{fmt.Sprintf("positions are %dx%d, want %dx3", r, c, n), "Babel", []string{"Bonds"}}
	}
	var xyz strings.Builder
	fmt.Fprintf(&xyz, "%d\ngoreac\n", n)
	for i := 0; i < n; i++ {
		fmt.Fprintf(&xyz, "%-2s %22.15f %22.15f %22.15f\n", symbols[i], pos.At(i, 0), pos.At(i, 1), pos.At(i, 2))
	}
	command := exec.Command(B.command, "-ixyz", "-omol2")
	command.Stdin = strings.NewReader(xyz.String())
	var out bytes.Buffer
	command.Stdout = &out
	if err := command.Run(); err != nil {
		return nil, Error{fmt.Sprintf("%s run failed: %s", B.command, err.Error()), "Babel", []string{"exec.Run", "Bonds"}}
	}
	bonds, err := parseMol2(out.Bytes(), n)
	if err != nil {
		return nil, errDecorate(err, "Bonds")
	}
	return bonds, nil
}

//parseMol2 extracts the bond list from the @<TRIPOS>BOND section of a
//mol2 file. Aromatic bonds get order 12 and amide bonds order 1, as mol2
//has no numeric order for them.
func parseMol2(mol2 []byte, natoms int) ([]reac.Bond, error) {
	ret := make([]reac.Bond, 0, natoms)
	inbonds := false
	scanner := bufio.NewScanner(bytes.NewReader(mol2))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "@<TRIPOS>") {
			inbonds = strings.HasPrefix(line, "@<TRIPOS>BOND")
			continue
		}
		if !inbonds {
			continue
		}
		s := strings.Fields(line)
		if len(s) < 4 {
			continue
		}
		a1, err1 := strconv.Atoi(s[1])
		a2, err2 := strconv.Atoi(s[2])
		if err1 != nil || err2 != nil || a1 < 1 || a1 > natoms || a2 < 1 || a2 > natoms {
			return nil, Error{fmt.Sprintf("bad bond line in obabel output: %q", strings.TrimSpace(line)), "Babel", []string{"parseMol2"}}
		}
		var order int
		switch s[3] {
		case "ar":
			order = 12
		case "am":
			order = 1
		default:
			var err error
			order, err = strconv.Atoi(s[3])
			if err != nil {
				return nil, Error{fmt.Sprintf("unknown bond type %q in obabel output", s[3]), "Babel", []string{"parseMol2"}}
			}
		}
		ret = append(ret, reac.Bond{A: a1 - 1, B: a2 - 1, Order: order})
	}
	if err := scanner.Err(); err != nil {
		return nil, Error{"reading obabel output: " + err.Error(), "Babel", []string{"parseMol2"}}
	}
	return ret, nil
}
