//Package sink stores detection catalogs: one record per molecular
//species found in a trajectory, carrying the canonical key of the
//species, the bonds of its first occurrence and the compressed list of
//the steps where it appears.
package sink

import (
	"bufio"
	"encoding/ascii85"
	"fmt"
	"os"
	"strings"

	reac "github.com/rmera/goreac"
)

// File is a sink that writes each record as one line of text: the key,
// bond and step payloads armored as ascii85 and separated by single
// spaces. ascii85 never produces spaces or newlines, so the lines can be
// split back without ambiguity.
type File struct {
	f    *os.File
	w    *bufio.Writer
	name string
	open bool
}

// NewFile returns a sink writing to the named file, which is created, or
// truncated if it exists. An empty name gets a temporary file, whose name
// Name returns.
func NewFile(name string) (*File, error) {
	F := new(File)
	var err error
	if name == "" {
		F.f, err = os.CreateTemp("", "goreac-*.dat")
	} else {
		F.f, err = os.Create(name)
	}
	if err != nil {
		return nil, Error{UnableToCreate + ": " + err.Error(), name, []string{"NewFile"}}
	}
	F.name = F.f.Name()
	F.w = bufio.NewWriter(F.f)
	F.open = true
	return F, nil
}

// Name returns the name of the file written to.
func (F *File) Name() string {
	return F.name
}

// Write appends one record to the file.
func (F *File) Write(r *reac.Record) error {
	if !F.open {
		return Error{SinkClosed, F.name, []string{"Write"}}
	}
	for i, p := range [][]byte{r.Key, r.Bonds, r.Steps} {
		if i > 0 {
			if err := F.w.WriteByte(' '); err != nil {
				return Error{WriteError + ": " + err.Error(), F.name, []string{"Write"}}
			}
		}
		a := make([]byte, ascii85.MaxEncodedLen(len(p)))
		nw := ascii85.Encode(a, p)
		if _, err := F.w.Write(a[:nw]); err != nil {
			return Error{WriteError + ": " + err.Error(), F.name, []string{"Write"}}
		}
	}
	if err := F.w.WriteByte('\n'); err != nil {
		return Error{WriteError + ": " + err.Error(), F.name, []string{"Write"}}
	}
	return nil
}

// Close flushes the buffered records and closes the file.
func (F *File) Close() error {
	if !F.open {
		return nil
	}
	F.open = false
	if err := F.w.Flush(); err != nil {
		F.f.Close()
		return Error{WriteError + ": " + err.Error(), F.name, []string{"Close"}}
	}
	if err := F.f.Close(); err != nil {
		return Error{WriteError + ": " + err.Error(), F.name, []string{"Close"}}
	}
	return nil
}

// ReadFile loads back a catalog written by a File sink, in the order it
// was written.
func ReadFile(name string) ([]*reac.Record, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"ReadFile"}}
	}
	defer f.Close()
	var ret []*reac.Record
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 64*1024*1024) //a single species can hold a lot of bonds
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, Error{fmt.Sprintf("%s: %d fields in line, want 3", WrongFormat, len(fields)), name, []string{"ReadFile"}}
		}
		r := new(reac.Record)
		for i, dst := range []*[]byte{&r.Key, &r.Bonds, &r.Steps} {
			p, err := unarmor(fields[i])
			if err != nil {
				return nil, Error{WrongFormat + ": " + err.Error(), name, []string{"ReadFile"}}
			}
			*dst = p
		}
		ret = append(ret, r)
	}
	if err := scanner.Err(); err != nil {
		return nil, Error{ReadError + ": " + err.Error(), name, []string{"ReadFile"}}
	}
	return ret, nil
}

//unarmor decodes one ascii85 field. The buffer is 4x the input because
//the "z" shortcut expands one character into four zero bytes.
func unarmor(field string) ([]byte, error) {
	dst := make([]byte, 4*len(field))
	ndst, _, err := ascii85.Decode(dst, []byte(field), true)
	if err != nil {
		return nil, err
	}
	return dst[:ndst], nil
}

// Mem is a sink that keeps the records in memory, in writing order. It is
// mostly useful for tests and for further in-process work on a catalog.
type Mem struct {
	Records []*reac.Record
}

// NewMem returns an empty in-memory sink.
func NewMem() *Mem {
	return new(Mem)
}

// Write appends one record.
func (M *Mem) Write(r *reac.Record) error {
	M.Records = append(M.Records, r)
	return nil
}

// Close does nothing. The records stay available.
func (M *Mem) Close() error {
	return nil
}

//Errors

//Error is the general structure for catalog-sink errors. It fullfills reac.Error.
type Error struct {
	message  string
	location string //the file or directory written to, or an empty string if none
	deco     []string
}

func (err Error) Error() string {
	return fmt.Sprintf("catalog sink %s error: %s", err.location, err.message)
}

func (E Error) Decorate(deco string) []string {
	//Even though this method does not use a pointer as a receiver, and tries to alter the receiver,
	//it should work, since E.deco is a slice, and hence a pointer itself.
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

const (
	UnableToCreate = "Unable to create output"
	UnableToOpen   = "Unable to open catalog"
	WriteError     = "Error writing record"
	ReadError      = "Error reading catalog"
	WrongFormat    = "Wrong format in the catalog"
	SinkClosed     = "The sink is already closed"
)
