package sink

import (
	"encoding/binary"

	"github.com/dgraph-io/badger/v4"

	reac "github.com/rmera/goreac"
)

// Badger is a sink that stores records in a Badger key-value database,
// under their canonical keys. The stored value is the bond payload,
// preceded by its length as a big-endian uint32, followed by the step
// payload. Badger keeps one catalog per directory, and a detection run
// appends to whatever is already there, so the same database can
// accumulate the species of several trajectories.
type Badger struct {
	db   *badger.DB
	wb   *badger.WriteBatch
	dir  string
	open bool
}

// NewBadger opens the Badger database in dir, creating it if needed.
func NewBadger(dir string) (*Badger, error) {
	B := new(Badger)
	opts := badger.DefaultOptions(dir).WithLoggingLevel(badger.ERROR)
	var err error
	B.db, err = badger.Open(opts)
	if err != nil {
		return nil, Error{UnableToCreate + ": " + err.Error(), dir, []string{"badger.Open", "NewBadger"}}
	}
	B.wb = B.db.NewWriteBatch()
	B.dir = dir
	B.open = true
	return B, nil
}

// Write queues one record. Writes are batched, so a record is not
// readable until Close, or Flush, is called.
func (B *Badger) Write(r *reac.Record) error {
	if !B.open {
		return Error{SinkClosed, B.dir, []string{"Write"}}
	}
	v := make([]byte, 4, 4+len(r.Bonds)+len(r.Steps))
	binary.BigEndian.PutUint32(v, uint32(len(r.Bonds)))
	v = append(v, r.Bonds...)
	v = append(v, r.Steps...)
	k := make([]byte, len(r.Key))
	copy(k, r.Key)
	if err := B.wb.Set(k, v); err != nil {
		return Error{WriteError + ": " + err.Error(), B.dir, []string{"Write"}}
	}
	return nil
}

// Flush commits the queued records, making them readable.
func (B *Badger) Flush() error {
	if !B.open {
		return Error{SinkClosed, B.dir, []string{"Flush"}}
	}
	if err := B.wb.Flush(); err != nil {
		return Error{WriteError + ": " + err.Error(), B.dir, []string{"Flush"}}
	}
	B.wb = B.db.NewWriteBatch()
	return nil
}

// Close commits the queued records and closes the database.
func (B *Badger) Close() error {
	if !B.open {
		return nil
	}
	B.open = false
	if err := B.wb.Flush(); err != nil {
		B.db.Close()
		return Error{WriteError + ": " + err.Error(), B.dir, []string{"Close"}}
	}
	if err := B.db.Close(); err != nil {
		return Error{WriteError + ": " + err.Error(), B.dir, []string{"Close"}}
	}
	return nil
}

// Record recovers the record stored under key, with the bond and step
// payloads split back apart.
func (B *Badger) Record(key []byte) (*reac.Record, error) {
	if !B.open {
		return nil, Error{SinkClosed, B.dir, []string{"Record"}}
	}
	r := &reac.Record{Key: append([]byte(nil), key...)}
	err := B.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(v []byte) error {
			b, s, err := splitValue(v, B.dir)
			if err != nil {
				return err
			}
			r.Bonds = append([]byte(nil), b...)
			r.Steps = append([]byte(nil), s...)
			return nil
		})
	})
	if err != nil {
		return nil, wraperr(err, B.dir, "Record")
	}
	return r, nil
}

// ForEach calls f on every record in the database, in key order. If f
// returns an error the iteration stops and the error is returned.
func (B *Badger) ForEach(f func(r *reac.Record) error) error {
	if !B.open {
		return Error{SinkClosed, B.dir, []string{"ForEach"}}
	}
	err := B.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			r := &reac.Record{Key: item.KeyCopy(nil)}
			err := item.Value(func(v []byte) error {
				b, s, err := splitValue(v, B.dir)
				if err != nil {
					return err
				}
				r.Bonds = append([]byte(nil), b...)
				r.Steps = append([]byte(nil), s...)
				return nil
			})
			if err != nil {
				return err
			}
			if err := f(r); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return wraperr(err, B.dir, "ForEach")
	}
	return nil
}

//splitValue separates the bond and step payloads of a stored value.
func splitValue(v []byte, dir string) ([]byte, []byte, error) {
	if len(v) < 4 {
		return nil, nil, Error{WrongFormat + ": value too short", dir, []string{"splitValue"}}
	}
	bl := int(binary.BigEndian.Uint32(v))
	if 4+bl > len(v) {
		return nil, nil, Error{WrongFormat + ": bond payload truncated", dir, []string{"splitValue"}}
	}
	return v[4 : 4+bl], v[4+bl:], nil
}

//wraperr decorates reac.Error errors and wraps the ones coming from
//Badger itself.
func wraperr(err error, dir, caller string) error {
	if err2, ok := err.(reac.Error); ok {
		err2.Decorate(caller)
		return err2
	}
	return Error{ReadError + ": " + err.Error(), dir, []string{caller}}
}
