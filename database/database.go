// This file is part of DVItx.
//
// DVItx is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// DVItx is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with DVItx.  If not, see <https://www.gnu.org/licenses/>.

package database

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jetsetilly/dvitx/curated"
)

// arbitrary maximum number of entries.
const maxEntries = 1000

const fieldSep = ","
const entrySep = "\n"

const (
	leaderFieldKey int = iota
	leaderFieldID
	numLeaderFields
)

func recordHeader(key int, id string) string {
	return fmt.Sprintf("%03d%s%s", key, fieldSep, id)
}

// NumEntries returns the number of entries in the database.
func (db Session) NumEntries() int {
	return len(db.entries)
}

// SortedKeyList returns a sorted list of database keys.
func (db Session) SortedKeyList() []int {
	keyList := make([]int, 0, len(db.entries))
	for k := range db.entries {
		keyList = append(keyList, k)
	}
	sort.Ints(keyList)
	return keyList
}

// List the entries in key order.
func (db Session) List(output io.Writer) error {
	if db.NumEntries() == 0 {
		if _, err := output.Write([]byte("database is empty\n")); err != nil {
			return err
		}
		return nil
	}

	for _, key := range db.SortedKeyList() {
		ent := db.entries[key]

		if _, err := output.Write([]byte(fmt.Sprintf("%03d ", key))); err != nil {
			return err
		}
		if _, err := output.Write([]byte(ent.String())); err != nil {
			return err
		}
		if _, err := output.Write([]byte("\n")); err != nil {
			return err
		}
	}

	if _, err := output.Write([]byte(fmt.Sprintf("Total: %d\n", db.NumEntries()))); err != nil {
		return err
	}

	return nil
}

// Add an entry to the db. The entry is serialised immediately so that a
// value that cannot be stored faithfully in the database file is rejected
// now, rather than corrupting the file at commit.
func (db *Session) Add(ent Entry) error {
	ser, err := ent.Serialise()
	if err != nil {
		return err
	}
	for _, f := range ser {
		if strings.Contains(f, fieldSep) || strings.Contains(f, entrySep) {
			return curated.Errorf("database: invalid field content (%s)", f)
		}
	}

	var key int

	// find spare key
	for key = 0; key < maxEntries; key++ {
		if _, ok := db.entries[key]; !ok {
			break
		}
	}

	if key == maxEntries {
		return curated.Errorf("database: maximum entries exceeded (max %d)", maxEntries)
	}

	db.entries[key] = ent

	return nil
}

// Delete deletes the entry with the specified key.
func (db *Session) Delete(key int) error {
	ent, ok := db.entries[key]
	if !ok {
		return curated.Errorf("database: key not available (%d)", key)
	}

	if err := ent.CleanUp(); err != nil {
		return curated.Errorf("database: %v", err)
	}

	delete(db.entries, key)

	return nil
}
