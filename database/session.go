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
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/jetsetilly/dvitx/curated"
)

// Activity maps onto the type of file access required for the session.
type Activity int

// List of valid activities.
const (
	ActivityReading Activity = iota
	ActivityModifying
	ActivityCreating
)

// Session keeps track of a database session.
type Session struct {
	path     string
	activity Activity

	entries    map[int]Entry
	entryTypes map[string]deserialiser
}

// StartSession opens the database file and deserialises its entries. The
// init function is called before the file is read, giving the caller the
// opportunity to register entry types.
func StartSession(path string, activity Activity, init func(*Session) error) (*Session, error) {
	db := &Session{
		path:       path,
		activity:   activity,
		entries:    make(map[int]Entry),
		entryTypes: make(map[string]deserialiser),
	}

	if init != nil {
		if err := init(db); err != nil {
			return nil, err
		}
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) && activity == ActivityCreating {
			return db, nil
		}
		return nil, curated.Errorf("database: %v", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Split(line, fieldSep)
		if len(fields) < numLeaderFields {
			return nil, curated.Errorf("database: malformed entry (%s)", line)
		}

		key, err := strconv.Atoi(fields[leaderFieldKey])
		if err != nil {
			return nil, curated.Errorf("database: malformed key (%s)", fields[leaderFieldKey])
		}

		des, ok := db.entryTypes[fields[leaderFieldID]]
		if !ok {
			return nil, curated.Errorf("database: unrecognised entry type (%s)", fields[leaderFieldID])
		}

		ent, err := des(fields[numLeaderFields:])
		if err != nil {
			return nil, err
		}

		db.entries[key] = ent
	}
	if err := scanner.Err(); err != nil {
		return nil, curated.Errorf("database: %v", err)
	}

	return db, nil
}

// EndSession closes the database, writing changes back to the database file
// if the commit flag is true. Sessions opened with ActivityReading cannot
// commit.
func (db *Session) EndSession(commit bool) error {
	if !commit {
		return nil
	}

	if db.activity == ActivityReading {
		return curated.Errorf("database: cannot commit a read-only session")
	}

	f, err := os.Create(db.path)
	if err != nil {
		return curated.Errorf("database: %v", err)
	}
	defer f.Close()

	for _, key := range db.SortedKeyList() {
		ent := db.entries[key]

		ser, err := ent.Serialise()
		if err != nil {
			return err
		}

		fields := append([]string{recordHeader(key, ent.ID())}, ser...)
		if _, err := f.WriteString(strings.Join(fields, fieldSep) + entrySep); err != nil {
			return curated.Errorf("database: %v", err)
		}
	}

	return nil
}

// Get returns the entry with the specified key.
func (db *Session) Get(key int) (Entry, error) {
	ent, ok := db.entries[key]
	if !ok {
		return nil, curated.Errorf("database: key not available (%d)", key)
	}
	return ent, nil
}
