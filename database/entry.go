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

import "github.com/jetsetilly/dvitx/curated"

// the initialisation function when creating a new entry from the database
// file.
type deserialiser func(fields []string) (Entry, error)

// SerialisedEntry is the Entry data represented as an array of strings.
type SerialisedEntry []string

// Entry represents the generic entry in the database.
type Entry interface {
	// ID returns the string that is used to identify the entry type in
	// the database
	ID() string

	// String should return information about the entry in a human readable
	// format. by contrast, machine readable representation is returned by
	// the Serialise function
	String() string

	// return the Entry data as an instance of SerialisedEntry
	Serialise() (SerialisedEntry, error)

	// a cleanup is performed when entry is deleted from the database
	CleanUp() error
}

// RegisterEntryType tells the database what entries it may expect in the
// database and what to do when it encounters one.
func (db *Session) RegisterEntryType(id string, des deserialiser) error {
	if _, ok := db.entryTypes[id]; ok {
		return curated.Errorf("database: duplicate entry type (%s)", id)
	}
	db.entryTypes[id] = des
	return nil
}
