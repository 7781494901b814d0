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

// SelectAll entries in the database in key order. onSelect can be nil.
//
// Returns the last entry in the selection or an error with the last entry
// visited before the error occurred.
func (db Session) SelectAll(onSelect func(key int, ent Entry) error) (Entry, error) {
	var entry Entry

	if onSelect == nil {
		onSelect = func(_ int, _ Entry) error { return nil }
	}

	for _, key := range db.SortedKeyList() {
		entry = db.entries[key]
		if err := onSelect(key, entry); err != nil {
			return entry, err
		}
	}

	return entry, nil
}
