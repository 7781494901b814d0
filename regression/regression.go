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

package regression

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/jetsetilly/dvitx/curated"
	"github.com/jetsetilly/dvitx/database"
)

// DBPath is the location of the regression database. A variable rather than
// a constant so that tests can substitute their own database.
var DBPath = ".dvitx/regressionDB"

// Regressor represents the generic entry in the regression database.
type Regressor interface {
	database.Entry

	// perform the regression test for the regression type. when the
	// newRegression flag is true the reference result is recorded rather
	// than compared
	regress(newRegression bool, output io.Writer) (bool, error)
}

// when starting a database session we need to register what entries we will
// find in the database.
func initDBSession(db *database.Session) error {
	if err := db.RegisterEntryType(streamEntryID, deserialiseStreamEntry); err != nil {
		return err
	}

	if err := db.RegisterEntryType(captureEntryID, deserialiseCaptureEntry); err != nil {
		return err
	}

	return nil
}

// startSession opens the regression database. For activities that will write
// to the database the directory portion of DBPath is created if it does not
// already exist.
func startSession(activity database.Activity) (*database.Session, error) {
	if activity != database.ActivityReading {
		if dir := filepath.Dir(DBPath); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, curated.Errorf("regression: %v", err)
			}
		}
	}

	return database.StartSession(DBPath, activity, initDBSession)
}

// RegressList displays all entries in the database.
func RegressList(output io.Writer) error {
	db, err := startSession(database.ActivityReading)
	if err != nil {
		return err
	}
	defer db.EndSession(false)

	return db.List(output)
}

// RegressAdd adds a new regression entry to the database. The reference
// result is generated immediately.
func RegressAdd(output io.Writer, reg Regressor) (rtn error) {
	db, err := startSession(database.ActivityCreating)
	if err != nil {
		return err
	}

	// nothing is committed unless the entry has actually been added. a failed
	// commit is the error of the whole function
	commit := false
	defer func() {
		if err := db.EndSession(commit); err != nil && rtn == nil {
			rtn = err
		}
	}()

	ok, err := reg.regress(true, output)
	if !ok || err != nil {
		return err
	}

	if err := db.Add(reg); err != nil {
		return err
	}
	commit = true

	fmt.Fprintf(output, "added: %s\n", reg)

	return nil
}

// RegressDelete removes an entry from the regression database. The
// confirmation reader is consulted before anything is deleted; anything
// other than a leading 'y' or 'Y' aborts.
func RegressDelete(output io.Writer, confirmation io.Reader, key string) (rtn error) {
	v, err := strconv.Atoi(key)
	if err != nil {
		return curated.Errorf("regression: invalid key (%s)", key)
	}

	db, err := startSession(database.ActivityModifying)
	if err != nil {
		return err
	}

	commit := false
	defer func() {
		if err := db.EndSession(commit); err != nil && rtn == nil {
			rtn = err
		}
	}()

	ent, err := db.Get(v)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "%s\ndelete? (y/n): ", ent)

	confirm := make([]byte, 32)
	if _, err := confirmation.Read(confirm); err != nil {
		return err
	}

	if confirm[0] == 'y' || confirm[0] == 'Y' {
		if err := db.Delete(v); err != nil {
			return err
		}
		commit = true
		fmt.Fprintf(output, "deleted test #%s from regression database\n", key)
	}

	return nil
}

// RegressRun runs the tests in the regression database. An empty filterKeys
// list means that every entry should be tested.
func RegressRun(output io.Writer, filterKeys []string) error {
	db, err := startSession(database.ActivityReading)
	if err != nil {
		return err
	}
	defer db.EndSession(false)

	// make sure any supplied keys list is in order
	keys := make([]int, 0, len(filterKeys))
	for _, k := range filterKeys {
		v, err := strconv.Atoi(k)
		if err != nil {
			return curated.Errorf("regression: invalid key (%s)", k)
		}
		keys = append(keys, v)
	}
	sort.Ints(keys)
	filterIdx := 0

	numSucceed := 0
	numFail := 0
	numError := 0
	numSkipped := 0

	defer func() {
		fmt.Fprintf(output, "regression tests: %d succeed, %d fail, %d skipped", numSucceed, numFail, numSkipped)
		if numError > 0 {
			fmt.Fprintf(output, " [with errors]")
		}
		fmt.Fprintf(output, "\n")
	}()

	_, err = db.SelectAll(func(key int, ent database.Entry) error {
		if len(keys) > 0 {
			if filterIdx >= len(keys) {
				numSkipped++
				return nil
			}
			if keys[filterIdx] != key {
				numSkipped++
				return nil
			}
			filterIdx++
		}

		reg, ok := ent.(Regressor)
		if !ok {
			return curated.Errorf("regression: database entry does not satisfy Regressor interface")
		}

		ok, err := reg.regress(false, output)
		if err != nil {
			numError++
			fmt.Fprintf(output, "error: %s\n", reg)
			fmt.Fprintf(output, "  %v\n", err)
			return nil
		}

		if !ok {
			numFail++
			fmt.Fprintf(output, "failure: %s\n", reg)
			return nil
		}

		numSucceed++
		fmt.Fprintf(output, "succeed: %s\n", reg)

		return nil
	})

	return err
}
