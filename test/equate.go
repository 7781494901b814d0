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

package test

import (
	"testing"
)

// Equate tests equality between a value and an expected value. Both values
// must generally be of the same type but if the value is one of the unsigned
// integer types the expected value may be an untyped int literal. It is very
// convenient to be able to write:
//
//	var sym uint16
//	sym = someFunction()
//	test.Equate(t, sym, 0x100)
//
// without having to cast the literal. Unsigned values are printed in both
// decimal and hexadecimal on failure because most values in this project are
// bit patterns.
func Equate(t *testing.T, value, expectedValue interface{}) {
	t.Helper()

	switch v := value.(type) {
	default:
		t.Fatalf("unhandled type for Equate() function (%T)", v)

	case int:
		ev, ok := expectedValue.(int)
		if !ok {
			t.Fatalf("values for Equate() are not the same type (%T and %T)", v, expectedValue)
		}
		if v != ev {
			t.Errorf("equation of type %T failed (%d - wanted %d)", v, v, ev)
		}

	case uint8:
		var ev uint8
		switch e := expectedValue.(type) {
		case uint8:
			ev = e
		case int:
			ev = uint8(e)
		default:
			t.Fatalf("values for Equate() are not compatible (%T and %T)", v, expectedValue)
		}
		if v != ev {
			t.Errorf("equation of type %T failed (%d [%02x] - wanted %d [%02x])", v, v, v, ev, ev)
		}

	case uint16:
		var ev uint16
		switch e := expectedValue.(type) {
		case uint16:
			ev = e
		case int:
			ev = uint16(e)
		default:
			t.Fatalf("values for Equate() are not compatible (%T and %T)", v, expectedValue)
		}
		if v != ev {
			t.Errorf("equation of type %T failed (%d [%04x] - wanted %d [%04x])", v, v, v, ev, ev)
		}

	case uint64:
		var ev uint64
		switch e := expectedValue.(type) {
		case uint64:
			ev = e
		case int:
			ev = uint64(e)
		default:
			t.Fatalf("values for Equate() are not compatible (%T and %T)", v, expectedValue)
		}
		if v != ev {
			t.Errorf("equation of type %T failed (%d - wanted %d)", v, v, ev)
		}

	case string:
		ev, ok := expectedValue.(string)
		if !ok {
			t.Fatalf("values for Equate() are not the same type (%T and %T)", v, expectedValue)
		}
		if v != ev {
			t.Errorf("equation of type %T failed (%s - wanted %s)", v, v, ev)
		}

	case bool:
		ev, ok := expectedValue.(bool)
		if !ok {
			t.Fatalf("values for Equate() are not the same type (%T and %T)", v, expectedValue)
		}
		if v != ev {
			t.Errorf("equation of type %T failed (%v - wanted %v)", v, v, ev)
		}
	}
}
