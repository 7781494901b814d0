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

// Package test contains the helper functions used by the unit tests
// throughout the project. The helpers exist to cut down on the boilerplate
// around value comparison and success/failure expectations.
//
// Equate compares a value against an expected value of a compatible type.
// ExpectedSuccess and ExpectedFailure test bools and errors for the
// condition their names suggest.
package test
