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

// Package curated is the error type used throughout DVItx for all errors that
// are created at construction time or when working with files. Per-tick
// operations in the hardware packages are total functions and never return
// errors.
//
// Errors are created with a pattern string rather than a preformatted
// message. The pattern is kept alongside the formatted values which allows
// callers to test for a class of error with the Is() and Has() functions
// without resorting to string comparison of the formatted message.
//
// A typical pattern is the name of the package followed by a description of
// the failure:
//
//	curated.Errorf("recorder: %v", err)
//
// Patterns that are tested for by other packages should be declared as
// constants so the pattern is written down exactly once.
package curated
