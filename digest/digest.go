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

// Package digest produces fingerprints of the serial bit stream. The
// fingerprint for a frame folds in the fingerprint of the frame before it, so
// a single hash value characterises the entire stream up to that point.
//
// The package is the basis of the regression tests: two runs of the
// transmitter that produce the same digest have produced exactly the same
// bits in exactly the same order.
package digest

// Digest implementations compute a running fingerprint of something.
type Digest interface {
	// Hash returns the fingerprint accumulated so far as a printable string.
	Hash() string

	// ResetDigest resets the fingerprint to its initial value.
	ResetDigest()
}
