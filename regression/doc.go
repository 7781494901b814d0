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

// Package regression records reference results of the transmitter pipeline
// and confirms on demand that the current build still produces them.
//
// Two regression types are supported. The stream type runs a pattern
// generator through the transmitter for a number of frames and compares the
// digest of the serial stream with the digest recorded when the entry was
// added. The capture type checks a previously recorded capture file against
// the channel coding rules with the oracle package.
//
// Entries are stored with the database package in a plain text file, one
// entry per line.
package regression
