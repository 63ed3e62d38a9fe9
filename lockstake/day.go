// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lockstake

// DayIndex converts a unix timestamp (seconds) into a day index.
// All scheduling aligns to these boundaries.
func DayIndex(t, dayLength uint64) uint64 {
	return t / dayLength
}

// DayIndex converts a unix timestamp into a day index using the configured day length.
func (c *Config) DayIndex(t uint64) uint64 {
	return DayIndex(t, c.DayLength)
}

// DayStart returns the first second of the given day.
func (c *Config) DayStart(day uint64) uint64 {
	return day * c.DayLength
}
