// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lockstake

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// Config is the set of ledger constants. Most of the parameters have default values which are
// 'locked' once a ledger is created; custom networks may override them from a config file.
type Config struct {
	MinStakeDays     uint64       `yaml:"minStakeDays" json:"minStakeDays"`         // shortest lock, in days.
	MaxStakeDays     uint64       `yaml:"maxStakeDays" json:"maxStakeDays"`         // longest lock, also caps the day bonus.
	LPBAmountCap     *uint256.Int `yaml:"lpbAmountCap" json:"lpbAmountCap"`         // principal above this earns no extra amount bonus.
	LPBDayDivisor    *uint256.Int `yaml:"lpbDayDivisor" json:"lpbDayDivisor"`       // divisor of the longer-pays-better day bonus.
	LPBAmountDivisor *uint256.Int `yaml:"lpbAmountDivisor" json:"lpbAmountDivisor"` // divisor of the bigger-pays-better amount bonus.
	Precision        *uint256.Int `yaml:"precision" json:"precision"`               // fixed point scale of the reward accumulator.
	DayLength        uint64       `yaml:"dayLength" json:"dayLength"`               // seconds per day.
	BurnPercent      *uint64      `yaml:"burnPercent" json:"burnPercent"`           // share of every new stake burned, 0 disables.
	PoolPercent      *uint64      `yaml:"poolPercent" json:"poolPercent"`           // share of every new stake forwarded to RewardsPool, 0 disables.
	RewardsPool      Address      `yaml:"rewardsPool" json:"rewardsPool"`
}

// DefaultConfig returns the config used when nothing is overridden.
func DefaultConfig() *Config {
	return &Config{
		MinStakeDays:     1,
		MaxStakeDays:     3650,
		LPBAmountCap:     uint256.MustFromDecimal("1000000000000000000000000"),  // 1M tokens
		LPBDayDivisor:    uint256.NewInt(1820),                                  // 20% per year
		LPBAmountDivisor: uint256.MustFromDecimal("10000000000000000000000000"), // 10% at the cap
		Precision:        uint256.MustFromDecimal("1000000000000000000000000000000000000"),
		DayLength:        86400,
		BurnPercent:      Percent(33),
		PoolPercent:      Percent(33),
		RewardsPool:      BytesToAddress([]byte("rewards-pool")),
	}
}

// Percent returns a pointer to v, for setting the percentage fields.
func Percent(v uint64) *uint64 {
	return &v
}

// Merge returns a copy of c where every unset field of other is kept from c.
// Zero counts as unset, except for the percentages which are unset only when nil.
func (c *Config) Merge(other *Config) *Config {
	merged := c.Copy()
	if other == nil {
		return merged
	}
	if other.MinStakeDays != 0 {
		merged.MinStakeDays = other.MinStakeDays
	}
	if other.MaxStakeDays != 0 {
		merged.MaxStakeDays = other.MaxStakeDays
	}
	if other.LPBAmountCap != nil {
		merged.LPBAmountCap = other.LPBAmountCap.Clone()
	}
	if other.LPBDayDivisor != nil {
		merged.LPBDayDivisor = other.LPBDayDivisor.Clone()
	}
	if other.LPBAmountDivisor != nil {
		merged.LPBAmountDivisor = other.LPBAmountDivisor.Clone()
	}
	if other.Precision != nil {
		merged.Precision = other.Precision.Clone()
	}
	if other.DayLength != 0 {
		merged.DayLength = other.DayLength
	}
	if other.BurnPercent != nil {
		merged.BurnPercent = Percent(*other.BurnPercent)
	}
	if other.PoolPercent != nil {
		merged.PoolPercent = Percent(*other.PoolPercent)
	}
	if !other.RewardsPool.IsZero() {
		merged.RewardsPool = other.RewardsPool
	}
	return merged
}

// Copy returns a deep copy.
func (c *Config) Copy() *Config {
	cpy := *c
	cpy.LPBAmountCap = cloneOrNil(c.LPBAmountCap)
	cpy.LPBDayDivisor = cloneOrNil(c.LPBDayDivisor)
	cpy.LPBAmountDivisor = cloneOrNil(c.LPBAmountDivisor)
	cpy.Precision = cloneOrNil(c.Precision)
	if c.BurnPercent != nil {
		cpy.BurnPercent = Percent(*c.BurnPercent)
	}
	if c.PoolPercent != nil {
		cpy.PoolPercent = Percent(*c.PoolPercent)
	}
	return &cpy
}

// Validate checks the constants are usable.
func (c *Config) Validate() error {
	if c.MinStakeDays == 0 {
		return errors.New("minStakeDays must be positive")
	}
	if c.MaxStakeDays < c.MinStakeDays {
		return errors.Errorf("maxStakeDays %d is below minStakeDays %d", c.MaxStakeDays, c.MinStakeDays)
	}
	if c.LPBAmountCap == nil {
		return errors.New("lpbAmountCap is required")
	}
	for name, v := range map[string]*uint256.Int{
		"lpbDayDivisor":    c.LPBDayDivisor,
		"lpbAmountDivisor": c.LPBAmountDivisor,
		"precision":        c.Precision,
	} {
		if v == nil || v.IsZero() {
			return errors.Errorf("%s must be positive", name)
		}
	}
	if c.DayLength == 0 {
		return errors.New("dayLength must be positive")
	}
	if c.BurnPercent == nil || c.PoolPercent == nil {
		return errors.New("burnPercent and poolPercent are required")
	}
	if sum := *c.BurnPercent + *c.PoolPercent; sum > 100 {
		return errors.Errorf("burnPercent + poolPercent exceeds 100: %d", sum)
	}
	if c.RewardsPool.IsZero() {
		return errors.New("rewardsPool is required")
	}
	return nil
}

func cloneOrNil(v *uint256.Int) *uint256.Int {
	if v == nil {
		return nil
	}
	return v.Clone()
}
