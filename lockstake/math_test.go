// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lockstake

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
)

func TestCheckedMath(t *testing.T) {
	max := new(uint256.Int).SetAllOne()
	one := uint256.NewInt(1)

	_, err := Add(max, one)
	assert.ErrorIs(t, err, ErrOverflow)
	_, err = Sub(one, uint256.NewInt(2))
	assert.ErrorIs(t, err, ErrUnderflow)
	_, err = Mul(max, uint256.NewInt(2))
	assert.ErrorIs(t, err, ErrOverflow)
	_, err = Div(one, new(uint256.Int))
	assert.ErrorIs(t, err, ErrDivisionByZero)
	_, err = MulDiv(max, max, one)
	assert.ErrorIs(t, err, ErrOverflow)

	v, err := MulDiv(uint256.NewInt(10), uint256.NewInt(7), uint256.NewInt(3))
	assert.NoError(t, err)
	assert.Equal(t, uint256.NewInt(23), v)

	assert.Equal(t, one, Min(one, max))
	assert.Equal(t, one, Min(max, one))
}
