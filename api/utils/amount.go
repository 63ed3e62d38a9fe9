// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// Amount renders a token amount as a hex quantity. Requests may use hex or decimal.
func Amount(v *uint256.Int) *math.HexOrDecimal256 {
	if v == nil {
		return (*math.HexOrDecimal256)(new(big.Int))
	}
	return (*math.HexOrDecimal256)(v.ToBig())
}

// ParseAmount converts a decoded request amount, rejecting missing, negative and oversized values.
func ParseAmount(v *math.HexOrDecimal256) (*uint256.Int, error) {
	if v == nil {
		return nil, errors.New("missing")
	}
	b := (*big.Int)(v)
	if b.Sign() < 0 {
		return nil, errors.New("negative")
	}
	out, overflow := uint256.FromBig(b)
	if overflow {
		return nil, errors.New("exceeds 256 bits")
	}
	return out, nil
}
