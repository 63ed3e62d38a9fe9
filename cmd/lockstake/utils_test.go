// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lockstake/lockstake/genesis"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    *uint256.Int
		wantErr bool
	}{
		{"1000", uint256.NewInt(1000), false},
		{"0x3e8", uint256.NewInt(1000), false},
		{"", nil, true},
		{"-1", nil, true},
		{"ten", nil, true},
		{"0x10000000000000000000000000000000000000000000000000000000000000000", nil, true},
	}
	for _, tt := range tests {
		got, err := parseAmount(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("minStakeDays: 3\ndayLength: 60\nlpbDayDivisor: 100\n"), 0o600))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), cfg.MinStakeDays)
	assert.Equal(t, uint64(60), cfg.DayLength)
	assert.Equal(t, uint256.NewInt(100), cfg.LPBDayDivisor)

	dev := genesis.DevGenesis()
	dev.Config = cfg
	gene, err := genesis.NewCustomNet(dev)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), gene.Config().MinStakeDays)
	assert.Equal(t, uint64(3650), gene.Config().MaxStakeDays)
	assert.NotEqual(t, genesis.NewDevnet().ID(), gene.ID())

	_, err = loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
