package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/everdragons2/deployer/internal/domain/config"
	"github.com/everdragons2/deployer/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeployRenderer(t *testing.T) {
	result := &usecase.DeployContractResult{
		Contract: "Everdragons2WormholeDemo",
		Address:  "0xABCDEF",
		TxHash:   "0x01",
		Network:  &config.Network{Name: "localhost", RPCURL: "http://127.0.0.1:8545", ChainID: 31337},
	}

	t.Run("plain", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, NewDeployRenderer(&out, false, false).Render(result))
		assert.Equal(t, "Contract deployed to: 0xABCDEF\n", out.String())
	})

	t.Run("json", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, NewDeployRenderer(&out, true, false).Render(result))

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
		assert.Equal(t, "0xABCDEF", decoded["address"])
		assert.Equal(t, "0x01", decoded["txHash"])
		assert.Equal(t, "Everdragons2WormholeDemo", decoded["contract"])
		network := decoded["network"].(map[string]any)
		assert.Equal(t, float64(31337), network["chainId"])
	})
}

func TestNetworksRenderer(t *testing.T) {
	result := &usecase.ListNetworksResult{
		Networks: []usecase.NetworkStatus{
			{Name: "mainnet", RPCURL: "https://eth.example", ChainID: 1},
			{Name: "sepolia", RPCURL: "https://sepolia.example", Error: errors.New("connection refused")},
		},
	}

	t.Run("table", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, NewNetworksRenderer(&out, false, false).Render(result))

		lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
		require.Len(t, lines, 3)
		assert.Contains(t, lines[0], "NETWORK")
		assert.Contains(t, lines[1], "mainnet")
		assert.Contains(t, lines[1], "https://eth.example")
		assert.Contains(t, lines[2], "error: connection refused")
	})

	t.Run("json", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, NewNetworksRenderer(&out, true, false).Render(result))

		var decoded []networkJSON
		require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
		require.Len(t, decoded, 2)
		assert.Equal(t, uint64(1), decoded[0].ChainID)
		assert.Equal(t, "connection refused", decoded[1].Error)
	})

	t.Run("empty", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, NewNetworksRenderer(&out, false, false).Render(&usecase.ListNetworksResult{}))
		assert.Contains(t, out.String(), "No networks configured")
	})
}
