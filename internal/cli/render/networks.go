package render

import (
	"fmt"
	"io"

	"github.com/everdragons2/deployer/internal/usecase"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out   io.Writer
	json  bool
	color bool
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer, jsonOutput, color bool) *NetworksRenderer {
	return &NetworksRenderer{
		out:   out,
		json:  jsonOutput,
		color: color,
	}
}

type networkJSON struct {
	Name    string `json:"name"`
	RPCURL  string `json:"rpcUrl,omitempty"`
	ChainID uint64 `json:"chainId,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Render prints one row per configured network
func (r *NetworksRenderer) Render(result *usecase.ListNetworksResult) error {
	if r.json {
		rows := make([]networkJSON, 0, len(result.Networks))
		for _, network := range result.Networks {
			row := networkJSON{Name: network.Name, RPCURL: network.RPCURL, ChainID: network.ChainID}
			if network.Error != nil {
				row.Error = network.Error.Error()
			}
			rows = append(rows, row)
		}
		return writeJSON(r.out, rows)
	}

	if len(result.Networks) == 0 {
		_, err := fmt.Fprintln(r.out, "No networks configured in foundry.toml [rpc_endpoints]")
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.Style().Options.SeparateRows = false
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateHeader = false
	t.Style().Options.SeparateColumns = false
	t.Style().Box = table.BoxStyle{
		PaddingRight: "   ",
	}

	t.AppendHeader(table.Row{"NETWORK", "CHAIN ID", "RPC URL"})
	for _, network := range result.Networks {
		chainID := fmt.Sprintf("%d", network.ChainID)
		if network.Error != nil {
			chainID = r.paint(color.FgRed, fmt.Sprintf("error: %v", network.Error))
		} else if network.ChainID == 0 {
			chainID = "-"
		}
		t.AppendRow(table.Row{r.paint(color.FgCyan, network.Name), chainID, network.RPCURL})
	}
	t.Render()

	return nil
}

func (r *NetworksRenderer) paint(attr color.Attribute, s string) string {
	if !r.color {
		return s
	}
	c := color.New(attr)
	c.EnableColor()
	return c.Sprint(s)
}

var _ Renderer[*usecase.ListNetworksResult] = (*NetworksRenderer)(nil)
