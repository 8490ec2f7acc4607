package render

import (
	"fmt"
	"io"

	"github.com/everdragons2/deployer/internal/usecase"
	"github.com/fatih/color"
)

// DeployedMessage prefixes the address of a confirmed deployment
const DeployedMessage = "Contract deployed to:"

// DeployRenderer renders the outcome of a deployment run
type DeployRenderer struct {
	out   io.Writer
	json  bool
	color bool
}

// NewDeployRenderer creates a new deploy renderer
func NewDeployRenderer(out io.Writer, jsonOutput, color bool) *DeployRenderer {
	return &DeployRenderer{
		out:   out,
		json:  jsonOutput,
		color: color,
	}
}

// Render prints the deployed address, or the whole result in JSON mode
func (r *DeployRenderer) Render(result *usecase.DeployContractResult) error {
	if r.json {
		return writeJSON(r.out, result)
	}

	address := result.Address
	if r.color {
		c := color.New(color.FgGreen, color.Bold)
		c.EnableColor()
		address = c.Sprint(address)
	}
	_, err := fmt.Fprintf(r.out, "%s %s\n", DeployedMessage, address)
	return err
}

var _ Renderer[*usecase.DeployContractResult] = (*DeployRenderer)(nil)
