package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"

	"github.com/mythsdao/myths-deploy/internal/domain/models"
	"github.com/mythsdao/myths-deploy/internal/usecase"
)

// LocalNodeRenderer renders the state of a prepared development node
type LocalNodeRenderer struct {
	out      io.Writer
	registry *RegistryRenderer
}

// NewLocalNodeRenderer creates a new local node renderer
func NewLocalNodeRenderer(out io.Writer) *LocalNodeRenderer {
	return &LocalNodeRenderer{out: out, registry: NewRegistryRenderer(out)}
}

// Render prints the funded accounts, the deployed contracts and how to connect
func (r *LocalNodeRenderer) Render(result *usecase.RunLocalResult) error {
	color.New(color.FgCyan, color.Bold).Fprintln(r.out, "Test accounts:")
	t := newTable()
	t.AppendHeader(table.Row{"#", "Address", "Private Key"})
	t.AppendRows(lo.Map(result.Accounts, func(account models.Account, i int) table.Row {
		return table.Row{i, account.Address.Hex(), account.PrivateKey}
	}))
	fmt.Fprintln(r.out, t.Render())
	fmt.Fprintln(r.out)

	if err := r.registry.Render(RegistryView{ChainID: result.ChainID, Registry: result.Registry}); err != nil {
		return err
	}

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Node ready at %s", result.Instance.RPCURL())))
	if !result.Started {
		color.New(color.FgYellow).Fprintln(r.out, "Reusing a node that was already running, it will be left running on exit")
	}
	color.New(color.FgHiBlack).Fprintln(r.out, "Press Ctrl+C to stop")
	return nil
}

var _ Renderer[*usecase.RunLocalResult] = (*LocalNodeRenderer)(nil)
