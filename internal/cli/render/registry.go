package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mythsdao/myths-deploy/internal/domain"
	"github.com/mythsdao/myths-deploy/internal/domain/models"
)

// RegistryView is what the registry renderer prints
type RegistryView struct {
	ChainID  uint64
	Registry *models.Registry
	// Path is where the registry was saved, empty when it was not
	Path    string
	Skipped []string
}

// RegistryRenderer renders deployed contracts as a table
type RegistryRenderer struct {
	out io.Writer
}

// NewRegistryRenderer creates a new registry renderer
func NewRegistryRenderer(out io.Writer) *RegistryRenderer {
	return &RegistryRenderer{out: out}
}

// Render prints one row per deployed contract in deployment order
func (r *RegistryRenderer) Render(view RegistryView) error {
	if view.Registry == nil || view.Registry.Len() == 0 {
		fmt.Fprintln(r.out, FormatWarning("No contracts deployed"))
		return nil
	}

	color.New(color.FgCyan, color.Bold).Fprintf(r.out, "Contracts deployed to %s (chain %d):\n",
		chainTitle(view.ChainID), view.ChainID)

	t := newTable()
	t.AppendHeader(table.Row{"Contract", "Address", "Block"})
	for _, contract := range view.Registry.All() {
		block := "-"
		if n := contract.BlockNumber(); n > 0 {
			block = fmt.Sprintf("%d", n)
		}
		t.AppendRow(table.Row{contract.Name, contract.Address.Hex(), block})
	}
	fmt.Fprintln(r.out, t.Render())

	for _, name := range view.Skipped {
		fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("%s was skipped", name)))
	}
	if view.Path != "" {
		color.New(color.FgHiBlack).Fprintf(r.out, "Registry written to %s\n", view.Path)
	}
	return nil
}

// chainTitle returns a display name for a chain
func chainTitle(chainID uint64) string {
	if chainID == domain.ChainIDLocal {
		return "Localhost"
	}
	return cases.Title(language.English).String(domain.ChainName(chainID))
}

var _ Renderer[RegistryView] = (*RegistryRenderer)(nil)
