package interactive

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"

	"github.com/mythsdao/myths-deploy/internal/domain/config"
	"github.com/mythsdao/myths-deploy/internal/domain/models"
	"github.com/mythsdao/myths-deploy/internal/usecase"
)

// Prompter asks the operator about each deployment step
type Prompter struct {
	config *config.RuntimeConfig
}

// NewPrompter creates a new terminal prompter
func NewPrompter(cfg *config.RuntimeConfig) *Prompter {
	return &Prompter{config: cfg}
}

// PromptGasPrice asks for the gas price in gwei, defaulting to the suggestion.
func (p *Prompter) PromptGasPrice(ctx context.Context, suggestedGwei int64) (int64, error) {
	if p.config.NonInteractive {
		return suggestedGwei, nil
	}

	prompt := promptui.Prompt{
		Label:    "Set gas price (gwei)",
		Default:  strconv.FormatInt(suggestedGwei, 10),
		Validate: validateGwei,
	}
	input, err := prompt.Run()
	if err != nil {
		return 0, fmt.Errorf("prompt cancelled: %w", err)
	}
	return parseGwei(input, suggestedGwei)
}

// PromptDirective shows the step cost and asks whether to deploy it.
func (p *Prompter) PromptDirective(ctx context.Context, step models.StepInfo) (models.Directive, error) {
	if p.config.NonInteractive {
		return models.DirectiveDeploy, nil
	}

	items := make([]string, len(models.Directives))
	for i, d := range models.Directives {
		items[i] = string(d)
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, Enter to select"),
	}

	sel := promptui.Select{
		Label:     directiveLabel(step),
		Items:     items,
		Templates: templates,
	}
	_, choice, err := sel.Run()
	if err != nil {
		return "", fmt.Errorf("selection cancelled: %w", err)
	}
	return models.ParseDirective(choice)
}

// ConfirmUnresolved asks whether to deploy with zero addresses in place of
// skipped dependencies.
func (p *Prompter) ConfirmUnresolved(ctx context.Context, contract string, missing []string) (bool, error) {
	if p.config.NonInteractive {
		return false, nil
	}

	prompt := promptui.Prompt{
		Label: fmt.Sprintf("%s depends on %s which %s not deployed. Deploy with the zero address",
			contract, strings.Join(missing, ", "), pluralVerb(len(missing))),
		IsConfirm: true,
	}
	if _, err := prompt.Run(); err != nil {
		if err == promptui.ErrAbort {
			return false, nil
		}
		return false, fmt.Errorf("prompt cancelled: %w", err)
	}
	return true, nil
}

func directiveLabel(step models.StepInfo) string {
	return fmt.Sprintf("Deploy %s? (gas: %d, gas price: %d gwei, cost: %s ETH)",
		color.New(color.Bold).Sprint(step.Name), step.Gas, step.GasPrice, step.CostEth)
}

func validateGwei(input string) error {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	v, err := strconv.ParseInt(strings.TrimSpace(input), 10, 64)
	if err != nil {
		return fmt.Errorf("enter a whole number of gwei")
	}
	if v <= 0 {
		return fmt.Errorf("gas price must be positive")
	}
	return nil
}

func parseGwei(input string, fallback int64) (int64, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return fallback, nil
	}
	if err := validateGwei(input); err != nil {
		return 0, err
	}
	return strconv.ParseInt(input, 10, 64)
}

func pluralVerb(n int) string {
	if n == 1 {
		return "was"
	}
	return "were"
}

var _ usecase.OperatorPrompter = (*Prompter)(nil)
