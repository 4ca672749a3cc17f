package models

import (
	"fmt"
	"strings"
)

// Directive is the operator decision for one deployment step
type Directive string

const (
	DirectiveDeploy Directive = "DEPLOY"
	DirectiveSkip   Directive = "SKIP"
	DirectiveExit   Directive = "EXIT"
)

// Directives lists the choices in the order they are offered.
var Directives = []Directive{DirectiveDeploy, DirectiveSkip, DirectiveExit}

// ParseDirective accepts a directive name in any case.
func ParseDirective(s string) (Directive, error) {
	d := Directive(strings.ToUpper(strings.TrimSpace(s)))
	switch d {
	case DirectiveDeploy, DirectiveSkip, DirectiveExit:
		return d, nil
	}
	return "", fmt.Errorf("unknown directive %q", s)
}

// StepInfo describes the pending deployment shown to the operator
type StepInfo struct {
	Name     string
	Gas      uint64
	GasPrice int64 // gwei
	CostEth  string
}
