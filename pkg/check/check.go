package check

import (
	"fmt"
	"slices"

	"github.com/matzehuels/mieza/pkg/circuit"
	"github.com/matzehuels/mieza/pkg/errors"
	"github.com/matzehuels/mieza/pkg/geometry"
	"github.com/matzehuels/mieza/pkg/netlist"
)

// Severity grades a diagnostic. Errors stop the pipeline; warnings do not.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Rule identifies the check that produced a diagnostic.
type Rule string

const (
	RuleInvalidID       Rule = "invalid-id"
	RuleDuplicate       Rule = "duplicate-component"
	RuleUnknownKind     Rule = "unknown-kind"
	RuleInvalidRotation Rule = "invalid-rotation"
	RuleInvalidNetName  Rule = "invalid-net-name"
	RuleDangling        Rule = "dangling-reference"
	RuleUnknownPin      Rule = "unknown-pin"
	RuleUnconnectedPin  Rule = "unconnected-pin"
	RuleFloatingInput   Rule = "floating-input"
	RuleShortedSource   Rule = "shorted-source"
	RuleValueFormat     Rule = "value-format"
)

// Diagnostic is a single finding.
type Diagnostic struct {
	Severity  Severity    `json:"severity"`
	Rule      Rule        `json:"rule"`
	Code      errors.Code `json:"code,omitempty"`
	Component string      `json:"component,omitempty"`
	Pin       string      `json:"pin,omitempty"`
	Message   string      `json:"message"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s [%s] %s", d.Severity, d.Rule, d.Message)
}

// Report is the outcome of a check run, errors first.
type Report struct {
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// Errors returns the error-severity diagnostics.
func (r *Report) Errors() []Diagnostic { return r.filter(SeverityError) }

// Warnings returns the warning-severity diagnostics.
func (r *Report) Warnings() []Diagnostic { return r.filter(SeverityWarning) }

// HasErrors reports whether any diagnostic is an error.
func (r *Report) HasErrors() bool { return len(r.Errors()) > 0 }

// Err returns the first error diagnostic as a coded error, or nil.
func (r *Report) Err() error {
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			return errors.New(d.Code, "%s", d.Message)
		}
	}
	return nil
}

func (r *Report) filter(s Severity) []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Severity == s {
			out = append(out, d)
		}
	}
	return out
}

// Option configures a check run.
type Option func(*checker)

// Disable turns off the given rules.
func Disable(rules ...Rule) Option {
	return func(c *checker) {
		for _, r := range rules {
			c.disabled[r] = true
		}
	}
}

// ErrorsOnly skips every warning rule.
func ErrorsOnly() Option {
	return func(c *checker) { c.errorsOnly = true }
}

type checker struct {
	src        geometry.Source
	c          *circuit.Circuit
	disabled   map[Rule]bool
	errorsOnly bool
	report     Report
}

// Run checks c against the templates in src. Structural problems are errors
// carrying the engine's error codes; electrical smells are warnings. The
// net-based warnings only run when there are no errors, since nets cannot be
// resolved for a broken circuit.
func Run(src geometry.Source, c *circuit.Circuit, opts ...Option) *Report {
	ch := &checker{src: src, c: c, disabled: make(map[Rule]bool)}
	for _, opt := range opts {
		opt(ch)
	}

	templates := ch.components()
	ch.references(templates)
	ch.netNames()

	if !ch.errorsOnly {
		ch.values()
		if !ch.report.HasErrors() {
			if nets, err := netlist.Resolve(src, c); err == nil {
				ch.connectivity(templates, nets)
			}
		}
	}

	slices.SortStableFunc(ch.report.Diagnostics, func(a, b Diagnostic) int {
		return int(b.Severity) - int(a.Severity)
	})
	return &ch.report
}

func (ch *checker) add(d Diagnostic) {
	if ch.disabled[d.Rule] {
		return
	}
	ch.report.Diagnostics = append(ch.report.Diagnostics, d)
}

func (ch *checker) fail(rule Rule, code errors.Code, comp, pin, format string, args ...any) {
	ch.add(Diagnostic{Severity: SeverityError, Rule: rule, Code: code, Component: comp, Pin: pin, Message: fmt.Sprintf(format, args...)})
}

func (ch *checker) warn(rule Rule, comp, pin, format string, args ...any) {
	ch.add(Diagnostic{Severity: SeverityWarning, Rule: rule, Component: comp, Pin: pin, Message: fmt.Sprintf(format, args...)})
}
