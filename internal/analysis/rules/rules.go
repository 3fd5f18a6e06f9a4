// Package rules implements the heuristic issue battery. Each rule is
// an independent pure check over one file's text; a rule that panics
// contributes zero findings for that file and never aborts the batch.
package rules

import (
	"github.com/buemura/scout/pkg/types"
	"github.com/hashicorp/go-hclog"
)

// Input is everything a rule may inspect for one file.
type Input struct {
	Path     string
	Text     string
	Lines    []string
	Language types.Language
	Entities []types.Entity
}

// Rule is a single heuristic check. Check returns findings with only
// Message and Line populated; the battery stamps File, Rule, and
// Severity.
type Rule struct {
	ID       string
	Severity types.Severity
	Check    func(in Input) []types.Finding
}

// Battery is a configured, ordered set of rules.
type Battery struct {
	rules  []Rule
	logger hclog.Logger
}

// NewBattery builds the rule battery from the given configuration.
// A nil config means defaults; a nil logger discards rule diagnostics.
func NewBattery(cfg *Config, logger hclog.Logger) (*Battery, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	secrets, err := compileSecretPatterns(cfg.SecretPatterns)
	if err != nil {
		return nil, err
	}

	all := []Rule{
		unusedImportRule(),
		missingErrorHandlingRule(),
		hardcodedSecretRule(secrets),
		broadExceptionRule(),
		todoCommentRule(),
		largeFileRule(cfg.Thresholds.LargeFileLines),
		highComplexityRule(cfg.Thresholds.Complexity),
		lowDocCoverageRule(cfg.Thresholds.DocCoverage),
	}

	b := &Battery{logger: logger}
	for _, rule := range all {
		override, ok := cfg.Rules[rule.ID]
		if ok {
			if override.Enabled != nil && !*override.Enabled {
				continue
			}
			if override.Severity != "" {
				rule.Severity = types.Severity(override.Severity)
			}
		}
		b.rules = append(b.rules, rule)
	}
	return b, nil
}

// IDs returns the IDs of the enabled rules in execution order.
func (b *Battery) IDs() []string {
	ids := make([]string, len(b.rules))
	for i, r := range b.rules {
		ids[i] = r.ID
	}
	return ids
}

// Check runs every enabled rule against the input and concatenates
// the findings.
func (b *Battery) Check(in Input) []types.Finding {
	var findings []types.Finding
	for _, rule := range b.rules {
		findings = append(findings, b.runRule(rule, in)...)
	}
	return findings
}

// runRule executes one rule with local error containment (fail-open).
func (b *Battery) runRule(rule Rule, in Input) (out []types.Finding) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Warn("rule panicked, dropping its findings",
				"rule", rule.ID, "file", in.Path, "panic", r)
			out = nil
		}
	}()

	out = rule.Check(in)
	for i := range out {
		out[i].File = in.Path
		out[i].Rule = rule.ID
		out[i].Severity = rule.Severity
	}
	return out
}
