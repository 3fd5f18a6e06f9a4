package rules

import (
	"fmt"
	"regexp"

	"github.com/buemura/scout/pkg/types"
)

// Built-in credential patterns; extended via Config.SecretPatterns.
var defaultSecretPatterns = []string{
	`(?i)\b(?:password|passwd|pwd|secret|api[_-]?key|access[_-]?key|auth[_-]?token|token)\b\s*[:=]\s*["'][^"']{4,}["']`,
	`\bAKIA[0-9A-Z]{16}\b`,
	`-----BEGIN (?:RSA |EC |OPENSSH |DSA )?PRIVATE KEY-----`,
}

func compileSecretPatterns(extra []string) ([]*regexp.Regexp, error) {
	patterns := append(append([]string{}, defaultSecretPatterns...), extra...)
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid secret pattern %q: %w", p, err)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

// hardcodedSecretRule flags credential-looking literals. It runs on
// every analyzable language; a secret in a comment is still a secret.
func hardcodedSecretRule(patterns []*regexp.Regexp) Rule {
	return Rule{
		ID:       "hardcoded-secret",
		Severity: types.SeverityHigh,
		Check: func(in Input) []types.Finding {
			var findings []types.Finding
			for i, line := range in.Lines {
				for _, re := range patterns {
					if re.MatchString(line) {
						findings = append(findings, types.Finding{
							Message: "possible hardcoded secret",
							Line:    i + 1,
						})
						break
					}
				}
			}
			return findings
		},
	}
}
