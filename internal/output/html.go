package output

import (
	"fmt"
	"html/template"
	"io"

	"github.com/buemura/scout/pkg/types"
)

// HTMLFormatter renders the report as a self-contained HTML page with
// styled severity badges and a per-file entity index.
type HTMLFormatter struct{}

func (f *HTMLFormatter) Format(w io.Writer, report *types.ProjectReport) error {
	return htmlTpl.Execute(w, report)
}

// severityClass maps a Severity to a CSS class name.
func severityClass(s types.Severity) string {
	switch s {
	case types.SeverityHigh:
		return "high"
	case types.SeverityMedium:
		return "medium"
	default:
		return "low"
	}
}

var funcMap = template.FuncMap{
	"severityClass": severityClass,
	"location": func(f types.Finding) string {
		return location(f)
	},
	"severityHigh":   func() types.Severity { return types.SeverityHigh },
	"severityMedium": func() types.Severity { return types.SeverityMedium },
	"severityLow":    func() types.Severity { return types.SeverityLow },
}

var htmlTpl = template.Must(template.New("report").Funcs(funcMap).Parse(fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Scout Project Report</title>
<style>%s</style>
</head>
<body>
<div class="container">
  <h1>Scout Project Report</h1>
  <p class="root">{{.Root}}</p>

  <div class="summary-bar">
    <span class="badge high">{{index .Totals.BySeverity severityHigh}} High</span>
    <span class="badge medium">{{index .Totals.BySeverity severityMedium}} Medium</span>
    <span class="badge low">{{index .Totals.BySeverity severityLow}} Low</span>
    <span class="total">{{.Totals.Findings}} findings across {{.Totals.Files}} files ({{.Totals.Lines}} lines)</span>
  </div>

  <section>
    <h2>Findings</h2>
    {{if not .Findings}}
      <p class="no-findings">No findings.</p>
    {{else}}
      <table>
        <thead>
          <tr><th>Severity</th><th>Rule</th><th>Location</th><th>Message</th></tr>
        </thead>
        <tbody>
          {{range .Findings}}
          <tr>
            <td><span class="badge {{severityClass .Severity}}">{{.Severity}}</span></td>
            <td>{{.Rule}}</td>
            <td><code>{{location .}}</code></td>
            <td>{{.Message}}</td>
          </tr>
          {{end}}
        </tbody>
      </table>
    {{end}}
  </section>

  <section>
    <h2>Entities</h2>
    {{if not .Entities}}
      <p class="no-findings">No entities extracted.</p>
    {{else}}
      <table>
        <thead>
          <tr><th>Kind</th><th>Name</th><th>File</th><th>Lines</th></tr>
        </thead>
        <tbody>
          {{range .Entities}}
          <tr>
            <td>{{.Kind}}</td>
            <td><code>{{.Name}}</code></td>
            <td>{{.File}}</td>
            <td>{{.StartLine}}&ndash;{{.EndLine}}</td>
          </tr>
          {{end}}
        </tbody>
      </table>
    {{end}}
  </section>
</div>
</body>
</html>`, cssStyles)))

const cssStyles = `
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:-apple-system,BlinkMacSystemFont,"Segoe UI",Roboto,Helvetica,Arial,sans-serif;
     line-height:1.6;color:#1a1a2e;background:#f5f5fa;padding:2rem}
.container{max-width:960px;margin:0 auto}
h1{margin-bottom:.25rem;font-size:1.8rem}
.root{color:#555;margin-bottom:1rem;font-family:monospace}
h2{margin:1.5rem 0 .75rem;font-size:1.3rem;border-bottom:2px solid #e0e0e0;padding-bottom:.3rem}
.summary-bar{display:flex;gap:.5rem;flex-wrap:wrap;align-items:center;margin-bottom:1.5rem}
.total{margin-left:.5rem;font-weight:600}
.badge{display:inline-block;padding:2px 10px;border-radius:12px;font-size:.8rem;font-weight:700;color:#fff;text-transform:uppercase}
.badge.high{background:#e53935}
.badge.medium{background:#f9a825;color:#333}
.badge.low{background:#0288d1}
table{width:100%;border-collapse:collapse;margin-bottom:1rem}
th,td{text-align:left;padding:.5rem .75rem;border-bottom:1px solid #e0e0e0}
th{background:#eaeaea;font-weight:600}
tr:hover{background:#f0f0ff}
code{font-size:.85rem}
.no-findings{color:#666;font-style:italic}
section{margin-bottom:2rem}
`
