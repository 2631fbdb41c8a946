package output

import (
	"fmt"
	"html/template"
	"io"

	"github.com/CypherHippie/HeaderHunter/pkg/types"
)

// HTMLFormatter renders results as a self-contained HTML report with
// styled severity badges.
type HTMLFormatter struct{}

func (f *HTMLFormatter) Format(w io.Writer, result types.ScanResult) error {
	return htmlTpl.Execute(w, templateData{
		Entries: result.Sorted(),
		Counts:  levelCounts(result),
		Total:   result.FindingCount(),
	})
}

type templateData struct {
	Entries []types.URLResult
	Counts  map[types.Level]int
	Total   int
}

// levelClass maps a Level to a CSS class name.
func levelClass(l types.Level) string {
	switch l {
	case types.LevelCritical:
		return "critical"
	case types.LevelHigh:
		return "high"
	case types.LevelMedium:
		return "medium"
	case types.LevelLow:
		return "low"
	default:
		return "info"
	}
}

var funcMap = template.FuncMap{
	"levelClass": levelClass,
	"count": func(counts map[types.Level]int, level string) int {
		return counts[types.Level(level)]
	},
}

var htmlTpl = template.Must(template.New("report").Funcs(funcMap).Parse(fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>HeaderHunter Report</title>
<style>%s</style>
</head>
<body>
<div class="container">
  <h1>HeaderHunter Report</h1>

  <div class="summary-bar">
    <span class="badge critical">{{count .Counts "CRITICAL"}} Critical</span>
    <span class="badge high">{{count .Counts "HIGH"}} High</span>
    <span class="badge medium">{{count .Counts "MEDIUM"}} Medium</span>
    <span class="badge low">{{count .Counts "LOW"}} Low</span>
    <span class="badge info">{{count .Counts "INFO"}} Info</span>
    <span class="total">{{.Total}} total findings</span>
  </div>

  {{if not .Entries}}
  <p class="no-findings">No findings.</p>
  {{end}}

  {{range .Entries}}
  <section class="url-section">
    <h2>{{.URL}}</h2>
    <table>
      <thead>
        <tr><th>Severity</th><th>Finding</th><th>Suggestion</th></tr>
      </thead>
      <tbody>
        {{range .Findings}}
        <tr>
          <td><span class="badge {{levelClass .Level}}">{{.Level}}</span> {{.Severity}}</td>
          <td><code>{{.Label}}</code></td>
          <td>{{.Suggestion}}</td>
        </tr>
        {{end}}
      </tbody>
    </table>
  </section>
  {{end}}
</div>
</body>
</html>`, cssStyles)))

const cssStyles = `
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:-apple-system,BlinkMacSystemFont,"Segoe UI",Roboto,Helvetica,Arial,sans-serif;
     line-height:1.6;color:#1a1a2e;background:#f5f5fa;padding:2rem}
.container{max-width:1100px;margin:0 auto}
h1{margin-bottom:1rem;font-size:1.8rem}
h2{margin:1.5rem 0 .75rem;font-size:1.1rem;border-bottom:2px solid #e0e0e0;padding-bottom:.3rem;word-break:break-all}
.summary-bar{display:flex;gap:.5rem;flex-wrap:wrap;align-items:center;margin-bottom:1.5rem}
.total{margin-left:.5rem;font-weight:600}
.badge{display:inline-block;padding:2px 10px;border-radius:12px;font-size:.8rem;font-weight:700;color:#fff;text-transform:uppercase}
.badge.critical{background:#d32f2f}
.badge.high{background:#e53935}
.badge.medium{background:#f9a825;color:#333}
.badge.low{background:#0288d1}
.badge.info{background:#757575}
table{width:100%;border-collapse:collapse;margin-bottom:1rem}
th,td{text-align:left;padding:.5rem .75rem;border-bottom:1px solid #e0e0e0;vertical-align:top}
th{background:#eaeaea;font-weight:600}
tr:hover{background:#f0f0ff}
code{word-break:break-all}
.no-findings{color:#666;font-style:italic}
.url-section{margin-bottom:2rem}
`
