package report

import (
	"html/template"
	"io"

	"github.com/stratum-model/stratum/internal/validate"
)

var htmlTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Model validation report</title>
<style>
  body { font-family: sans-serif; margin: 2rem; }
  .summary.ok { color: #2e7d32; }
  .summary.fail { color: #c62828; }
  table { border-collapse: collapse; margin-top: 1rem; width: 100%; }
  th, td { border: 1px solid #ddd; padding: 0.4rem 0.6rem; text-align: left; }
  tr.error td.severity { color: #c62828; font-weight: bold; }
  tr.warning td.severity { color: #f9a825; font-weight: bold; }
  td.suggestion { color: #555; font-style: italic; }
</style>
</head>
<body>
<h1>Model validation report</h1>
{{if .IsValid}}<p class="summary ok">valid ({{.WarningCount}} warnings)</p>
{{else}}<p class="summary fail">invalid ({{.ErrorCount}} errors, {{.WarningCount}} warnings)</p>{{end}}
<table>
<tr><th>Severity</th><th>Element</th><th>Message</th><th>Location</th><th>Suggestion</th></tr>
{{range .Errors}}<tr class="error"><td class="severity">error</td><td>{{.ElementID}}</td><td>{{.Message}}</td><td>{{.Location}}</td><td class="suggestion">{{.Suggestion}}</td></tr>
{{end}}{{range .Warnings}}<tr class="warning"><td class="severity">warning</td><td>{{.ElementID}}</td><td>{{.Message}}</td><td>{{.Location}}</td><td class="suggestion">{{.Suggestion}}</td></tr>
{{end}}</table>
</body>
</html>
`))

func writeHTML(w io.Writer, result *validate.Result) error {
	return htmlTemplate.Execute(w, result)
}
