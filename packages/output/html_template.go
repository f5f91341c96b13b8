package output

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>pagespec report</title>
<style>
  body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif; margin: 0; background: #f6f8fa; color: #24292f; }
  header { background: #24292f; color: #fff; padding: 1.5rem 2rem; }
  header h1 { margin: 0; font-size: 1.4rem; }
  header .meta { opacity: 0.7; font-size: 0.85rem; margin-top: 0.3rem; }
  main { padding: 1.5rem 2rem; max-width: 1100px; }
  .summary { display: flex; gap: 1rem; margin-bottom: 1rem; }
  .card { background: #fff; border: 1px solid #d0d7de; border-radius: 6px; padding: 0.8rem 1.2rem; min-width: 120px; }
  .card .value { font-size: 1.6rem; font-weight: 600; }
  .bar { display: flex; height: 8px; border-radius: 4px; overflow: hidden; background: #d0d7de; margin-bottom: 1.5rem; }
  .bar .passed { background: #2da44e; }
  .bar .failed { background: #cf222e; }
  .suite { background: #fff; border: 1px solid #d0d7de; border-radius: 6px; margin-bottom: 1.2rem; }
  .suite h2 { font-size: 1.1rem; margin: 0; padding: 0.8rem 1rem; border-bottom: 1px solid #d0d7de; }
  .suite h2 small { font-weight: normal; color: #57606a; margin-left: 0.5rem; }
  .suite h3 { font-size: 0.95rem; margin: 0.8rem 1rem 0.4rem; }
  table { width: 100%; border-collapse: collapse; }
  td { padding: 0.35rem 1rem; border-top: 1px solid #eaeef2; vertical-align: top; font-size: 0.9rem; }
  td.status { width: 4rem; font-weight: 600; }
  tr.passed td.status { color: #2da44e; }
  tr.failed td.status, tr.errored td.status { color: #cf222e; }
  .message { color: #cf222e; font-family: ui-monospace, monospace; font-size: 0.8rem; }
  .errors { background: #ffebe9; border: 1px solid #ff8182; border-radius: 6px; padding: 0.8rem 1rem; margin-bottom: 1.2rem; }
</style>
</head>
<body>
<header>
  <h1>pagespec report</h1>
  <div class="meta">{{if .Version}}pagespec {{.Version}} &middot; {{end}}{{.Time}} &middot; {{printf "%.0f" .Duration}}ms</div>
</header>
<main>
  <div class="summary">
    <div class="card"><div>Total</div><div class="value">{{.Summary.Total}}</div></div>
    <div class="card"><div>Passed</div><div class="value">{{.Summary.Passed}}</div></div>
    <div class="card"><div>Failed</div><div class="value">{{.Summary.Failed}}</div></div>
  </div>
  <div class="bar">
    <div class="passed" style="width: {{printf "%.1f" .PassedPercent}}%"></div>
    <div class="failed" style="width: {{printf "%.1f" .FailedPercent}}%"></div>
  </div>
  {{if .Errors}}
  <div class="errors">
    <strong>Suites that could not run</strong>
    <ul>{{range .Errors}}<li>{{.}}</li>{{end}}</ul>
  </div>
  {{end}}
  {{range .Suites}}
  <section class="suite">
    <h2>{{.Name}}<small>{{.Artifact}} &middot; {{.Passed}} passed, {{.Failed}} failed &middot; {{printf "%.0f" .Duration}}ms</small></h2>
    {{range .Sections}}
    {{if .Name}}<h3>{{.Name}}</h3>{{end}}
    <table>
      {{range .Tests}}
      <tr class="{{.StatusClass}}">
        <td class="status">{{if .Passed}}PASS{{else}}FAIL{{end}}</td>
        <td>{{.Name}}{{if not .Passed}}<div class="message">{{.Message}}</div>{{end}}</td>
      </tr>
      {{end}}
    </table>
    {{end}}
  </section>
  {{end}}
</main>
</body>
</html>
`
