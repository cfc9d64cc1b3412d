package render

import "html/template"

var templateFuncs = template.FuncMap{
	"nl2br": nl2br,
}

var dailyTemplate = template.Must(template.New("daily").Funcs(templateFuncs).Parse(`<!DOCTYPE html>
<html lang="zh-CN">
<head>
<meta charset="UTF-8">
<title>期刊每日自动摘要 · {{.DateTag}}</title>
<meta name="viewport" content="width=device-width, initial-scale=1">
<style>
body {
  font-family: -apple-system,BlinkMacSystemFont,'Segoe UI','Microsoft YaHei',sans-serif;
  background: #e5f6e8;
  margin: 0;
  padding: 0;
}
header { background: #14532d; color: #fff; padding: 16px 24px; }
.header-inner { display: flex; justify-content: space-between; align-items: center; }
header h1 { margin: 0; font-size: 20px; }
header p { margin: 4px 0 0; font-size: 12px; opacity: 0.9; }
.container { display: flex; max-width: 1200px; margin: 20px auto 40px; padding: 0 16px; gap: 16px; }
.nav {
  flex: 0 0 220px;
  background: #ffffff;
  border-radius: 16px;
  border: 1px solid rgba(22,163,74,0.15);
  padding: 12px 14px;
  align-self: flex-start;
  position: sticky;
  top: 12px;
}
.nav-title { font-weight: 600; font-size: 14px; color: #064e3b; margin-bottom: 8px; }
.nav a { display: block; font-size: 13px; color: #2563eb; text-decoration: none; padding: 4px 0; }
.nav a:hover { text-decoration: underline; }
.main { flex: 1; min-width: 0; }
.journal-block {
  background: #ffffff;
  border-radius: 16px;
  border: 1px solid rgba(22,163,74,0.15);
  box-shadow: 0 1px 4px rgba(0,0,0,0.08);
  padding: 16px 20px;
  margin-bottom: 20px;
}
.journal-block h2 { margin: 0 0 8px; font-size: 18px; color: #064e3b; }
.journal-trends {
  background: rgba(34,197,94,0.08);
  border-radius: 10px;
  padding: 10px 12px;
  font-size: 13px;
  color: #166534;
  margin-bottom: 12px;
  white-space: pre-line;
}
.card { border-top: 1px dashed #e5e7eb; padding: 12px 0; }
.card .title { font-weight: 600; font-size: 15px; color: #111827; }
.card .meta { font-size: 12px; color: #6b7280; margin: 4px 0 8px; }
.abstract-label { font-size: 12px; color: #6b7280; margin-top: 6px; }
.abstract { font-size: 13px; color: #374151; margin-bottom: 8px; }
.summary { font-size: 13px; color: #1f2937; background: #f9fafb; border-radius: 8px; padding: 8px 10px; }
.card a { color: #2563eb; font-size: 13px; }
.footer { text-align: center; font-size: 11px; color: #6b7280; padding: 12px 0 24px; }
</style>
</head>
<body>
<header>
  <div class="header-inner">
    <div>
      <h1>期刊自动摘要 · 作物视角</h1>
      <p>当前页面日期：{{.DateTag}}　|　生成时间：{{.GeneratedAt}}</p>
    </div>
  </div>
</header>

<div class="container">
  <nav class="nav">
    <div class="nav-title">期刊导航</div>
{{- range .Sections}}
    <a href="#{{.Anchor}}">{{.Name}}（{{len .Articles}}）</a>
{{- end}}
  </nav>
  <main class="main">
{{- range .Sections}}
    <section class="journal-block" id="{{.Anchor}}">
      <h2>{{.Name}}</h2>
{{- if .Trend}}
      <div class="journal-trends">{{.Trend}}</div>
{{- end}}
{{- range .Articles}}
      <div class="card">
        <div class="title">{{.Title}}</div>
        <div class="meta">发表日期：{{.PubDate.Format "2006-01-02"}}，期刊：{{.Journal}}</div>
{{- if .Abstract}}
        <div class="abstract-label">原始摘要：</div>
        <div class="abstract">{{.Abstract}}</div>
{{- end}}
        <div class="summary">{{nl2br .Summary}}</div>
        <div style="margin-top:8px;"><a href="{{.Link}}" target="_blank" rel="noopener noreferrer">原文链接</a></div>
      </div>
{{- end}}
    </section>
{{- end}}
  </main>
</div>

<div class="footer">
  本页面由 journal-radar 自动生成。如遇摘要异常，请以原文为准。<br>
  历史版本请访问根目录索引页。
</div>
</body>
</html>
`))

var archiveTemplate = template.Must(template.New("archive").Parse(`<!DOCTYPE html>
<html lang="zh-CN">
<head>
<meta charset="UTF-8">
<title>期刊每日摘要索引</title>
<meta name="viewport" content="width=device-width, initial-scale=1">
<style>
body {
  font-family: -apple-system,BlinkMacSystemFont,'Segoe UI','Microsoft YaHei',sans-serif;
  background: #e5f6e8;
  margin: 0;
  padding: 0;
}
header { background: #14532d; color: #fff; padding: 16px 24px; }
header h1 { margin: 0; font-size: 20px; }
header p { margin: 4px 0 0; font-size: 12px; opacity: 0.9; }
.container { max-width: 900px; margin: 20px auto 40px; padding: 0 16px; }
.box {
  background: #ffffff;
  border-radius: 16px;
  box-shadow: 0 1px 4px rgba(0,0,0,0.08);
  padding: 16px 20px;
  border: 1px solid rgba(22,163,74,0.15);
}
.box h2 { margin-top: 0; font-size: 18px; color: #064e3b; }
ul.archive { list-style: none; padding-left: 0; margin: 0; }
ul.archive li { padding: 6px 4px; border-bottom: 1px dashed #e5e7eb; font-size: 13px; }
ul.archive li:last-child { border-bottom: none; }
ul.archive a { color: #2563eb; text-decoration: none; }
ul.archive a:hover { text-decoration: underline; }
.tag-latest { font-size: 11px; color: #f97316; margin-left: 8px; }
.footer { text-align: center; font-size: 11px; color: #6b7280; padding: 12px 0 24px; }
</style>
</head>
<body>
<header>
  <h1>期刊自动摘要 · 索引</h1>
  <p>最新更新：{{.GeneratedAt}}</p>
</header>

<div class="container">
  <div class="box">
    <h2>历史日期页面</h2>
    <ul class="archive">
{{- range .Entries}}
      <li><a href="{{.Filename}}">{{.Date}}</a>{{if .Latest}} <span class="tag-latest">最新</span>{{end}}</li>
{{- end}}
    </ul>
  </div>
</div>

<div class="footer">
  本索引页由 journal-radar 自动生成。
</div>
</body>
</html>
`))
