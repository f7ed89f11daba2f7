package api

import "html/template"

const (
	modeLight = "lightmode"
	modeDark  = "darkmode"
)

// pageData is rendered by pageTemplate
type pageData struct {
	Mode        string
	Word        string
	Definitions template.HTML
	Error       template.HTML
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Dictionary</title>
<style>
body.lightmode { background: #fafafa; color: #222; }
body.darkmode { background: #222; color: #eee; }
.highlighted { background: #ffe066; color: #222; }
.contentYes { border: 1px solid currentColor; padding: 1em; }
ul.separated { margin-bottom: .5em; }
</style>
</head>
<body class="{{.Mode}}">
<form method="post" action="/mode"><button type="submit" id="mode-toggle">{{if eq .Mode "darkmode"}}Light mode{{else}}Dark mode{{end}}</button></form>
<form method="post" action="/lookup">
<input type="text" name="word" value="{{.Word}}" placeholder="Enter a word" autofocus>
<button type="submit">Search</button>
</form>
<div id="definitions"{{if .Definitions}} class="contentYes"{{end}}>{{.Definitions}}</div>
<div id="error-display"{{if .Error}} class="contentYes"{{end}}>{{.Error}}</div>
</body>
</html>
`))
