package bot

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/pkg/errors"
	"github.com/rbhz/dictionary-lookup/app/highlight"
	"github.com/rbhz/dictionary-lookup/app/lookup"
)

// Marker underlines history words, Telegram HTML has no classes
var Marker = highlight.Marker{Tag: "u"}

// entryTemplate keeps every line balanced markup, examples are indented
// so splitMessage keeps them with their definition
const entryTemplate = `<b>{{ html .Word }}</b>
{{- range $p := .Phonetics }}
<i>{{ html $p.Text }}</i>
{{- end }}
{{- range $m := .Meanings }}

<b>{{ html $m.PartOfSpeech }}</b>
{{- range $i, $d := $m.Definitions }}
{{ inc $i }}. {{ html $d.Text }}
{{- if $d.HasExample }}
   <i>{{ html $d.Example }}</i>
{{- end }}
{{- end }}
{{- end }}
`

const errorTemplate = `ERROR: {{ html . }}`

var templates = template.Must(template.New("entry").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(entryTemplate))

func init() {
	template.Must(templates.New("error").Parse(errorTemplate))
}

// Renderer renders entries as Telegram HTML messages
type Renderer struct{}

// Entry renders entry message text
func (Renderer) Entry(entry lookup.Entry) (string, error) {
	return execute("entry", entry)
}

// Error renders error message text
func (Renderer) Error(message string) (string, error) {
	return execute("error", message)
}

func execute(name string, data interface{}) (string, error) {
	buf := &bytes.Buffer{}
	if err := templates.ExecuteTemplate(buf, name, data); err != nil {
		return "", errors.Wrapf(err, "failed to format %s template", name)
	}
	return strings.TrimSpace(buf.String()), nil
}
