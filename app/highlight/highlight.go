// Package highlight marks whole-word occurrences of previously searched
// words inside rendered markup.
package highlight

import (
	"errors"
	"io"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"
)

// Marker describes the element wrapped around every match
type Marker struct {
	Tag   string
	Class string
}

// DefaultMarker is used for page markup
var DefaultMarker = Marker{Tag: "span", Class: "highlighted"}

// Highlighter rewrites text content of markup, tags and attributes are kept as is
type Highlighter struct {
	marker Marker
	open   string
	close  string
}

// Pattern builds case-insensitive whole-word alternation of history words.
// Returns nil when history has no usable words.
func Pattern(history []string) *regexp.Regexp {
	seen := make(map[string]struct{}, len(history))
	words := make([]string, 0, len(history))
	for _, w := range history {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		key := strings.ToLower(w)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		words = append(words, regexp.QuoteMeta(w))
	}
	if len(words) == 0 {
		return nil
	}
	// longer alternatives first so phrases win over their prefixes
	sort.SliceStable(words, func(i, j int) bool { return len(words[i]) > len(words[j]) })
	return regexp.MustCompile(`(?i)(?:^|` + nonWord + `)(` + strings.Join(words, "|") + `)(?:` + nonWord + `|$)`)
}

// nonWord matches a single rune that cannot be part of a word. Unlike \b it
// treats non-ASCII letters as word runes.
const nonWord = `[^\p{L}\p{M}\p{N}_]`

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsNumber(r)
}

// matches returns bounds of every whole-word match of re in text. Boundary
// runes consumed by one match stay available to the next one.
func matches(re *regexp.Regexp, text string) [][2]int {
	var locs [][2]int
	for pos := 0; pos < len(text); {
		m := re.FindStringSubmatchIndex(text[pos:])
		if m == nil {
			break
		}
		start, end := pos+m[2], pos+m[3]
		if start == pos && pos > 0 {
			// ^ matched at the cut, the rune before it decides
			if r, _ := utf8.DecodeLastRuneInString(text[:pos]); isWordRune(r) {
				_, size := utf8.DecodeRuneInString(text[pos:])
				pos += size
				continue
			}
		}
		locs = append(locs, [2]int{start, end})
		pos = end
	}
	return locs
}

// Highlight wraps every whole-word occurrence of history words in markup with marker.
// Text already inside a marker is not highlighted again.
func (h *Highlighter) Highlight(markup string, history []string) string {
	re := Pattern(history)
	if re == nil {
		return markup
	}
	z := html.NewTokenizer(strings.NewReader(markup))
	var out strings.Builder
	out.Grow(len(markup))
	depth := 0
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if errors.Is(z.Err(), io.EOF) {
				return out.String()
			}
			log.Error().Err(z.Err()).Msg("failed to tokenize markup")
			return markup
		}
		raw := string(z.Raw())
		switch tt {
		case html.TextToken:
			if depth == 0 {
				out.WriteString(h.replace(re, raw))
				continue
			}
		case html.StartTagToken:
			name, hasAttr := z.TagName()
			if string(name) == h.marker.Tag {
				if depth > 0 {
					depth++
				} else if h.isMarker(z, hasAttr) {
					depth = 1
				}
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if depth > 0 && string(name) == h.marker.Tag {
				depth--
			}
		}
		out.WriteString(raw)
	}
}

func (h *Highlighter) replace(re *regexp.Regexp, raw string) string {
	text := html.UnescapeString(raw)
	locs := matches(re, text)
	if len(locs) == 0 {
		return raw
	}
	var sb strings.Builder
	last := 0
	for _, loc := range locs {
		sb.WriteString(html.EscapeString(text[last:loc[0]]))
		sb.WriteString(h.open)
		sb.WriteString(html.EscapeString(text[loc[0]:loc[1]]))
		sb.WriteString(h.close)
		last = loc[1]
	}
	sb.WriteString(html.EscapeString(text[last:]))
	return sb.String()
}

func (h *Highlighter) isMarker(z *html.Tokenizer, hasAttr bool) bool {
	if h.marker.Class == "" {
		return true
	}
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		if string(key) != "class" {
			continue
		}
		for _, class := range strings.Fields(string(val)) {
			if class == h.marker.Class {
				return true
			}
		}
	}
	return false
}

// New creates Highlighter wrapping matches with given marker
func New(marker Marker) *Highlighter {
	open := "<" + marker.Tag
	if marker.Class != "" {
		open += ` class="` + html.EscapeString(marker.Class) + `"`
	}
	return &Highlighter{
		marker: marker,
		open:   open + ">",
		close:  "</" + marker.Tag + ">",
	}
}
