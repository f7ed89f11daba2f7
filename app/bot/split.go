package bot

import (
	"strings"

	"golang.org/x/net/html"
)

// messageLimit is the Telegram limit for message text
const messageLimit = 4096

// splitMessage cuts rendered text into messages of at most limit bytes.
// Cuts happen between lines, every rendered line is balanced markup.
// Indented lines stay with the line above them.
func splitMessage(text string, limit int) []string {
	if len(text) <= limit {
		return []string{text}
	}
	var (
		chunks  []string
		current strings.Builder
	)
	flush := func() {
		if chunk := strings.TrimSpace(current.String()); chunk != "" {
			chunks = append(chunks, chunk)
		}
		current.Reset()
	}
	for _, block := range blocks(text) {
		for _, piece := range fit(block, limit) {
			if current.Len() > 0 && current.Len()+1+len(piece) > limit {
				flush()
			}
			if current.Len() > 0 {
				current.WriteByte('\n')
			}
			current.WriteString(piece)
		}
	}
	flush()
	return chunks
}

// blocks groups lines, an indented line continues the previous block
func blocks(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, " ") && len(out) > 0 {
			out[len(out)-1] += "\n" + line
			continue
		}
		out = append(out, line)
	}
	return out
}

// fit breaks a block too long for a single message into lines, and lines
// still too long into plain text pieces
func fit(block string, limit int) []string {
	if len(block) <= limit {
		return []string{block}
	}
	var pieces []string
	for _, line := range strings.Split(block, "\n") {
		if len(line) <= limit {
			pieces = append(pieces, line)
			continue
		}
		pieces = append(pieces, cutLine(line, limit)...)
	}
	return pieces
}

// cutLine drops formatting of line and cuts its text between runes
func cutLine(line string, limit int) []string {
	var plain strings.Builder
	z := html.NewTokenizer(strings.NewReader(line))
	for tt := z.Next(); tt != html.ErrorToken; tt = z.Next() {
		if tt == html.TextToken {
			plain.Write(z.Text())
		}
	}
	var (
		pieces []string
		piece  strings.Builder
	)
	for _, r := range plain.String() {
		escaped := html.EscapeString(string(r))
		if piece.Len()+len(escaped) > limit {
			pieces = append(pieces, piece.String())
			piece.Reset()
		}
		piece.WriteString(escaped)
	}
	if piece.Len() > 0 {
		pieces = append(pieces, piece.String())
	}
	return pieces
}
