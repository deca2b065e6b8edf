package anki

import "strings"

var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", "\"",
	"&#39;", "'",
)

var lineBreakReplacer = strings.NewReplacer(
	"<br>", "\n",
	"<br/>", "\n",
	"<br />", "\n",
)

// StripHTML removes markup from a note field: line-break tags become
// newlines, everything else between '<' and '>' is dropped, a fixed set
// of common entities is decoded, and the result is trimmed. This is a
// deliberately lossy cleanup, not a full HTML parser.
func StripHTML(s string) string {
	s = lineBreakReplacer.Replace(s)

	var sb strings.Builder
	sb.Grow(len(s))
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			sb.WriteRune(r)
		}
	}

	return strings.TrimSpace(entityReplacer.Replace(sb.String()))
}
