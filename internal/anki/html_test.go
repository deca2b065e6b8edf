package anki_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flashdeck/flashdeck/internal/anki"
)

func TestStripHTML(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		want string
	}{
		{"bold and entity and trailing break", "<b>Hello</b>&nbsp;world<br>", "Hello world"},
		{"interior break becomes newline", "first line<br>second line", "first line\nsecond line"},
		{"self closing breaks", "a<br/>b<br />c", "a\nb\nc"},
		{"nested tags", "<div><span>text</span></div>", "text"},
		{"entities", "a &amp; b &lt;c&gt; &quot;d&quot; &#39;e&#39;", "a & b <c> \"d\" 'e'"},
		{"plain text untouched", "just words", "just words"},
		{"whitespace trimmed", "  padded  ", "padded"},
		{"empty after strip", "<img src=\"x.png\">", ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, anki.StripHTML(tc.in))
		})
	}
}
