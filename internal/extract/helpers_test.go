package extract

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"recipegraph/internal/dom"
)

func invslot(names ...string) string {
	var b strings.Builder
	b.WriteString(`<span class="invslot">`)
	for _, n := range names {
		href := "/w/" + strings.ReplaceAll(n, " ", "_")
		fmt.Fprintf(&b, `<span class="invslot-item"><a href="%s" title="%s"><img alt="%s.png"></a></span>`, href, n, n)
	}
	b.WriteString(`</span>`)
	return b.String()
}

func link(name string) string {
	return fmt.Sprintf(`<a href="/w/%s" title="%s">%s</a>`, strings.ReplaceAll(name, " ", "_"), name, name)
}

func widget(class string, inputs, outputs []string) string {
	return fmt.Sprintf(`<div class="mcui %s"><span class="mcui-input">%s</span><span class="mcui-output">%s</span></div>`,
		class, strings.Join(inputs, ""), strings.Join(outputs, ""))
}

func elementFor(t *testing.T, page, selector, markup string) Element {
	t.Helper()
	doc, err := dom.ParseString(page, markup)
	require.NoError(t, err)
	hs := doc.Find(selector)
	require.Len(t, hs, 1)
	category := "test_section"
	return Element{
		Doc:      doc,
		Handle:   hs[0],
		Page:     page,
		Category: &category,
		Heading:  "Test section",
		BaseURL:  "https://minecraft.wiki",
	}
}
