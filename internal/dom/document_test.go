package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<html><body>
<div id="content">
  <h2><span class="mw-headline">Redstone</span></h2>
  <p>intro</p>
  <h3><span class="mw-headline">Mechanisms</span></h3>
  <div class="wrap"><span class="mcui mcui-Crafting_Table" data-x="1">
    <span class="invslot"><span class="invslot-item"><a href="/w/Stone" title="Stone">s</a></span></span>
  </span></div>
</div>
</body></html>`

func TestDocumentNavigation(t *testing.T) {
	doc, err := ParseString("Crafting", page)
	require.NoError(t, err)
	assert.Equal(t, "Crafting", doc.Title)

	widgets := doc.Find(".mcui-Crafting_Table")
	require.Len(t, widgets, 1)
	w := widgets[0]

	assert.Equal(t, "span", doc.Tag(w))
	assert.True(t, doc.HasClass(w, "mcui"))
	assert.False(t, doc.HasClass(w, "mcui-Furnace"))
	v, ok := doc.Attr(w, "data-x")
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	anc := doc.Ancestors(w)
	require.GreaterOrEqual(t, len(anc), 4)
	assert.Equal(t, "div", doc.Tag(anc[0]))
	assert.True(t, doc.HasClass(anc[0], "wrap"))
	id, _ := doc.Attr(anc[1], "id")
	assert.Equal(t, "content", id)
	assert.Equal(t, "html", doc.Tag(anc[len(anc)-1]))

	sibs := doc.PrevSiblings(anc[0])
	tags := []string{}
	for _, s := range sibs {
		tags = append(tags, doc.Tag(s))
	}
	assert.Equal(t, []string{"h3", "p", "h2"}, tags)
	assert.Equal(t, "Mechanisms", doc.Text(sibs[0]))

	links := doc.FindIn(w, "a")
	require.Len(t, links, 1)
	title, _ := doc.Attr(links[0], "title")
	assert.Equal(t, "Stone", title)
	assert.Equal(t, 1, doc.Selection(w).Length())
}

func TestInvalidHandle(t *testing.T) {
	doc, err := ParseString("x", "<p>a</p>")
	require.NoError(t, err)
	assert.Equal(t, "", doc.Tag(None))
	assert.Empty(t, doc.Ancestors(None))
	assert.Empty(t, doc.FindIn(None, "p"))
	assert.Equal(t, 0, doc.Selection(Handle(999)).Length())
}
