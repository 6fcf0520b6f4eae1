package staticdash

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishEmptyDashboard(t *testing.T) {
	d := NewDashboard("Empty")
	err := d.Publish(t.TempDir())
	require.ErrorIs(t, err, ErrEmptyDashboard)
}

func TestPublishPDFEmptyDashboard(t *testing.T) {
	d := NewDashboard("Empty")
	err := d.PublishPDF(t.TempDir()+"/out.pdf", PDFOptions{})
	require.ErrorIs(t, err, ErrEmptyDashboard)
}

func TestDuplicateSlugRejected(t *testing.T) {
	d := NewDashboard("Dup")
	d.AddPage(NewPage("alpha", "Alpha"))

	child := NewPage("alpha", "Shadow")
	parent := NewPage("beta", "Beta")
	parent.AddSubpage(child)
	d.AddPage(parent)

	err := d.Publish(t.TempDir())
	var dupErr *DuplicateSlugError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, "alpha", dupErr.Slug)
}

func TestWalkPagesDepthFirst(t *testing.T) {
	// Page tree: root -> [A [A1], B]; expected order root, A, A1, B.
	a := NewPage("a", "A")
	a.AddSubpage(NewPage("a1", "A1"))
	root := NewPage("root", "Root")
	root.AddSubpage(a)
	root.AddSubpage(NewPage("b", "B"))

	var order []string
	var depths []int
	walkPages([]*Page{root}, 0, func(p *Page, depth int) {
		order = append(order, p.Slug)
		depths = append(depths, depth)
	})

	assert.Equal(t, []string{"root", "a", "a1", "b"}, order)
	assert.Equal(t, []int{0, 1, 2, 1}, depths)
}

func TestMarkingResolution(t *testing.T) {
	tests := []struct {
		name      string
		dashboard string
		setup     func(p *Page)
		want      string
	}{
		{"inherits dashboard marking", "X", func(p *Page) {}, "X"},
		{"override wins", "X", func(p *Page) { p.SetMarking("Y") }, "Y"},
		{"explicit suppress", "X", func(p *Page) { p.ClearMarking() }, ""},
		{"no marking anywhere", "", func(p *Page) {}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPage("p", "P")
			tt.setup(p)
			res := resolvePage(p, inherited{width: 900, marking: tt.dashboard})
			assert.Equal(t, tt.want, res.marking)
		})
	}
}

func TestMarkingCascadeInheritsResolvedValue(t *testing.T) {
	// The child inherits the parent's resolved value, not the root default.
	parent := NewPage("parent", "Parent")
	parent.SetMarking("Y")
	child := NewPage("child", "Child")
	parent.AddSubpage(child)

	parentRes := resolvePage(parent, inherited{marking: "X"})
	childRes := resolvePage(child, parentRes)
	assert.Equal(t, "Y", childRes.marking)

	// A sibling without an override still sees the dashboard value.
	sibling := NewPage("sibling", "Sibling")
	sibRes := resolvePage(sibling, inherited{marking: "X"})
	assert.Equal(t, "X", sibRes.marking)
}

func TestNewIDInjectable(t *testing.T) {
	d := NewDashboard("ids")
	d.NewID = sequentialIDs()
	assert.Equal(t, "id-0", d.newID())
	assert.Equal(t, "id-1", d.newID())

	// Default generator produces distinct values.
	d.NewID = nil
	assert.NotEqual(t, d.newID(), d.newID())
}

// sequentialIDs returns a deterministic id generator for download staging.
func sequentialIDs() func() string {
	n := 0
	return func() string {
		id := fmt.Sprintf("id-%d", n)
		n++
		return id
	}
}
