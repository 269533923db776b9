package main

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/joshuapare/overlaykit/internal/textarena"
	"github.com/joshuapare/overlaykit/overlay"
	"github.com/joshuapare/overlaykit/overlay/registry"
)

var _ overlay.Arena[int] = (*column)(nil)

type slot struct {
	content registry.Content
	visible bool
	row     int
	height  int
	updated uint64 // write sequence number
}

// column is the demo's arena: it owns the message text and renders the
// visible slots as a column of terminal lines. Shared by pointer across model
// copies, touched only from Update.
type column struct {
	slots []slot
	seq   uint64
}

func newColumn() *column {
	return &column{}
}

func (c *column) NewSlot(content registry.Content) registry.Handle {
	c.seq++
	c.slots = append(c.slots, slot{content: content, updated: c.seq})
	return registry.Handle(len(c.slots) - 1)
}

func (c *column) SetContent(h registry.Handle, content registry.Content) {
	if s := c.get(h); s != nil {
		c.seq++
		s.content = content
		s.updated = c.seq
	}
}

// Measure returns the rendered height in terminal rows.
func (c *column) Measure(h registry.Handle) int {
	s := c.get(h)
	if s == nil {
		return 0
	}
	return lipgloss.Height(render(s.content))
}

func (c *column) Place(h registry.Handle, row int) {
	if s := c.get(h); s != nil {
		s.visible = true
		s.row = row
		s.height = lipgloss.Height(render(s.content))
	}
}

func (c *column) Hide(h registry.Handle) {
	if s := c.get(h); s != nil {
		s.visible = false
	}
}

// Newest returns the text of the most recently written visible slot.
func (c *column) Newest() (string, bool) {
	var (
		best  *slot
		found bool
	)
	for i := range c.slots {
		s := &c.slots[i]
		if s.visible && (!found || s.updated > best.updated) {
			best, found = s, true
		}
	}
	if !found {
		return "", false
	}
	return best.content.Text, true
}

// Visible returns the number of slots on screen.
func (c *column) Visible() int {
	n := 0
	for _, s := range c.slots {
		if s.visible {
			n++
		}
	}
	return n
}

// View draws the visible slots at their rows. A slot never draws more rows
// than it had when placed.
func (c *column) View() string {
	var visible []*slot
	for i := range c.slots {
		if c.slots[i].visible {
			visible = append(visible, &c.slots[i])
		}
	}
	slices.SortFunc(visible, func(a, b *slot) int { return a.row - b.row })

	var rows []string
	for _, s := range visible {
		rows = textarena.Draw(rows, render(s.content), s.row, s.height, 0)
	}
	return strings.Join(rows, "\n")
}

func (c *column) get(h registry.Handle) *slot {
	if int(h) >= len(c.slots) {
		return nil
	}
	return &c.slots[h]
}

func render(content registry.Content) string {
	return messageStyle.Foreground(lipgloss.Color(content.Color)).
		Render(strings.TrimSuffix(content.Text, "\n"))
}
