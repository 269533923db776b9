package main

import (
	"strings"
	"testing"

	"github.com/joshuapare/overlaykit/overlay/registry"
)

// viewLines splits a rendered view and drops trailing padding.
func viewLines(view string) []string {
	lines := strings.Split(view, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return lines
}

func TestColumnPlacement(t *testing.T) {
	c := newColumn()
	one := c.NewSlot(registry.Content{Text: "one"})
	two := c.NewSlot(registry.Content{Text: "two\nlines"})

	if got := c.Measure(two); got != 2 {
		t.Fatalf("Measure = %d, want 2", got)
	}

	c.Place(one, 0)
	c.Place(two, 2)
	got := viewLines(c.View())
	want := []string{"one", "", "two", "lines"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("View() = %q, want %q", got, want)
	}
	if c.Visible() != 2 {
		t.Errorf("Visible() = %d, want 2", c.Visible())
	}

	c.Hide(one)
	got = viewLines(c.View())
	if got[0] != "" || got[2] != "two" {
		t.Errorf("hidden slot still drawn: %q", got)
	}
}

func TestColumnCutsGrownText(t *testing.T) {
	c := newColumn()
	top := c.NewSlot(registry.Content{Text: "top"})
	below := c.NewSlot(registry.Content{Text: "below"})
	c.Place(top, 0)
	c.Place(below, 1)

	c.SetContent(top, registry.Content{Text: "top\ngrew"})
	got := viewLines(c.View())
	if len(got) != 2 || got[0] != "top" || got[1] != "below" {
		t.Errorf("View() = %q", got)
	}
}

func TestColumnNewest(t *testing.T) {
	c := newColumn()
	if _, ok := c.Newest(); ok {
		t.Fatal("empty column has no newest message")
	}

	a := c.NewSlot(registry.Content{Text: "a"})
	b := c.NewSlot(registry.Content{Text: "b"})
	c.Place(a, 0)
	c.Place(b, 1)

	if text, _ := c.Newest(); text != "b" {
		t.Errorf("Newest() = %q, want b", text)
	}

	c.SetContent(a, registry.Content{Text: "a2"})
	if text, _ := c.Newest(); text != "a2" {
		t.Errorf("Newest() = %q, want a2", text)
	}

	c.Hide(a)
	if text, _ := c.Newest(); text != "b" {
		t.Errorf("Newest() = %q, hidden slots must be skipped", text)
	}
}

func TestColumnStaleHandles(t *testing.T) {
	c := newColumn()
	stale := registry.Handle(3)

	c.SetContent(stale, registry.Content{Text: "x"})
	c.Place(stale, 0)
	c.Hide(stale)
	if c.Measure(stale) != 0 || c.Visible() != 0 || c.View() != "" {
		t.Error("stale handles must be ignored")
	}
}
