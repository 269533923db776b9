package main

import (
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/overlaykit/overlay"
)

// Options configures the demo model.
type Options struct {
	Overlay          overlay.Options
	FrameInterval    time.Duration
	MarginVertical   int
	MarginHorizontal int
}

// Model is the bubbletea model of the demo.
type Model struct {
	keys KeyMap

	ov      *overlay.Overlay[int]
	column  *column
	printer *overlay.Printer

	start  time.Time
	now    time.Duration
	frames int
	last   overlay.TickReport[int]
	pushed int

	frameInterval    time.Duration
	marginVertical   int
	marginHorizontal int

	width  int
	height int

	statusMessage string
	copyText      func(string) error
}

// tickMsg fires once per frame.
type tickMsg time.Time

// NewModel creates the demo model. The clock starts at start.
func NewModel(opts Options, start time.Time) (Model, error) {
	col := newColumn()
	ov, err := overlay.New[int](col, opts.Overlay)
	if err != nil {
		return Model{}, err
	}
	return Model{
		keys:             DefaultKeyMap(),
		ov:               ov,
		column:           col,
		printer:          ov.Printer(),
		start:            start,
		frameInterval:    opts.FrameInterval,
		marginVertical:   opts.MarginVertical,
		marginHorizontal: opts.MarginHorizontal,
		copyText:         clipboard.WriteAll,
	}, nil
}

// Init starts the frame ticker.
func (m Model) Init() tea.Cmd {
	return m.nextFrame()
}

func (m Model) nextFrame() tea.Cmd {
	return tea.Tick(m.frameInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Close stops the overlay from accepting messages.
func (m *Model) Close() {
	m.ov.Close()
}
