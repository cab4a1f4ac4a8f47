package main

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/keychord/internal/input"
	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/input/keymap"
)

const maxHistory = 500

var (
	styleHeader  = tcell.StyleDefault.Reverse(true)
	styleStatus  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleMatched = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleNote    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleLog     = tcell.StyleDefault.Foreground(tcell.ColorTeal)
)

type historyLine struct {
	text  string
	style tcell.Style
}

// replView renders the REPL: a header, the current context and pending
// chord, then the most recent outcomes and log lines. It is written to
// from the handler, the event poller and the keymap watcher.
type replView struct {
	mu       sync.Mutex
	screen   tcell.Screen
	platform key.Platform
	editor   *replEditor

	// pending reports the pending chord; set once the handler exists.
	pending func() string

	history []historyLine
}

func newReplView(screen tcell.Screen, platform key.Platform, editor *replEditor) *replView {
	return &replView{
		screen:   screen,
		platform: platform,
		editor:   editor,
		pending:  func() string { return "" },
	}
}

// outcome records a handler outcome.
func (v *replView) outcome(o input.Outcome) {
	style := tcell.StyleDefault
	switch {
	case o.Cancelled != input.CancelNone:
		style = styleStatus
	case o.Resolution.Kind == keymap.Matched:
		style = styleMatched
	}
	v.add(o.String(), style)
}

// note records an informational line.
func (v *replView) note(text string) {
	v.add(text, styleNote)
}

// redrawEvent asks the event poller to redraw.
type redrawEvent struct {
	tcell.EventTime
}

// Write implements io.Writer so a logger can print into the history.
// The handler logs while holding its lock, so Write only queues a redraw.
func (v *replView) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		v.push(line, styleLog)
	}
	ev := &redrawEvent{}
	ev.SetEventNow()
	_ = v.screen.PostEvent(ev)
	return len(p), nil
}

func (v *replView) add(text string, style tcell.Style) {
	v.push(text, style)
	v.draw()
}

func (v *replView) push(text string, style tcell.Style) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.history = append(v.history, historyLine{text: text, style: style})
	if len(v.history) > maxHistory {
		v.history = v.history[len(v.history)-maxHistory:]
	}
}

// toggle changes the editor state for F2..F5 and reports whether k was
// one of them.
func (v *replView) toggle(k tcell.Key) bool {
	if !v.editor.toggle(k) {
		return false
	}
	v.draw()
	return true
}

func (v *replView) draw() {
	pending := v.pending()

	v.mu.Lock()
	defer v.mu.Unlock()

	s := v.screen
	s.Clear()
	width, height := s.Size()

	header := fmt.Sprintf(" keychord repl  platform: %s  F2-F5 context  Ctrl+C quit", v.platform)
	fill(s, 0, width, styleHeader)
	drawText(s, 0, 0, width, header, styleHeader)
	drawText(s, 0, 1, width, "context: "+contextLine(input.ContextFromEditor(v.editor)), tcell.StyleDefault)
	if pending != "" {
		drawText(s, 0, 2, width, "pending: "+pending, styleStatus)
	}

	first := 4
	rows := height - first
	start := max(0, len(v.history)-rows)
	for i, line := range v.history[start:] {
		drawText(s, 0, first+i, width, line.text, line.style)
	}
	s.Show()
}

// contextLine lists every condition that holds in ctx.
func contextLine(ctx keymap.Context) string {
	var names []string
	for _, c := range keymap.Conditions() {
		if ctx.Holds(c) {
			names = append(names, c.String())
		}
	}
	return strings.Join(names, " ")
}

func fill(s tcell.Screen, y, width int, style tcell.Style) {
	for x := 0; x < width; x++ {
		s.SetContent(x, y, ' ', nil, style)
	}
}

// drawText draws text one grapheme cluster at a time, clipped at maxX.
func drawText(s tcell.Screen, x, y, maxX int, text string, style tcell.Style) {
	state := -1
	for text != "" && x < maxX {
		var cluster string
		var width int
		cluster, text, width, state = uniseg.FirstGraphemeClusterInString(text, state)
		if width == 0 {
			continue
		}
		if x+width > maxX {
			return
		}
		runes := []rune(cluster)
		s.SetContent(x, y, runes[0], runes[1:], style)
		x += width
	}
}
