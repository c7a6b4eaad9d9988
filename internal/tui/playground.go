// Package tui is an interactive playground for poking at a vector.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/veclib/internal/alloc"
	"github.com/san-kum/veclib/internal/vector"
	"github.com/san-kum/veclib/internal/viz"
)

const barWidth = 48

type model struct {
	vec      *vector.Vector[int]
	counting *alloc.Counting[int]
	cursor   int
	next     int
	status   string
	err      error
	growths  int
}

// newPlayground returns a playground over a fresh vector drawing from a.
func newPlayground(a *alloc.Counting[int]) (*model, error) {
	v, err := vector.New(vector.WithAllocator[int](a))
	if err != nil {
		return nil, err
	}
	return &model{vec: v, counting: a, next: 1}, nil
}

// Run starts the playground and blocks until the user quits.
func Run(a *alloc.Counting[int]) error {
	m, err := newPlayground(a)
	if err != nil {
		return err
	}
	final, err := tea.NewProgram(m).Run()
	if fm, ok := final.(*model); ok {
		fm.vec.Release()
	}
	return err
}

func (m *model) Init() tea.Cmd { return nil }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	m.err = nil
	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "a":
		m.append()
	case "r":
		m.reserve()
	case "left", "h":
		m.cursor--
	case "right", "l":
		m.cursor++
	case "+", "-":
		m.mutate(key.String())
	}
	return m, nil
}

func (m *model) append() {
	before := m.vec.Cap()
	if err := m.vec.Append(m.next); err != nil {
		m.err = err
		return
	}
	m.status = fmt.Sprintf("appended %d", m.next)
	if m.vec.Cap() != before {
		m.growths++
		m.status += fmt.Sprintf(", grew %d -> %d", before, m.vec.Cap())
	}
	m.next++
}

func (m *model) reserve() {
	n := m.vec.Cap() * 2
	if err := m.vec.Reserve(n); err != nil {
		m.err = err
		return
	}
	m.status = fmt.Sprintf("reserved %d", n)
}

// mutate edits the element under the cursor in place. The cursor may point
// past the live region, in which case the out-of-range error is shown.
func (m *model) mutate(op string) {
	p, err := m.vec.Ref(m.cursor)
	if err != nil {
		m.err = err
		return
	}
	if op == "+" {
		*p++
	} else {
		*p--
	}
	m.status = fmt.Sprintf("v[%d] = %d", m.cursor, *p)
}

func (m *model) View() string {
	var b strings.Builder

	b.WriteString(viz.Title.Render("veclib playground"))
	b.WriteString("\n\n")
	b.WriteString(viz.SlotBar(m.vec.Len(), m.vec.Cap(), barWidth))
	b.WriteString("\n")
	b.WriteString(viz.Summary(m.vec.Len(), m.vec.Cap(), alloc.SlotSize[int]()))
	b.WriteString("\n\n")
	b.WriteString(m.renderElements())
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "%s %d  %s %d  %s %d\n",
		viz.Label.Render("growths"), m.growths,
		viz.Label.Render("live blocks"), m.counting.LiveBlocks(),
		viz.Label.Render("allocations"), m.counting.Allocations(),
	)

	if m.err != nil {
		b.WriteString(viz.ErrorText.Render(m.err.Error()))
	} else {
		b.WriteString(viz.Subtle.Render(m.status))
	}
	b.WriteString("\n\n")
	b.WriteString(viz.KeyHint.Render("a append  r reserve x2  ←/→ move  +/- edit  q quit"))
	b.WriteString("\n")
	return viz.Panel.Render(b.String())
}

// renderElements prints the vector, highlighting the cursor. A cursor past
// the end is drawn as a marker after the closing bracket.
func (m *model) renderElements() string {
	var b strings.Builder
	b.WriteString("[")
	for i, x := range m.vec.All() {
		if i > 0 {
			b.WriteString(", ")
		}
		s := fmt.Sprint(x)
		if i == m.cursor {
			s = viz.Selected.Render(s)
		}
		b.WriteString(s)
	}
	b.WriteString("]")
	if m.cursor < 0 || m.cursor >= m.vec.Len() {
		b.WriteString(viz.GrowMark.Render(fmt.Sprintf("  cursor %d", m.cursor)))
	}
	return b.String()
}
