package ui

import (
	"context"
	"sync"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/papercomputeco/sketchflow/pkg/convert"
)

type pageChangedMsg struct{}

// pageState is the part of the page the conversion controller touches. The
// controller runs inside a tea.Cmd goroutine, so everything here is guarded
// and every write wakes the Update loop to redraw.
type pageState struct {
	mu         sync.Mutex
	input      string
	errMsg     string
	affordance convert.Affordance

	changed chan struct{}
}

func newPageState() *pageState {
	return &pageState{
		affordance: convert.Idle,
		changed:    make(chan struct{}, 1),
	}
}

// InputText implements convert.Page.
func (p *pageState) InputText() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.input
}

// SetError implements convert.Page.
func (p *pageState) SetError(msg string) {
	p.mu.Lock()
	p.errMsg = msg
	p.mu.Unlock()
	p.notify()
}

// SetAffordance implements convert.Page.
func (p *pageState) SetAffordance(a convert.Affordance) {
	p.mu.Lock()
	p.affordance = a
	p.mu.Unlock()
	p.notify()
}

func (p *pageState) setInput(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.input = s
}

func (p *pageState) errorText() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.errMsg
}

func (p *pageState) currentAffordance() convert.Affordance {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.affordance
}

func (p *pageState) notify() {
	select {
	case p.changed <- struct{}{}:
	default:
	}
}

// wait blocks until the next page write, or returns nil once ctx is done.
func (p *pageState) wait(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-p.changed:
			return pageChangedMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}

// inputTarget exposes the description input to the placeholder animator.
type inputTarget struct {
	input *textinput.Model
}

func (t inputTarget) Focused() bool           { return t.input.Focused() }
func (t inputTarget) Value() string           { return t.input.Value() }
func (t inputTarget) SetPlaceholder(s string) { t.input.Placeholder = s }
