package tour

import "github.com/papercomputeco/sketchflow/pkg/page"

// Card is everything a surface needs to draw one step.
type Card struct {
	StepID  string
	Message string
	// Control is the button label: NextLabel, or DoneLabel on the last step.
	Control string
	Index   int
	Total   int
	// Advance must be bound to both the backdrop and the control.
	Advance func()
}

// Last reports whether the card is the final step.
func (c Card) Last() bool { return c.Index == c.Total-1 }

// Surface is the overlay region of a host page.
type Surface interface {
	// Viewport reports the visible area at the time of the call.
	Viewport() page.Viewport
	// Clear removes all tour markup.
	Clear()
	// Mount inserts a backdrop and the card, unpositioned, and returns a
	// handle to measure and move it.
	Mount(card Card) CardHandle
}

// CardHandle is a mounted card.
type CardHandle interface {
	Size() page.Size
	Place(pos Position)
}
