// Package tour runs the onboarding tour: an ordered list of steps shown one
// card at a time over a full-screen backdrop. Each transition throws away the
// previous card and mounts a fresh one, then positions it from its measured
// size.
package tour

import (
	"errors"
	"fmt"
)

// Control labels shown on the card button.
const (
	NextLabel = "بعدی"
	DoneLabel = "پایان"
)

// Step is one card of the tour. Steps are immutable once handed to an Engine.
type Step struct {
	ID        string
	Placement Placement
	Message   string
}

// ErrNoSteps is returned when a tour is built without steps.
var ErrNoSteps = errors.New("tour has no steps")

func validateSteps(steps []Step) error {
	if len(steps) == 0 {
		return ErrNoSteps
	}
	seen := make(map[string]struct{}, len(steps))
	for i, s := range steps {
		if s.ID == "" {
			return fmt.Errorf("step %d has no id", i)
		}
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("duplicate step id %q", s.ID)
		}
		seen[s.ID] = struct{}{}
		if s.Placement == nil {
			return fmt.Errorf("step %q has no placement", s.ID)
		}
	}
	return nil
}
