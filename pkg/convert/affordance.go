package convert

// Affordance is the state of the conversion trigger.
type Affordance int

const (
	// Idle is the resting state; the trigger is enabled.
	Idle Affordance = iota
	// Busy means a conversion is running; the trigger is disabled.
	Busy
)

// Label returns the trigger text for the state.
func (a Affordance) Label() string {
	if a == Busy {
		return "در حال تبدیل..."
	}
	return "تبدیل به نمودار"
}

// Enabled reports whether the trigger accepts clicks.
func (a Affordance) Enabled() bool { return a == Idle }

func (a Affordance) String() string {
	if a == Busy {
		return "busy"
	}
	return "idle"
}
