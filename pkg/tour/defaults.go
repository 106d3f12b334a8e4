package tour

import "github.com/papercomputeco/sketchflow/pkg/page"

// Step ids of the default tour.
const (
	StepWelcome = "welcome"
	StepInput   = "input"
	StepConvert = "convert"
	StepCanvas  = "canvas"
)

// DefaultSteps is the onboarding tour of the conversion page. Anchored steps
// resolve their elements through loc when positioned, so late layout changes
// are picked up. The welcome card is pinned to the top-right corner.
func DefaultSteps(loc page.Locator, g Geometry) []Step {
	return []Step{
		{
			ID:        StepWelcome,
			Placement: Fixed{Edges: Edges{Top: Offset(g.Margin), Right: Offset(g.Margin)}},
			Message:   "به ابزار تبدیل متن به نمودار خوش آمدید! در چند قدم با صفحه آشنا شوید.",
		},
		{
			ID:        StepInput,
			Placement: Above{Anchor: AnchorByID(loc, page.ProcessInputID)},
			Message:   "شرح فرایند را به زبان ساده در این کادر بنویسید؛ هر جمله یک مرحله می‌شود.",
		},
		{
			ID:        StepConvert,
			Placement: Above{Anchor: AnchorByID(loc, page.ConvertButtonID)},
			Message:   "با این دکمه متن به نمودار BPMN تبدیل می‌شود.",
		},
		{
			ID:        StepCanvas,
			Placement: Centered{Anchor: AnchorByID(loc, page.CanvasID)},
			Message:   "نمودار ساخته‌شده اینجا نمایش داده می‌شود.",
		},
	}
}
