package tour_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/sketchflow/pkg/page"
	"github.com/papercomputeco/sketchflow/pkg/tour"
)

var _ = Describe("Engine", func() {
	var (
		surface  *recordingSurface
		elements map[string]page.Rect
		steps    []tour.Step
	)

	BeforeEach(func() {
		surface = &recordingSurface{
			viewport: page.Viewport{Width: 1200, Height: 800},
			cardSize: page.Size{Width: 300, Height: 120},
		}
		elements = map[string]page.Rect{
			page.ProcessInputID:  {Left: 100, Top: 300, Width: 600, Height: 160},
			page.ConvertButtonID: {Left: 100, Top: 480, Width: 160, Height: 40},
			page.CanvasID:        {Left: 0, Top: 540, Width: 1200, Height: 600},
		}
		steps = tour.DefaultSteps(locatorOf(elements), tour.DefaultGeometry)
	})

	newEngine := func(opts ...tour.Option) *tour.Engine {
		e, err := tour.New(steps, surface, opts...)
		Expect(err).NotTo(HaveOccurred())
		return e
	}

	Describe("New", func() {
		It("rejects an empty tour", func() {
			_, err := tour.New(nil, surface)
			Expect(err).To(MatchError(tour.ErrNoSteps))
		})

		It("rejects duplicate step ids", func() {
			dup := []tour.Step{
				{ID: "a", Placement: tour.Fixed{}},
				{ID: "a", Placement: tour.Fixed{}},
			}
			_, err := tour.New(dup, surface)
			Expect(err).To(HaveOccurred())
		})

		It("rejects a step without placement", func() {
			_, err := tour.New([]tour.Step{{ID: "a"}}, surface)
			Expect(err).To(HaveOccurred())
		})

		It("does not render before the tour begins", func() {
			e := newEngine()
			Expect(e.Active()).To(BeFalse())
			Expect(e.Index()).To(Equal(-1))
			Expect(surface.mounted).To(BeEmpty())
		})
	})

	Describe("Begin", func() {
		It("shows the first step with the next control", func() {
			e := newEngine()
			e.Begin()

			Expect(e.Index()).To(Equal(0))
			card := surface.last()
			Expect(card.card.StepID).To(Equal(tour.StepWelcome))
			Expect(card.card.Control).To(Equal(tour.NextLabel))
			Expect(card.card.Total).To(Equal(4))
		})

		It("places the fixed welcome card with literal edges", func() {
			e := newEngine()
			e.Begin()

			card := surface.last()
			Expect(card.placed).To(BeTrue())
			Expect(card.pos.Fixed).To(BeTrue())
			Expect(*card.pos.Edges.Top).To(Equal(12.0))
			Expect(*card.pos.Edges.Right).To(Equal(12.0))
			Expect(card.pos.Edges.Left).To(BeNil())
		})

		It("is a no-op while running", func() {
			e := newEngine()
			e.Begin()
			e.Advance()
			e.Begin()

			Expect(e.Index()).To(Equal(1))
		})
	})

	Describe("Advance", func() {
		It("moves forward by exactly one and rebuilds the overlay", func() {
			e := newEngine()
			e.Begin()
			clears := surface.clears

			e.Advance()

			Expect(e.Index()).To(Equal(1))
			Expect(surface.clears).To(Equal(clears + 1))
			Expect(surface.mounted).To(HaveLen(2))
			Expect(surface.visible()).To(HaveLen(1))
			Expect(surface.visible()[0].card.StepID).To(Equal(tour.StepInput))
		})

		It("labels the last step done", func() {
			e := newEngine()
			e.Begin()
			for i := 0; i < 3; i++ {
				e.Advance()
			}

			Expect(e.Index()).To(Equal(3))
			Expect(surface.last().card.Control).To(Equal(tour.DoneLabel))
			Expect(surface.last().card.Last()).To(BeTrue())
		})

		It("dismisses from the last step and removes all markup", func() {
			e := newEngine()
			e.Begin()
			for i := 0; i < 4; i++ {
				e.Advance()
			}

			Expect(e.Active()).To(BeFalse())
			Expect(e.Index()).To(Equal(-1))
			Expect(surface.visible()).To(BeEmpty())
		})

		It("ignores advances after dismissal", func() {
			e := newEngine()
			e.Begin()
			e.Close()
			mounted := len(surface.mounted)

			e.Advance()

			Expect(surface.mounted).To(HaveLen(mounted))
			Expect(e.Active()).To(BeFalse())
		})

		It("is triggered by the card's own callback", func() {
			e := newEngine()
			e.Begin()

			surface.last().card.Advance()

			Expect(e.Index()).To(Equal(1))
		})
	})

	Describe("missing anchors", func() {
		It("keeps the card mounted but unpositioned", func() {
			delete(elements, page.ProcessInputID)
			e := newEngine()
			e.Begin()
			e.Advance()

			card := surface.last()
			Expect(card.attached).To(BeTrue())
			Expect(card.placed).To(BeFalse())

			e.Advance()
			Expect(e.Index()).To(Equal(2))
			Expect(surface.last().placed).To(BeTrue())
		})
	})

	Describe("Start", func() {
		It("begins after the start delay", func() {
			e := newEngine(tour.WithStartDelay(5 * time.Millisecond))

			Expect(e.Start(context.Background())).To(Succeed())
			Expect(e.Index()).To(Equal(0))
		})

		It("shows nothing when cancelled before the delay", func() {
			e := newEngine(tour.WithStartDelay(time.Hour))
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			Expect(e.Start(ctx)).To(MatchError(context.Canceled))
			Expect(e.Active()).To(BeFalse())
			Expect(surface.mounted).To(BeEmpty())
		})

		It("hands Begin to the dispatcher", func() {
			var queued []func()
			e := newEngine(
				tour.WithStartDelay(0),
				tour.WithDispatch(func(fn func()) { queued = append(queued, fn) }),
			)

			Expect(e.Start(context.Background())).To(Succeed())
			Expect(e.Active()).To(BeFalse())
			Expect(queued).To(HaveLen(1))

			queued[0]()
			Expect(e.Index()).To(Equal(0))
			Expect(surface.visible()).NotTo(BeEmpty())
		})

		It("does not dispatch when already cancelled", func() {
			dispatched := false
			e := newEngine(
				tour.WithStartDelay(0),
				tour.WithDispatch(func(func()) { dispatched = true }),
			)
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			Expect(e.Start(ctx)).To(MatchError(context.Canceled))
			Expect(dispatched).To(BeFalse())
		})
	})

	Describe("Close", func() {
		It("tears down and can be called twice", func() {
			e := newEngine()
			e.Begin()
			e.Close()
			e.Close()

			Expect(e.Active()).To(BeFalse())
			Expect(surface.visible()).To(BeEmpty())
		})

		It("allows the tour to be replayed", func() {
			e := newEngine()
			e.Begin()
			e.Advance()
			e.Close()

			e.Begin()
			Expect(e.Index()).To(Equal(0))
		})
	})

	Describe("Reposition", func() {
		It("re-clamps the current card against the new viewport", func() {
			e := newEngine()
			e.Begin()
			for i := 0; i < 3; i++ {
				e.Advance()
			}
			card := surface.last()
			Expect(card.pos.Point.Y).To(Equal(800.0 - 120 - 12))

			surface.viewport.Height = 2000
			e.Reposition()

			Expect(surface.last()).To(BeIdenticalTo(card))
			Expect(card.pos.Point.Y).To(Equal(540.0 + 300 - 60))
		})
	})
})
