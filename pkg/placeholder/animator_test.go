package placeholder_test

import (
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/sketchflow/pkg/placeholder"
)

type fakeInput struct {
	mu          sync.Mutex
	focused     bool
	value       string
	placeholder string
}

func (f *fakeInput) Focused() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.focused
}

func (f *fakeInput) Value() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

func (f *fakeInput) SetPlaceholder(s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.placeholder = s
}

func (f *fakeInput) Placeholder() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.placeholder
}

// manualScheduler fires ticks only when the test asks for them.
type manualScheduler struct {
	timers []*manualTimer
}

type manualTimer struct {
	fn      func()
	stopped bool
}

func (s *manualScheduler) Every(_ time.Duration, fn func()) func() {
	t := &manualTimer{fn: fn}
	s.timers = append(s.timers, t)
	return func() { t.stopped = true }
}

// fire runs n ticks on every live timer.
func (s *manualScheduler) fire(n int) {
	for i := 0; i < n; i++ {
		for _, t := range s.timers {
			if !t.stopped {
				t.fn()
			}
		}
	}
}

func (s *manualScheduler) live() int {
	n := 0
	for _, t := range s.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

var _ = Describe("Animator", func() {
	const demo = "سفارش ثبت"

	var (
		input *fakeInput
		sched *manualScheduler
		anim  *placeholder.Animator
	)

	BeforeEach(func() {
		input = &fakeInput{}
		sched = &manualScheduler{}
		anim = placeholder.New(input, demo, placeholder.WithScheduler(sched))
	})

	It("does nothing before Start", func() {
		Expect(anim.Running()).To(BeFalse())
		Expect(sched.timers).To(BeEmpty())
	})

	It("reveals one rune per tick", func() {
		anim.Start()
		sched.fire(3)

		Expect(anim.Revealed()).To(Equal(3))
		Expect(input.Placeholder()).To(Equal("سفا"))
	})

	It("stops once the whole text is revealed", func() {
		anim.Start()
		sched.fire(len([]rune(demo)) + 5)

		Expect(input.Placeholder()).To(Equal(demo))
		Expect(anim.Running()).To(BeFalse())
		Expect(sched.live()).To(BeZero())
	})

	It("never schedules twice", func() {
		anim.Start()
		anim.Start()

		Expect(sched.timers).To(HaveLen(1))
	})

	It("halts when the input gains focus", func() {
		anim.Start()
		sched.fire(2)
		input.focused = true
		sched.fire(1)

		Expect(anim.Running()).To(BeFalse())
		Expect(anim.Revealed()).To(Equal(2))
		Expect(sched.live()).To(BeZero())
	})

	It("halts once the input has content and stays halted until cleared and blurred", func() {
		anim.Start()
		sched.fire(1)
		input.value = "x"
		sched.fire(5)

		Expect(anim.Revealed()).To(Equal(1))
		Expect(anim.Running()).To(BeFalse())

		anim.Blur()
		Expect(anim.Running()).To(BeFalse())

		input.value = "   "
		anim.Blur()
		Expect(anim.Running()).To(BeTrue())
		Expect(anim.Revealed()).To(Equal(0))
	})

	It("restarts from the beginning on blur while empty", func() {
		anim.Start()
		sched.fire(4)
		input.focused = true
		sched.fire(1)

		input.focused = false
		anim.Blur()
		sched.fire(1)

		Expect(anim.Revealed()).To(Equal(1))
		Expect(input.Placeholder()).To(Equal("س"))
		Expect(sched.live()).To(Equal(1))
	})

	It("drops ticks from a cancelled timer", func() {
		anim.Start()
		stale := sched.timers[0].fn
		anim.Close()
		anim.Blur()

		stale()

		Expect(anim.Revealed()).To(Equal(0))
	})

	It("runs on a real ticker", func() {
		anim = placeholder.New(input, "ab", placeholder.WithInterval(time.Millisecond))
		anim.Start()
		defer anim.Close()

		Eventually(input.Placeholder).Should(Equal("ab"))
		Eventually(anim.Running).Should(BeFalse())
	})
})
