package runtime

type Scheduler struct {
	// incremented each time the queue is drained
	clock int

	scheduled bool
	running   bool
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		clock: 0,

		scheduled: false,
		running:   false,
	}
}

// Run calls fn if work was scheduled and no drain is already in progress.
// A drain triggered from inside a microtask is absorbed by the running one.
func (s *Scheduler) Run(fn func()) {
	if s.running || !s.scheduled {
		return
	}

	s.scheduled = false
	s.running = true
	defer func() {
		s.clock++
		s.running = false
	}()

	fn()
}

func (s *Scheduler) Schedule() {
	s.scheduled = true
}

func (s *Scheduler) IsScheduled() bool {
	return s.scheduled
}

func (s *Scheduler) Time() int {
	return s.clock
}
