package ecs

// System updates a world once per tick of the scheduler that owns it.
type System interface {
	Update(w *World)
}

type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	copied := make([]System, 0, len(systems))
	for _, s := range systems {
		if s != nil {
			copied = append(copied, s)
		}
	}
	return &Scheduler{systems: copied}
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

func (s *Scheduler) Update(w *World) {
	if s == nil {
		return
	}
	for _, system := range s.systems {
		system.Update(w)
	}
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}

// FixedStep runs a scheduler at a constant rate decoupled from the frame
// rate. Each frame's elapsed time is accumulated and consumed in Step-sized
// slices, so a frame may run zero, one, or several fixed updates.
type FixedStep struct {
	Step     float64
	MaxSteps int

	acc float64
}

func NewFixedStep(step float64, maxSteps int) *FixedStep {
	if maxSteps <= 0 {
		maxSteps = 5
	}
	return &FixedStep{Step: step, MaxSteps: maxSteps}
}

// Advance adds frame seconds to the accumulator and returns the number of
// fixed steps now due. Backlog beyond MaxSteps is dropped.
func (f *FixedStep) Advance(frame float64) int {
	if f == nil || f.Step <= 0 || frame <= 0 {
		return 0
	}
	f.acc += frame
	n := 0
	for f.acc >= f.Step {
		f.acc -= f.Step
		n++
	}
	if n > f.MaxSteps {
		n = f.MaxSteps
		f.acc = 0
	}
	return n
}

// Alpha is the fraction of a step left in the accumulator.
func (f *FixedStep) Alpha() float64 {
	if f == nil || f.Step <= 0 {
		return 0
	}
	return f.acc / f.Step
}

// Run advances by frame seconds and updates s once per due step.
func (f *FixedStep) Run(w *World, s *Scheduler, frame float64) int {
	n := f.Advance(frame)
	for i := 0; i < n; i++ {
		s.Update(w)
	}
	return n
}
