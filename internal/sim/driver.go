// Package sim contains the simulation driver, an explicit state machine
// advancing the child's age month by month, and the household ledger it
// exclusively owns. The driver is single-threaded and caller-paced: Tick
// is synchronous, and the PAUSED state is a logical suspension awaiting
// caller input on the pending event queue.
package sim

import (
	"fmt"
	"log/slog"

	"github.com/kidcost/kidcost/internal/domain"
	"github.com/kidcost/kidcost/internal/events"
)

// Driver runs one simulation session from birth to adulthood, exhaustion of
// savings, or a manual end. A finished driver is terminal; a new session
// needs a new driver.
type Driver struct {
	profile   *domain.Profile
	generator *events.Generator
	ledger    *Ledger
	log       *slog.Logger

	status    domain.RunStatus
	result    domain.RunResult
	ageMonths int
	queue     []domain.CostEvent
	decisions events.Decisions
	tickRate  float64
}

// New validates the profile and builds a stopped session. Malformed
// profiles are rejected here, never mid-run.
func New(profile *domain.Profile, generator *events.Generator, log *slog.Logger) (*Driver, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}
	return &Driver{
		profile:   profile,
		generator: generator,
		ledger:    NewLedger(profile.FamilySavings),
		log:       log,
		status:    domain.StatusStopped,
		decisions: events.Decisions{Choices: make(map[string]string)},
		tickRate:  1,
	}, nil
}

// Status returns the state-machine state.
func (d *Driver) Status() domain.RunStatus { return d.status }

// Result reports how the session ended, empty while it is live.
func (d *Driver) Result() domain.RunResult { return d.result }

// AgeMonths returns the child's current age.
func (d *Driver) AgeMonths() int { return d.ageMonths }

// Path returns the post-secondary path in effect: the default until the
// path decision resolves, the chosen one after.
func (d *Driver) Path() domain.PostSecondaryPath { return d.decisions.Path() }

// TickRate returns the display-pacing multiplier. The core does not pace
// itself; the multiplier is carried for the caller.
func (d *Driver) TickRate() float64 { return d.tickRate }

// SetTickRate stores a new pacing multiplier, which must be positive.
func (d *Driver) SetTickRate(rate float64) error {
	if rate <= 0 {
		return fmt.Errorf("tick rate %v: %w", rate, domain.ErrInvalidState)
	}
	d.tickRate = rate
	return nil
}

// Start moves a fresh session to RUNNING and drains the birth events. The
// session pauses immediately if birth produces events, which it always does
// at age zero.
func (d *Driver) Start() error {
	if d.status != domain.StatusStopped || d.result != domain.ResultNone {
		return fmt.Errorf("start in %s: %w", d.status, domain.ErrInvalidState)
	}
	d.status = domain.StatusRunning
	d.enqueue(d.generator.Generate(0, d.profile, d.decisions))
	return nil
}

// Pause suspends a running session manually.
func (d *Driver) Pause() error {
	if d.status != domain.StatusRunning {
		return fmt.Errorf("pause in %s: %w", d.status, domain.ErrInvalidState)
	}
	d.status = domain.StatusPaused
	return nil
}

// Resume returns a manually paused session to RUNNING. It is rejected
// while events are still pending.
func (d *Driver) Resume() error {
	if d.status != domain.StatusPaused {
		return fmt.Errorf("resume in %s: %w", d.status, domain.ErrInvalidState)
	}
	if len(d.queue) > 0 {
		return fmt.Errorf("resume with %d pending events: %w", len(d.queue), domain.ErrInvalidState)
	}
	d.status = domain.StatusRunning
	return nil
}

// End stops the session manually. Ending an already terminal session is a
// no-op.
func (d *Driver) End() {
	if d.status == domain.StatusStopped {
		return
	}
	d.status = domain.StatusStopped
	d.result = domain.ResultManuallyEnded
	d.log.Info("session ended manually", "ageMonths", d.ageMonths)
}

// Tick advances the age by one month. It is valid only in RUNNING with an
// empty pending queue. When the new age triggers events the driver pauses
// and exposes them; otherwise the month's net cash flow is applied.
func (d *Driver) Tick() error {
	if d.status != domain.StatusRunning {
		return fmt.Errorf("tick in %s: %w", d.status, domain.ErrInvalidState)
	}
	if len(d.queue) > 0 {
		return fmt.Errorf("tick with pending events: %w", domain.ErrInvalidState)
	}

	d.ageMonths++

	if d.ageMonths >= domain.TerminalAgeMonths(d.profile.ChildGender, d.decisions.Path()) {
		d.status = domain.StatusStopped
		d.result = domain.ResultReachedAdulthood
		d.log.Info("child reached adulthood", "ageMonths", d.ageMonths)
		return nil
	}

	if evs := d.generator.Generate(d.ageMonths, d.profile, d.decisions); len(evs) > 0 {
		d.enqueue(evs)
		return nil
	}

	d.applyMonthlyFlow()
	return nil
}

// PendingEvents returns a copy of the ordered pending queue.
func (d *Driver) PendingEvents() []domain.CostEvent {
	out := make([]domain.CostEvent, len(d.queue))
	copy(out, d.queue)
	return out
}

// NextPendingEvent returns the head of the queue, if any.
func (d *Driver) NextPendingEvent() (domain.CostEvent, bool) {
	if len(d.queue) == 0 {
		return domain.CostEvent{}, false
	}
	return d.queue[0], true
}

// Acknowledge resolves a non-decision event: its fixed cost and benefit
// lines are applied atomically and the event leaves the queue.
func (d *Driver) Acknowledge(eventID string) error {
	ev, err := d.take(eventID)
	if err != nil {
		return err
	}
	if ev.RequiresDecision {
		return fmt.Errorf("%s: %w", ev.Title, domain.ErrDecisionRequired)
	}
	d.resolve(ev, nil)
	return nil
}

// Decide resolves a decision event with the chosen option.
func (d *Driver) Decide(eventID string, optionIndex int) error {
	ev, err := d.take(eventID)
	if err != nil {
		return err
	}
	if optionIndex < 0 || optionIndex >= len(ev.Options) {
		return fmt.Errorf("option %d of %q: %w", optionIndex, ev.Title, domain.ErrInvalidOption)
	}
	opt := ev.Options[optionIndex]
	d.resolve(ev, &opt)
	return nil
}

// Snapshot returns the current ledger view with age and result attached.
func (d *Driver) Snapshot() domain.LedgerSnapshot {
	snap := d.ledger.snapshot()
	snap.AgeMonths = d.ageMonths
	snap.Result = d.result
	return snap
}

func (d *Driver) enqueue(evs []domain.CostEvent) {
	if len(evs) == 0 {
		return
	}
	d.queue = append(d.queue, evs...)
	d.status = domain.StatusPaused
}

// take looks an event up in the pending queue without removing it; the
// queue is only mutated once the apply cannot fail.
func (d *Driver) take(eventID string) (domain.CostEvent, error) {
	if d.status != domain.StatusPaused {
		return domain.CostEvent{}, fmt.Errorf("resolve in %s: %w", d.status, domain.ErrInvalidState)
	}
	for _, ev := range d.queue {
		if ev.ID == eventID {
			return ev, nil
		}
	}
	return domain.CostEvent{}, fmt.Errorf("event %s: %w", eventID, domain.ErrUnknownEvent)
}

// resolve applies an event's deltas to the ledger, records it, removes it
// from the queue and resumes the session when the queue empties.
func (d *Driver) resolve(ev domain.CostEvent, opt *domain.DecisionOption) {
	stage := domain.StageAt(ev.AgeMonths, d.profile.ChildGender, d.decisions.Path())

	cost := ev.TotalCost()
	optionLabel := ""
	if opt != nil {
		cost = cost.Add(opt.OneTimeCost)
		optionLabel = opt.Label
		if opt.Choice != "" {
			key := ev.ChoiceKey
			if key == "" {
				key = ev.Title
			}
			d.decisions.Choices[key] = opt.Choice
			if ev.ChoiceKey == domain.ChoiceKeyPostSecondaryPath {
				d.decisions.PostSecondaryPath = domain.PostSecondaryPath(opt.Choice)
			}
		}
	}

	benefit := ev.TotalBenefit()
	if !ev.ReportingOnlyBenefit {
		d.ledger.applyBenefit(benefit)
	}
	ranOut := d.ledger.applyCost(ev.Category, stage, cost)

	d.ledger.record(domain.DecisionRecord{
		AgeMonths:  ev.AgeMonths,
		EventTitle: ev.Title,
		Option:     optionLabel,
		Cost:       cost,
		Benefit:    benefit,
	})

	d.removeFromQueue(ev.ID)

	if ranOut {
		d.stopRanOutOfMoney()
		return
	}
	if len(d.queue) == 0 {
		d.status = domain.StatusRunning
	}
}

func (d *Driver) removeFromQueue(eventID string) {
	for i, ev := range d.queue {
		if ev.ID == eventID {
			d.queue = append(d.queue[:i], d.queue[i+1:]...)
			return
		}
	}
}

// applyMonthlyFlow nets disposable income against the month's recurring
// cost. The cost delta is still applied when it would empty the account,
// capped so savings stay at exactly zero.
func (d *Driver) applyMonthlyFlow() {
	outlay := d.generator.MonthlyCost(d.ageMonths, d.profile, d.decisions)
	stage := domain.StageAt(d.ageMonths, d.profile.ChildGender, d.decisions.Path())

	d.ledger.applyIncome(d.profile.HouseholdDisposableMonthly())
	d.ledger.applyIncome(outlay.Allowance)

	ranOut := d.ledger.applyCost(domain.CategoryEducation, stage, outlay.NetFee())
	if d.ledger.applyCost(domain.CategoryMiscellaneous, stage, outlay.Living) {
		ranOut = true
	}
	if ranOut {
		d.stopRanOutOfMoney()
	}
}

func (d *Driver) stopRanOutOfMoney() {
	d.status = domain.StatusStopped
	d.result = domain.ResultRanOutOfMoney
	d.log.Info("household ran out of money", "ageMonths", d.ageMonths)
}
