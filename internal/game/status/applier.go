package status

import (
	"fmt"

	"github.com/cory-johannsen/deepdelve/internal/game/dice"
	"github.com/cory-johannsen/deepdelve/internal/game/message"
	"github.com/cory-johannsen/deepdelve/internal/game/save"
)

// DecoyMessage is printed when a decoy absorbs an effect aimed at the player.
const DecoyMessage = "The attack hits Shadow, but you are unharmed!"

// Target is an actor that can carry statuses.
type Target interface {
	save.Defender
	// Timed returns the actor's counters.
	Timed() *Timed
	// Describe names the actor mid-sentence ("you", "the cave orc").
	Describe() string
	// IsPlayer selects first- or third-person messages.
	IsPlayer() bool
	// Decoy reports whether a decoy is absorbing this effect.
	Decoy() bool
	// ImmuneTo reports full immunity to def, recording lore as a side effect
	// when the target is an observed monster.
	ImmuneTo(def *Def) bool
	// MarkStatusChanged raises the actor's redraw and bonus-recalculation flags.
	MarkStatusChanged()
}

// Outcome classifies what Apply did.
type Outcome uint8

const (
	// Applied means the counter was extended.
	Applied Outcome = iota
	// Absorbed means a decoy took the effect; nothing else happened.
	Absorbed
	// Unaffected means the target is immune.
	Unaffected
	// Resisted means the target made its saving throw.
	Resisted
	// Unchanged means the request could not change the counter.
	Unchanged
	// Unknown means no definition exists for the requested kind.
	Unknown
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case Absorbed:
		return "absorbed"
	case Unaffected:
		return "unaffected"
	case Resisted:
		return "resisted"
	case Unchanged:
		return "unchanged"
	default:
		return "unknown"
	}
}

// Request describes one attempt to set a status.
type Request struct {
	Kind   Kind
	Amount int
	// Save lets the target roll a saving throw against Power.
	Save  bool
	Power int
	// Fresh only applies the status when it is not already active.
	Fresh bool
}

// Result reports the outcome and the counter before and after.
type Result struct {
	Outcome Outcome
	Before  int
	After   int
	// Notice is true when the status went from inactive to active.
	Notice bool
}

// Applier sets status counters on targets. Checks run in a fixed order:
// decoy, immunity, saving throw, then the counter is extended and clamped.
type Applier struct {
	reg  *Registry
	src  dice.Source
	sink message.Sink
}

// NewApplier creates an Applier.
//
// Precondition: reg, src and sink must be non-nil.
func NewApplier(reg *Registry, src dice.Source, sink message.Sink) *Applier {
	return &Applier{reg: reg, src: src, sink: sink}
}

// Registry returns the definitions the applier uses.
func (a *Applier) Registry() *Registry {
	return a.reg
}

// Apply attempts req against t.
//
// Postcondition: t's counter for req.Kind changes only when Outcome == Applied,
// and never exceeds the kind's Max.
func (a *Applier) Apply(t Target, req Request) Result {
	def, ok := a.reg.Get(req.Kind)
	if !ok {
		return Result{Outcome: Unknown}
	}
	before := t.Timed().Get(req.Kind)
	res := Result{Before: before, After: before}

	if t.Decoy() {
		a.sink.Msg(DecoyMessage)
		res.Outcome = Absorbed
		return res
	}
	if t.ImmuneTo(def) {
		a.say(t, def.Messages.Unaffected, def.Messages.UnaffectedOther)
		res.Outcome = Unaffected
		return res
	}
	if req.Save && save.Resists(a.src, req.Power, t, def.SaveKind()) {
		a.say(t, def.Messages.Resisted, def.Messages.ResistedOther)
		res.Outcome = Resisted
		return res
	}
	if req.Amount <= 0 || (req.Fresh && before > 0) {
		res.Outcome = Unchanged
		return res
	}

	t.Timed().Set(req.Kind, before+req.Amount, def.Max)
	res.After = t.Timed().Get(req.Kind)
	res.Outcome = Applied
	if before == 0 && res.After > 0 {
		res.Notice = true
		a.say(t, def.Messages.Gain, def.Messages.GainOther)
	}
	t.MarkStatusChanged()
	return res
}

// Clear removes kind from t, printing the expiry message if it was active.
func (a *Applier) Clear(t Target, kind Kind) {
	if !t.Timed().Has(kind) {
		return
	}
	t.Timed().Clear(kind)
	if def, ok := a.reg.Get(kind); ok {
		a.say(t, def.Messages.Expire, def.Messages.ExpireOther)
	}
	t.MarkStatusChanged()
}

// Tick advances t's counters one turn and prints expiry messages.
//
// Postcondition: returns the kinds that expired.
func (a *Applier) Tick(t Target) []Kind {
	expired := t.Timed().Tick()
	for _, k := range expired {
		if def, ok := a.reg.Get(k); ok {
			a.say(t, def.Messages.Expire, def.Messages.ExpireOther)
		}
	}
	if len(expired) > 0 {
		t.MarkStatusChanged()
	}
	return expired
}

func (a *Applier) say(t Target, self, other string) {
	if t.IsPlayer() {
		if self != "" {
			a.sink.Msg(self)
		}
		return
	}
	if other != "" {
		a.sink.Msg(fmt.Sprintf(other, message.Capitalize(t.Describe())))
	}
}
