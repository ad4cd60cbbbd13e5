package status_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/deepdelve/internal/game/dice"
	"github.com/cory-johannsen/deepdelve/internal/game/element"
	"github.com/cory-johannsen/deepdelve/internal/game/message"
	"github.com/cory-johannsen/deepdelve/internal/game/status"
)

type fixedSrc struct{ val int }

func (f fixedSrc) Intn(n int) int {
	if f.val >= n {
		return n - 1
	}
	return f.val
}

type fakeTarget struct {
	timed   *status.Timed
	player  bool
	decoy   bool
	immune  element.Set
	level   int
	skill   int
	changed int
}

func newTarget() *fakeTarget {
	return &fakeTarget{timed: status.NewTimed(), player: true, level: 10}
}

func (f *fakeTarget) Level() int { return f.level }
func (f *fakeTarget) SaveSkill() int { return f.skill }
func (f *fakeTarget) Timed() *status.Timed { return f.timed }
func (f *fakeTarget) IsPlayer() bool { return f.player }
func (f *fakeTarget) Decoy() bool { return f.decoy }
func (f *fakeTarget) MarkStatusChanged() { f.changed++ }
func (f *fakeTarget) Describe() string {
	if f.player {
		return "you"
	}
	return "the kobold"
}
func (f *fakeTarget) ImmuneTo(d *status.Def) bool {
	e, ok := d.ImmunityElement()
	return ok && f.immune.Has(e)
}

func loadRegistry(t *testing.T) *status.Registry {
	t.Helper()
	reg, err := status.LoadDirectory("../../../content/statuses")
	require.NoError(t, err)
	return reg
}

func TestLoadDirectory_Content(t *testing.T) {
	reg := loadRegistry(t)
	for _, k := range []status.Kind{status.Confused, status.Afraid, status.Paralyzed, status.Stunned,
		status.Poisoned, status.Blind, status.Slow, status.Cut, status.Asleep} {
		def, ok := reg.Get(k)
		require.True(t, ok, k)
		assert.Equal(t, status.DefaultMax, def.Max, k)
	}
	def, _ := reg.Get(status.Confused)
	e, ok := def.ImmunityElement()
	require.True(t, ok)
	assert.Equal(t, element.Confusion, e)
}

func TestDef_ValidateRejectsBadReferences(t *testing.T) {
	assert.Error(t, (&status.Def{}).Validate())
	assert.Error(t, (&status.Def{ID: "x", Immunity: "lava"}).Validate())
	assert.Error(t, (&status.Def{ID: "x", MonsterImmunity: "NO_LAVA"}).Validate())
	assert.Error(t, (&status.Def{ID: "x", Save: "reflex"}).Validate())
	assert.Error(t, (&status.Def{ID: "x", Messages: status.Messages{GainOther: "no name here"}}).Validate())
	assert.Error(t, (&status.Def{ID: "x", Max: -1}).Validate())
}

func TestApply_OrderDecoyFirst(t *testing.T) {
	var sink message.Buffer
	a := status.NewApplier(loadRegistry(t), fixedSrc{0}, &sink)
	tgt := newTarget()
	tgt.decoy = true
	tgt.immune = element.Of(element.Confusion)
	res := a.Apply(tgt, status.Request{Kind: status.Confused, Amount: 5})
	assert.Equal(t, status.Absorbed, res.Outcome)
	assert.Equal(t, 0, tgt.timed.Get(status.Confused))
	assert.Equal(t, []string{status.DecoyMessage}, sink.Lines())
	assert.Zero(t, tgt.changed)
}

func TestApply_ImmunityBeforeSave(t *testing.T) {
	var sink message.Buffer
	a := status.NewApplier(loadRegistry(t), fixedSrc{0}, &sink)
	tgt := newTarget()
	tgt.immune = element.Of(element.FreeAction)
	res := a.Apply(tgt, status.Request{Kind: status.Paralyzed, Amount: 5, Save: true, Power: 10})
	assert.Equal(t, status.Unaffected, res.Outcome)
	assert.True(t, sink.Contains("You are unaffected!"))
}

func TestApply_SaveResists(t *testing.T) {
	var sink message.Buffer
	// A zero draw makes randint1 return 1, which is below any positive skill.
	a := status.NewApplier(loadRegistry(t), fixedSrc{0}, &sink)
	tgt := newTarget()
	tgt.skill = 50
	res := a.Apply(tgt, status.Request{Kind: status.Paralyzed, Amount: 5, Save: true, Power: 10})
	assert.Equal(t, status.Resisted, res.Outcome)
	assert.True(t, sink.Contains("You resist the effects!"))
	assert.False(t, tgt.timed.Has(status.Paralyzed))
}

func TestApply_ExtendsAndNotices(t *testing.T) {
	var sink message.Buffer
	a := status.NewApplier(loadRegistry(t), fixedSrc{0}, &sink)
	tgt := newTarget()
	res := a.Apply(tgt, status.Request{Kind: status.Poisoned, Amount: 7})
	assert.Equal(t, status.Applied, res.Outcome)
	assert.True(t, res.Notice)
	assert.Equal(t, 7, res.After)
	res = a.Apply(tgt, status.Request{Kind: status.Poisoned, Amount: 3})
	assert.False(t, res.Notice)
	assert.Equal(t, 10, tgt.timed.Get(status.Poisoned))
	assert.Equal(t, 2, tgt.changed)
	assert.Equal(t, []string{"You are poisoned!"}, sink.Lines())
}

func TestApply_FreshSkipsActive(t *testing.T) {
	a := status.NewApplier(loadRegistry(t), fixedSrc{0}, message.Discard{})
	tgt := newTarget()
	a.Apply(tgt, status.Request{Kind: status.Paralyzed, Amount: 4})
	res := a.Apply(tgt, status.Request{Kind: status.Paralyzed, Amount: 9, Fresh: true})
	assert.Equal(t, status.Unchanged, res.Outcome)
	assert.Equal(t, 4, tgt.timed.Get(status.Paralyzed))
}

func TestApply_MonsterMessages(t *testing.T) {
	var sink message.Buffer
	a := status.NewApplier(loadRegistry(t), fixedSrc{0}, &sink)
	tgt := newTarget()
	tgt.player = false
	a.Apply(tgt, status.Request{Kind: status.Confused, Amount: 3})
	assert.Equal(t, []string{"The kobold looks confused."}, sink.Lines())
}

func TestApply_UnknownKind(t *testing.T) {
	a := status.NewApplier(status.NewRegistry(), fixedSrc{0}, message.Discard{})
	assert.Equal(t, status.Unknown, a.Apply(newTarget(), status.Request{Kind: "glowing", Amount: 1}).Outcome)
}

func TestApply_NeverExceedsMax(t *testing.T) {
	reg := loadRegistry(t)
	rapid.Check(t, func(rt *rapid.T) {
		a := status.NewApplier(reg, dice.NewSeededSource(rapid.Uint64().Draw(rt, "seed")), message.Discard{})
		tgt := newTarget()
		for _, amt := range rapid.SliceOf(rapid.IntRange(-100, 5000)).Draw(rt, "amounts") {
			a.Apply(tgt, status.Request{Kind: status.Stunned, Amount: amt})
			assert.LessOrEqual(rt, tgt.timed.Get(status.Stunned), status.DefaultMax)
			assert.GreaterOrEqual(rt, tgt.timed.Get(status.Stunned), 0)
		}
	})
}

func TestTickAndClear(t *testing.T) {
	var sink message.Buffer
	a := status.NewApplier(loadRegistry(t), fixedSrc{0}, &sink)
	tgt := newTarget()
	a.Apply(tgt, status.Request{Kind: status.Blind, Amount: 1})
	a.Apply(tgt, status.Request{Kind: status.Confused, Amount: 3})
	sink.Reset()

	expired := a.Tick(tgt)
	assert.Equal(t, []status.Kind{status.Blind}, expired)
	assert.True(t, sink.Contains("You can see again."))
	assert.Equal(t, 2, tgt.timed.Get(status.Confused))

	a.Clear(tgt, status.Confused)
	assert.False(t, tgt.timed.Has(status.Confused))
	assert.True(t, sink.Contains("You feel less confused now."))
}
