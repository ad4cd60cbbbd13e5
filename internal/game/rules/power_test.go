package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/deepdelve/internal/config"
	"github.com/cory-johannsen/deepdelve/internal/game/rules"
	"github.com/cory-johannsen/deepdelve/internal/game/save"
	"github.com/cory-johannsen/deepdelve/internal/game/virtue"
)

const charmExpr = `power + virtues["harmony"] / 10 - virtues["individualism"] / 20`

func virtues(harmony, individualism int) map[string]int {
	s := virtue.NewSet(virtue.Harmony, virtue.Individualism)
	s.Set(virtue.Harmony, harmony)
	s.Set(virtue.Individualism, individualism)
	return s.Values()
}

func TestAdjust_Charm(t *testing.T) {
	a, err := rules.NewPowerAdjuster(map[string]string{"charm": charmExpr, "fear": ""})
	require.NoError(t, err)
	got, err := a.Adjust(save.Charm, rules.Input{Power: 40, Virtues: virtues(50, 40)})
	require.NoError(t, err)
	assert.Equal(t, 43, got)
	assert.Equal(t, charmExpr, a.Expression(save.Charm))
	assert.Empty(t, a.Expression(save.Fear))
}

func TestAdjust_UnboundKindIsIdentity(t *testing.T) {
	a, err := rules.NewPowerAdjuster(map[string]string{"charm": charmExpr})
	require.NoError(t, err)
	rapid.Check(t, func(rt *rapid.T) {
		p := rapid.IntRange(-1000, 1000).Draw(rt, "power")
		got, err := a.Adjust(save.Confusion, rules.Input{Power: p})
		require.NoError(rt, err)
		assert.Equal(rt, p, got)
	})
	var none *rules.PowerAdjuster
	got, err := none.Adjust(save.Charm, rules.Input{Power: 7})
	require.NoError(t, err)
	assert.Equal(t, 7, got)
}

func TestAdjust_UsesLevels(t *testing.T) {
	a, err := rules.NewPowerAdjuster(map[string]string{"confusion": "power + (level - target_level) / 5"})
	require.NoError(t, err)
	got, err := a.Adjust(save.Confusion, rules.Input{Power: 10, Level: 30, TargetLevel: 10})
	require.NoError(t, err)
	assert.Equal(t, 14, got)
}

func TestNewPowerAdjuster_Rejects(t *testing.T) {
	_, err := rules.NewPowerAdjuster(map[string]string{"charm": "power +"})
	assert.Error(t, err)
	_, err = rules.NewPowerAdjuster(map[string]string{"charm": `"strong"`})
	assert.Error(t, err)
	_, err = rules.NewPowerAdjuster(map[string]string{"telepathy": "power"})
	assert.Error(t, err)
	_, err = rules.NewPowerAdjuster(map[string]string{"charm": "mana * 2"})
	assert.Error(t, err)
}

func TestAdjust_MissingVirtueKeyErrors(t *testing.T) {
	a, err := rules.NewPowerAdjuster(map[string]string{"charm": charmExpr})
	require.NoError(t, err)
	got, err := a.Adjust(save.Charm, rules.Input{Power: 12, Virtues: map[string]int{}})
	assert.Error(t, err)
	assert.Equal(t, 12, got)
}

func TestDevConfig_CharmFollowsVirtues(t *testing.T) {
	cfg, err := config.Load("../../../configs/dev.yaml")
	require.NoError(t, err)
	a, err := rules.NewPowerAdjuster(cfg.Rules.PowerAdjust.Expressions())
	require.NoError(t, err)

	base, err := a.Adjust(save.Charm, rules.Input{Power: 50, Virtues: virtues(0, 0)})
	require.NoError(t, err)
	assert.Equal(t, 50, base)

	harmonious, err := a.Adjust(save.Charm, rules.Input{Power: 50, Virtues: virtues(100, 0)})
	require.NoError(t, err)
	assert.Equal(t, 60, harmonious)

	stubborn, err := a.Adjust(save.Charm, rules.Input{Power: 50, Virtues: virtues(0, 100)})
	require.NoError(t, err)
	assert.Equal(t, 45, stubborn)
}

func TestDefaultCharmRule_MatchesDefaults(t *testing.T) {
	cfg, err := config.LoadFromViper(config.Defaults())
	require.NoError(t, err)
	a, err := rules.NewPowerAdjuster(cfg.Rules.PowerAdjust.Expressions())
	require.NoError(t, err)
	got, err := a.Adjust(save.Charm, rules.Input{Power: 40, Virtues: virtues(50, 40)})
	require.NoError(t, err)
	assert.Equal(t, 43, got)
}
