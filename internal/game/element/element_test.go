package element_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/deepdelve/internal/game/element"
)

func TestParse_RoundTripsNames(t *testing.T) {
	for _, e := range element.All() {
		got, err := element.Parse(e.String())
		require.NoError(t, err)
		assert.Equal(t, e, got)
	}
	_, err := element.Parse("mana")
	assert.Error(t, err)
}

func TestSet_Membership(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		all := element.All()
		picked := rapid.SliceOfDistinct(rapid.SampledFrom(all), func(e element.Element) element.Element { return e }).Draw(rt, "picked")
		s := element.Of(picked...)
		assert.Len(rt, s.Elements(), len(picked))
		for _, e := range picked {
			assert.True(rt, s.Has(e))
		}
	})
}

func TestSet_UnmarshalYAML(t *testing.T) {
	var v struct {
		Immune element.Set `yaml:"immune"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("immune: [fire, poison]\n"), &v))
	assert.True(t, v.Immune.Has(element.Fire))
	assert.True(t, v.Immune.Has(element.Poison))
	assert.False(t, v.Immune.Has(element.Cold))
	assert.Equal(t, "fire,poison", v.Immune.String())

	assert.Error(t, yaml.Unmarshal([]byte("immune: [lava]\n"), &v))
}
