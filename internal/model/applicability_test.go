package model

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestApplicabilityStates(t *testing.T) {
	t.Run("zero value is not analyzed", func(t *testing.T) {
		var a Applicability

		assert.Equal(t, NotAnalyzed, a.State())
		assert.True(t, a.IsZero())
		assert.Empty(t, a.Variants())
		assert.False(t, a.Contains("linux"))
	})

	t.Run("all variants contains every label", func(t *testing.T) {
		a := AllVariants()

		assert.Equal(t, AppliesToAll, a.State())
		assert.False(t, a.IsZero())
		assert.Empty(t, a.Variants())
		assert.True(t, a.Contains("linux"))
		assert.True(t, a.Contains("anything"))
	})

	t.Run("some variants keeps order and deduplicates", func(t *testing.T) {
		a := SomeVariants("net10", "net8", "net10")

		assert.Equal(t, AppliesToSome, a.State())
		assert.Equal(t, []string{"net10", "net8"}, a.Variants())
		assert.True(t, a.Contains("net8"))
		assert.False(t, a.Contains("net6"))
	})

	t.Run("some variants with no labels degrades to all", func(t *testing.T) {
		a := SomeVariants()

		assert.Equal(t, AppliesToAll, a.State())
	})

	t.Run("variants returns a copy", func(t *testing.T) {
		a := SomeVariants("x", "y")

		labels := a.Variants()
		labels[0] = "mutated"

		assert.Equal(t, []string{"x", "y"}, a.Variants())
	})
}

func TestApplicabilityEqual(t *testing.T) {
	assert.True(t, AllVariants().Equal(AllVariants()))
	assert.True(t, SomeVariants("a", "b").Equal(SomeVariants("a", "b")))
	assert.False(t, SomeVariants("a", "b").Equal(SomeVariants("b", "a")))
	assert.False(t, AllVariants().Equal(Applicability{}))
	assert.False(t, SomeVariants("a").Equal(AllVariants()))
}

func TestApplicabilityJSONRoundTrip(t *testing.T) {
	t.Run("not analyzed omits the field", func(t *testing.T) {
		data, err := json.Marshal(Change{Type: Added, Kind: KindFunction})
		require.NoError(t, err)
		assert.NotContains(t, string(data), "applicable_to_variants")

		var decoded Change
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, NotAnalyzed, decoded.AppliesTo.State())
	})

	t.Run("all variants encodes as empty list", func(t *testing.T) {
		c := Change{Type: Added, Kind: KindFunction, AppliesTo: AllVariants()}

		data, err := json.Marshal(c)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"applicable_to_variants":[]`)

		var decoded Change
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, AppliesToAll, decoded.AppliesTo.State())
	})

	t.Run("some variants encodes the label list", func(t *testing.T) {
		c := Change{Type: Added, Kind: KindFunction, AppliesTo: SomeVariants("net8", "net10")}

		data, err := json.Marshal(c)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"applicable_to_variants":["net8","net10"]`)

		var decoded Change
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, AppliesToSome, decoded.AppliesTo.State())
		assert.Equal(t, []string{"net8", "net10"}, decoded.AppliesTo.Variants())
	})

	t.Run("rejects non-list values", func(t *testing.T) {
		var a Applicability
		assert.Error(t, json.Unmarshal([]byte(`"net8"`), &a))
	})
}

func TestApplicabilityYAMLRoundTrip(t *testing.T) {
	for _, a := range []Applicability{{}, AllVariants(), SomeVariants("net8"), SomeVariants("a", "b", "c")} {
		data, err := yaml.Marshal(Change{Type: Modified, Kind: KindMethod, AppliesTo: a})
		require.NoError(t, err)

		var decoded Change
		require.NoError(t, yaml.Unmarshal(data, &decoded))
		assert.True(t, a.Equal(decoded.AppliesTo), "round trip of %v yielded %v", a, decoded.AppliesTo)
	}
}

func TestApplicabilityGobRoundTrip(t *testing.T) {
	for _, a := range []Applicability{{}, AllVariants(), SomeVariants("fast", "slow")} {
		var buf bytes.Buffer

		require.NoError(t, gob.NewEncoder(&buf).Encode(a))

		var decoded Applicability
		require.NoError(t, gob.NewDecoder(&buf).Decode(&decoded))
		assert.True(t, a.Equal(decoded))
	}
}

func TestChangeName(t *testing.T) {
	c := Change{OldName: "Area", NewName: "RectArea"}
	assert.Equal(t, "RectArea", c.Name())

	c = Change{OldName: "Area"}
	assert.Equal(t, "Area", c.Name())
}
