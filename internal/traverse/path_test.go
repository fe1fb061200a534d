package traverse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xmidoc/internal/model"
)

func TestParentMap_Persistent(t *testing.T) {
	var empty ParentMap
	base := empty.WithRoot("A")
	left := base.With("B", "A")
	right := base.With("C", "A")

	assert.Equal(t, 0, empty.Len())
	assert.Equal(t, 1, base.Len())

	_, ok := base.Parent("B")
	assert.False(t, ok, "extending must not modify the receiver")
	_, ok = right.Parent("B")
	assert.False(t, ok, "siblings do not see each other")

	p, ok := left.Parent("B")
	require.True(t, ok)
	assert.Equal(t, "A", p)
}

func TestParentMap_Shadowing(t *testing.T) {
	m := ParentMap{}.WithRoot("A").With("X", "A").With("X", "B")
	p, ok := m.Parent("X")
	require.True(t, ok)
	assert.Equal(t, "B", p)
	assert.Equal(t, 3, m.Len())
}

func TestPathToRoot(t *testing.T) {
	m := ParentMap{}.
		WithRoot("A").
		With("B", "A").
		With("C", "B").
		With("D", "A")

	tests := []struct {
		name  string
		start string
		want  []string
	}{
		{"root", "A", []string{"A"}},
		{"depth one", "B", []string{"A", "B"}},
		{"depth two", "C", []string{"A", "B", "C"}},
		{"sibling branch", "D", []string{"A", "D"}},
		{"unknown name is its own root", "Z", []string{"Z"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PathToRoot(tt.start, m)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.start, got[len(got)-1])
		})
	}
}

func TestPathToRoot_WithoutSentinel(t *testing.T) {
	m := ParentMap{}.With("B", "A").With("C", "B")
	got, err := PathToRoot("C", m)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, got)
}

func TestPathToRoot_Cycle(t *testing.T) {
	m := ParentMap{}.With("A", "B").With("B", "A")

	_, err := PathToRoot("A", m)
	require.Error(t, err)
	assert.True(t, model.IsCode(err, model.ErrParentCycle))
}

func TestPathToRoot_SelfParent(t *testing.T) {
	m := ParentMap{}.With("A", "A")

	_, err := PathToRoot("A", m)
	assert.True(t, model.IsCode(err, model.ErrParentCycle))
}

func TestPathToRoot_PackageNamedRoot(t *testing.T) {
	m := ParentMap{}.
		WithRoot("A").
		With(RootSentinel, "A").
		With("D", RootSentinel)

	got, err := PathToRoot("D", m)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", RootSentinel, "D"}, got)

	p, ok := m.Parent("A")
	require.True(t, ok)
	assert.Equal(t, RootSentinel, p)
}

func TestPathToRoot_RootShadowedByChild(t *testing.T) {
	// A nested package reusing the root's name is no longer a root.
	m := ParentMap{}.WithRoot("A").With("B", "A").With("A", "B")

	_, err := PathToRoot("A", m)
	assert.True(t, model.IsCode(err, model.ErrParentCycle))
}
