package mmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/constant"
)

func TestLabelUpdateResolveReplace(t *testing.T) {
	current := Labels{"a": "1", "b": "2"}

	got, err := LabelUpdate{ReplaceLabels: Labels{"c": "3"}}.Resolve(current)

	require.NoError(t, err)
	assert.Equal(t, Labels{"c": "3"}, got)
}

func TestLabelUpdateResolveMergeSuppliedWins(t *testing.T) {
	current := Labels{"c": "3"}

	got, err := LabelUpdate{MergeLabels: Labels{"d": "4", "c": "30"}}.Resolve(current)

	require.NoError(t, err)
	assert.Equal(t, Labels{"c": "30", "d": "4"}, got)
	assert.Equal(t, Labels{"c": "3"}, current, "merge must not mutate the existing map")
}

func TestLabelUpdateResolveNeitherKeepsCurrent(t *testing.T) {
	current := Labels{"a": "1"}

	got, err := LabelUpdate{}.Resolve(current)

	require.NoError(t, err)
	assert.Equal(t, current, got)
}

func TestLabelUpdateResolveRejectsBothStrategies(t *testing.T) {
	_, err := LabelUpdate{
		ReplaceLabels: Labels{"a": "1"},
		MergeLabels:   Labels{"b": "2"},
	}.Resolve(nil)

	require.ErrorIs(t, err, constant.ErrBothLabelStrategies)
}

func TestLabelsMatches(t *testing.T) {
	labels := Labels{"env": "prod", "team": "ml"}

	assert.True(t, labels.Matches(nil))
	assert.True(t, labels.Matches(Labels{"env": "prod"}))
	assert.True(t, labels.Matches(Labels{"env": "prod", "team": "ml"}))
	assert.False(t, labels.Matches(Labels{"env": "dev"}))
	assert.False(t, labels.Matches(Labels{"region": "eu"}))
}
