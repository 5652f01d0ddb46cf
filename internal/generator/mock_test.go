package generator

import (
	"context"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMock_TenIdeasShape(t *testing.T) {
	m := NewMock(rand.New(rand.NewPCG(1, 2)), 5)

	for _, niche := range []string{"fitness", "Home Cooking", "DIY  crafts", "b"} {
		ideas := m.Ideas(niche, 10)
		require.Len(t, ideas, 10, niche)

		for _, idea := range ideas {
			assert.Len(t, idea.Hooks, 3)
			assert.Len(t, idea.Hashtags, 5)
			for i, tag := range idea.Hashtags {
				assert.Equal(t, strings.ToLower(tag), tag)
				assert.NotContains(t, tag, " ")
				assert.Equal(t, i < 3, strings.HasPrefix(tag, "#"), tag)
			}
		}
	}
}

func TestMock_ClampsCount(t *testing.T) {
	m := NewMock(nil, 5)

	tests := []struct {
		count int
		want  int
	}{
		{count: -3, want: 1},
		{count: 0, want: 1},
		{count: 1, want: 1},
		{count: 7, want: 7},
		{count: 10, want: 10},
		{count: 15, want: 10},
	}

	for _, tt := range tests {
		assert.Len(t, m.Ideas("travel", tt.count), tt.want, "count=%d", tt.count)
	}
}

func TestMock_IdeaTypesCycle(t *testing.T) {
	m := NewMock(rand.New(rand.NewPCG(7, 7)), 5)

	ideas := m.Ideas("yoga", 10)

	for i, idea := range ideas {
		ideaType := ideaTypes[i]
		assert.Contains(t, idea.Idea, "yoga "+ideaType+" you need to know")
		assert.Equal(t, "Master yoga with these "+ideaType+"!", idea.CaptionShort)
		assert.Contains(t, idea.Hashtags, "#yoga"+ideaType)
	}
}

func TestMock_IdeaSizeInRange(t *testing.T) {
	m := NewMock(rand.New(rand.NewPCG(3, 4)), 5)

	for _, idea := range m.Ideas("coffee", 10) {
		n := idea.Idea[0]
		assert.GreaterOrEqual(t, n, byte('3'))
		assert.LessOrEqual(t, n, byte('7'))
	}
}

func TestMock_HooksAreDistinct(t *testing.T) {
	m := NewMock(rand.New(rand.NewPCG(9, 1)), 5)

	for _, idea := range m.Ideas("gaming", 10) {
		seen := map[string]bool{}
		for _, hook := range idea.Hooks {
			assert.False(t, seen[hook], "duplicate hook %q", hook)
			seen[hook] = true
		}
	}
}

func TestMock_Hashtags(t *testing.T) {
	assert.Equal(t, []string{
		"#homefitness",
		"#homefitnesstips",
		"#homefitnessideas",
		"contentcreation",
		"socialmediamarketing",
	}, hashtags("Home Fitness", "tips"))
}

func TestMock_CaptionLong(t *testing.T) {
	m := NewMock(rand.New(rand.NewPCG(1, 1)), 5)

	idea := m.Ideas("street food", 1)[0]

	assert.True(t, strings.HasSuffix(idea.CaptionLong, "#LearnStreetfood #BestTips"), idea.CaptionLong)
}

func TestMock_GenerateUsesConfiguredCount(t *testing.T) {
	m := NewMock(nil, 5)

	ideas, err := m.Generate(context.Background(), "pets")

	require.NoError(t, err)
	assert.Len(t, ideas, 5)
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "", capitalize(""))
	assert.Equal(t, "Fitness", capitalize("fITNESS"))
	assert.Equal(t, "Éclair", capitalize("éclair"))
}
