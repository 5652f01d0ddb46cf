package generator

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"unicode"
	"unicode/utf8"

	"reel_planner/internal/domain"
)

const (
	MinMockIdeas = 1
	MaxMockIdeas = 10
)

var ideaTypes = []string{
	"tips", "tricks", "hacks", "strategies", "secrets",
	"trends", "ideas", "methods", "techniques", "insights",
}

// Rand is the randomness the mock generator needs. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Perm(n int) []int
}

type globalRand struct{}

func (globalRand) IntN(n int) int    { return rand.IntN(n) }
func (globalRand) Perm(n int) []int { return rand.Perm(n) }

// Mock builds ideas from fixed templates without calling any provider.
type Mock struct {
	rnd   Rand
	count int
}

// NewMock returns a mock generator producing count ideas per Generate call.
// A nil rnd uses the package-level math/rand/v2 source.
func NewMock(rnd Rand, count int) *Mock {
	if rnd == nil {
		rnd = globalRand{}
	}
	return &Mock{rnd: rnd, count: count}
}

func (m *Mock) Generate(_ context.Context, niche string) ([]domain.ReelIdea, error) {
	return m.Ideas(niche, m.count), nil
}

// Ideas returns count ideas for niche. count is clamped to
// [MinMockIdeas, MaxMockIdeas].
func (m *Mock) Ideas(niche string, count int) []domain.ReelIdea {
	count = min(max(MinMockIdeas, count), MaxMockIdeas)

	ideas := make([]domain.ReelIdea, count)
	for i := range ideas {
		ideas[i] = m.idea(niche, i)
	}
	return ideas
}

func (m *Mock) idea(niche string, index int) domain.ReelIdea {
	ideaType := ideaTypes[index%len(ideaTypes)]

	return domain.ReelIdea{
		Idea:         fmt.Sprintf("%d %s %s you need to know", m.listSize(), niche, ideaType),
		Hooks:        m.hooks(niche, ideaType),
		CaptionShort: fmt.Sprintf("Master %s with these %s!", niche, ideaType),
		CaptionLong: fmt.Sprintf(
			"Here are some amazing %s %s that will help you improve your %s game. "+
				"Save this post for later reference! #Learn%s #Best%s",
			niche, ideaType, niche, stripSpaces(capitalize(niche)), capitalize(ideaType),
		),
		Hashtags: hashtags(niche, ideaType),
	}
}

// listSize is the "N" in "N tips you need to know".
func (m *Mock) listSize() int {
	return 3 + m.rnd.IntN(5)
}

func (m *Mock) hooks(niche, ideaType string) []string {
	templates := []string{
		fmt.Sprintf("Struggling with %s? Here's what you need to know!", niche),
		fmt.Sprintf("3 %s %s that changed everything for me", niche, ideaType),
		fmt.Sprintf("The %s mistakes everyone makes (and how to fix them)", niche),
		fmt.Sprintf("These %s %s are taking over!", niche, ideaType),
		fmt.Sprintf("Up your %s game with these %s", niche, ideaType),
		fmt.Sprintf("Don't fall behind on these %s %s", niche, ideaType),
		fmt.Sprintf("How I grew my %s using these %s", niche, ideaType),
		fmt.Sprintf("Top %d %s %s you need to try", m.listSize(), niche, ideaType),
		fmt.Sprintf("%s %s that actually work", capitalize(niche), ideaType),
		fmt.Sprintf("Stop doing %s wrong - try these %s instead", niche, ideaType),
	}

	picked := m.rnd.Perm(len(templates))[:3]
	hooks := make([]string, len(picked))
	for i, idx := range picked {
		hooks[i] = templates[idx]
	}
	return hooks
}

func hashtags(niche, ideaType string) []string {
	tags := []string{
		"#" + niche,
		"#" + niche + ideaType,
		"#" + niche + "ideas",
	}
	for i, tag := range tags {
		tags[i] = strings.ToLower(stripSpaces(tag))
	}
	return append(tags, "contentcreation", "socialmediamarketing")
}

func stripSpaces(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
