package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validIdea() ReelIdea {
	return ReelIdea{
		Idea:         "5 cooking hacks you need to know",
		Hooks:        StringList{"one", "two", "three"},
		CaptionShort: "short",
		CaptionLong:  "long",
		Hashtags:     StringList{"#cooking"},
	}
}

func TestValidate_OK(t *testing.T) {
	assert.NoError(t, Validate(validIdea()))
}

func TestValidate_ReportsJSONFieldNames(t *testing.T) {
	idea := validIdea()
	idea.CaptionShort = ""
	idea.Hooks = nil

	err := Validate(idea)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "hooks is required")
	assert.Contains(t, err.Error(), "caption_short is required")
}

func TestValidate_EmptyList(t *testing.T) {
	idea := validIdea()
	idea.Hashtags = StringList{}

	err := Validate(idea)

	assert.ErrorIs(t, err, ErrValidation)
	assert.EqualError(t, err, "validation failure: hashtags must contain at least 1 item(s)")
}

func TestStringList_Value(t *testing.T) {
	v, err := StringList{"a", "b"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["a","b"]`, v)

	v, err = StringList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func TestStringList_Scan(t *testing.T) {
	tests := []struct {
		name string
		src  any
		want StringList
	}{
		{"bytes", []byte(`["#a","#b"]`), StringList{"#a", "#b"}},
		{"string", `["x"]`, StringList{"x"}},
		{"nil", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l StringList
			require.NoError(t, l.Scan(tt.src))
			assert.Equal(t, tt.want, l)
		})
	}
}

func TestStringList_ScanErrors(t *testing.T) {
	var l StringList

	assert.Error(t, l.Scan(42))
	assert.Error(t, l.Scan(`{"not":"a list"}`))
}

func TestGenerationError(t *testing.T) {
	cause := errors.New("response is not a valid list of ideas")

	err := error(&GenerationError{Raw: "{}", Err: cause})
	assert.Equal(t, "response is not a valid list of ideas\nResponse was: {}", err.Error())
	assert.ErrorIs(t, err, ErrUpstream)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrValidation)

	err = &GenerationError{Err: cause}
	assert.Equal(t, cause.Error(), err.Error())
}
