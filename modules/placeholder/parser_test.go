package placeholder

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseComponentLiteralAndStar(t *testing.T) {
	c, err := ParseComponent("file*.txt")
	require.NoError(t, err)
	require.Len(t, c.Parts, 3)
	require.IsType(t, Literal{}, c.Parts[0])
	require.IsType(t, Star{}, c.Parts[1])
	require.IsType(t, Literal{}, c.Parts[2])
}

func TestParseComponentBareCapture(t *testing.T) {
	c, err := ParseComponent("{year}")
	require.NoError(t, err)
	require.Len(t, c.Parts, 1)
	ph := c.Parts[0].(Placeholder)
	cap := ph.Body.(Capture)
	require.Equal(t, "year", cap.Name)
	require.Nil(t, cap.Limiter)
}

func TestParseComponentCaptureWithLimiter(t *testing.T) {
	c, err := ParseComponent("{year:int(4)}")
	require.NoError(t, err)
	cap := c.Parts[0].(Placeholder).Body.(Capture)
	require.Equal(t, "year", cap.Name)
	require.NotNil(t, cap.Limiter)
	require.Equal(t, "int", cap.Limiter.Name)
	require.Equal(t, []Arg{{Kind: ArgNumber, Text: "4"}}, cap.Limiter.Args)
}

func TestParseComponentNamedOneOf(t *testing.T) {
	c, err := ParseComponent("{ext:mp4|mkv}")
	require.NoError(t, err)
	oo := c.Parts[0].(Placeholder).Body.(OneOf)
	require.NotNil(t, oo.Name)
	require.Equal(t, "ext", *oo.Name)
	require.Len(t, oo.Choices, 2)
	require.Equal(t, "mp4", oo.Choices[0].Value)
	require.Equal(t, "mkv", oo.Choices[1].Value)
}

func TestParseComponentUnnamedOneOf(t *testing.T) {
	c, err := ParseComponent("{jpg|png}")
	require.NoError(t, err)
	oo := c.Parts[0].(Placeholder).Body.(OneOf)
	require.Nil(t, oo.Name)
	require.Len(t, oo.Choices, 2)
}

func TestParseComponentAnonymousOneOf(t *testing.T) {
	c, err := ParseComponent("{:a|b}")
	require.NoError(t, err)
	oo := c.Parts[0].(Placeholder).Body.(OneOf)
	require.Nil(t, oo.Name)
	require.Len(t, oo.Choices, 2)
}

func TestParseComponentAnonymousLimiterCapture(t *testing.T) {
	c, err := ParseComponent("{:int(4)}")
	require.NoError(t, err)
	cap := c.Parts[0].(Placeholder).Body.(Capture)
	require.Equal(t, "", cap.Name)
	require.Equal(t, "int", cap.Limiter.Name)
}

func TestParseComponentQuotedLiteral(t *testing.T) {
	c, err := ParseComponent(`"he said ""hi"""`)
	require.NoError(t, err)
	lit := c.Parts[0].(Literal)
	require.Equal(t, `he said "hi"`, lit.Value)
}

func TestParseComponentErrors(t *testing.T) {
	cases := []struct {
		name string
		in   string
		kind ParseErrorKind
	}{
		{"empty placeholder", "{}", EmptyPlaceholder},
		{"unmatched rbrace", "a}b", TokenizeFailed},
		{"empty one-of arm", "{a|}", EmptyOneOfArm},
		{"unterminated quote", `"abc`, TokenizeFailed},
		{"quoted capture name", `{"name"}`, UnexpectedToken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseComponent(tc.in)
			require.Error(t, err)
			pe, ok := err.(*ParseError)
			require.True(t, ok)
			require.Equal(t, tc.kind, pe.Kind)
		})
	}
}
