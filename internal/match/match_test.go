package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "Sign In", "sign in"},
		{"strips ascii quotes", `Let's "Start"`, "lets start"},
		{"strips smart quotes", "Let’s Go", "lets go"},
		{"punctuation becomes space", "save&exit", "save exit"},
		{"collapses whitespace", "  a \t b\n\nc ", "a b c"},
		{"keeps underscores", "btn_submit", "btn_submit"},
		{"empty", "", ""},
		{"only punctuation", "!?.", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"removes separators", "my-id_name", "myidname"},
		{"removes spaces", "my id name", "myidname"},
		{"removes quotes", "user's-input", "usersinput"},
		{"keeps dots", "form.login", "form.login"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeID(tt.in))
		})
	}
}

func TestSimilarityIdentity(t *testing.T) {
	for _, s := range []string{"a", "Sign In", "Let's Start", "submit-order-42"} {
		assert.Equal(t, 1.0, Similarity(s, s), s)
	}
}

func TestSimilaritySymmetry(t *testing.T) {
	pairs := [][2]string{
		{"Submit Order", "Submit Form"},
		{"Sign In", "sign-in button"},
		{"email", "Enter your email address"},
	}

	for _, p := range pairs {
		assert.Equal(t, Similarity(p[0], p[1]), Similarity(p[1], p[0]))
	}
}

func TestSimilarityEmpty(t *testing.T) {
	assert.Equal(t, 0.0, Similarity("", ""))
	assert.Equal(t, 0.0, Similarity("", "anything"))
	assert.Equal(t, 0.0, Similarity("anything", ""))
}

func TestSimilarityRange(t *testing.T) {
	sim := Similarity("Submit", "Submit Order")
	require.Greater(t, sim, 0.0)
	require.Less(t, sim, 1.0)

	// closer text scores higher
	assert.Greater(t, Similarity("Submit Order", "Submit Order!"), Similarity("Submit Order", "Cancel"))
}

func TestSimilarityIgnoresCaseAndQuotes(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("LET'S START", "lets start"))
}

func TestIDSimilaritySeparatorInsensitive(t *testing.T) {
	assert.Equal(t, 1.0, IDSimilarity("my-id_name", "my id name"))
	assert.Equal(t, 1.0, IDSimilarity("login-btn", "LoginBtn"))
}

func TestIDSimilarityEmpty(t *testing.T) {
	assert.Equal(t, 0.0, IDSimilarity("", "login"))
	assert.Equal(t, 0.0, IDSimilarity("login", ""))
}

func TestRatioKnownValue(t *testing.T) {
	// 2*M/T with M=3 ("abc"), T=7
	assert.InDelta(t, 6.0/7.0, ratio("abcd", "abc"), 1e-9)
}
