package family

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIdentify(t *testing.T) {
	r := NewRegistry()

	testCases := []struct {
		name     string
		input    string
		expected string // member id, "" for no match
	}{
		{"by_name", "Hello, this is Lakshmi", "lakshmi"},
		{"by_name_lowercase", "guna here, how is the garden?", "guna"},
		{"embedded_in_sentence", "I spoke to meena yesterday", "meena"},
		{"no_match", "turn on the lights please", ""},
		{"empty", "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := r.Identify(tc.input)
			if tc.expected == "" {
				require.Nil(t, m)
				return
			}
			require.NotNil(t, m)
			require.Equal(t, tc.expected, m.ID)
		})
	}
}

// Table order decides ties: a message naming two members resolves to the
// earlier-defined one.
func TestIdentifyTableOrderWins(t *testing.T) {
	r := NewRegistryWithMembers([]*Member{
		{ID: "lakshmi", Name: "Lakshmi"},
		{ID: "guna", Name: "Guna"},
	})

	m := r.Identify("tell guna that lakshmi called")
	require.NotNil(t, m)
	require.Equal(t, "lakshmi", m.ID)

	// Reversed table, reversed outcome.
	r = NewRegistryWithMembers([]*Member{
		{ID: "guna", Name: "Guna"},
		{ID: "lakshmi", Name: "Lakshmi"},
	})
	m = r.Identify("tell guna that lakshmi called")
	require.NotNil(t, m)
	require.Equal(t, "guna", m.ID)
}

func TestGet(t *testing.T) {
	r := NewRegistry()
	require.NotNil(t, r.Get("raman"))
	require.Nil(t, r.Get("stranger"))
	require.Len(t, r.Names(), len(r.Members()))
}
