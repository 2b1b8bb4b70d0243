// ABOUTME: Tests for key-combination descriptor parsing
// ABOUTME: Covers modifier aliases, casing, and malformed descriptors

package hotkey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCombo(t *testing.T) {
	cases := []struct {
		in   string
		want Combo
	}{
		{"ctrl+shift+v", Combo{Ctrl: true, Shift: true, Key: 'v'}},
		{"Ctrl+Shift+V", Combo{Ctrl: true, Shift: true, Key: 'v'}},
		{"alt+3", Combo{Alt: true, Key: '3'}},
		{"option+p", Combo{Alt: true, Key: 'p'}},
		{"cmd+c", Combo{Meta: true, Key: 'c'}},
		{"super+shift+x", Combo{Meta: true, Shift: true, Key: 'x'}},
		{"control+h", Combo{Ctrl: true, Key: 'h'}},
		{" ctrl + v ", Combo{Ctrl: true, Key: 'v'}},
	}
	for _, tc := range cases {
		got, err := ParseCombo(tc.in)
		require.NoError(t, err, "combo %q", tc.in)
		assert.Equal(t, tc.want, got, "combo %q", tc.in)
	}
}

func TestParseCombo_Invalid(t *testing.T) {
	cases := []string{
		"",
		"v",            // no modifier
		"ctrl",         // no key
		"ctrl+shift",   // no key
		"ctrl+v+x",     // two keys
		"ctrl+escape",  // unsupported key
		"hyper+v",      // unknown modifier is treated as a key and rejected
		"ctrl+é",  // non-ASCII key
	}
	for _, in := range cases {
		_, err := ParseCombo(in)
		assert.Error(t, err, "combo %q", in)
	}
}

func TestCombo_String(t *testing.T) {
	c := Combo{Ctrl: true, Shift: true, Key: 'v'}
	assert.Equal(t, "ctrl+shift+v", c.String())

	c2, err := ParseCombo("cmd+alt+k")
	require.NoError(t, err)
	assert.Equal(t, "alt+meta+k", c2.String())
}
