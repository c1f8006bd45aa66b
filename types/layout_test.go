package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLayoutRoundTrip(t *testing.T) {
	require.Len(t, Layouts(), 9)
	for _, layout := range Layouts() {
		parsed, err := ParseLayout(layout.String())
		require.NoError(t, err)
		require.Equal(t, layout, parsed)

		raw, err := json.Marshal(layout)
		require.NoError(t, err)
		require.Equal(t, `"`+layout.String()+`"`, string(raw))

		var decoded Layout
		require.NoError(t, json.Unmarshal(raw, &decoded))
		require.Equal(t, layout, decoded)
	}
}

func TestParseLayoutRejectsAliases(t *testing.T) {
	for _, s := range []string{"", "Plain", "starknet_with", "all-cairo", "starknet_with_keccak "} {
		_, err := ParseLayout(s)
		require.ErrorIs(t, err, ErrUnknownLayout, "%q", s)
	}

	var layout Layout
	require.Error(t, json.Unmarshal([]byte(`3`), &layout))

	_, err := json.Marshal(Layout(42))
	require.Error(t, err)
}

func TestParseVerifier(t *testing.T) {
	verifier, err := ParseVerifier("stone")
	require.NoError(t, err)
	require.Equal(t, VerifierStone, verifier)

	verifier, err = ParseVerifier("l1")
	require.NoError(t, err)
	require.Equal(t, VerifierL1, verifier)
	require.Equal(t, "l1", verifier.String())

	for _, s := range []string{"L1", "Stone", "", "starknet"} {
		_, err := ParseVerifier(s)
		require.ErrorIs(t, err, ErrUnknownVerifier, "%q", s)
	}
}

func TestVerifierText(t *testing.T) {
	var holder struct {
		Verifier Verifier `json:"verifier"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"verifier":"l1"}`), &holder))
	require.Equal(t, VerifierL1, holder.Verifier)

	raw, err := json.Marshal(holder)
	require.NoError(t, err)
	require.JSONEq(t, `{"verifier":"l1"}`, string(raw))

	require.Error(t, json.Unmarshal([]byte(`{"verifier":"L1"}`), &holder))
}
