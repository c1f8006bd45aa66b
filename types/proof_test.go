package types

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadProof(t *testing.T) {
	proof, err := ReadProof("../testdata/fibonacci/proof.json")
	require.NoError(t, err)

	require.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef, 0x00}, proof.ProofBytes())
	require.Equal(t, []uint32{4, 4, 4, 1}, proof.ProofParameters.Stark.Fri.FriStepList)
	require.Equal(t, DefaultProverConfig(), proof.ProverConfig)
	require.Equal(t, uint32(32768), proof.PublicInput.NSteps)
	require.Equal(t, "trace.bin", proof.PrivateInput.TracePath)
	require.Nil(t, proof.SplitProofs)
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prover_config.json")
	require.NoError(t, WriteJSON(path, DefaultProverConfig()))

	config, err := ReadProverConfig(path)
	require.NoError(t, err)
	require.Equal(t, DefaultProverConfig(), *config)

	_, err = ReadProverConfig(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
