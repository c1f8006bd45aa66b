package types

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
)

func readJSON(path string, v interface{}) error {
	jsonFile, err := os.Open(path)
	if err != nil {
		return err
	}

	defer jsonFile.Close()
	rawBytes, err := io.ReadAll(jsonFile)
	if err != nil {
		return errors.Wrapf(err, "read %s", path)
	}

	return errors.Wrapf(json.Unmarshal(rawBytes, v), "decode %s", path)
}

func ReadPublicInput(path string) (*PublicInput, error) {
	rawBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParsePublicInput(rawBytes)
}

func ReadPrivateInput(path string) (*AirPrivateInputSerializable, error) {
	var raw AirPrivateInputSerializable
	if err := readJSON(path, &raw); err != nil {
		return nil, err
	}
	return &raw, nil
}

func ReadProverParameters(path string) (*ProverParameters, error) {
	var raw ProverParameters
	if err := readJSON(path, &raw); err != nil {
		return nil, err
	}
	return &raw, nil
}

func ReadProverConfig(path string) (*ProverConfig, error) {
	var raw ProverConfig
	if err := readJSON(path, &raw); err != nil {
		return nil, err
	}
	return &raw, nil
}

func ReadProof(path string) (*Proof, error) {
	var raw Proof
	if err := readJSON(path, &raw); err != nil {
		return nil, err
	}
	return &raw, nil
}

// WriteJSON writes v to path, replacing any existing file.
func WriteJSON(path string, v interface{}) error {
	jsonString, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "failed to marshal output")
	}
	if err := os.WriteFile(path, jsonString, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}
