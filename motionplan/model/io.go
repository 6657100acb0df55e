package model

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"github.com/yosuke-furukawa/json5/encoding/json5"
)

// Unmarshal decodes a JSON5 document into v. Plain JSON is valid JSON5.
func Unmarshal(data []byte, v interface{}) error {
	return json5.Unmarshal(data, v)
}

// Marshal encodes v as indented JSON.
func Marshal(v interface{}) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// ReadFile decodes the JSON5 file at path into v.
func ReadFile(path string, v interface{}) error {
	//nolint:gosec
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := Unmarshal(data, v); err != nil {
		return errors.Wrapf(err, "cannot parse %q", path)
	}
	return nil
}

// WriteFile writes v to path as indented JSON.
func WriteFile(path string, v interface{}) error {
	data, err := Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o600)
}
