// Package loader reads molecule, reaction and batch fixtures from YAML or
// JSON files into their transfer objects.
package loader

import (
	"bytes"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/turtacn/keyip-mcs/pkg/errors"
	mtypes "github.com/turtacn/keyip-mcs/pkg/types/molecule"
)

// Decode reads one YAML or JSON document from r into out.  Unknown fields
// are rejected so that typos in fixtures surface early.
func Decode(r io.Reader, out any) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if err == io.EOF {
			return errors.New(errors.ErrCodeMoleculeParsingFailed, "empty document")
		}
		return errors.Wrap(err, errors.ErrCodeMoleculeParsingFailed, "cannot decode document")
	}
	return nil
}

// ReadFile decodes the file at path into out.
func ReadFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.New(errors.ErrCodeNotFound, "fixture file not found").WithDetail(path)
		}
		return errors.Wrap(err, errors.ErrCodeInternal, "cannot read fixture file").WithDetail(path)
	}
	if err := Decode(bytes.NewReader(data), out); err != nil {
		return errors.Wrap(err, errors.CodeUnknown, "cannot load fixture").WithDetail(path)
	}
	return nil
}

// ReadMolecule loads and validates a molecule file.
func ReadMolecule(path string) (*mtypes.MoleculeDTO, error) {
	var dto mtypes.MoleculeDTO
	if err := ReadFile(path, &dto); err != nil {
		return nil, err
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	return &dto, nil
}

// ReadReaction loads and validates a reaction file.
func ReadReaction(path string) (*mtypes.ReactionDTO, error) {
	var dto mtypes.ReactionDTO
	if err := ReadFile(path, &dto); err != nil {
		return nil, err
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	return &dto, nil
}

// ReadBatch loads a batch file.  Molecules are validated when the batch is
// run.
func ReadBatch(path string) (*mtypes.BatchDTO, error) {
	var dto mtypes.BatchDTO
	if err := ReadFile(path, &dto); err != nil {
		return nil, err
	}
	return &dto, nil
}

//Personal.AI order the ending
