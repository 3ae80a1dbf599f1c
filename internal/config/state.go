package config

import (
	"encoding/json"
	"fmt"
	"os"

	ioutils "github.com/handiism/installer-tracker/internal/io"
	"github.com/handiism/installer-tracker/internal/model"
)

// LoadState reads the persisted download state. A missing file yields an empty state.
func LoadState(path string) (model.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.State{}, nil
		}
		return nil, fmt.Errorf("read state: %w", err)
	}

	state := model.State{}
	if len(data) == 0 {
		return state, nil
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parse state %s: %w", path, err)
	}
	return state, nil
}

// SaveState writes state to path, replacing the file atomically.
func SaveState(path string, state model.State) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := ioutils.WriteFileAtomic(path, data); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}
