package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const tuiStateFileName = "tui_state.json"

// TUIState stores small, user-facing UI state for restoring the last selection on relaunch.
//
// It lives next to the task store, so it is naturally scoped per store.
// It is "best effort": callers tolerate missing/invalid data.
type TUIState struct {
	Version int `json:"version"`

	// SelectedTaskID is the id of the highlighted task when the TUI last exited.
	SelectedTaskID *int `json:"selectedTaskId,omitempty"`
}

// TUIStatePath returns the state file that belongs to the store at storePath.
func TUIStatePath(storePath string) string {
	return filepath.Join(filepath.Dir(storePath), tuiStateFileName)
}

func LoadTUIState(path string) (*TUIState, error) {
	if strings.TrimSpace(path) == "" {
		return &TUIState{Version: 1}, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &TUIState{Version: 1}, nil
		}
		return nil, err
	}
	var st TUIState
	if err := json.Unmarshal(b, &st); err != nil {
		// Corrupted state is treated as missing.
		return &TUIState{Version: 1}, nil
	}
	if st.Version == 0 {
		st.Version = 1
	}
	return &st, nil
}

func SaveTUIState(path string, st *TUIState) error {
	if st == nil || strings.TrimSpace(path) == "" {
		return nil
	}
	if st.Version == 0 {
		st.Version = 1
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return WriteFileAtomic(path, b)
}
