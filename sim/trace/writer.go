package trace

import (
	"encoding/json"
	"fmt"
	"os"
)

// WriteJSON dumps the full trace to a JSON file for offline analysis.
func WriteJSON(st *SimulationTrace, path string) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding trace: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing trace file: %w", err)
	}
	return nil
}
