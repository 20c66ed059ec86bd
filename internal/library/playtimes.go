package library

import (
	"encoding/json"
	"os"
)

// LoadPlaytimes reads the local playtime metadata file, a JSON object
// of entry id to estimated hours. A missing or corrupt file degrades to
// no playtime data.
func LoadPlaytimes(path string) map[string]float64 {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var hours map[string]float64
	if err := json.Unmarshal(data, &hours); err != nil {
		return nil
	}
	return hours
}
