// pkg/kbfile/kbfile.go
package kbfile

import (
	"encoding/json"
	"fmt"
	"os"
)

// File is the on-disk form of a knowledge base.
type File struct {
	Version     string  `json:"version"`
	LastUpdated string  `json:"lastUpdated"`
	Entries     []Entry `json:"entries"`
}

// Entry is one knowledge-base rule as stored in the file.
type Entry struct {
	Keywords         []string `json:"keywords"`
	RequiredKeywords []string `json:"requiredKeywords,omitempty"`
	Category         string   `json:"category"`
	Response         string   `json:"response"`
}

// Load reads and validates a knowledge-base file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := Validate(data); err != nil {
		return nil, fmt.Errorf("knowledge base %s: %w", path, err)
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}
