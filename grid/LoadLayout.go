package grid

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
)

// LayoutFile is the on-disk and wire form of a layout.
type LayoutFile struct {
	Name string   `json:"name,omitempty"`
	Rows []string `json:"rows"`
}

func LoadLayout(filepath string) (*Layout, error) {
	// Read the JSON file
	file, err := os.Open(filepath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	var input LayoutFile
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidLayout, filepath, err)
	}

	layout, err := ParseLayout(input.Rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath, err)
	}

	obstacles := 0
	for _, row := range layout.Tiles {
		for _, tile := range row {
			if tile.State == Obstacle {
				obstacles++
			}
		}
	}
	log.Printf("[INFO] Layout successfully loaded from '%s'. Size: %dx%d. Obstacles: %d.\n",
		filepath, layout.Width, layout.Height, obstacles)

	return layout, nil
}

// SaveLayout writes layout as an indented LayoutFile.
func SaveLayout(filepath, name string, layout *Layout) error {
	data, err := marshalLayout(name, layout)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, data, 0644)
}

// WriteLayout encodes layout as an indented LayoutFile to w.
func WriteLayout(w io.Writer, name string, layout *Layout) error {
	data, err := marshalLayout(name, layout)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func marshalLayout(name string, layout *Layout) ([]byte, error) {
	return json.MarshalIndent(LayoutFile{Name: name, Rows: layout.Rows()}, "", "  ")
}
