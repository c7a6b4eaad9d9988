package trace

import (
	"encoding/json"
	"os"
)

type ExportData struct {
	Run    RunMetadata `json:"run"`
	Steps  int         `json:"steps"`
	Events []Event     `json:"events"`
}

func ExportJSON(path string, meta RunMetadata, events []Event) error {
	data := ExportData{
		Run:    meta,
		Steps:  len(events),
		Events: events,
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
