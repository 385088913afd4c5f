package batch

import (
	"encoding/json"
	"os"
	"sort"
)

// ManifestEntry represents one rendered scene in the output manifest.
type ManifestEntry struct {
	Name    string          `json:"name"`
	Frames  []string        `json:"frames"`
	Bones   int             `json:"bones"`
	Size    [3]float64      `json:"size"`
	Reached map[string]bool `json:"reached,omitempty"`
}

// WriteManifest writes the successful results as JSON, sorted by name.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, 0, len(results))
	for _, r := range results {
		if !r.Success {
			continue
		}
		entries = append(entries, ManifestEntry{
			Name:    r.Name,
			Frames:  r.Frames,
			Bones:   r.Bones,
			Size:    [3]float64(r.Size),
			Reached: r.Reached,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
