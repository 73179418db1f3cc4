package batch

import (
	"encoding/json"
	"os"
	"time"
)

// Manifest is the summary written after a run.
type Manifest struct {
	AssetDir  string    `json:"asset_dir"`
	Generated time.Time `json:"generated"`
	Total     int       `json:"total"`
	Failed    int       `json:"failed"`
	Files     []Result  `json:"files"`
}

// WriteManifest writes manifest.json to path.
func WriteManifest(path string, cfg Config, results []Result) error {
	m := Manifest{
		AssetDir:  cfg.AssetDir,
		Generated: time.Now().UTC().Truncate(time.Second),
		Total:     len(results),
		Failed:    len(Failed(results)),
		Files:     results,
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(path string) (Manifest, error) {
	var m Manifest
	data, err := os.ReadFile(path)
	if err != nil {
		return m, err
	}
	err = json.Unmarshal(data, &m)
	return m, err
}
