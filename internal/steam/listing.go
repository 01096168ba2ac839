package steam

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadAppListFile reads a listing from a local JSON file shaped like the
// listing endpoint response. Used to pin or restrict the id space without
// hitting the network.
func LoadAppListFile(path string) (map[int64]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read app list file: %w", err)
	}

	var envelope AppListEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("parse app list file: %w", err)
	}

	apps := make(map[int64]string, len(envelope.AppList.Apps))
	for _, entry := range envelope.AppList.Apps {
		apps[entry.AppID] = entry.Name
	}
	return apps, nil
}
