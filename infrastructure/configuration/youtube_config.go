package configuration

import (
	"fmt"
	"os"
	"strings"
)

// GetYouTubeAPIKeys collects the configured API keys in slot order,
// preferring YOUTUBE_API_KEY_1..4 env vars over the config file. Empty
// slots are skipped; at least one key must be present.
func GetYouTubeAPIKeys() ([]string, error) {
	slots := []string{C.YouTube.APIKey1, C.YouTube.APIKey2, C.YouTube.APIKey3, C.YouTube.APIKey4}
	keys := make([]string, 0, len(slots))
	for i, fromConfig := range slots {
		v := getConfigValue(fromConfig, fmt.Sprintf("YOUTUBE_API_KEY_%d", i+1), "")
		if v != "" {
			keys = append(keys, v)
		}
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("no YouTube API keys configured: set YOUTUBE_API_KEY_1 (keys 2-4 optional)")
	}
	return keys, nil
}

// getConfigValue prefers the environment, then config values that are not
// placeholders, then the default.
func getConfigValue(configValue, envKey, defaultValue string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	if configValue != "" && !strings.HasPrefix(configValue, "YOUR_") {
		return configValue
	}
	return defaultValue
}
