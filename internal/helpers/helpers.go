package helpers

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

func ContainsStr(s []string, e string) bool {
	for _, a := range s {
		if a == e {
			return true
		}
	}
	return false
}

// RoundTo rounds x to the given number of decimal places, for display.
func RoundTo(x float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(x*scale) / scale
}

func ExtractKeyFromMap(key string, m map[string]interface{}, receiver interface{}) error {
	value, ok := m[key]
	if !ok {
		return fmt.Errorf("key '%s' not found in the map", key)
	}

	jsonData, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value for key '%s': %w", key, err)
	}

	err = json.Unmarshal(jsonData, &receiver)
	if err != nil {
		return fmt.Errorf("failed to unmarshal value for key '%s': %w", key, err)
	}

	return nil
}

func GetProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		goModPath := filepath.Join(cwd, "go.mod")
		if _, err := os.Stat(goModPath); err == nil {
			break
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			return "", fmt.Errorf("no go.mod found above %s", cwd)
		}
		cwd = parent
	}

	return cwd, nil
}

// CreateDirAndFileIfNoExist makes sure filePath and its parent directories
// exist, creating the file with an empty JSON object so cache reads work.
func CreateDirAndFileIfNoExist(filePath string) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return os.WriteFile(filePath, []byte("{}"), 0644)
	}
	return nil
}
