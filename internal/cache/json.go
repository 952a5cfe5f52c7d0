package cache

import (
	"encoding/json"
	"os"
	"sync"

	"soil-reco/internal/helpers"

	"github.com/rs/zerolog/log"
)

// JSONFileCache stores every key in a single JSON file, read and rewritten
// whole on each operation. Fine for report-sized payloads.
type JSONFileCache struct {
	filePath string
	mu       sync.Mutex
}

func NewJSONFileCache(filePath string) (*JSONFileCache, error) {
	err := helpers.CreateDirAndFileIfNoExist(filePath)
	if err != nil {
		return nil, err
	}

	return &JSONFileCache{filePath: filePath}, nil
}

func (c *JSONFileCache) Store(key string, i interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	file := make(map[string]interface{})
	if err := c.loadFullFile(&file); err != nil {
		return err
	}

	file[key] = i

	return c.saveToFile(file)
}

func (c *JSONFileCache) Get(key string, target interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	file := make(map[string]interface{})
	if err := c.loadFullFile(&file); err != nil {
		return err
	}

	return helpers.ExtractKeyFromMap(key, file, target)
}

func (c *JSONFileCache) All() (FileCacheAllResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make(map[string]interface{})
	if err := c.loadFullFile(&items); err != nil {
		return nil, err
	}

	return &jsonFileCacheAllResult{items: items}, nil
}

func (c *JSONFileCache) Purge() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.saveToFile(make(map[string]interface{}))
}

func (c *JSONFileCache) saveToFile(file map[string]interface{}) error {
	jsonData, err := json.Marshal(file)
	if err != nil {
		log.Error().Err(err).Msg("Error marshalling cache data")
		return err
	}

	err = os.WriteFile(c.filePath, jsonData, 0644)
	if err != nil {
		log.Error().Err(err).Msg("Error writing cache data to file")
		return err
	}

	return nil
}

func (c *JSONFileCache) loadFullFile(target interface{}) error {
	fileData, err := os.ReadFile(c.filePath)
	if err != nil {
		log.Error().Err(err).Msg("Error reading cache data from file")
		return err
	}

	return json.Unmarshal(fileData, target)
}

type jsonFileCacheAllResult struct {
	items map[string]interface{}
}

func (a *jsonFileCacheAllResult) Get(key string, receiver interface{}) error {
	return helpers.ExtractKeyFromMap(key, a.items, receiver)
}

func (a *jsonFileCacheAllResult) Length() int {
	return len(a.items)
}

func (a *jsonFileCacheAllResult) Keys() []string {
	keys := make([]string, 0, len(a.items))
	for k := range a.items {
		keys = append(keys, k)
	}
	return keys
}
