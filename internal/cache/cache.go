package cache

// Cache is a simple in-process key-value store, used by long-running workers
// to avoid reloading engine inputs between jobs.
type Cache interface {
	Store(key string, i interface{})
	Get(key string) interface{}
}

// FileCache persists keyed JSON documents on disk. The importer mirrors
// parsed soil reports into one so repeated imports can skip re-parsing.
type FileCache interface {
	Store(key string, i interface{}) error
	Get(key string, target interface{}) error
	All() (FileCacheAllResult, error)
	Purge() error
}

type FileCacheAllResult interface {
	Get(key string, receiver interface{}) error
	Length() int
	Keys() []string
}
