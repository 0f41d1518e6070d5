package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"usd_converter/internal/models"
)

var (
	// ErrCacheMiss - файла кэша нет
	ErrCacheMiss = errors.New("cache miss")
	// ErrCacheInvalid - файл кэша не читается или в нём нет нужных полей
	ErrCacheInvalid = errors.New("invalid cache file")
	// ErrCacheExpired - запись старше срока жизни кэша
	ErrCacheExpired = errors.New("cache expired")
)

// RateCache определяет интерфейс хранилища курсов
type RateCache interface {
	Load() (models.RateTable, error)
	Save(rates models.RateTable) error
}

// FileCache хранит таблицу курсов в JSON файле
type FileCache struct {
	path   string
	expiry time.Duration
	now    func() time.Time
}

// Убеждаемся, что FileCache реализует RateCache
var _ RateCache = (*FileCache)(nil)

// Создаём файловый кэш
func NewFileCache(path string, expiry time.Duration) *FileCache {
	return &FileCache{
		path:   path,
		expiry: expiry,
		now:    time.Now,
	}
}

// SetClock подменяет источник текущего времени
func (c *FileCache) SetClock(now func() time.Time) {
	c.now = now
}

// Path возвращает путь к файлу кэша
func (c *FileCache) Path() string {
	return c.path
}

// Load читает курсы из файла, если запись свежая
func (c *FileCache) Load() (models.RateTable, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("%w: %v", ErrCacheInvalid, err)
	}

	var record models.CacheRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCacheInvalid, err)
	}
	if record.Timestamp == nil {
		return nil, fmt.Errorf("%w: missing timestamp", ErrCacheInvalid)
	}
	if len(record.Rates) == 0 {
		return nil, fmt.Errorf("%w: missing rates", ErrCacheInvalid)
	}

	age := epochSeconds(c.now()) - *record.Timestamp
	if age >= c.expiry.Seconds() {
		return nil, fmt.Errorf("%w: age %.0fs", ErrCacheExpired, age)
	}

	return record.Rates, nil
}

// Save записывает курсы вместе с текущим временем
// Запись идёт через временный файл, чтобы не оставить обрезанный JSON
func (c *FileCache) Save(rates models.RateTable) error {
	ts := epochSeconds(c.now())
	data, err := json.Marshal(models.CacheRecord{Timestamp: &ts, Rates: rates})
	if err != nil {
		return fmt.Errorf("failed to marshal cache record: %w", err)
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".rates-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp cache file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close cache file: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace cache file: %w", err)
	}
	return nil
}

func epochSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
