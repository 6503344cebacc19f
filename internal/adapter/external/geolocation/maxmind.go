package geolocation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/ipflix/ipflix/internal/entity"
	"github.com/oschwald/geoip2-golang"
)

// MaxMind answers from a local GeoIP2/GeoLite2 City database and reloads it
// when the file is replaced on disk.
type MaxMind struct {
	path   string
	db     *geoip2.Reader
	mu     sync.RWMutex
	logger *slog.Logger

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// OpenMaxMind opens the database at path and starts watching it.
// It returns nil, nil when path is empty.
func OpenMaxMind(path string, logger *slog.Logger) (*MaxMind, error) {
	if path == "" {
		return nil, nil
	}
	if logger == nil {
		logger = slog.Default()
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("geoip database: %w", err)
	}

	db, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open geoip database: %w", err)
	}

	m := &MaxMind{
		path:   path,
		db:     db,
		logger: logger,
		done:   make(chan struct{}),
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Warn("GeoIP: file watcher unavailable, hot reload disabled", "error", err)
		return m, nil
	}
	// Watch the directory, as file updates are often atomic renames.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		logger.Warn("GeoIP: cannot watch database directory", "dir", filepath.Dir(path), "error", err)
		return m, nil
	}
	m.watcher = watcher
	go m.watch()

	return m, nil
}

// Name returns the provider name
func (m *MaxMind) Name() string {
	return "maxmind"
}

// Locate implements Strategy
func (m *MaxMind) Locate(_ context.Context, ipStr string) (*entity.GeoLocation, error) {
	ip := net.ParseIP(ipStr)
	if ip == nil {
		return nil, fmt.Errorf("maxmind: invalid ip %q", ipStr)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.db == nil {
		return nil, errors.New("maxmind: database not loaded")
	}

	record, err := m.db.City(ip)
	if err != nil {
		return nil, fmt.Errorf("maxmind: %w", err)
	}
	if record.Country.IsoCode == "" {
		return nil, ErrNoLocation
	}

	region := ""
	if len(record.Subdivisions) > 0 {
		region = record.Subdivisions[0].Names["en"]
	}

	return &entity.GeoLocation{
		Country:     orDefault(record.Country.Names["en"], record.Country.IsoCode),
		CountryCode: record.Country.IsoCode,
		City:        orDefault(record.City.Names["en"], entity.UnknownValue),
		Region:      orDefault(region, entity.UnknownValue),
		Latitude:    record.Location.Latitude,
		Longitude:   record.Location.Longitude,
		Timezone:    orDefault(record.Location.TimeZone, entity.DefaultTimezone),
	}, nil
}

// Close stops the watcher and closes the database
func (m *MaxMind) Close() error {
	if m.watcher != nil {
		close(m.done)
		m.watcher.Close()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.db == nil {
		return nil
	}
	err := m.db.Close()
	m.db = nil
	return err
}

func (m *MaxMind) watch() {
	for {
		select {
		case event, ok := <-m.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) == filepath.Clean(m.path) &&
				event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				m.logger.Info("GeoIP: database updated, reloading", "path", m.path)
				m.reload()
			}
		case err, ok := <-m.watcher.Errors:
			if !ok {
				return
			}
			m.logger.Warn("GeoIP: watcher error", "error", err)
		case <-m.done:
			return
		}
	}
}

// reload swaps in a freshly opened database. On failure the old one stays.
func (m *MaxMind) reload() {
	db, err := geoip2.Open(m.path)
	if err != nil {
		m.logger.Error("GeoIP: reload failed, keeping previous database", "path", m.path, "error", err)
		return
	}

	m.mu.Lock()
	old := m.db
	m.db = db
	m.mu.Unlock()

	if old != nil {
		if err := old.Close(); err != nil {
			m.logger.Warn("GeoIP: closing previous database", "error", err)
		}
	}
	m.logger.Info("GeoIP: database reloaded")
}
