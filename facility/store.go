// facility/store.go
// Copyright(c) 2025 simlink contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package facility

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/simlink/simlink/log"
	"github.com/simlink/simlink/util"

	"github.com/brunoga/deep"
	"golang.org/x/sync/singleflight"
)

// ListPage is one page of the simulator's facility-list reply, already
// reduced to what the store needs. The last page is the one with
// EntryNumber == OutOf-1.
type ListPage struct {
	EntryNumber int
	OutOf       int
	ICAOs       []string
}

// Source is what the Store needs from the connection: the paginated airport
// list and per-airport detail records. Detail requests are issued one at a
// time; the facility-data channel does not handle concurrent requests
// reliably, so implementations may assume they are never called with a
// second detail request before the first returns.
type Source interface {
	AirportList(ctx context.Context) (<-chan ListPage, error)
	AirportDetail(ctx context.Context, icao string) ([]byte, error)
}

const snapshotVersion = 1

// SnapshotFile is the name of the persisted airport database in the user's
// cache directory.
const SnapshotFile = "airports.msgpack.zst"

type snapshot struct {
	Version  int
	Airports []Airport
}

// Store owns the decoded airport set. Queries return copies; the cached
// airports themselves are never mutated after Build completes.
type Store struct {
	src  Source
	path string
	lg   *log.Logger

	build singleflight.Group

	mu       sync.Mutex
	airports []Airport
	ready    bool
}

// NewStore returns a Store that persists its snapshot at path; if path is
// empty the default location under the user cache directory is used.
func NewStore(src Source, path string, lg *log.Logger) *Store {
	if path == "" {
		var err error
		path, err = util.CachePath(SnapshotFile)
		if err != nil {
			lg.Warnf("unable to determine cache dir: %v", err)
		}
	}
	return &Store{src: src, path: path, lg: lg}
}

// Build acquires the full airport database: it always fetches the live
// facility list, then either adopts a persisted snapshot or fetches and
// decodes every airport's detail record. Concurrent callers share a single
// build. Build is a no-op once the database is ready.
func (s *Store) Build(ctx context.Context) error {
	_, err, _ := s.build.Do("build", func() (any, error) {
		return nil, s.buildLocked(ctx)
	})
	return err
}

func (s *Store) buildLocked(ctx context.Context) error {
	s.mu.Lock()
	ready := s.ready
	s.mu.Unlock()
	if ready {
		return nil
	}

	icaos, err := s.collectList(ctx)
	if err != nil {
		return fmt.Errorf("airport list: %w", err)
	}
	s.lg.Info("got live airport list", slog.Int("count", len(icaos)))

	if airports, err := s.loadSnapshot(); err == nil {
		// The snapshot is served even when it disagrees with the live
		// count; a rebuild can be forced by deleting the file.
		if len(airports) != len(icaos) {
			s.lg.Warnf("airport snapshot has %d airports but simulator reports %d; using snapshot anyway",
				len(airports), len(icaos))
		}
		s.install(airports)
		return nil
	} else if !errors.Is(err, ErrBadSnapshot) {
		s.lg.Infof("no usable airport snapshot: %v", err)
	}

	airports := make([]Airport, 0, len(icaos))
	for _, icao := range icaos {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		data, err := s.src.AirportDetail(ctx, icao)
		if err != nil {
			return fmt.Errorf("%s: detail fetch: %w", icao, err)
		}
		ap, err := DecodeAirport(icao, data)
		if err != nil {
			return err
		}
		airports = append(airports, ap)
	}

	if err := util.CacheStoreObject(s.path, snapshot{Version: snapshotVersion, Airports: airports}); err != nil {
		s.lg.Warnf("unable to persist airport snapshot: %v", err)
	}
	s.install(airports)
	return nil
}

// collectList accumulates the paginated facility list, stopping after the
// page with EntryNumber == OutOf-1.
func (s *Store) collectList(ctx context.Context) ([]string, error) {
	pages, err := s.src.AirportList(ctx)
	if err != nil {
		return nil, err
	}

	var icaos []string
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case page, ok := <-pages:
			if !ok {
				return icaos, nil
			}
			icaos = append(icaos, page.ICAOs...)
			if page.EntryNumber >= page.OutOf-1 {
				return icaos, nil
			}
		}
	}
}

func (s *Store) loadSnapshot() ([]Airport, error) {
	var snap snapshot
	if err := util.CacheRetrieveObject(s.path, &snap); err != nil {
		return nil, err
	}
	if snap.Version != snapshotVersion {
		s.lg.Warnf("airport snapshot version %d, want %d; rebuilding", snap.Version, snapshotVersion)
		return nil, fmt.Errorf("%w: version %d", ErrBadSnapshot, snap.Version)
	}
	return snap.Airports, nil
}

func (s *Store) install(airports []Airport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.airports = airports
	s.ready = true
}

// Ready reports whether Build has completed.
func (s *Store) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.airports)
}

// All returns a copy of the full airport set in acquisition order.
func (s *Store) All() []Airport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return deep.MustCopy(s.airports)
}

// ByICAO returns the airport with the given code (exact, case-sensitive
// match), if any.
func (s *Store) ByICAO(code string) (Airport, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ap, ok := ByICAO(s.airports, code); ok {
		return deep.MustCopy(ap), true
	}
	return Airport{}, false
}

// Nearby returns the airports within radiusNM of the given position, closest
// first.
func (s *Store) Nearby(lat, lon, radiusNM float64) []NearbyAirport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return deep.MustCopy(Nearby(s.airports, lat, lon, radiusNM))
}
