package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"foodonbus-dashboard/geohash"
	"foodonbus-dashboard/mapsim"

	"github.com/go-redis/redis/v8"
)

const positionsKey = "markers:positions"

// InitializeRedis connects to Redis and checks the connection.
func InitializeRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	// Check the Redis connection
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return rdb, nil
}

// MarkerCache mirrors live map markers into Redis: the latest position of
// every marker as JSON in a hash, and marker ids grouped in one set per
// geohash cell ("markers:<hash>").
type MarkerCache struct {
	rdb       *redis.Client
	precision uint

	mu    sync.Mutex
	cells map[string]string // marker id -> current cell
}

func NewMarkerCache(rdb *redis.Client, precision uint) *MarkerCache {
	return &MarkerCache{rdb: rdb, precision: precision, cells: make(map[string]string)}
}

func (c *MarkerCache) Name() string { return "redis" }

func CellKey(hash string) string { return fmt.Sprintf("markers:%s", hash) }

// Publish implements mapsim.PositionSink.
func (c *MarkerCache) Publish(ctx context.Context, markers []mapsim.Marker) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := make(map[string]string, len(markers))
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, m := range markers {
			markerJSON, err := json.Marshal(m)
			if err != nil {
				return err
			}
			pipe.HSet(ctx, positionsKey, m.ID, markerJSON)

			hash := geohash.Encode(m.Lat, m.Lng, c.precision)
			next[m.ID] = hash
			if old, ok := c.cells[m.ID]; ok && old != hash {
				pipe.SRem(ctx, CellKey(old), m.ID)
			}
			pipe.SAdd(ctx, CellKey(hash), m.ID)
		}
		for id, old := range c.cells {
			if _, ok := next[id]; !ok {
				pipe.HDel(ctx, positionsKey, id)
				pipe.SRem(ctx, CellKey(old), id)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("publish %d markers: %w", len(markers), err)
	}
	c.cells = next
	return nil
}
