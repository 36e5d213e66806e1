package cache

import (
	"context"
	"encoding/json"
	"testing"

	"foodonbus-dashboard/geohash"
	"foodonbus-dashboard/mapsim"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkerCachePublish(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	rdb, err := InitializeRedis(ctx, mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { rdb.Close() })

	c := NewMarkerCache(rdb, 5)
	assert.Equal(t, "redis", c.Name())

	bus := mapsim.Marker{ID: mapsim.BusMarkerID("KA09 XY 4433"), Kind: mapsim.KindBus, Label: "KA09 XY 4433\nBangalore → Mysore", Lat: 18.52, Lng: 73.85}
	require.NoError(t, c.Publish(ctx, []mapsim.Marker{bus}))

	var stored mapsim.Marker
	require.NoError(t, json.Unmarshal([]byte(mr.HGet(positionsKey, bus.ID)), &stored))
	assert.Equal(t, bus, stored)

	pune := CellKey(geohash.Encode(18.52, 73.85, 5))
	ok, err := mr.IsMember(pune, bus.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	bus.Lat, bus.Lng = 19.07, 72.87
	require.NoError(t, c.Publish(ctx, []mapsim.Marker{bus}))

	assert.False(t, mr.Exists(pune))
	ok, err = mr.IsMember(CellKey(geohash.Encode(19.07, 72.87, 5)), bus.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMarkerCacheDropsRemovedMarkers(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	rdb, err := InitializeRedis(ctx, mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { rdb.Close() })

	c := NewMarkerCache(rdb, 5)
	bus := mapsim.Marker{ID: mapsim.BusMarkerID("MH12 AB 3344"), Kind: mapsim.KindBus, Lat: 19.07, Lng: 72.87}
	driver := mapsim.Marker{ID: mapsim.DriverMarkerID(2), Kind: mapsim.KindDriver, Lat: 18.52, Lng: 73.85}
	require.NoError(t, c.Publish(ctx, []mapsim.Marker{bus, driver}))
	assert.NotEmpty(t, mr.HGet(positionsKey, driver.ID))

	require.NoError(t, c.Publish(ctx, []mapsim.Marker{bus}))

	assert.Empty(t, mr.HGet(positionsKey, driver.ID))
	assert.NotEmpty(t, mr.HGet(positionsKey, bus.ID))
	assert.False(t, mr.Exists(CellKey(geohash.Encode(18.52, 73.85, 5))))
}

func TestInitializeRedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := InitializeRedis(context.Background(), addr, "", 0)
	assert.Error(t, err)
}
