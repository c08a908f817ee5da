package benchmark

import (
	"fmt"
	"slices"
	"strings"

	"github.com/unkn0wn-root/intervalcache"
	"github.com/unkn0wn-root/intervalcache/provider"
	"github.com/unkn0wn-root/intervalcache/provider/bigcache"
	"github.com/unkn0wn-root/intervalcache/provider/clock"
	"github.com/unkn0wn-root/intervalcache/provider/fifo"
	"github.com/unkn0wn-root/intervalcache/provider/freecache"
	"github.com/unkn0wn-root/intervalcache/provider/freelru"
	"github.com/unkn0wn-root/intervalcache/provider/golanglru"
	"github.com/unkn0wn-root/intervalcache/provider/otter"
	"github.com/unkn0wn-root/intervalcache/provider/ristretto"
	"github.com/unkn0wn-root/intervalcache/provider/theine"
	"github.com/unkn0wn-root/intervalcache/provider/ttlcache"
)

// registry maps provider names to their factories.
var registry = map[string]provider.Factory[int64]{
	"recency":       intervalcache.RecencyProvider,
	"lru":           golanglru.Factory(golanglru.LRU),
	"2q":            golanglru.Factory(golanglru.TwoQueue),
	"arc":           golanglru.Factory(golanglru.ARC),
	"freelru-sync":  freelru.Factory(freelru.Config{}),
	"freelru-shard": freelru.Factory(freelru.Config{Sharded: true}),
	"otter":         otter.Factory,
	"theine":        theine.Factory,
	"ttlcache":      ttlcache.Factory(ttlcache.Config{}),
	"clock":         clock.Factory,
	"sieve":         fifo.Factory(fifo.Sieve),
	"s3-fifo":       fifo.Factory(fifo.S3FIFO),
	"ristretto":     ristretto.Factory(ristretto.Config{}),
	"bigcache":      bigcache.Factory(bigcache.Config[int64]{}),
	"freecache":     freecache.Factory(freecache.Config[int64]{}),
}

// defaultOrder defines the display order for providers.
var defaultOrder = []string{
	"recency",
	"lru", "2q", "arc", "freelru-sync", "freelru-shard",
	"otter", "theine", "ttlcache", "clock", "sieve", "s3-fifo",
	"ristretto", "bigcache", "freecache",
}

// Names returns every registered provider in display order.
func Names() []string { return slices.Clone(defaultOrder) }

// Lookup returns the factory registered under name.
func Lookup(name string) (provider.Factory[int64], bool) {
	f, ok := registry[name]
	return f, ok
}

// Select resolves a comma-separated provider list. An empty list or "all"
// selects every provider; order follows the display order.
func Select(list string) ([]string, error) {
	list = strings.TrimSpace(list)
	if list == "" || list == "all" {
		return Names(), nil
	}
	want := make(map[string]bool)
	for s := range strings.SplitSeq(list, ",") {
		s = strings.TrimSpace(strings.ToLower(s))
		if s == "" {
			continue
		}
		if _, ok := registry[s]; !ok {
			return nil, fmt.Errorf("unknown provider %q (available: %s)", s, strings.Join(defaultOrder, ", "))
		}
		want[s] = true
	}
	var names []string
	for _, name := range defaultOrder {
		if want[name] {
			names = append(names, name)
		}
	}
	return names, nil
}
