package intervalcache_test

import (
	"testing"

	"github.com/unkn0wn-root/intervalcache"
	"github.com/unkn0wn-root/intervalcache/internal/providertest"
)

func TestRecencyProviderContract(t *testing.T) {
	providertest.Run(t, intervalcache.RecencyProvider, providertest.Options{})
}
