package theine

import (
	"testing"

	"github.com/unkn0wn-root/intervalcache/internal/providertest"
)

func TestContract(t *testing.T) {
	providertest.Run(t, Factory, providertest.Options{ApproximateLen: true})
}

func TestRejectsBadCapacity(t *testing.T) {
	if _, err := New[int64](0, nil); err == nil {
		t.Fatal("expected error for capacity 0")
	}
}
