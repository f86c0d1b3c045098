package dedup_test

import (
	"testing"
	"time"

	"github.com/cropsaarthi/backend/pkg/dedup"
)

func TestShouldProcessOncePerTTL(t *testing.T) {
	t.Parallel()
	d := dedup.New(time.Minute, 100)

	if !d.ShouldProcess("msg-1") {
		t.Fatal("first sight must be processed")
	}
	if d.ShouldProcess("msg-1") {
		t.Fatal("redelivery within TTL must be dropped")
	}
	if !d.ShouldProcess("msg-2") {
		t.Fatal("distinct id must be processed")
	}
}

func TestEmptyIDAlwaysProcessed(t *testing.T) {
	t.Parallel()
	d := dedup.New(time.Minute, 100)
	if !d.ShouldProcess("") || !d.ShouldProcess("") {
		t.Fatal("empty ids must never be deduplicated")
	}
}
