package fuzzymatch

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain ensures batch lookups leave no worker goroutines behind
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}
