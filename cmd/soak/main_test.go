package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentiles(t *testing.T) {
	var ds []time.Duration
	for i := 100; i >= 1; i-- {
		ds = append(ds, time.Duration(i)*time.Millisecond)
	}
	p50, p99, worst := percentiles(ds)
	assert.Equal(t, 51*time.Millisecond, p50)
	assert.Equal(t, 100*time.Millisecond, p99)
	assert.Equal(t, 100*time.Millisecond, worst)
	assert.Equal(t, 100*time.Millisecond, ds[0], "input is left unsorted")

	p50, _, _ = percentiles(nil)
	assert.Zero(t, p50)
}

func TestRunVerifiesItsReplay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "soak.replay")
	require.NoError(t, run("", 50, 60, true, path, "error"))
}

func TestRunRejectsBadLevel(t *testing.T) {
	assert.Error(t, run("", 1, 1, false, "", "loud"))
}
