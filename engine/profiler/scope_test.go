package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScopeAverage(t *testing.T) {
	assert.Equal(t, time.Duration(0), Scope{}.Average())
	assert.Equal(t, 5*time.Millisecond, Scope{Calls: 2, Total: 10 * time.Millisecond}.Average())
}

func TestStartEndRecords(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	Start("b")()
	Start("a")()
	Start("a")()

	stats := Stats()
	if !Enabled {
		assert.Empty(t, stats)
		return
	}
	if assert.Len(t, stats, 2) {
		assert.Equal(t, "a", stats[0].Name)
		assert.Equal(t, 2, stats[0].Calls)
		assert.Equal(t, 1, stats[1].Calls)
	}
}
