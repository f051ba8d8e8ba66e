package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDrawdownTracker(t *testing.T) {
	t.Parallel()

	var d DrawdownTracker

	assert.Equal(t, 0.0, d.Update(100))
	assert.InDelta(t, 5, d.Update(95), 1e-9)
	assert.InDelta(t, 10, d.Update(90), 1e-9)

	// partial recovery: max unchanged
	assert.InDelta(t, 5, d.Update(95), 1e-9)

	// new high resets the ladder
	assert.Equal(t, 0.0, d.Update(110))
	assert.InDelta(t, 5, d.Update(104.5), 1e-9)
}

func TestDrawdownTrackerMax(t *testing.T) {
	t.Parallel()

	var d DrawdownTracker
	assert.Zero(t, d.Max())
	d.Update(50)
	d.Update(40)
	assert.EqualValues(t, 50, d.Max())
	d.Update(60)
	assert.EqualValues(t, 60, d.Max())
}
