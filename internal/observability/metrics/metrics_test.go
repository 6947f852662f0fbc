package metrics

import (
	"context"
	"errors"
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
)

func TestWeiToEther(t *testing.T) {
	assert.InDelta(t, 2.5, weiToEther(sdkmath.NewInt(2_500_000_000_000_000_000)), 1e-12)
	assert.Zero(t, weiToEther(sdkmath.ZeroInt()))
	assert.Zero(t, weiToEther(sdkmath.Int{}))
}

func TestRecordPoolStats(t *testing.T) {
	Init(0)

	assert.NotPanics(t, func() {
		RecordPoolStats("tcgs", sdkmath.NewInt(10), sdkmath.ZeroInt(), sdkmath.ZeroInt(), true, 2)
		RecordPoolStats("tcgs", sdkmath.NewInt(10), sdkmath.NewInt(5), sdkmath.NewInt(200), false, 2)
	})
}

func TestInstrumentPoller(t *testing.T) {
	Init(0)

	var rounds int
	failing := true
	poll := InstrumentPoller("pool_stats", func(ctx context.Context) error {
		rounds++
		if failing {
			return errors.New("mongo unavailable")
		}
		return nil
	})

	assert.EqualError(t, poll(context.Background()), "mongo unavailable")
	failing = false
	assert.NoError(t, poll(context.Background()))
	assert.Equal(t, 2, rounds)
}
