package parallel_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpyw/neubundle/internal/parallel"
)

func TestMap(t *testing.T) {
	t.Parallel()

	t.Run("results keep input order", func(t *testing.T) {
		t.Parallel()

		archs := []string{"x64", "arm64", "universal"}

		results := parallel.Map(t.Context(), archs, func(_ context.Context, arch string) (string, error) {
			if arch == "x64" {
				time.Sleep(10 * time.Millisecond)
			}
			return "mac_" + arch, nil
		})

		require.Len(t, results, 3)
		assert.Equal(t, "mac_x64", results[0].Value)
		assert.Equal(t, "mac_arm64", results[1].Value)
		assert.Equal(t, "mac_universal", results[2].Value)
	})

	t.Run("errors are captured per item", func(t *testing.T) {
		t.Parallel()

		results := parallel.Map(t.Context(), []int{1, 2}, func(_ context.Context, n int) (int, error) {
			if n == 2 {
				return 0, errors.New("error for 2")
			}
			return n * 10, nil
		})

		require.Len(t, results, 2)
		assert.Equal(t, 10, results[0].Value)
		require.NoError(t, results[0].Err)
		assert.EqualError(t, results[1].Err, "error for 2")
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		results := parallel.Map(t.Context(), []int(nil), func(_ context.Context, n int) (int, error) {
			return n, nil
		})
		assert.Empty(t, results)
	})
}

func TestMapWithLimit(t *testing.T) {
	t.Parallel()

	run := func(t *testing.T, limit int) int32 {
		t.Helper()

		var running, maxConcurrent int32

		results := parallel.MapWithLimit(t.Context(), []int{1, 2, 3, 4, 5}, limit, func(_ context.Context, _ int) (bool, error) {
			current := atomic.AddInt32(&running, 1)
			for {
				oldMax := atomic.LoadInt32(&maxConcurrent)
				if current <= oldMax || atomic.CompareAndSwapInt32(&maxConcurrent, oldMax, current) {
					break
				}
			}

			time.Sleep(10 * time.Millisecond)
			atomic.AddInt32(&running, -1)

			return true, nil
		})
		require.Len(t, results, 5)

		return maxConcurrent
	}

	t.Run("respects limit", func(t *testing.T) {
		t.Parallel()
		assert.LessOrEqual(t, run(t, 2), int32(2))
	})

	t.Run("limit of 1 is sequential", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, int32(1), run(t, 1))
	})
}
