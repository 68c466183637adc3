package circuitbreaker_test

import (
	"errors"
	"testing"

	"github.com/hederacore/hedera-core/pkg/circuitbreaker"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errNodeDown = errors.New("node down")

func TestCircuitBreaker(t *testing.T) {
	cb := circuitbreaker.NewCircuitBreaker("0.0.3")
	require.Equal(t, "0.0.3", cb.Name())

	fail := func() (interface{}, error) { return nil, errNodeDown }

	for i := 0; i <= circuitbreaker.MaxNumOfFailingRequests; i++ {
		_, err := cb.Execute(fail)
		require.ErrorIs(t, err, errNodeDown)
	}
	assert.Equal(t, gobreaker.StateOpen, cb.State())

	_, err := cb.Execute(func() (interface{}, error) { return "ok", nil })
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
}

func TestCircuitBreakerTolerateFailures(t *testing.T) {
	cb := circuitbreaker.NewCircuitBreaker("0.0.4")

	for i := 0; i < 3*circuitbreaker.MaxNumOfFailingRequests; i++ {
		_, _ = cb.Execute(func() (interface{}, error) {
			if i%2 == 0 {
				return nil, errNodeDown
			}
			return "ok", nil
		})
	}
	assert.Equal(t, gobreaker.StateClosed, cb.State())
}
