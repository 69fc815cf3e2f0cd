package lifecycle

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budgez/backend/domain"
)

func TestShutdown_ReverseOrder(t *testing.T) {
	m := New(time.Second, nil)

	var order []string
	for _, name := range []string{"postgres", "redis", "http_server"} {
		name := name
		m.Register(name, func(ctx context.Context) error {
			order = append(order, name)
			return nil
		})
	}

	require.NoError(t, m.Shutdown(context.Background()))
	assert.Equal(t, []string{"http_server", "redis", "postgres"}, order)
}

func TestShutdown_FailingHookDoesNotStopSequence(t *testing.T) {
	m := New(time.Second, nil)

	var stopped []string
	m.Register("first", func(ctx context.Context) error {
		stopped = append(stopped, "first")
		return nil
	})
	m.Register("broken", func(ctx context.Context) error {
		return domain.NewError(domain.ErrCodeInternal, "close failed")
	})

	err := m.Shutdown(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
	assert.Equal(t, []string{"first"}, stopped)
}

func TestRegister_NilHookIgnored(t *testing.T) {
	m := New(time.Second, nil)
	m.Register("noop", nil)
	require.NoError(t, m.Shutdown(context.Background()))
}
