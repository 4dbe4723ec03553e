package bus

import (
	"context"
	"errors"
	"testing"

	"scholargraph/pkg/observability"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type echoQuery struct {
	Text string
}

func (q echoQuery) Validate() error {
	if q.Text == "" {
		return errors.New("text is required")
	}
	return nil
}

func echoHandler() QueryHandler {
	return QueryHandlerFunc(func(ctx context.Context, query Query) (interface{}, error) {
		q := query.(echoQuery)
		if q.Text == "fail" {
			return nil, errors.New("handler failed")
		}
		return q.Text, nil
	})
}

func TestAsk(t *testing.T) {
	metrics := observability.NewCollector("test")
	b := NewQueryBus(NewLoggingMiddleware(zap.NewNop()), NewMetricsMiddleware(metrics))
	require.NoError(t, b.Register(echoQuery{}, echoHandler()))

	result, err := b.Ask(context.Background(), echoQuery{Text: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hi", result)

	_, err = b.Ask(context.Background(), echoQuery{Text: "fail"})
	assert.EqualError(t, err, "handler failed")

	_, err = b.Ask(context.Background(), echoQuery{})
	assert.EqualError(t, err, "text is required")

	assert.Equal(t, 2, testutil.CollectAndCount(metrics.QueryDuration))
}

func TestAskTyped(t *testing.T) {
	b := NewQueryBus()
	require.NoError(t, b.Register(echoQuery{}, echoHandler()))

	text, err := Ask[string](context.Background(), b, echoQuery{Text: "typed"})
	require.NoError(t, err)
	assert.Equal(t, "typed", text)

	_, err = Ask[int](context.Background(), b, echoQuery{Text: "typed"})
	assert.ErrorContains(t, err, "returned string")
}

func TestQueryRegistration(t *testing.T) {
	b := NewQueryBus()
	require.NoError(t, b.Register(echoQuery{}, echoHandler()))
	assert.Error(t, b.Register(echoQuery{}, echoHandler()))

	_, err := NewQueryBus().Ask(context.Background(), echoQuery{Text: "x"})
	assert.ErrorIs(t, err, ErrHandlerNotFound)
}
