package async_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkhub/internal/pkg/async"
)

func TestPoolExecute(t *testing.T) {
	pool := async.NewPool(3)

	tasks := []async.Task{
		{Name: "a", Execute: func() (interface{}, error) { return 1, nil }},
		{Name: "b", Execute: func() (interface{}, error) { return "two", nil }},
		{Name: "c", Execute: func() (interface{}, error) { return nil, errors.New("boom") }},
	}

	results := pool.Execute(context.Background(), tasks)

	require.Len(t, results, 3)
	assert.Equal(t, 1, results["a"].Data)
	assert.Equal(t, "two", results["b"].Data)
	assert.EqualError(t, results["c"].Err, "boom")
}

func TestPoolMoreTasksThanWorkers(t *testing.T) {
	pool := async.NewPool(2)

	var tasks []async.Task
	for i := 0; i < 10; i++ {
		name := string(rune('a' + i))
		value := i
		tasks = append(tasks, async.Task{
			Name:    name,
			Execute: func() (interface{}, error) { return value, nil },
		})
	}

	results := pool.Execute(context.Background(), tasks)
	require.Len(t, results, 10)
	assert.Equal(t, 7, results["h"].Data)
}

func TestFirstError(t *testing.T) {
	t.Run("nil when everything succeeded", func(t *testing.T) {
		results := map[string]async.Result{
			"a": {Name: "a", Data: 1},
		}
		assert.NoError(t, async.FirstError(results))
	})

	t.Run("surfaces a task error", func(t *testing.T) {
		results := map[string]async.Result{
			"a": {Name: "a", Data: 1},
			"b": {Name: "b", Err: errors.New("boom")},
		}
		assert.Error(t, async.FirstError(results))
	})
}
