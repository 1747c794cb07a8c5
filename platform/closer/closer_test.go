package closer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloseAllReverseOrder(t *testing.T) {
	t.Parallel()

	c := New()
	var order []string
	c.AddNamed("first", func(context.Context) error {
		order = append(order, "first")
		return nil
	})
	c.AddNamed("second", func(context.Context) error {
		order = append(order, "second")
		return errors.New("boom")
	})
	c.AddNamed("third", func(context.Context) error {
		order = append(order, "third")
		return nil
	})

	err := c.CloseAll(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "second: boom")
	assert.Equal(t, []string{"third", "second", "first"}, order)

	require.NoError(t, c.CloseAll(context.Background()))
	assert.Len(t, order, 3)
}
