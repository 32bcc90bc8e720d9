package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrderStatus(t *testing.T) {
	for _, s := range OrderStatuses {
		parsed, err := ParseOrderStatus(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := ParseOrderStatus("baking")
	assert.Error(t, err)
}

func TestOrderStatusColor(t *testing.T) {
	cases := map[OrderStatus]string{
		StatusPending:   "yellow",
		StatusConfirmed: "blue",
		StatusPreparing: "orange",
		StatusReady:     "purple",
		StatusDelivered: "green",
		StatusCancelled: "red",
	}
	for status, color := range cases {
		assert.Equal(t, color, status.Color())
	}

	assert.Equal(t, "gray", OrderStatus("baking").Color())
}

func TestResolveExtrasDropsUnknownIDs(t *testing.T) {
	catalog := []Extra{
		{ID: "e1", Name: "Cheese", Price: 2},
		{ID: "e2", Name: "Mushrooms", Price: 1.5},
	}

	resolved := ResolveExtras(catalog, []string{"e2", "nope", "e1"})

	require.Len(t, resolved, 2)
	assert.Equal(t, "e2", resolved[0].ID)
	assert.Equal(t, "e1", resolved[1].ID)
}
