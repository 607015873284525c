package apiclient

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCached_ReadThrough(t *testing.T) {
	c := NewListCache()
	calls := 0
	fetch := func() ([]string, error) {
		calls++
		return []string{"a"}, nil
	}

	for i := 0; i < 3; i++ {
		v, err := cached(c, TagProducts, "page=1", fetch)
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, v)
	}
	assert.Equal(t, 1, calls)

	c.Invalidate(TagProducts)
	_, err := cached(c, TagProducts, "page=1", fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestCached_ErrorsNotStored(t *testing.T) {
	c := NewListCache()
	_, err := cached(c, TagOrders, "", func() (int, error) { return 0, errors.New("boom") })
	require.Error(t, err)
	assert.Equal(t, 0, c.Len(TagOrders))
}

func TestCached_InvalidationDuringFetchDropsResult(t *testing.T) {
	c := NewListCache()
	_, err := cached(c, TagCategories, "all", func() (string, error) {
		c.Invalidate(TagCategories)
		return "stale", nil
	})
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len(TagCategories))
}

func TestInvalidate_OnlyTouchesTag(t *testing.T) {
	c := NewListCache()
	_, _ = cached(c, TagCategories, "all", func() (int, error) { return 1, nil })
	_, _ = cached(c, TagProducts, "", func() (int, error) { return 2, nil })

	c.Invalidate(TagProducts)
	assert.Equal(t, 1, c.Len(TagCategories))
	assert.Equal(t, 0, c.Len(TagProducts))
}

func TestSubscribe_Unsubscribe(t *testing.T) {
	c := NewListCache()
	hits := 0
	stop := c.Subscribe(TagOrders, func(Tag) { hits++ })

	c.Invalidate(TagOrders)
	c.Invalidate(TagProducts)
	stop()
	c.Invalidate(TagOrders)
	assert.Equal(t, 1, hits)
}

func TestInvalidateAll(t *testing.T) {
	c := NewListCache()
	_, _ = cached(c, TagCategories, "all", func() (int, error) { return 1, nil })
	_, _ = cached(c, TagProducts, "q=rose", func() (int, error) { return 2, nil })
	var got []Tag
	c.Subscribe(TagOrders, func(tag Tag) { got = append(got, tag) })

	c.InvalidateAll()
	assert.Equal(t, 0, c.Len(TagCategories))
	assert.Equal(t, 0, c.Len(TagProducts))
	assert.Equal(t, []Tag{TagOrders}, got)
}
