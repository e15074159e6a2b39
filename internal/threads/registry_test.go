package threads

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryPutHasDelete(t *testing.T) {
	r := NewRegistry()

	assert.False(t, r.Has("th_1"))
	r.Put("th_1", "Project kickoff")
	assert.True(t, r.Has("th_1"))

	assert.True(t, r.Delete("th_1"))
	assert.False(t, r.Has("th_1"))
	assert.False(t, r.Delete("th_1"))
}

func TestRegistryListKeepsCreationOrder(t *testing.T) {
	r := NewRegistry()
	r.Put("th_1", "first")
	r.Put("th_2", "second")
	r.Put("th_3", "third")

	list := r.List()
	require.Len(t, list, 3)
	assert.Equal(t, []Entry{
		{ID: "th_1", Name: "first"},
		{ID: "th_2", Name: "second"},
		{ID: "th_3", Name: "third"},
	}, list)

	r.Delete("th_2")
	list = r.List()
	require.Len(t, list, 2)
	assert.Equal(t, "th_1", list[0].ID)
	assert.Equal(t, "th_3", list[1].ID)
}

func TestRegistryPutRenamesWithoutReordering(t *testing.T) {
	r := NewRegistry()
	r.Put("th_1", "first")
	r.Put("th_2", "second")
	r.Put("th_1", "renamed")

	list := r.List()
	require.Len(t, list, 2)
	assert.Equal(t, Entry{ID: "th_1", Name: "renamed"}, list[0])
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := NewRegistry()

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("th_%d", i)
			r.Put(id, "thread")
			r.Has(id)
		}(i)
	}
	wg.Wait()

	assert.Len(t, r.List(), n)
}
