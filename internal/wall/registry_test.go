package wall

import (
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordwall/backend/internal/model"
)

func TestRegistry_Create(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	registry := NewRegistry(Config{Clock: clock})

	w := registry.Create()

	assert.NotEmpty(t, w.ID())
	assert.Equal(t, "", w.Name())
	assert.True(t, w.Active())
	assert.Equal(t, clock.Now(), w.CreatedAt())
	assert.Len(t, w.Hash(), 4)
	assert.Equal(t, 1, registry.Len())
}

func TestRegistry_Scenario(t *testing.T) {
	registry := NewRegistry(Config{})

	a := registry.Create()

	walls := registry.List()
	require.Len(t, walls, 1)
	assert.Same(t, a, walls[0])

	found, err := registry.FindByID(a.ID())
	require.NoError(t, err)
	found.SetName("Team Retro")

	again, err := registry.FindByID(a.ID())
	require.NoError(t, err)
	assert.Equal(t, "Team Retro", again.Name())

	_, err = registry.FindByID("nonexistent")
	assert.ErrorIs(t, err, model.ErrWallNotFound)
}

func TestRegistry_FindByHash(t *testing.T) {
	registry := NewRegistry(Config{})

	t.Run("empty registry", func(t *testing.T) {
		_, err := registry.FindByHash("0000")
		assert.ErrorIs(t, err, model.ErrWallNotFound)
	})

	t.Run("returns first match in insertion order", func(t *testing.T) {
		var walls []*model.Wall
		for i := 0; i < 20; i++ {
			walls = append(walls, registry.Create())
		}

		for _, w := range walls {
			found, err := registry.FindByHash(w.Hash())
			require.NoError(t, err)
			assert.Equal(t, w.Hash(), found.Hash())

			// On collision the earliest wall with that hash wins.
			for _, earlier := range walls {
				if earlier.Hash() == w.Hash() {
					assert.Same(t, earlier, found)
					break
				}
			}
		}
	})
}

func TestRegistry_ListIsSnapshot(t *testing.T) {
	registry := NewRegistry(Config{})
	registry.Create()

	walls := registry.List()
	walls[0] = nil

	assert.NotNil(t, registry.List()[0])
}

func TestRegistry_OnCreate(t *testing.T) {
	registry := NewRegistry(Config{})

	var created []*model.Wall
	registry.SetOnCreate(func(w *model.Wall) {
		created = append(created, w)
	})

	w := registry.Create()
	require.Len(t, created, 1)
	assert.Same(t, w, created[0])
}

func TestRegistry_ConcurrentCreate(t *testing.T) {
	registry := NewRegistry(Config{})

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := registry.Create()
			_, _ = registry.FindByID(w.ID())
			_ = registry.List()
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, registry.Len())
}

func TestRegistryProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("list length equals number of creates and ids are unique", prop.ForAll(
		func(n int) bool {
			registry := NewRegistry(Config{})
			for i := 0; i < n; i++ {
				registry.Create()
			}

			walls := registry.List()
			if len(walls) != n {
				return false
			}

			seen := make(map[string]bool, n)
			for _, w := range walls {
				if seen[w.ID()] {
					return false
				}
				seen[w.ID()] = true
			}
			return true
		},
		gen.IntRange(0, 50),
	))

	properties.Property("find by id returns the created wall", prop.ForAll(
		func(n int) bool {
			registry := NewRegistry(Config{})
			var walls []*model.Wall
			for i := 0; i < n; i++ {
				walls = append(walls, registry.Create())
			}

			for _, w := range walls {
				found, err := registry.FindByID(w.ID())
				if err != nil || found != w {
					return false
				}
			}
			_, err := registry.FindByID("nonexistent")
			return err == model.ErrWallNotFound
		},
		gen.IntRange(1, 30),
	))

	properties.Property("set name is visible to a later get", prop.ForAll(
		func(name string) bool {
			registry := NewRegistry(Config{})
			w := registry.Create()

			found, err := registry.FindByID(w.ID())
			if err != nil {
				return false
			}
			found.SetName(name)

			again, err := registry.FindByID(w.ID())
			return err == nil && again.Name() == name
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
