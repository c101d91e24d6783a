package platform_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robbyt/go-exprgraph/engines/mocks"
	"github.com/robbyt/go-exprgraph/platform"
)

func TestRegistryRegisterAndCreate(t *testing.T) {
	t.Parallel()
	registry := platform.NewRegistry()
	engine := new(mocks.Engine)
	registry.Register("noop", func() platform.Engine { return engine })

	got, err := registry.NewEngine("noop")
	require.NoError(t, err, "NewEngine should succeed for a registered language")
	assert.Same(t, engine, got, "NewEngine should return the factory's instance")
}

func TestRegistryUnknownLanguage(t *testing.T) {
	t.Parallel()
	registry := platform.NewRegistry()
	registry.Register("noop", func() platform.Engine { return new(mocks.Engine) })

	got, err := registry.NewEngine("nonexistent")
	require.Error(t, err, "NewEngine should fail for an unregistered language")
	assert.ErrorIs(t, err, platform.ErrUnknownLanguage)
	assert.Nil(t, got, "no default engine should be returned on a lookup miss")
}

func TestRegistryReplaceByName(t *testing.T) {
	t.Parallel()
	registry := platform.NewRegistry()
	first := new(mocks.Engine)
	second := new(mocks.Engine)
	registry.Register("noop", func() platform.Engine { return first })
	registry.Register("noop", func() platform.Engine { return second })

	got, err := registry.NewEngine("noop")
	require.NoError(t, err)
	assert.Same(t, second, got, "re-registration should replace the factory")
	assert.Equal(t, []string{"noop"}, registry.Languages(),
		"re-registration should not duplicate the name")
}

func TestRegistryLanguagesOrder(t *testing.T) {
	t.Parallel()
	registry := platform.NewRegistry()
	factory := func() platform.Engine { return new(mocks.Engine) }
	registry.Register("gamma", factory)
	registry.Register("alpha", factory)
	registry.Register("beta", factory)

	assert.Equal(t, []string{"gamma", "alpha", "beta"}, registry.Languages(),
		"Languages should report registration order, not alphabetic order")

	// Replacing keeps the original position.
	registry.Register("alpha", factory)
	assert.Equal(t, []string{"gamma", "alpha", "beta"}, registry.Languages())
}

func TestRegistryIgnoresInvalidRegistration(t *testing.T) {
	t.Parallel()
	registry := platform.NewRegistry()
	registry.Register("", func() platform.Engine { return new(mocks.Engine) })
	registry.Register("nil-factory", nil)

	assert.Empty(t, registry.Languages())
}

func TestRegistryConcurrentAccess(t *testing.T) {
	t.Parallel()
	registry := platform.NewRegistry()
	factory := func() platform.Engine { return new(mocks.Engine) }

	const writers = 16
	var wg sync.WaitGroup
	for i := range writers {
		wg.Add(2)
		go func() {
			defer wg.Done()
			registry.Register(fmt.Sprintf("lang-%d", i), factory)
		}()
		go func() {
			defer wg.Done()
			// Readers must never observe a half-written entry: every name
			// returned by Languages must already be creatable.
			for _, name := range registry.Languages() {
				engine, err := registry.NewEngine(name)
				assert.NoError(t, err, "listed language %q should be creatable", name)
				assert.NotNil(t, engine)
			}
		}()
	}
	wg.Wait()

	assert.Len(t, registry.Languages(), writers)
}

func TestDefaultRegistryWrappers(t *testing.T) {
	t.Parallel()
	engine := new(mocks.Engine)
	platform.RegisterEngine("registry-test-lang", func() platform.Engine { return engine })

	assert.Contains(t, platform.RegisteredEngines(), "registry-test-lang")

	got, err := platform.NewEngine("registry-test-lang")
	require.NoError(t, err)
	assert.Same(t, engine, got)
}
