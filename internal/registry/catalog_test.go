package registry

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type gadget interface{ Name() string }

type widget struct{ Title string }

func (w *widget) Name() string { return w.Title }

func resetCatalog(t *testing.T) {
	t.Helper()
	reset := func() {
		catalogMu.Lock()
		catalog = nil
		loaded, loadErr = nil, nil
		loadOnce = sync.Once{}
		catalogMu.Unlock()
	}
	reset()
	t.Cleanup(reset)
}

func TestLoad_BuildsOnceFromCatalog(t *testing.T) {
	resetCatalog(t)

	Declare(Mark[gadget]("Widget", func() *widget { return &widget{} }))
	require.Len(t, Declared(), 1)

	reg, err := Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"Widget"}, LookupFor[gadget](reg).Labels())

	Declare(Mark[gadget]("Late", func() *widget { return &widget{} }))
	again, err := Load(context.Background())
	require.NoError(t, err)
	require.Same(t, reg, again)
	require.Equal(t, []string{"Widget"}, LookupFor[gadget](again).Labels(), "late markers are not picked up")
}

func TestLoad_CachesBuildError(t *testing.T) {
	resetCatalog(t)

	Declare(Mark[gadget, *widget]("Broken", nil))

	_, err := Load(context.Background())
	require.ErrorIs(t, err, ErrNoConstructor)
	_, err = Load(context.Background())
	require.ErrorIs(t, err, ErrNoConstructor)
}

func TestDeclared_ReturnsCopy(t *testing.T) {
	resetCatalog(t)

	Declare(Mark[gadget]("Widget", func() *widget { return &widget{} }))
	got := Declared()
	got[0].Label = "changed"
	require.Equal(t, "Widget", Declared()[0].Label)
}
