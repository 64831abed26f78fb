package registrysource_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embedlang/macrolang/registry"
	"github.com/embedlang/macrolang/registrysource"
)

type fakeSource struct {
	kind      registry.BatchKind
	extension string
	payload   []byte
	err       error
}

func (f fakeSource) Kind() registry.BatchKind { return f.kind }
func (f fakeSource) Extension() string        { return f.extension }
func (f fakeSource) Fetch(context.Context) ([]byte, error) {
	return f.payload, f.err
}

func TestPullInstallsFetchedBatch(t *testing.T) {
	mgr := registry.NewManager()
	src := fakeSource{
		kind:      registry.BatchFunctions,
		extension: "core",
		payload:   []byte(`[{"name":"get","args":[{"name":"key","required":true}]}]`),
	}

	stats, err := registrysource.Pull(context.Background(), mgr, src)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Succeeded)
	assert.Equal(t, 1, mgr.FunctionCount())
}

func TestPullTreatsNotFoundAsNoOp(t *testing.T) {
	mgr := registry.NewManager()
	src := fakeSource{
		kind:      registry.BatchEnums,
		extension: "core",
		err:       registrysource.ErrNotFound,
	}

	stats, err := registrysource.Pull(context.Background(), mgr, src)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Attempted)
	assert.Equal(t, 0, mgr.EnumCount())
}
