package bootstrap

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

// ValidateApp type-checks the graph without running constructors, so no
// environment or redis is needed.
func TestModuleGraph(t *testing.T) {
	require.NoError(t, fx.ValidateApp(Module, fx.NopLogger))
}
