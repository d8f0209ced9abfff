package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"

	plantmetrics "sunflower/internal/plants/metrics"
)

func TestNewRegistryAcceptsDomainMetrics(t *testing.T) {
	reg := NewRegistry()
	m := plantmetrics.New(reg)
	m.IncrementRefreshesCanceled()

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	require.True(t, names["go_goroutines"])
	require.True(t, names["sunflower_refreshes_superseded_total"])
}
