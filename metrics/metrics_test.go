package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	RegisterCollectors(reg)

	HTTPRequests.WithLabelValues("GET", "200").Inc()
	RepositoryFallbacks.WithLabelValues("get_by_slug").Inc()

	families, err := reg.Gather()
	require.NoError(t, err)
	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "glowblog_http_requests_total")
	assert.Contains(t, names, "glowblog_repository_fallback_total")

	assert.Panics(t, func() { RegisterCollectors(reg) }, "double registration")
	assert.Equal(t, 1, testutil.CollectAndCount(RepositoryFallbacks, "glowblog_repository_fallback_total"))
}
