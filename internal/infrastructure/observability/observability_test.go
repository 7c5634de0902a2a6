package observability

import (
	"testing"

	"github.com/Zhima-Mochi/streetsmart/internal/infrastructure/observability/prometrics"
	"github.com/Zhima-Mochi/streetsmart/internal/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithRegistry_RegistersCatalogue(t *testing.T) {
	reg := prometheus.NewRegistry()
	tel := NewWithRegistry(nil, nil, prometrics.New(reg, "", ""))

	tel.Metrics().Counter(observability.MPaymentOutcomes).
		Bind(observability.L("outcome", "success")).Add(1)
	tel.Metrics().Histogram(observability.MUsecaseDuration).
		Observe(0.1, observability.L("use_case", "SubmitPayment"))

	count, err := testutil.GatherAndCount(reg, string(observability.MPaymentOutcomes), string(observability.MUsecaseDuration))
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	for _, spec := range observability.Catalogue {
		switch spec.Kind {
		case observability.KindCounter:
			assert.NotEqual(t, observability.NopCounter(), tel.Metrics().Counter(spec.Key), spec.Key)
		case observability.KindHistogram:
			assert.NotEqual(t, observability.NopHistogram(), tel.Metrics().Histogram(spec.Key), spec.Key)
		}
	}
	assert.Equal(t, observability.NopCounter(), tel.Metrics().Counter("unknown_total"))
}
