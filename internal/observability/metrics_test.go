package observability

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveRequestCounts(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/blogs", "200"))
	ObserveRequest("GET", "/api/blogs", "200", time.Now())
	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/blogs", "200"))
	assert.Equal(t, before+1, after)
}

func TestObserveStoreSplitsByOutcome(t *testing.T) {
	ObserveStore("posts", "find", time.Now(), nil)
	ObserveStore("posts", "find", time.Now(), errors.New("boom"))

	assert.GreaterOrEqual(t, testutil.CollectAndCount(StoreOperationLatency, "blog_store_operation_latency_seconds"), 2)
}
