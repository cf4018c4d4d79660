package spotify

import (
	"context"
	"errors"
	"testing"

	"github.com/desertthunder/spotq/internal/cache"
	tu "github.com/desertthunder/spotq/internal/testing"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("Counts Requests And Lookups", func(t *testing.T) {
		m := NewMetrics(prometheus.NewRegistry())
		mt := &tu.MockTransport{GetResponse: tu.OK("{}")}
		c := WithToken(NewToken("abc"), quietLogger(), WithCache(cache.NewMemory()), WithTransport(mt), WithMetrics(m))

		for range 3 {
			if _, err := c.Query(ctx, "me"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		}

		if got := testutil.ToFloat64(m.requestsTotal.WithLabelValues("query", "success")); got != 1 {
			t.Errorf("expected 1 successful query, got %v", got)
		}
		if got := testutil.ToFloat64(m.cacheTotal.WithLabelValues("query", "hit")); got != 2 {
			t.Errorf("expected 2 hits, got %v", got)
		}
		if got := testutil.ToFloat64(m.cacheTotal.WithLabelValues("query", "miss")); got != 1 {
			t.Errorf("expected 1 miss, got %v", got)
		}
	})

	t.Run("Counts Failures", func(t *testing.T) {
		m := NewMetrics(prometheus.NewRegistry())
		mt := &tu.MockTransport{GetErr: errors.New("boom"), PostErr: errors.New("boom")}
		c := WithClient("id", "secret", quietLogger(), WithTransport(mt), WithMetrics(m))

		_, _ = c.Query(ctx, "me")
		_, _ = c.AppToken(ctx)

		if got := testutil.ToFloat64(m.requestsTotal.WithLabelValues("query", "missing_token")); got != 1 {
			t.Errorf("expected 1 missing token, got %v", got)
		}
		if got := testutil.ToFloat64(m.requestsTotal.WithLabelValues("token", "failure")); got != 1 {
			t.Errorf("expected 1 token failure, got %v", got)
		}
	})

	t.Run("Nil Metrics", func(t *testing.T) {
		var m *Metrics
		m.request("query", "success")
		m.lookup("query", true)
	})
}
