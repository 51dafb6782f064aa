package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	UpstreamRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "supaco", Name: "upstream_requests_total", Help: "Upstream requests by gateway and outcome",
	}, []string{"gateway", "outcome"})
	TokenRefreshes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "supaco", Name: "token_refreshes_total", Help: "SUAP token refresh attempts by outcome",
	}, []string{"outcome"})
	ForcedLogouts = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "supaco", Name: "forced_logouts_total", Help: "Sessions dropped after an unrecoverable 401",
	})
	CacheLoads = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "supaco", Name: "cache_loads_total", Help: "Startup cache loads by record set and outcome",
	}, []string{"record", "outcome"})
)

func init() {
	prometheus.MustRegister(UpstreamRequests, TokenRefreshes, ForcedLogouts, CacheLoads)
}

func Handler() http.Handler { return promhttp.Handler() }

func ObserveRequest(gateway string, ok bool) {
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	UpstreamRequests.WithLabelValues(gateway, outcome).Inc()
}
