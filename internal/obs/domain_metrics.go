package obs

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// CartMutationsTotal counts cart store operation outcomes.
	CartMutationsTotal *prometheus.CounterVec
	// WishlistMutationsTotal counts wishlist store operation outcomes.
	WishlistMutationsTotal *prometheus.CounterVec
	// StateDocFailuresTotal counts persistence adapter failures per namespace.
	StateDocFailuresTotal *prometheus.CounterVec
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		CartMutationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_mutations_total",
			Help:      "Count of cart store mutation outcomes.",
		}, []string{"op", "result"})
		WishlistMutationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wishlist_mutations_total",
			Help:      "Count of wishlist store mutation outcomes.",
		}, []string{"op", "result"})
		StateDocFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "state_doc_failures_total",
			Help:      "Count of state document save/load failures by namespace.",
		}, []string{"ns", "op"})

		mustRegisterCollector(reg, CartMutationsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				CartMutationsTotal = v
			}
		})
		mustRegisterCollector(reg, WishlistMutationsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				WishlistMutationsTotal = v
			}
		})
		mustRegisterCollector(reg, StateDocFailuresTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				StateDocFailuresTotal = v
			}
		})
	})
}

// CountCartMutation records a cart operation outcome if metrics are registered.
func CountCartMutation(op, result string) {
	if CartMutationsTotal != nil {
		CartMutationsTotal.WithLabelValues(op, result).Inc()
	}
}

// CountWishlistMutation records a wishlist operation outcome if metrics are registered.
func CountWishlistMutation(op, result string) {
	if WishlistMutationsTotal != nil {
		WishlistMutationsTotal.WithLabelValues(op, result).Inc()
	}
}

// CountStateDocFailure records a persistence failure if metrics are registered.
func CountStateDocFailure(ns, op string) {
	if StateDocFailuresTotal != nil {
		StateDocFailuresTotal.WithLabelValues(ns, op).Inc()
	}
}

func mustRegisterCollector(reg prometheus.Registerer, collector prometheus.Collector, reuse func(prometheus.Collector)) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if reuse != nil {
				reuse(are.ExistingCollector)
			}
			return
		}
		panic(fmt.Errorf("register domain metric: %w", err))
	}
}
