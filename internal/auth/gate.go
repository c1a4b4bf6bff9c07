package auth

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"

	"github.com/rbac-admin/rbac-admin/internal/apperr"
)

// Decision label values of the access decision counter.
const (
	DecisionAllow = "allow"
	DecisionDeny  = "deny"
	DecisionError = "error"
)

var decisions = promauto.NewCounterVec( //nolint:gochecknoglobals
	prometheus.CounterOpts{
		Name: "rbac_access_decisions_total",
		Help: "Number of access gate decisions, differentiated by permission and outcome.",
	},
	[]string{"permission", "decision"},
)

// Gate checks a principal against a required permission before a service operation runs.
type Gate struct{}

// NewGate creates the access gate.
func NewGate() *Gate {
	return &Gate{}
}

// Authorize returns nil when the principal holds permission and an *apperr.AuthorizationError
// otherwise. A missing principal is denied. Resolver failures are returned unchanged and never allow.
func (g *Gate) Authorize(ctx context.Context, p *Principal, permission string) error {
	if p == nil {
		decisions.WithLabelValues(permission, DecisionDeny).Inc()
		log.Warn().Str("permission", permission).Msg("access denied: no principal")

		return &apperr.AuthorizationError{Permission: permission}
	}

	ok, err := p.Can(ctx, permission)
	if err != nil {
		decisions.WithLabelValues(permission, DecisionError).Inc()
		return err
	}

	if !ok {
		decisions.WithLabelValues(permission, DecisionDeny).Inc()
		log.Warn().Uint64("user_id", p.UserID).Str("permission", permission).Msg("access denied")

		return &apperr.AuthorizationError{Permission: permission, UserID: p.UserID}
	}

	decisions.WithLabelValues(permission, DecisionAllow).Inc()

	return nil
}

// DecisionCounter exposes the access decision counter.
func DecisionCounter() *prometheus.CounterVec {
	return decisions
}
