// AngelaMos | 2026
// service.go

package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/templates/inventory-api/internal/config"
	"github.com/carterperez-dev/templates/inventory-api/internal/core"
)

const (
	OutcomeDeployed     = "deployed"
	OutcomeDuplicate    = "duplicate"
	OutcomeBadSignature = "bad_signature"
	OutcomeWrongBranch  = "wrong_branch"
	OutcomeBadPayload   = "bad_payload"
	OutcomeFailed       = "failed"

	deliveryKeyPrefix = "webhook:delivery:"
)

var (
	ErrInvalidSignature = errors.New("webhook signature verification failed")
	ErrBranchMismatch   = errors.New("pushed branch is not the target branch")
	ErrInvalidPayload   = errors.New("invalid webhook payload")
)

// DeliveryClaimer remembers delivery ids for a while so redelivered
// events are acknowledged without a second deploy.
type DeliveryClaimer interface {
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

type EventRecorder interface {
	WebhookEvent(outcome string)
}

type pushEvent struct {
	Ref string `json:"ref"`
}

type Service struct {
	secret   string
	ref      string
	ttl      time.Duration
	deployer Deployer
	claimer  DeliveryClaimer
	events   EventRecorder
}

func NewService(
	cfg config.WebhookConfig,
	deployer Deployer,
	claimer DeliveryClaimer,
	events EventRecorder,
) *Service {
	return &Service{
		secret:   cfg.Secret,
		ref:      "refs/heads/" + cfg.Branch,
		ttl:      cfg.DeliveryTTL,
		deployer: deployer,
		claimer:  claimer,
		events:   events,
	}
}

// Handle verifies and processes one push delivery and returns its
// outcome. claimer may be nil, in which case every delivery deploys.
func (s *Service) Handle(
	ctx context.Context,
	payload []byte,
	signature, deliveryID string,
) (string, error) {
	ctx, span := core.StartSpan(ctx, "webhook.Handle",
		attribute.String("webhook.delivery", deliveryID),
	)
	defer span.End()

	outcome, err := s.handle(ctx, payload, signature, deliveryID)
	span.SetAttributes(attribute.String("webhook.outcome", outcome))
	if s.events != nil {
		s.events.WebhookEvent(outcome)
	}
	if outcome == OutcomeFailed {
		core.SetSpanError(ctx, err)
	}

	return outcome, err
}

func (s *Service) handle(
	ctx context.Context,
	payload []byte,
	signature, deliveryID string,
) (string, error) {
	if !VerifySignature(payload, signature, s.secret) {
		slog.WarnContext(ctx, "webhook signature verification failed",
			"delivery", deliveryID,
		)
		return OutcomeBadSignature, ErrInvalidSignature
	}

	var event pushEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return OutcomeBadPayload, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	if event.Ref != s.ref {
		slog.InfoContext(ctx, "webhook push ignored",
			"ref", event.Ref,
			"want", s.ref,
		)
		return OutcomeWrongBranch, ErrBranchMismatch
	}

	key := deliveryKeyPrefix + deliveryID
	claimed := false
	if s.claimer != nil && deliveryID != "" {
		ok, err := s.claimer.Claim(ctx, key, s.ttl)
		switch {
		case err != nil:
			slog.WarnContext(ctx, "webhook dedupe unavailable, deploying anyway",
				"delivery", deliveryID,
				"error", err,
			)
		case !ok:
			return OutcomeDuplicate, nil
		default:
			claimed = true
		}
	}

	if err := s.deployer.Deploy(ctx); err != nil {
		if claimed {
			// let a redelivery retry the deploy
			if rerr := s.claimer.Release(context.WithoutCancel(ctx), key); rerr != nil {
				slog.WarnContext(ctx, "release webhook delivery", "error", rerr)
			}
		}
		slog.ErrorContext(ctx, "webhook deploy failed",
			"delivery", deliveryID,
			"error", err,
		)
		return OutcomeFailed, fmt.Errorf("deploy: %w", err)
	}

	slog.InfoContext(ctx, "webhook deploy finished", "delivery", deliveryID)
	return OutcomeDeployed, nil
}
