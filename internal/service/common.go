package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/school-portal/internal/domain"
	"github.com/spec-kit/school-portal/internal/events"
	apperrors "github.com/spec-kit/school-portal/pkg/util"
)

func requireAdmin(actor domain.Session) error {
	if actor.Role != domain.SessionRoleAdmin {
		return apperrors.NewForbidden("admin role required")
	}
	return nil
}

func actorOf(session domain.Session) events.Actor {
	return events.Actor{Role: session.Role, Name: session.DisplayName}
}

func blank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}

// publish hands an event to the dispatcher when one is configured.
func publish(ctx context.Context, dispatcher events.Dispatcher, logger *zap.Logger, event events.Event) {
	if dispatcher == nil {
		return
	}
	if err := dispatcher.Publish(ctx, event); err != nil {
		logger.Warn("publish event", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}

func loggerOrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
