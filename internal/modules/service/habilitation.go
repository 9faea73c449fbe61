package service

import (
	"context"
	"fmt"
	"time"

	"github.com/opencollect/collect-api/internal/config"
	"github.com/opencollect/collect-api/internal/modules/model"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Roles a habilitation can grant on a survey unit.
const (
	RoleInterviewer = "interviewer"
	RoleReviewer    = "reviewer"
)

// HabilitationChecker is the pilotage call; satisfied by
// httpclient.PilotageClient.
type HabilitationChecker interface {
	CheckHabilitation(ctx context.Context, token, surveyUnitID, role string) (bool, error)
}

// AccessGate decides admission for a caller on a specific survey unit.
// Guest bypasses every check. Reads accept interviewer or reviewer, writes
// accept interviewer only.
type AccessGate interface {
	CheckRead(ctx context.Context, caller *model.Caller, surveyUnitID string) error
	CheckWrite(ctx context.Context, caller *model.Caller, surveyUnitID string) error
}

type accessGate struct {
	pilotage HabilitationChecker
	rdb      *redis.Client
	ttl      time.Duration
	log      *zap.Logger
}

func NewAccessGate(pilotage HabilitationChecker, rdb *redis.Client, cfg *config.Config, log *zap.Logger) AccessGate {
	ttl := time.Duration(cfg.Pilotage.CacheTTLSec) * time.Second
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &accessGate{pilotage: pilotage, rdb: rdb, ttl: ttl, log: log}
}

func (g *accessGate) CheckRead(ctx context.Context, caller *model.Caller, surveyUnitID string) error {
	if caller.IsGuest() {
		return nil
	}
	for _, role := range []string{RoleInterviewer, RoleReviewer} {
		ok, err := g.hasRole(ctx, caller, surveyUnitID, role)
		if err != nil {
			return fmt.Errorf("check habilitation: %w", err)
		}
		if ok {
			return nil
		}
	}
	return ErrForbidden
}

func (g *accessGate) CheckWrite(ctx context.Context, caller *model.Caller, surveyUnitID string) error {
	if caller.IsGuest() {
		return nil
	}
	ok, err := g.hasRole(ctx, caller, surveyUnitID, RoleInterviewer)
	if err != nil {
		return fmt.Errorf("check habilitation: %w", err)
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}

// hasRole consults the redis cache first; pilotage decisions are cached for
// g.ttl. Cache failures degrade to a direct pilotage call.
func (g *accessGate) hasRole(ctx context.Context, caller *model.Caller, surveyUnitID, role string) (bool, error) {
	key := fmt.Sprintf("habilitation:%s:%s:%s", caller.ID, surveyUnitID, role)

	if g.rdb != nil {
		cached, err := g.rdb.Get(ctx, key).Result()
		switch {
		case err == nil:
			return cached == "1", nil
		case err != redis.Nil:
			g.log.Warn("habilitation cache read failed", zap.Error(err), zap.String("key", key))
		}
	}

	ok, err := g.pilotage.CheckHabilitation(ctx, caller.Token, surveyUnitID, role)
	if err != nil {
		return false, err
	}

	if g.rdb != nil {
		val := "0"
		if ok {
			val = "1"
		}
		if err := g.rdb.Set(ctx, key, val, g.ttl).Err(); err != nil {
			g.log.Warn("habilitation cache write failed", zap.Error(err), zap.String("key", key))
		}
	}
	return ok, nil
}
