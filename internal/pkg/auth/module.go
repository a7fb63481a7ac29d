package auth

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/loandesk/internal/config"
)

// Module provides authentication primitives via fx.
var Module = fx.Options(
	fx.Provide(newPasswordHasher),
	fx.Provide(newTokenStrategy),
	fx.Provide(newRevoker),
)

func newPasswordHasher(cfg *config.Config) PasswordHasher {
	return NewBcryptHasher(cfg.BcryptCost)
}

type strategyParams struct {
	fx.In

	Config *config.Config
}

func newTokenStrategy(p strategyParams) Strategy {
	opts := Options{TTL: p.Config.TokenTTL}
	if p.Config.TokenStrategy == "hmac" {
		return NewHMACStrategy(p.Config.JWTSecret, opts)
	}
	return NewJWTStrategy(p.Config.JWTSecret, opts)
}

type revokerParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func newRevoker(p revokerParams) (Revoker, error) {
	if p.Config.RedisURL == "" {
		p.Logger.Info("using in-memory token revocation list")
		return NewMemoryRevoker(0, p.Config.TokenTTL), nil
	}

	revoker, err := NewRedisRevoker(context.Background(), p.Config.RedisURL)
	if err != nil {
		return nil, err
	}
	p.Logger.Info("using redis token revocation list")

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return revoker.Close()
		},
	})
	return revoker, nil
}
