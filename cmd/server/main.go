// @title        Catalog API
// @version      1.0
// @description  Books, films, fan articles, customers and publishers behind JWT authentication.
// @BasePath     /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the token.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/catalogshop/catalog-api/internal/api"
	"github.com/catalogshop/catalog-api/internal/api/handler"
	"github.com/catalogshop/catalog-api/internal/core/ports"
	"github.com/catalogshop/catalog-api/internal/core/service"
	mongorepo "github.com/catalogshop/catalog-api/internal/infrastructure/db/mongo"
	rediscache "github.com/catalogshop/catalog-api/internal/infrastructure/db/redis"
	"github.com/catalogshop/catalog-api/internal/infrastructure/iam"
	"github.com/catalogshop/catalog-api/internal/infrastructure/jws"
	"github.com/catalogshop/catalog-api/internal/infrastructure/mail"
	"github.com/catalogshop/catalog-api/internal/infrastructure/queue"
	"github.com/catalogshop/catalog-api/internal/pkg/config"
	"github.com/catalogshop/catalog-api/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "catalog-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Stores ---
	mongoClient, db, err := mongorepo.Connect(ctx, mongorepo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "catalog-api",
	})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(dctx)
	}()

	checks := []handler.DependencyCheck{handler.MongoCheck(db)}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = rediscache.Connect(ctx, rediscache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer rdb.Close()
		checks = append(checks, handler.RedisCheck(rdb))
	}

	// --- Identity ---
	session, err := newSession(cfg, log)
	if err != nil {
		return err
	}

	// --- Mail ---
	var sender queue.Sender = mail.NewLogSender(log)
	if cfg.Mail.Host != "" {
		smtp, err := mail.NewSMTPSender(mail.Config{
			Host:     cfg.Mail.Host,
			Port:     cfg.Mail.Port,
			Username: cfg.Mail.Username,
			Password: cfg.Mail.Password,
			From:     cfg.Mail.From,
			TLS:      cfg.Mail.TLS,
		}, log)
		if err != nil {
			return err
		}
		sender = smtp
	}
	dispatcher := queue.NewDispatcher(cfg.Mail.Workers, cfg.Mail.Queue, sender, log)
	mailCtx, stopMail := context.WithCancel(context.Background())
	dispatcher.Start(mailCtx)
	defer func() {
		stopMail()
		dispatcher.Wait()
	}()

	// --- Catalogs ---
	services, err := api.NewServices(ctx, api.Backends{
		DB:       db,
		Redis:    rdb,
		CacheTTL: cfg.Redis.CacheTTL,
		Notifier: dispatcher,
		NotifyTo: cfg.Mail.NotifyTo,
		Log:      log,
	})
	if err != nil {
		return err
	}

	e := api.NewRouter(api.RouterConfig{
		Session:  session,
		Services: services,
		Checks:   checks,
		Log:      log,
	})

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Bool("tls", cfg.TLSEnabled()).Msg("listening")
		if cfg.TLSEnabled() {
			errCh <- e.StartTLS(addr, cfg.TLSCertFile, cfg.TLSKeyFile)
			return
		}
		errCh <- e.Start(addr)
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(sctx)
}

// newSession loads the key material and directories and builds the traced
// token session.
func newSession(cfg *config.Config, log zerolog.Logger) (ports.AuthSession, error) {
	keys, err := jws.LoadKeys(cfg.JWT.Algorithm, cfg.JWT.KeyFiles())
	if err != nil {
		return nil, err
	}
	users, err := iam.LoadUsers(cfg.IAM.UsersFile)
	if err != nil {
		return nil, err
	}
	roles, err := iam.LoadRoles(cfg.IAM.RolesFile)
	if err != nil {
		return nil, err
	}

	iamService, err := service.NewIamService(jws.NewCodec(cfg.JWT.Algorithm, keys), users, roles, service.IamConfig{
		Issuer:   cfg.JWT.Issuer,
		TTL:      cfg.JWT.TTL,
		Bearer:   cfg.JWT.Bearer,
		Realm:    cfg.JWT.Realm,
		HashCost: cfg.IAM.HashCost,
	})
	if err != nil {
		return nil, err
	}
	return service.NewTracedSession(iamService, log), nil
}
