package main

import (
	"fmt"
	"os"

	"hrportal/backend/foundation/web"
	"hrportal/backend/internal/auth"
	"hrportal/backend/internal/commands"
	"hrportal/backend/internal/pkg/config"
	"hrportal/backend/internal/pkg/repository/postgresql"
	"hrportal/backend/internal/router"

	"github.com/ardanlabs/conf"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	if err := run(log); err != nil {
		log.WithError(err).Fatal("startup failed")
	}
}

func run(log *logrus.Logger) error {
	var flags struct {
		Web struct {
			Port string `conf:"default::8080"`
		}
		DB struct {
			Verbose bool `conf:"default:false"`
		}
	}

	if err := conf.Parse(os.Args[1:], "HRPORTAL", &flags); err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			usage, err := conf.Usage("HRPORTAL", &flags)
			if err != nil {
				return errors.Wrap(err, "generating usage")
			}
			fmt.Println(usage)
			return nil
		}
		return errors.Wrap(err, "parsing flags")
	}

	cfg, err := config.NewConfig()
	if err != nil {
		return errors.Wrap(err, "loading config")
	}

	postgresDB := postgresql.New(postgresql.Config{
		Username:   cfg.DBUsername,
		Password:   cfg.DBPassword,
		Host:       cfg.DBHost,
		Port:       cfg.DBPort,
		Name:       cfg.DBName,
		DisableTLS: cfg.DisableTLS,
		Verbose:    flags.DB.Verbose,
	})
	defer postgresDB.Close()

	commands.MigrateUP(postgresDB)

	var redisDB *redis.Client
	if cfg.RedisAddr != "" {
		redisDB = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer redisDB.Close()
	}

	authenticator := auth.New(cfg.JWTKey)

	app := web.NewApp()

	log.WithField("port", flags.Web.Port).Info("starting api")

	return router.NewRouter(
		app,
		postgresDB,
		redisDB,
		flags.Web.Port,
		authenticator,
		cfg.MediaPath,
		cfg.EventChannel,
		log,
	).Init()
}
