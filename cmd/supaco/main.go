package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/kellyson71/electron-supaco-IFRN-API/internal/app"
	"github.com/kellyson71/electron-supaco-IFRN-API/internal/config"
	"github.com/kellyson71/electron-supaco-IFRN-API/internal/derived"
	"github.com/kellyson71/electron-supaco-IFRN-API/internal/gateway"
	"github.com/kellyson71/electron-supaco-IFRN-API/internal/jobs"
	"github.com/kellyson71/electron-supaco-IFRN-API/internal/logging"
	"github.com/kellyson71/electron-supaco-IFRN-API/internal/notify"
	"github.com/kellyson71/electron-supaco-IFRN-API/internal/observability"
	"github.com/kellyson71/electron-supaco-IFRN-API/internal/session"
	"github.com/kellyson71/electron-supaco-IFRN-API/internal/store"
	"github.com/kellyson71/electron-supaco-IFRN-API/internal/syncer"
)

const release = "supaco-sync@1.0.0"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, flushLogs, err := logging.New(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer flushLogs()

	flush, err := observability.InitSentry(cfg.SentryDSN, cfg.Env, release)
	if err != nil {
		logger.Warnw("sentry init failed", "err", err)
	}
	defer flush()

	st, err := store.Open(cfg.StorePath)
	if err != nil {
		logger.Fatalw("opening store", "path", cfg.StorePath, "err", err)
	}
	defer func() { _ = st.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sess := session.New(st, cfg.SuapBaseURL, logger.Named("session"))
	suap := gateway.NewSUAP(sess, cfg.SuapBaseURL, logger.Named("gateway"))
	holidays := gateway.NewHolidays(cfg.HolidaysBaseURL, logger.Named("gateway"))
	classroom := gateway.NewClassroom(cfg.ClassroomBaseURL, sess.ClassroomToken, logger.Named("gateway"))

	orch := syncer.New(st, sess, suap, holidays, classroom, cfg.Location, logger.Named("syncer"))
	orch.LoadCache()
	orch.Start(ctx)

	notifier, err := notify.New(cfg.TelegramToken, cfg.TelegramChatID, logger.Named("notify"))
	if err != nil {
		logger.Warnw("notifier disabled", "err", err)
	}

	runner := jobs.New(ctx)
	runner.Every(cfg.SyncInterval, "refresh_all", func(c context.Context) error {
		orch.RefreshAll(c)
		return nil
	})
	runner.Every(12*time.Hour, "refresh_holidays", func(c context.Context) error {
		orch.RefreshHolidays(c)
		return nil
	})
	if notifier != nil {
		runner.Every(time.Hour, "notify_digest", func(context.Context) error {
			now := time.Now().In(cfg.Location)
			digest := notify.BuildDigest(
				derived.RankAbsenceRisk(orch.Grades()),
				derived.NextHoliday(orch.Holidays(), now),
				derived.NextCoursework(orch.Coursework()),
				now,
			)
			notifier.Push(digest)
			return nil
		})
	}

	app.StartHTTP(ctx, cfg.HTTPAddr, st, orch, sess, cfg.Location, logger.Named("http"))
	logger.Infow("supaco sync started", "addr", cfg.HTTPAddr, "interval", cfg.SyncInterval)

	<-ctx.Done()
	logger.Infow("shutting down")
}
