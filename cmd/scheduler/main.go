package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"github.com/segyhp/shelfmark/internal/clock"
	"github.com/segyhp/shelfmark/internal/config"
	"github.com/segyhp/shelfmark/internal/notifier"
	"github.com/segyhp/shelfmark/internal/repository"
	"github.com/segyhp/shelfmark/internal/service"
	"github.com/segyhp/shelfmark/pkg/logger"
)

const reminderJobTimeout = 5 * time.Minute

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	log := logger.New(os.Stdout, cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(log)
	log.Info("starting reminder scheduler")

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		log.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var sink notifier.Notifier = notifier.NewLogNotifier(log)
	if cfg.Notification.Sink == config.SinkRedis {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		sink = notifier.NewRedisNotifier(redisClient, cfg.Notification.Queue)
	}

	reminders := service.NewReminderService(repository.NewBorrowRepository(db), sink, clock.NewSystem(), log)

	// Initialize cron scheduler
	c := cron.New(
		cron.WithSeconds(),
		cron.WithLocation(cfg.GetSchedulerLocation()),
		cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger)),
	)

	if err := setupCronJobs(c, cfg, reminders, log); err != nil {
		log.Error("failed to schedule jobs", "error", err)
		os.Exit(1)
	}

	c.Start()
	log.Info("scheduler started", "reminder_cron", cfg.Scheduler.ReminderCron, "timezone", cfg.Scheduler.Timezone)

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down scheduler")
	<-c.Stop().Done()
	log.Info("scheduler stopped")
}

func setupCronJobs(c *cron.Cron, cfg *config.Config, reminders *service.ReminderService, log *slog.Logger) error {
	_, err := c.AddFunc(cfg.Scheduler.ReminderCron, func() {
		ctx, cancel := context.WithTimeout(context.Background(), reminderJobTimeout)
		defer cancel()

		log.Info("running overdue reminder job")
		if _, err := reminders.SendOverdueReminders(ctx); err != nil {
			log.Error("overdue reminder job failed", "error", err)
		}
	})
	return err
}
