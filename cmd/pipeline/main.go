package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"skill-radar/internal/app"
	"skill-radar/internal/config"
	"skill-radar/internal/logging"
	"skill-radar/internal/model"
	"skill-radar/internal/pipeline"
	"skill-radar/internal/scheduler"
)

func main() {
	once := flag.Bool("once", false, "run the pipeline once and exit")
	schedule := flag.Bool("schedule", false, "run the daily scheduler (default)")
	flag.Parse()

	if *once && *schedule {
		log.Fatal("-once and -schedule are mutually exclusive")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.App.Environment)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	c, err := app.NewContainer(cfg, logger)
	if err != nil {
		logger.Fatalw("failed to init container", "err", err)
	}
	defer func() {
		_ = c.Close()
	}()

	if *once {
		result, err := c.Daily.Run(context.Background())
		if err != nil {
			logger.Fatalw("run rejected", "err", err)
		}
		b, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(b))
		if result.Status != model.RunCompleted {
			os.Exit(1)
		}
		return
	}

	sched, err := scheduler.New(cfg.Pipeline.ScheduleHour, func() {
		result, err := c.Daily.Run(context.Background())
		if err != nil {
			if err == pipeline.ErrAlreadyRunning {
				logger.Warnw("scheduled run rejected, previous run still in flight")
				return
			}
			logger.Errorw("scheduled run failed to start", "err", err)
			return
		}
		logger.Infow("scheduled run finished", "run_id", result.ID, "status", result.Status)
	}, logger)
	if err != nil {
		logger.Fatalw("failed to init scheduler", "err", err)
	}

	sched.Start()
	defer sched.Stop()
	logger.Infow("pipeline service started", "schedule_hour", cfg.Pipeline.ScheduleHour)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Infow("shutting down")
}
