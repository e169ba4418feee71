package main

import (
	"log"
	"os"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"subtrackr/pkg/tasks"
)

// CommitSHA is set at build time via ldflags
var CommitSHA = "unknown"

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file")
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "127.0.0.1:6379"
	}

	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddr},
		&asynq.SchedulerOpts{},
	)

	refreshTask, err := tasks.NewRefreshRatesTask()
	if err != nil {
		log.Fatalf("could not create task: %v", err)
	}
	sweepTask, err := tasks.NewSweepRemindersTask()
	if err != nil {
		log.Fatalf("could not create task: %v", err)
	}
	rearmTask, err := tasks.NewRearmRemindersTask()
	if err != nil {
		log.Fatalf("could not create task: %v", err)
	}

	// Exchange rates daily, reminder sweep hourly, re-arm daily.
	if _, err := scheduler.Register("@every 24h", refreshTask); err != nil {
		log.Fatalf("could not register task: %v", err)
	}
	if _, err := scheduler.Register("@every 1h", sweepTask); err != nil {
		log.Fatalf("could not register task: %v", err)
	}
	if _, err := scheduler.Register("@every 24h", rearmTask); err != nil {
		log.Fatalf("could not register task: %v", err)
	}

	// Kick off one refresh right away so the converter has data before the
	// first daily tick.
	client := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
	if _, err := client.Enqueue(refreshTask); err != nil {
		log.Printf("could not enqueue startup rate refresh: %v", err)
	}
	client.Close()

	log.Printf("Scheduler starting (commit: %s)", CommitSHA)
	if err := scheduler.Run(); err != nil {
		log.Fatalf("could not run scheduler: %v", err)
	}
}
