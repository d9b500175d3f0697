package main

import (
	"crypto/rand"
	"log"
	"math/big"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/beautifulplanet/safetyserv/config"
	"github.com/beautifulplanet/safetyserv/storage"
	"github.com/beautifulplanet/safetyserv/tasks"
)

func setupScheduler(scheduler gocron.Scheduler, db storage.PersistentStorage, instanceConfig *config.InstanceConfig) error {
	return scheduleQuotaLogTask(scheduler, db, instanceConfig)
}

func scheduleQuotaLogTask(scheduler gocron.Scheduler, db storage.PersistentStorage, instanceConfig *config.InstanceConfig) error {
	// Every hour +/- 10 minutes so a fleet of instances doesn't log in lockstep.
	quotaTask, err := scheduler.NewJob(gocron.DurationRandomJob(50*time.Minute, 70*time.Minute), gocron.NewTask(tasks.LogQuotaUsage, db, instanceConfig), gocron.WithName("LogQuotaUsage"))
	if err != nil {
		return err
	}

	log.Printf("Scheduled quota usage log task every hour: %s", quotaTask.ID())
	runTaskNowish(quotaTask)

	return nil
}

// runTaskNowish - Runs a gocron task as quickly as possible, with a small delay to avoid overlapping calls. The task will
// wait asynchronously to run, so this will return immediately regardless of whether the task is running.
func runTaskNowish(task gocron.Job) {
	go func() {
		// we don't *need* a cryptographic random number here, but security audits might complain if we don't
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			log.Printf("Non-fatal error generating jitter for task %s: %v", task.ID(), err)
			n = big.NewInt(4) // https://xkcd.com/221
		}
		<-time.After(time.Duration(n.Int64()) * time.Second)
		if err = task.RunNow(); err != nil {
			log.Printf("Non-fatal error trying to run task %s immediately: %v", task.ID(), err)
		}
	}()
}
