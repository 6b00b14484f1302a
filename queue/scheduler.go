package queue

import (
	"log"
	"os"
	"time"

	cron "github.com/robfig/cron/v3"
)

const defaultRecalcInterval = 30 * time.Second

// StartScheduler runs a full recalculation sweep on a fixed interval as a
// safety net against missed per-transition triggers. Worst-case staleness
// of the waiting set is therefore one interval.
func StartScheduler(recalc *Recalculator) *cron.Cron {
	interval := defaultRecalcInterval
	if env := os.Getenv("RECALC_INTERVAL"); env != "" {
		if d, err := time.ParseDuration(env); err == nil && d > 0 {
			interval = d
		} else {
			log.Printf("ignoring invalid RECALC_INTERVAL %q", env)
		}
	}

	c := cron.New()
	c.Schedule(cron.Every(interval), cron.FuncJob(func() {
		result, err := recalc.Run(Scope{})
		if err != nil {
			log.Printf("scheduled recalculation failed: %v", err)
			return
		}
		if result.Skipped > 0 {
			log.Printf("scheduled recalculation: %d updated, %d skipped", result.Updated, result.Skipped)
		}
	}))
	c.Start()
	log.Printf("queue recalculation scheduler started (every %s)", interval)
	return c
}
