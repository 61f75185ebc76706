package cronjobs

import (
	"log"

	"github.com/robfig/cron/v3"

	"go-citywatch/realtime"
	"go-citywatch/store"
)

// InitCronJobs starts the background maintenance schedule and returns the
// runner so the caller can stop it on shutdown.
func InitCronJobs(incidentStore *store.IncidentStore, coordinator *realtime.Coordinator) *cron.Cron {
	log.Println("Starting Cron Jobs -------------------------------------------------------")
	c := cron.New()

	// Rescore sweep: the recency bonus decays with wall time, so cached
	// priority scores drift without periodic recomputation.
	_, err := c.AddFunc("* * * * *", func() {
		incidentStore.RescoreAll()
	})
	if err != nil {
		log.Println("Error scheduling rescore sweep:", err)
	}

	// Forced resync: run every 10 minutes as a backstop behind the live feed
	// and the short poll, in case both miss an update.
	_, err = c.AddFunc("*/10 * * * *", func() {
		log.Println("CronJob: forced snapshot resync")
		coordinator.RequestRefresh()
	})
	if err != nil {
		log.Println("Error scheduling forced resync:", err)
	}

	c.Start()
	return c
}
