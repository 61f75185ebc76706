package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"go-citywatch/apiclient"
	"go-citywatch/cronjobs"
	"go-citywatch/realtime"
	"go-citywatch/routes"
	"go-citywatch/store"
)

const snapshotLookbackHours = 24

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	apiURL := os.Getenv("INCIDENT_API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8081/api"
	}
	feedURL := os.Getenv("FEED_WS_URL")
	if feedURL == "" {
		feedURL = "ws://localhost:8081/ws/incidents"
	}
	fmt.Println("INCIDENT_API_URL: ", apiURL)
	fmt.Println("FEED_WS_URL: ", feedURL)

	incidentStore := store.NewIncidentStore()
	client := apiclient.New(apiURL)

	// Refresh path: fetch the latest snapshot and reconcile it into the
	// store. On failure we keep the last-known-good data; the coordinator
	// schedules the next attempt.
	refresh := func() {
		incidents, err := client.FetchIncidents(context.Background(), snapshotLookbackHours)
		if err != nil {
			log.Printf("Snapshot refresh failed, keeping last-good data: %v", err)
			return
		}
		kept, dropped := incidentStore.Reconcile(incidents)
		if dropped > 0 {
			log.Printf("Reconciled snapshot: %d incidents, %d malformed records dropped", kept, dropped)
		}
	}
	refresh()

	coordinator := realtime.NewCoordinator(realtime.Config{
		FeedURL: feedURL,
		Refresh: refresh,
		OnStateChange: func(s realtime.State) {
			log.Printf("Realtime feed state: %s", s)
		},
	})
	coordinator.Connect()
	defer coordinator.Disconnect() // timers and channel released on every exit path

	// Initialize cron jobs
	jobs := cronjobs.InitCronJobs(incidentStore, coordinator)
	defer jobs.Stop()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	r := routes.SetupRouter(incidentStore, coordinator, client)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
