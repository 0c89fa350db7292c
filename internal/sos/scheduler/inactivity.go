package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"elderlyze-backend/internal/sos/domain"
	"elderlyze-backend/internal/sos/repository"
)

// Dispatcher is the SOS fan-out capability the monitor triggers in
// auto-mode. *usecase.Dispatcher satisfies it.
type Dispatcher interface {
	Dispatch(ctx context.Context, userID, location, reason, customMessage string, details *domain.LocationDetails) domain.DispatchResult
}

// InactivityMonitor fires an automatic SOS for users whose last recorded
// activity is older than their configured threshold, then re-arms by
// resetting the activity timestamp.
type InactivityMonitor struct {
	settingsRepo repository.SettingsRepository
	activityRepo repository.ActivityRepository
	dispatcher   Dispatcher
	interval     time.Duration
	stopChan     chan struct{}
	now          func() time.Time
}

func NewInactivityMonitor(
	settingsRepo repository.SettingsRepository,
	activityRepo repository.ActivityRepository,
	dispatcher Dispatcher,
) *InactivityMonitor {
	return &InactivityMonitor{
		settingsRepo: settingsRepo,
		activityRepo: activityRepo,
		dispatcher:   dispatcher,
		interval:     30 * time.Minute,
		stopChan:     make(chan struct{}),
		now:          time.Now,
	}
}

// Start begins the monitor loop
func (m *InactivityMonitor) Start() {
	log.Println("[InactivityMonitor] Starting inactivity monitor (interval: 30 minutes)")

	go func() {
		// Run immediately on start
		m.CheckAll(context.Background())

		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				m.CheckAll(context.Background())
			case <-m.stopChan:
				log.Println("[InactivityMonitor] Monitor stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the monitor
func (m *InactivityMonitor) Stop() {
	close(m.stopChan)
}

// CheckAll runs one inactivity scan. Users are processed independently; one
// user's failure is logged and never stops the rest.
func (m *InactivityMonitor) CheckAll(ctx context.Context) {
	log.Println("[InactivityMonitor] Checking for user inactivity...")

	settings, err := m.settingsRepo.ListAll(ctx)
	if err != nil {
		log.Printf("[InactivityMonitor] Error listing SOS settings: %v", err)
		return
	}

	for _, row := range settings {
		if !row.Settings.AutoSos || row.Settings.Hours <= 0 {
			continue
		}
		m.checkUser(ctx, row.UserID, row.Settings.Hours)
	}
}

func (m *InactivityMonitor) checkUser(ctx context.Context, userID string, thresholdHours float64) {
	activity, err := m.activityRepo.Get(ctx, userID)
	if err != nil {
		log.Printf("[InactivityMonitor] Error loading activity for user %s: %v", userID, err)
		return
	}
	if activity == nil {
		return // no activity ever recorded, nothing to measure against
	}

	elapsed := m.now().Sub(activity.Timestamp).Hours()
	if elapsed < thresholdHours {
		return
	}

	log.Printf("[InactivityMonitor] User %s inactive for %.1f hours, sending auto SOS", userID, elapsed)

	reason := fmt.Sprintf("No activity detected for %d hours", int(elapsed))
	result := m.dispatcher.Dispatch(ctx, userID, "Location unavailable (Auto SOS)", reason, "", nil)
	if !result.Success {
		log.Printf("[InactivityMonitor] Auto SOS failed for user %s: %s%s", userID, result.Message, result.Error)
	}

	// Advance the timestamp even when the dispatch found no contacts, so a
	// misconfigured user does not get re-scanned into a tight loop.
	if err := m.activityRepo.RearmAutoSOS(ctx, userID); err != nil {
		log.Printf("[InactivityMonitor] Failed to re-arm auto SOS for user %s: %v", userID, err)
	}
}
