package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	authrepo "elderlyze-backend/internal/auth/repository"
	"elderlyze-backend/internal/reminder/domain"
	"elderlyze-backend/internal/reminder/repository"
	"elderlyze-backend/pkg/fcm"
)

// Pusher is the push delivery capability the scanner fans out through.
// *fcm.Client satisfies it.
type Pusher interface {
	SendToDevices(ctx context.Context, tokens []string, notification fcm.NotificationData) ([]string, error)
}

// ReminderScanner fires one push notification per due (medicine, time slot)
// pair, at most once per slot per day. The dedup ledger, not a run lock, is
// the concurrency guard: overlapping runs are allowed.
type ReminderScanner struct {
	medicineRepo repository.MedicineRepository
	dedupRepo    repository.DedupRepository
	tokenRepo    authrepo.TokenRepository
	pusher       Pusher
	interval     time.Duration
	tolerance    time.Duration
	stopChan     chan struct{}
	now          func() time.Time
}

// NewReminderScanner creates a scanner with the production cadence: a scan
// every minute matching slots within a ±60s window. The tolerance must stay
// at least as wide as the scan period, or scheduler jitter could cause
// missed sends.
func NewReminderScanner(
	medicineRepo repository.MedicineRepository,
	dedupRepo repository.DedupRepository,
	tokenRepo authrepo.TokenRepository,
	pusher Pusher,
) *ReminderScanner {
	return &ReminderScanner{
		medicineRepo: medicineRepo,
		dedupRepo:    dedupRepo,
		tokenRepo:    tokenRepo,
		pusher:       pusher,
		interval:     1 * time.Minute,
		tolerance:    60 * time.Second,
		stopChan:     make(chan struct{}),
		now:          time.Now,
	}
}

// Start begins the scanner loop
func (s *ReminderScanner) Start() {
	log.Println("[ReminderScanner] Starting medicine reminder scanner (interval: 1 minute)")

	go func() {
		// Run immediately on start
		s.ScanAndFire(context.Background())

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.ScanAndFire(context.Background())
			case <-s.stopChan:
				log.Println("[ReminderScanner] Scanner stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the scanner
func (s *ReminderScanner) Stop() {
	close(s.stopChan)
}

// ScanAndFire runs one scan: match due slots, check the ledger, fan out
// pushes. Per-slot failures are logged and never abort sibling slots.
func (s *ReminderScanner) ScanAndFire(ctx context.Context) {
	medicines, err := s.medicineRepo.ListAlertEnabled(ctx)
	if err != nil {
		log.Printf("[ReminderScanner] Error listing medicines: %v", err)
		return
	}

	now := s.now()
	var wg sync.WaitGroup

	for _, med := range medicines {
		if med.UserID == "" || len(med.Times) == 0 {
			continue
		}

		loc := med.Location()
		nowLocal := now.In(loc)
		todayISO := nowLocal.Format("2006-01-02")

		if !med.InDateRange(todayISO) {
			continue
		}

		for _, timeStr := range med.Times {
			if timeStr == "" {
				continue
			}

			target, err := slotInstant(todayISO, timeStr, loc)
			if err != nil {
				log.Printf("[ReminderScanner] Bad time %q on medicine %s: %v", timeStr, med.ID, err)
				continue
			}
			diff := nowLocal.Sub(target)
			if diff < 0 {
				diff = -diff
			}
			if diff > s.tolerance {
				continue // not due: either early or already missed
			}

			key := domain.DedupKey{
				UserID:     med.UserID,
				MedicineID: med.ID,
				Date:       todayISO,
				Time:       timeStr,
			}
			sent, err := s.dedupRepo.Exists(ctx, key)
			if err != nil {
				log.Printf("[ReminderScanner] Dedup check failed for %s: %v", key.ID(), err)
				continue
			}
			if sent {
				continue // already fired for this slot today
			}

			tokens, err := s.tokenRepo.GetTokensByUserID(ctx, med.UserID)
			if err != nil {
				log.Printf("[ReminderScanner] Error getting tokens for user %s: %v", med.UserID, err)
				continue
			}
			if len(tokens) == 0 {
				continue
			}

			var tokenStrings []string
			for _, t := range tokens {
				tokenStrings = append(tokenStrings, t.Token)
			}

			med, timeStr := med, timeStr // per-iteration copies for the goroutine (pre-Go 1.22 loop semantics)
			wg.Add(1)
			go func() {
				defer wg.Done()
				s.fireSlot(ctx, med, key, timeStr, tokenStrings)
			}()
		}
	}

	wg.Wait()
}

// fireSlot sends one multicast batch and, only on transport success, writes
// the dedup record. A failed send leaves the slot eligible for a later scan
// inside the same window.
func (s *ReminderScanner) fireSlot(ctx context.Context, med domain.Medicine, key domain.DedupKey, timeStr string, tokens []string) {
	name := med.Name
	if name == "" {
		name = "Medicine"
	}
	zone := med.TimeZone
	if zone == "" {
		zone = "UTC"
	}
	body := fmt.Sprintf("%s • %s (%s)", name, timeStr, zone)
	if med.MealTiming != "" {
		body += fmt.Sprintf(" • %s meal", med.MealTiming)
	}

	notification := fcm.NotificationData{
		Title: "Medicine reminder",
		Body:  body,
		Data: map[string]string{
			"medicineId": med.ID,
			"time":       timeStr,
			"zone":       zone,
		},
	}

	if _, err := s.pusher.SendToDevices(ctx, tokens, notification); err != nil {
		log.Printf("[ReminderScanner] FCM send error for user %s medicine %s at %s: %v", med.UserID, med.ID, timeStr, err)
		return
	}

	if err := s.dedupRepo.Record(ctx, key, s.now()); err != nil {
		log.Printf("[ReminderScanner] Failed to record dedup for %s: %v", key.ID(), err)
	}
}

// slotInstant combines an ISO date and an HH:MM string in the given zone.
func slotInstant(dateISO, timeStr string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02T15:04", dateISO+"T"+timeStr, loc)
}
