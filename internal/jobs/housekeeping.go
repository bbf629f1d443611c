package jobs

import (
	"log"
	"time"

	"github.com/localhub-app/localhub-backend/internal/storage"
)

const otpPurgeInterval = 10 * time.Minute

// HousekeepingJob periodically clears expired OTP challenges so stale
// codes never accumulate in the table.
type HousekeepingJob struct {
	store storage.Store
	stop  chan struct{}
}

func NewHousekeepingJob(store storage.Store) *HousekeepingJob {
	return &HousekeepingJob{store: store}
}

// Start launches the purge loop. Calling Start on a running job is a
// no-op.
func (j *HousekeepingJob) Start() {
	if j.stop != nil {
		return
	}
	j.stop = make(chan struct{})

	log.Println("Starting housekeeping job")
	go j.run()
}

// Stop halts the purge loop.
func (j *HousekeepingJob) Stop() {
	if j.stop == nil {
		return
	}
	close(j.stop)
	j.stop = nil
	log.Println("Stopped housekeeping job")
}

func (j *HousekeepingJob) run() {
	ticker := time.NewTicker(otpPurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.purgeExpiredOTPs()
		case <-j.stop:
			return
		}
	}
}

func (j *HousekeepingJob) purgeExpiredOTPs() {
	purged, err := j.store.DeleteExpiredOTPChallenges()
	if err != nil {
		log.Printf("OTP purge failed: %v", err)
		return
	}
	if purged > 0 {
		log.Printf("Purged %d expired OTP challenges", purged)
	}
}
