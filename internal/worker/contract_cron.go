package worker

// Background goroutine that periodically scans for contracts expiring
// within 30 days, marks past-end-date contracts expired, and enqueues
// notification and email jobs for the admin. A Redis SETNX guard keyed
// per contract per day keeps reminders from repeating within a day.

import (
	"context"
	"fmt"
	"time"

	"github.com/dsaslb/restaurant-management-system/internal/model"
	"github.com/dsaslb/restaurant-management-system/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	expiryTickInterval = 1 * time.Hour
	expiryWindowDays   = 30
	expiryGuardTTL     = 24 * time.Hour
)

// ContractCronConfig holds the dependencies for the expiry goroutine.
type ContractCronConfig struct {
	ContractRepo   repository.ContractRepository
	Dispatcher     *Dispatcher
	RDB            *redis.Client
	AdminAlertMail string
}

// StartContractCron launches a background goroutine that ticks hourly
// and processes contract expiry. It respects the context for graceful
// shutdown and runs one pass immediately on startup.
func StartContractCron(ctx context.Context, cfg ContractCronConfig) {
	go func() {
		ticker := time.NewTicker(expiryTickInterval)
		defer ticker.Stop()

		log.Info().Msg("contract_cron: started")
		processExpiry(ctx, cfg)

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("contract_cron: shutting down")
				return
			case <-ticker.C:
				processExpiry(ctx, cfg)
			}
		}
	}()
}

func processExpiry(ctx context.Context, cfg ContractCronConfig) {
	contracts, err := cfg.ContractRepo.ListExpiringWithin(ctx, expiryWindowDays)
	if err != nil {
		log.Error().Err(err).Msg("contract_cron: failed to query expiring contracts")
		return
	}
	if len(contracts) == 0 {
		return
	}

	now := time.Now().UTC()
	today := now.Format("2006-01-02")

	for i := range contracts {
		c := &contracts[i]

		if c.EndDate.Before(now) {
			c.Status = model.ContractExpired
			if err := cfg.ContractRepo.Update(ctx, c); err != nil {
				log.Error().Err(err).Str("contract_id", c.ID.String()).Msg("contract_cron: failed to mark expired")
				continue
			}
			log.Info().Str("contract_id", c.ID.String()).Str("employee_id", c.EmployeeID).Msg("contract_cron: contract expired")
		}

		guardKey := fmt.Sprintf("contract:notified:%s:%s", c.ID, today)
		set, err := cfg.RDB.SetNX(ctx, guardKey, "1", expiryGuardTTL).Result()
		if err != nil || !set {
			continue
		}

		daysLeft := int(c.EndDate.Sub(now).Hours() / 24)
		msg := fmt.Sprintf("%s님의 근로계약이 %s 만료됩니다 (%d일 남음)",
			c.Name, c.EndDate.Format("2006-01-02"), daysLeft)
		if daysLeft < 0 {
			msg = fmt.Sprintf("%s님의 근로계약이 %s 만료되었습니다", c.Name, c.EndDate.Format("2006-01-02"))
		}

		notify := NotifyJobPayload{
			Username: c.EmployeeID,
			Type:     model.NotifyContractExpiry,
			Message:  msg,
		}
		if err := cfg.Dispatcher.EnqueueNotify(ctx, notify); err != nil {
			log.Warn().Err(err).Str("contract_id", c.ID.String()).Msg("contract_cron: failed to enqueue notification")
		}

		if cfg.AdminAlertMail != "" {
			email := EmailJobPayload{
				ToEmail: cfg.AdminAlertMail,
				Subject: "[근로계약 만료 알림] " + c.Name,
				Body:    msg,
			}
			if err := cfg.Dispatcher.EnqueueEmail(ctx, email); err != nil {
				log.Warn().Err(err).Str("contract_id", c.ID.String()).Msg("contract_cron: failed to enqueue email")
			}
		}
	}

	log.Info().Int("count", len(contracts)).Msg("contract_cron: processed expiring contracts")
}
