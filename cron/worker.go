package cron

import (
	"context"
	"log"
	"net/url"
	"path"
	"strings"
	"time"

	"repairdesk/config"
	ticketRepo "repairdesk/database/repository/ticket"
	"repairdesk/services/storage"

	"github.com/hibiken/asynq"
)

const TypeTicketPurge = "ticket:purge_expired"

// purgeBatchSize caps how many expired tickets one purge run touches.
const purgeBatchSize = 500

// InitPurgeWorker runs the background worker that purges expired tickets
// and their uploaded media. A nightly schedule enqueues the purge task.
func InitPurgeWorker(tickets ticketRepo.TicketRepository, media storage.MediaStore) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 2,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeTicketPurge, handlePurgeTask(tickets, media))

	go func() {
		log.Println("[PurgeWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[PurgeWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[PurgeWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()

	scheduler := asynq.NewScheduler(redisOpts, nil)
	if _, err := scheduler.Register("0 3 * * *", asynq.NewTask(TypeTicketPurge, nil)); err != nil {
		log.Printf("[PurgeWorker] failed to register purge schedule: %v", err)
		return
	}
	go func() {
		if err := scheduler.Run(); err != nil {
			log.Printf("[PurgeWorker] scheduler stopped: %v", err)
		}
	}()
}

func handlePurgeTask(tickets ticketRepo.TicketRepository, media storage.MediaStore) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		expired, err := tickets.FindExpired(purgeBatchSize)
		if err != nil {
			log.Printf("[PurgeHandler] failed to list expired tickets: %v", err)
			return err
		}

		if media != nil {
			for _, t := range expired {
				for _, mediaURL := range t.MediaURLs {
					publicID := mediaPublicID(mediaURL)
					if publicID == "" {
						continue
					}
					if err := media.DeleteImage(ctx, publicID); err != nil {
						// Orphaned media is tolerable; the ticket purge proceeds.
						log.Printf("[PurgeHandler] failed to delete media %s: %v", publicID, err)
					}
				}
			}
		}

		deleted, err := tickets.DeleteExpired()
		if err != nil {
			log.Printf("[PurgeHandler] failed to delete expired tickets: %v", err)
			return err
		}
		if deleted > 0 {
			log.Printf("[PurgeHandler] purged %d expired tickets", deleted)
		}
		return nil
	}
}

// mediaPublicID recovers the Cloudinary public ID (folder/name) from a
// delivery URL.
func mediaPublicID(mediaURL string) string {
	u, err := url.Parse(mediaURL)
	if err != nil {
		return ""
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) < 2 {
		return ""
	}
	folder := segments[len(segments)-2]
	name := segments[len(segments)-1]
	name = strings.TrimSuffix(name, path.Ext(name))
	return folder + "/" + name
}
