package notification

import (
	"context"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"gorm.io/gorm"

	"smarthome-backend/internal/model"
)

// Sender defines the interface for delivering one web push message.
type Sender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is the real Sender backed by the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WorkerPool fans freshly committed audit entries out to push subscribers.
// Jobs carry track record ids; workers resolve the audience from the
// record's target.
type WorkerPool struct {
	size    int
	jobs    chan int64
	db      *gorm.DB
	webpush *webpush.Options
	sender  Sender
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, db *gorm.DB, webpushOptions *webpush.Options) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan int64, size),
		db:      db,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("Notification worker %d started", id)
	for {
		select {
		case recordID := <-wp.jobs:
			wp.notifyRecord(ctx, recordID)
		case <-ctx.Done():
			log.Printf("Notification worker %d shutting down", id)
			return
		}
	}
}

// Dispatch queues one track record for fan-out.
func (wp *WorkerPool) Dispatch(recordID int64) {
	wp.jobs <- recordID
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan int64 {
	return wp.jobs
}

// notifyRecord loads the audit entry and pushes its display line to every
// subscription bound to the entry's target.
func (wp *WorkerPool) notifyRecord(ctx context.Context, recordID int64) {
	var rec model.TrackRecord
	if err := wp.db.WithContext(ctx).First(&rec, recordID).Error; err != nil {
		log.Printf("Error fetching track record %d: %v", recordID, err)
		return
	}

	var subscriptions []model.PushSubscription
	err := wp.db.WithContext(ctx).
		Joins("JOIN subscription_targets st ON st.endpoint = push_subscriptions.endpoint").
		Where("st.target_kind = ? AND st.target_id = ?", rec.TargetKind, rec.TargetID).
		Find(&subscriptions).Error
	if err != nil {
		log.Printf("Error fetching subscriptions for %s %d: %v", rec.TargetKind, rec.TargetID, err)
		return
	}
	if len(subscriptions) == 0 {
		return
	}

	// The record's own name copy is used here: the payload describes the
	// change as it happened, even if the target was renamed since.
	payload := []byte(rec.Display(rec.Name))
	log.Printf("Sending %d notifications for track record %d", len(subscriptions), recordID)
	for _, sub := range subscriptions {
		wp.send(ctx, sub, payload)
	}
}

func (wp *WorkerPool) send(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		log.Printf("Error sending notification to %s: %v", sub.Endpoint, err)
		return
	}
	defer resp.Body.Close()

	// Expired subscriptions are removed together with their target bindings.
	if resp.StatusCode == http.StatusGone {
		log.Printf("Subscription for endpoint %s is expired. Deleting.", sub.Endpoint)
		err := wp.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("endpoint = ?", sub.Endpoint).
				Delete(&model.SubscriptionTarget{}).Error; err != nil {
				return err
			}
			return tx.Delete(&model.PushSubscription{Endpoint: sub.Endpoint}).Error
		})
		if err != nil {
			log.Printf("Failed to delete expired subscription %s: %v", sub.Endpoint, err)
		}
	}
}
