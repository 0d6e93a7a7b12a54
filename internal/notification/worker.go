package notification

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"gorm.io/gorm"

	"mindcare-backend/internal/model"
	"mindcare-backend/internal/schedule"
)

// Sender defines the interface for sending a web push notification.
type Sender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is the real Sender backed by the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WorkerPool delivers booking notices to psychologists in the
// background. Delivery is best effort: a failed or dropped notice never
// affects the booking that triggered it.
type WorkerPool struct {
	size    int
	jobs    chan int64
	db      *gorm.DB
	webpush *webpush.Options
	sender  Sender
}

// NewWorkerPool creates a new worker pool. Jobs carry appointment IDs.
func NewWorkerPool(size int, db *gorm.DB, webpushOptions *webpush.Options) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan int64, size*4),
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
	log.Printf("notification worker %d started", id)
	for {
		select {
		case appointmentID := <-wp.jobs:
			wp.notifyForAppointment(ctx, appointmentID)
		case <-ctx.Done():
			log.Printf("notification worker %d shutting down", id)
			return
		}
	}
}

// Dispatch queues a booking notice without blocking the caller. When
// the queue is full the notice is dropped and logged.
func (wp *WorkerPool) Dispatch(appointmentID int64) {
	select {
	case wp.jobs <- appointmentID:
	default:
		log.Printf("notification queue full, dropping notice for appointment %d", appointmentID)
	}
}

// notifyForAppointment loads the appointment and pushes a notice to
// every subscription of the booked psychologist's user account.
func (wp *WorkerPool) notifyForAppointment(ctx context.Context, appointmentID int64) {
	var appt model.Appointment
	err := wp.db.WithContext(ctx).
		Preload("Psychologist").Preload("Patient").
		First(&appt, appointmentID).Error
	if err != nil {
		log.Printf("error loading appointment %d for notification: %v", appointmentID, err)
		return
	}

	var subscriptions []model.PushSubscription
	err = wp.db.WithContext(ctx).
		Where("user_id = ?", appt.Psychologist.UserID).
		Find(&subscriptions).Error
	if err != nil {
		log.Printf("error fetching subscriptions for user %d: %v", appt.Psychologist.UserID, err)
		return
	}
	if len(subscriptions) == 0 {
		return
	}

	message := fmt.Sprintf("New appointment: %s on %s at %s",
		appt.Patient.Name,
		appt.AppointmentDateTime.Format(schedule.DateKey),
		appt.AppointmentDateTime.Format("15:04"))

	for _, sub := range subscriptions {
		wp.send(ctx, sub, []byte(message))
	}
}

// send pushes one notification and drops subscriptions the push service
// reports as gone.
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
		log.Printf("error sending notification to %s: %v", sub.Endpoint, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusGone {
		log.Printf("subscription %s is expired, deleting", sub.Endpoint)
		if err := wp.db.WithContext(ctx).Delete(&sub).Error; err != nil {
			log.Printf("failed to delete expired subscription %s: %v", sub.Endpoint, err)
		}
	}
}
