package worker

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/fitcore/gym-api/internal/model"
	"github.com/fitcore/gym-api/internal/notify"
)

const idempotencyTTL = 24 * time.Hour

// NotificationWorker drains the notifications queue and sends mail. It is
// the only consumer of side effects that the request path deliberately does
// not wait for: a lost or failed notification never fails an order.
type NotificationWorker struct {
	channel     *amqp.Channel
	mailer      Mailer
	redisClient *redis.Client
	log         *slog.Logger
	done        chan struct{}
}

func NewNotificationWorker(ch *amqp.Channel, mailer Mailer, redisClient *redis.Client, log *slog.Logger) *NotificationWorker {
	return &NotificationWorker{
		channel:     ch,
		mailer:      mailer,
		redisClient: redisClient,
		log:         log,
		done:        make(chan struct{}),
	}
}

func (w *NotificationWorker) Start(ctx context.Context) error {
	msgs, err := w.channel.Consume(notify.QueueName, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				w.processMessage(ctx, msg)
			case <-w.done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	w.log.Info("notification worker started")
	return nil
}

func (w *NotificationWorker) Stop() { close(w.done) }

func (w *NotificationWorker) processMessage(ctx context.Context, msg amqp.Delivery) {
	var notification model.NotificationMessage
	if err := json.Unmarshal(msg.Body, &notification); err != nil {
		w.log.Error("unmarshal notification", "error", err)
		_ = msg.Nack(false, false)
		return
	}

	log := w.log.With("notification_id", notification.ID, "kind", notification.Kind)

	// Redelivery after a crash between send and ack must not mail twice.
	idempotencyKey := "notification_sent:" + notification.ID.String()
	exists, err := w.redisClient.Exists(ctx, idempotencyKey).Result()
	if err != nil {
		log.Error("check idempotency key", "error", err)
		_ = msg.Nack(false, true)
		return
	}
	if exists > 0 {
		log.Info("notification already sent, skipping")
		_ = msg.Ack(false)
		return
	}

	subject, body := render(notification)
	if err := w.mailer.Send(notification.Recipient, subject, body); err != nil {
		log.Error("send notification mail", "error", err)
		_ = msg.Nack(false, false) // to DLQ
		return
	}

	if err := w.redisClient.Set(ctx, idempotencyKey, "1", idempotencyTTL).Err(); err != nil {
		log.Error("set idempotency key", "error", err)
	}

	_ = msg.Ack(false)
	log.Info("notification sent")
}
