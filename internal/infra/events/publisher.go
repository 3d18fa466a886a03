package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/BlackLex29/RLfursure-sub000/pkg/metrics"
)

// Publisher публикует события изменения записей в Redis pub/sub
// Публикация best-effort: ошибки логируются и учитываются в метриках,
// но не влияют на результат операции
type Publisher struct {
	client  *redis.Client
	metrics *metrics.Metrics
	log     Logger
}

// NewPublisher создает новый экземпляр издателя событий
func NewPublisher(client *redis.Client, m *metrics.Metrics, log Logger) *Publisher {
	return &Publisher{
		client:  client,
		metrics: m,
		log:     log,
	}
}

// PublishAppointmentEvent публикует событие изменения записи в ленту
func (p *Publisher) PublishAppointmentEvent(ctx context.Context, event AppointmentEvent) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	p.publish(ctx, ChannelAppointmentsFeed, event)
}

// PublishStaffNotification публикует уведомление для персонала клиники
func (p *Publisher) PublishStaffNotification(ctx context.Context, eventType, format string, v ...interface{}) {
	p.publish(ctx, ChannelStaffNotifications, StaffNotification{
		Type:       eventType,
		Message:    fmt.Sprintf(format, v...),
		OccurredAt: time.Now().UTC(),
	})
}

// publish сериализует и отправляет событие в канал
func (p *Publisher) publish(ctx context.Context, channel string, payload interface{}) {
	if p == nil || p.client == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		p.log.Error("Failed to marshal event for channel=%s: %v", channel, err)
		p.observe(channel, "error")
		return
	}

	if err := p.client.Publish(ctx, channel, data).Err(); err != nil {
		p.log.Error("Failed to publish event to channel=%s: %v", channel, err)
		p.observe(channel, "error")
		return
	}

	p.log.Debug("Published event to channel=%s", channel)
	p.observe(channel, "success")
}

func (p *Publisher) observe(channel, status string) {
	if p.metrics != nil {
		p.metrics.EventsPublishedTotal.WithLabelValues(channel, status).Inc()
	}
}
