package amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"vet-clinic-scheduling/internal/domain/appointments"
)

// Publisher es el subconjunto de *amqp091.Channel que usamos.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

// ChangedEvent es el payload de la señal de refresco que escuchan las vistas de calendario.
type ChangedEvent struct {
	Type       string    `json:"type"`
	SubjectID  string    `json:"subject_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

const EventAppointmentsChanged = "appointments.changed"

type Notifier struct {
	pub   Publisher
	queue string
	now   func() time.Time
}

func NewNotifier(pub Publisher, queue string) *Notifier {
	return &Notifier{pub: pub, queue: queue, now: time.Now}
}

var _ appointments.Notifier = (*Notifier)(nil)

// Dial abre conexión + canal y declara la cola (durable).
func Dial(url, queue string) (*amqp091.Connection, *amqp091.Channel, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, err
	}
	return conn, ch, nil
}

func (n *Notifier) AppointmentsChanged(ctx context.Context, subjectID string) error {
	body, err := json.Marshal(ChangedEvent{
		Type:       EventAppointmentsChanged,
		SubjectID:  subjectID,
		OccurredAt: n.now().UTC(),
	})
	if err != nil {
		return err
	}

	msg := amqp091.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp091.Persistent,
		Headers: amqp091.Table{
			"message_type": EventAppointmentsChanged,
		},
	}

	if err := n.pub.PublishWithContext(ctx, "", n.queue, false, false, msg); err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}
