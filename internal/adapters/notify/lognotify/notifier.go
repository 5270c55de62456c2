package lognotify

import (
	"context"

	"vet-clinic-scheduling/internal/domain/appointments"
	"vet-clinic-scheduling/internal/platform/logger"
)

// Notifier deja la señal de refresco en el log. Se usa sin AMQP_URL.
type Notifier struct {
	log logger.Logger
}

func New(log logger.Logger) *Notifier {
	if log == nil {
		log = logger.NewNop()
	}
	return &Notifier{log: log}
}

var _ appointments.Notifier = (*Notifier)(nil)

func (n *Notifier) AppointmentsChanged(_ context.Context, subjectID string) error {
	n.log.Info("appointments changed", map[string]any{"subject_id": subjectID})
	return nil
}
