package handler

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/restaurant-ops/labor-compliance/backend/internal/domain"
)

// AlertPublisher 把需要通知负责人的消息交给邮件服务
type AlertPublisher interface {
	Publish(ctx context.Context, msg domain.MailMessage) error
}

type AMQPPublisher struct {
	ch      *amqp.Channel
	queue   string
	timeout time.Duration
}

func NewAMQPPublisher(ch *amqp.Channel, queue string, timeout time.Duration) *AMQPPublisher {
	return &AMQPPublisher{ch: ch, queue: queue, timeout: timeout}
}

func (p *AMQPPublisher) Publish(ctx context.Context, msg domain.MailMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	return p.ch.PublishWithContext(
		ctx,
		"",
		p.queue,
		true,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

// criticalViolationsMail 在没有严重违规时返回 false
func criticalViolationsMail(restaurant *domain.Restaurant, report *domain.ComplianceReport) (domain.MailMessage, bool) {
	critical := make([]domain.LaborLawViolation, 0)
	for _, v := range report.Violations {
		if v.Severity == domain.SeverityCritical {
			critical = append(critical, v)
		}
	}
	if len(critical) == 0 {
		return domain.MailMessage{}, false
	}

	return domain.MailMessage{
		Type: domain.MailTypeCriticalViolations,
		To:   restaurant.ManagerEmail,
		Data: domain.CriticalViolationsMailData{
			ManagerName:    restaurant.ManagerName,
			RestaurantName: restaurant.Name,
			WeekStartDate:  report.WeekStartDate,
			RuleSetVersion: report.RuleSetVersion,
			Violations:     critical,
		},
	}, true
}
