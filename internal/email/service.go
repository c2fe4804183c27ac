package email

import (
	"context"
	"encoding/json"
	"fmt"
	"net/smtp"
	"time"

	"gymcore/internal/logger"
	"gymcore/internal/metrics"

	"github.com/redis/go-redis/v9"
)

const (
	queueKey       = "gymcore:emails"
	failedQueueKey = "gymcore:emails:failed"
	maxTries       = 3
)

type Job struct {
	To      string    `json:"to"`
	Name    string    `json:"name"`
	Type    string    `json:"type"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	Tries   int       `json:"tries"`
	Created time.Time `json:"created"`
}

type Service struct {
	redis    *redis.Client
	from     string
	fromName string
	smtpHost string
	smtpPort string
	smtpUser string
	smtpPass string
}

func New(fromEmail, fromName, smtpHost, smtpPort, smtpUser, smtpPass, redisAddr string) *Service {
	return &Service{
		redis: redis.NewClient(&redis.Options{
			Addr: redisAddr,
		}),
		from:     fromEmail,
		fromName: fromName,
		smtpHost: smtpHost,
		smtpPort: smtpPort,
		smtpUser: smtpUser,
		smtpPass: smtpPass,
	}
}

func (s *Service) enqueue(ctx context.Context, job Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		logger.Errorf("Failed to marshal email job: %v", err)
		return err
	}

	if err := s.redis.LPush(ctx, queueKey, data).Err(); err != nil {
		logger.Errorf("Failed to queue email to %s: %v", job.To, err)
		metrics.RecordEmail(job.Type, "queue_error")
		return err
	}

	logger.Infof("Email queued: %s to %s", job.Subject, job.To)
	return nil
}

// Start runs the delivery loop until the context is cancelled. Failed
// jobs are retried up to maxTries before landing in the failed queue.
func (s *Service) Start(ctx context.Context) {
	logger.Info("Email worker started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Email worker stopped")
			return
		default:
			s.processNext(ctx)
		}
	}
}

func (s *Service) processNext(ctx context.Context) {
	result, err := s.redis.BRPop(ctx, 2*time.Second, queueKey).Result()
	if err != nil {
		return
	}

	var job Job
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.Errorf("Bad email data: %v", err)
		return
	}

	job.Tries++
	if err := s.sendNow(job); err != nil {
		logger.Errorf("Failed to send email to %s (attempt %d): %v", job.To, job.Tries, err)

		if job.Tries < maxTries {
			time.Sleep(5 * time.Second)
			data, _ := json.Marshal(job)
			s.redis.LPush(context.Background(), queueKey, data)
		} else {
			s.saveFailed(job, err)
			metrics.RecordEmail(job.Type, "failed")
		}
		return
	}

	logger.Infof("Email sent to %s", job.To)
	metrics.RecordEmail(job.Type, "sent")
}

func (s *Service) sendNow(job Job) error {
	message := fmt.Sprintf("From: %s <%s>\r\n", s.fromName, s.from)
	message += fmt.Sprintf("To: %s\r\n", job.To)
	message += fmt.Sprintf("Subject: %s\r\n", job.Subject)
	message += "\r\n" + job.Body

	var auth smtp.Auth
	if s.smtpUser != "" && s.smtpPass != "" {
		auth = smtp.PlainAuth("", s.smtpUser, s.smtpPass, s.smtpHost)
	}

	addr := s.smtpHost + ":" + s.smtpPort
	return smtp.SendMail(addr, auth, s.from, []string{job.To}, []byte(message))
}

func (s *Service) saveFailed(job Job, err error) {
	failed := map[string]interface{}{
		"job":   job,
		"error": err.Error(),
		"time":  time.Now(),
	}
	data, _ := json.Marshal(failed)
	s.redis.LPush(context.Background(), failedQueueKey, data)
	logger.Errorf("Email to %s moved to failed queue after %d attempts", job.To, job.Tries)
}

func (s *Service) QueueLength(ctx context.Context) int64 {
	length, _ := s.redis.LLen(ctx, queueKey).Result()
	return length
}

func (s *Service) Close() error {
	return s.redis.Close()
}

func (s *Service) SendBookingConfirmation(ctx context.Context, to, name, className, date, startTime string) error {
	body := fmt.Sprintf(`Hi %s,

Your class booking is confirmed!

Class: %s
Date: %s
Time: %s

See you at the gym!

- GymCore Team`, name, className, date, startTime)

	return s.enqueue(ctx, Job{
		To:      to,
		Name:    name,
		Type:    "booking_confirmation",
		Subject: "Booking Confirmed - " + className,
		Body:    body,
		Created: time.Now(),
	})
}

func (s *Service) SendBookingCancellation(ctx context.Context, to, name, className, date, startTime string) error {
	body := fmt.Sprintf(`Hi %s,

Your class booking has been cancelled:

Class: %s
Date: %s
Time: %s

- GymCore Team`, name, className, date, startTime)

	return s.enqueue(ctx, Job{
		To:      to,
		Name:    name,
		Type:    "booking_cancellation",
		Subject: "Booking Cancelled - " + className,
		Body:    body,
		Created: time.Now(),
	})
}

func (s *Service) SendMembershipExpiryReminder(ctx context.Context, to, name, endDate string, daysLeft int) error {
	body := fmt.Sprintf(`Hi %s,

Your membership expires on %s (%d days left).

Renew now to keep your access uninterrupted.

- GymCore Team`, name, endDate, daysLeft)

	return s.enqueue(ctx, Job{
		To:      to,
		Name:    name,
		Type:    "membership_expiry",
		Subject: "Your membership expires soon",
		Body:    body,
		Created: time.Now(),
	})
}

func (s *Service) SendWelcome(ctx context.Context, to, name string) error {
	body := fmt.Sprintf(`Hi %s,

Welcome to GymCore! Your account is ready.

Browse classes and book your first session from the member portal.

- GymCore Team`, name)

	return s.enqueue(ctx, Job{
		To:      to,
		Name:    name,
		Type:    "welcome",
		Subject: "Welcome to GymCore",
		Body:    body,
		Created: time.Now(),
	})
}
