package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент почтового сервиса. Отправка писем не входит в критичный
// путь бронирования: вызывающий код использует fire-and-forget и ошибки
// доставки только логирует.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента почтового сервиса
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Send отправляет письмо через почтовый сервис
func (c *Client) Send(ctx context.Context, msg Message) error {
	url := fmt.Sprintf("%s/api/v1/mail/send", c.baseURL)

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal message: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted:
		return nil
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}
}

// SendBookingConfirmed отправляет письмо-подтверждение бронирования
// со self-service ссылкой для отмены
func (c *Client) SendBookingConfirmed(ctx context.Context, email, name, appointmentAt, manageToken string) {
	msg := Message{
		To:       email,
		Subject:  "Your table is booked",
		Template: TemplateBookingConfirmed,
		Params: map[string]string{
			"name":           name,
			"appointment_at": appointmentAt,
			"manage_token":   manageToken,
		},
	}

	if err := c.Send(ctx, msg); err != nil {
		c.log.Warn("Failed to send booking confirmation to %s: %v", email, err)
		return
	}

	c.log.Info("Booking confirmation sent to %s", email)
}

// SendBookingCancelled отправляет уведомление об отмене бронирования
func (c *Client) SendBookingCancelled(ctx context.Context, email, name, appointmentAt string) {
	msg := Message{
		To:       email,
		Subject:  "Your booking was cancelled",
		Template: TemplateBookingCancelled,
		Params: map[string]string{
			"name":           name,
			"appointment_at": appointmentAt,
		},
	}

	if err := c.Send(ctx, msg); err != nil {
		c.log.Warn("Failed to send cancellation notice to %s: %v", email, err)
		return
	}

	c.log.Info("Cancellation notice sent to %s", email)
}

// SendBookingReminder отправляет напоминание о предстоящем визите
func (c *Client) SendBookingReminder(ctx context.Context, email, name, appointmentAt string) error {
	msg := Message{
		To:       email,
		Subject:  "Reminder: your upcoming reservation",
		Template: TemplateBookingReminder,
		Params: map[string]string{
			"name":           name,
			"appointment_at": appointmentAt,
		},
	}

	return c.Send(ctx, msg)
}

// SendWaitlistSlotOpen уведомляет гостя из листа ожидания об
// освободившемся слоте
func (c *Client) SendWaitlistSlotOpen(ctx context.Context, email, name, date string) error {
	msg := Message{
		To:       email,
		Subject:  "A table opened up",
		Template: TemplateWaitlistSlotOpen,
		Params: map[string]string{
			"name": name,
			"date": date,
		},
	}

	return c.Send(ctx, msg)
}
