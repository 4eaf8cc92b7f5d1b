package clinicservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с сервисом справочника клиник
// Аутентификация, CRUD карточек пациентов и докторов живут в нём;
// движку резервирования нужны только проверки существования
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента справочника клиник
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetClinic получает клинику по ID
func (c *Client) GetClinic(ctx context.Context, clinicID int64) (*Clinic, error) {
	url := fmt.Sprintf("%s/internal/clinics/%d", c.baseURL, clinicID)

	var clinic Clinic
	if err := c.getJSON(ctx, url, &clinic, ErrClinicNotFound); err != nil {
		return nil, err
	}
	return &clinic, nil
}

// GetDoctor получает доктора клиники по ID
// Возвращает ErrDoctorNotFound, если доктор не существует или не относится
// к указанной клинике
func (c *Client) GetDoctor(ctx context.Context, clinicID, doctorID int64) (*Doctor, error) {
	url := fmt.Sprintf("%s/internal/clinics/%d/doctors/%d", c.baseURL, clinicID, doctorID)

	var doctor Doctor
	if err := c.getJSON(ctx, url, &doctor, ErrDoctorNotFound); err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (c *Client) getJSON(ctx context.Context, url string, dest interface{}, notFound error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
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
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return notFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
