package catalogservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client клиент каталога услуг барбершопов
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента каталога
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetService получает услугу барбершопа (название, цена, длительность)
func (c *Client) GetService(ctx context.Context, shopID, serviceID int64) (*Service, error) {
	url := fmt.Sprintf("%s/internal/shops/%d/services/%d", c.baseURL, shopID, serviceID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrServiceNotFound
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid shop or service ID", ErrInvalidResponse)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var service Service
	if err := json.NewDecoder(resp.Body).Decode(&service); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	if service.DurationMinutes < 0 {
		return nil, fmt.Errorf("%w: negative duration %d", ErrInvalidResponse, service.DurationMinutes)
	}

	return &service, nil
}

// GetServiceWithGracefulDegradation как GetService, но при недоступности каталога
// возвращает ErrServiceDegraded, чтобы расчёт слотов продолжился с длительностью по умолчанию
func (c *Client) GetServiceWithGracefulDegradation(ctx context.Context, shopID, serviceID int64) (*Service, error) {
	service, err := c.GetService(ctx, shopID, serviceID)
	if err != nil {
		if errors.Is(err, ErrServiceNotFound) {
			c.log.Info("Service id=%d not found in shop id=%d", serviceID, shopID)
			return nil, err
		}

		c.log.Error("CatalogService unavailable, applying graceful degradation for shop=%d service=%d: %v",
			shopID, serviceID, err)
		return nil, fmt.Errorf("%w: shop=%d, service=%d, error=%v", ErrServiceDegraded, shopID, serviceID, err)
	}

	return service, nil
}
