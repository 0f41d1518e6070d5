package external

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"usd_converter/internal/config"
	"usd_converter/internal/models"

	"github.com/sirupsen/logrus"
)

var (
	// ErrMalformedResponse - тело ответа не JSON или в нём нет курсов; повторять бессмысленно
	ErrMalformedResponse = errors.New("malformed API response")
	// ErrUnexpectedStatus - API ответил не 2xx
	ErrUnexpectedStatus = errors.New("unexpected API status")
)

// Клиент для работы с внешним API курсов
type Client struct {
	httpClient *http.Client
	url        string
	logger     logrus.FieldLogger
}

// Создаём новый клиент для внешнего API
func New(cfg *config.ExternalConfig, logger logrus.FieldLogger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		url:    cfg.URL,
		logger: logger,
	}
}

// Получаем все курсы относительно USD одним запросом
func (c *Client) GetLatestRates(ctx context.Context) (models.RateTable, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "USD-Converter/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.WithField("response_size", len(body)).Debug("External API response")

	var apiResp models.ExternalAPIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(apiResp.Rates) == 0 {
		return nil, fmt.Errorf("%w: missing rates field", ErrMalformedResponse)
	}

	c.logger.WithFields(logrus.Fields{
		"base":        apiResp.Base,
		"date":        apiResp.Date,
		"rates_count": len(apiResp.Rates),
	}).Info("Successfully retrieved exchange rates")

	return apiResp.Rates, nil
}
