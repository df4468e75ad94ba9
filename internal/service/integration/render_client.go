package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/elenaferr0/study-leave-doc-generator/internal/models"
)

// RenderError переносит статус и сообщение сервиса рендеринга без изменений.
type RenderError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render service returned status %d: %s", e.Code, e.Message)
}

type RenderResponse struct {
	PDF         []byte
	ContentType string
}

type RenderClient interface {
	Build(ctx context.Context, model *models.DocumentModel) (*RenderResponse, error)
	Health(ctx context.Context) error
}

type renderClient struct {
	baseURL    string
	timeout    time.Duration
	retryCount int
	retryDelay time.Duration
	client     *http.Client
	logger     zerolog.Logger
}

func NewRenderClient(baseURL string, timeout time.Duration, retryCount int, retryDelay time.Duration, logger zerolog.Logger) RenderClient {
	return &renderClient{
		baseURL:    baseURL,
		timeout:    timeout,
		retryCount: retryCount,
		retryDelay: retryDelay,
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

func (c *renderClient) Build(ctx context.Context, model *models.DocumentModel) (*RenderResponse, error) {
	url := fmt.Sprintf("%s/document/build", c.baseURL)

	payload, err := json.Marshal(model)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document model: %w", err)
	}

	var lastErr error

	for i := 0; i <= c.retryCount; i++ {
		if i > 0 {
			c.logger.Warn().Int("attempt", i).Msg("Retrying document build")
			time.Sleep(c.retryDelay * time.Duration(i))
		}

		req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(payload))
		if err != nil {
			lastErr = fmt.Errorf("failed to create request: %w", err)
			continue
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("failed to call render service: %w", err)
			if resp != nil {
				resp.Body.Close()
			}
			continue
		}

		if resp.StatusCode == http.StatusOK {
			pdf, err := io.ReadAll(resp.Body)
			resp.Body.Close()
			if err != nil {
				lastErr = fmt.Errorf("failed to read response body: %w", err)
				continue
			}

			contentType := resp.Header.Get("Content-Type")
			if contentType == "" {
				contentType = "application/pdf"
			}

			c.logger.Debug().
				Str("branch", model.Branch.String()).
				Str("language", model.Language).
				Int("pdf_size", len(pdf)).
				Msg("Document built")

			return &RenderResponse{PDF: pdf, ContentType: contentType}, nil
		}

		renderErr := decodeRenderError(resp)

		// Ответы 4xx повторять бессмысленно, модель не изменится.
		if resp.StatusCode < http.StatusInternalServerError {
			return nil, renderErr
		}
		lastErr = renderErr
	}

	return nil, fmt.Errorf("failed to build document after %d attempts: %w", c.retryCount+1, lastErr)
}

func (c *renderClient) Health(ctx context.Context) error {
	url := fmt.Sprintf("%s/health", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach render service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("render service returned status %d", resp.StatusCode)
	}

	return nil
}

func decodeRenderError(resp *http.Response) *RenderError {
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	message := string(body)

	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			message = payload.Message
		} else if payload.Error != "" {
			message = payload.Error
		}
	}

	return &RenderError{Code: resp.StatusCode, Message: message}
}
