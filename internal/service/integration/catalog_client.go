package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/elenaferr0/study-leave-doc-generator/internal/models"
)

type CatalogClient interface {
	ActivityTypes(ctx context.Context) ([]models.ActivityDescriptor, error)
	Languages(ctx context.Context) ([]models.LanguageDescriptor, error)
}

// catalogClient кеширует справочники сервиса рендеринга на короткий TTL,
// чтобы не ходить за ними на каждый запрос формы.
type catalogClient struct {
	baseURL  string
	cacheTTL time.Duration
	client   *http.Client
	logger   zerolog.Logger

	mu               sync.RWMutex
	activities       []models.ActivityDescriptor
	activitiesExpiry time.Time
	languages        []models.LanguageDescriptor
	languagesExpiry  time.Time
}

func NewCatalogClient(baseURL string, timeout, cacheTTL time.Duration, logger zerolog.Logger) CatalogClient {
	return &catalogClient{
		baseURL:  baseURL,
		cacheTTL: cacheTTL,
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

func (c *catalogClient) ActivityTypes(ctx context.Context) ([]models.ActivityDescriptor, error) {
	c.mu.RLock()
	if c.activities != nil && time.Now().Before(c.activitiesExpiry) {
		cached := c.activities
		c.mu.RUnlock()
		return cached, nil
	}
	c.mu.RUnlock()

	var payload models.ActivityTypesResponse
	if err := c.fetch(ctx, "/document/activity-types", &payload); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.activities = payload.ActivityTypes
	c.activitiesExpiry = time.Now().Add(c.cacheTTL)
	c.mu.Unlock()

	c.logger.Debug().Int("count", len(payload.ActivityTypes)).Msg("Activity catalog refreshed")

	return payload.ActivityTypes, nil
}

func (c *catalogClient) Languages(ctx context.Context) ([]models.LanguageDescriptor, error) {
	c.mu.RLock()
	if c.languages != nil && time.Now().Before(c.languagesExpiry) {
		cached := c.languages
		c.mu.RUnlock()
		return cached, nil
	}
	c.mu.RUnlock()

	var payload models.LanguagesResponse
	if err := c.fetch(ctx, "/document/languages", &payload); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.languages = payload.Languages
	c.languagesExpiry = time.Now().Add(c.cacheTTL)
	c.mu.Unlock()

	c.logger.Debug().Int("count", len(payload.Languages)).Msg("Language catalog refreshed")

	return payload.Languages, nil
}

func (c *catalogClient) fetch(ctx context.Context, path string, out interface{}) error {
	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("catalog endpoint returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode catalog response: %w", err)
	}

	return nil
}
