package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/bytedance/sonic"
	"github.com/opencollect/collect-api/internal/config"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// PilotageClient talks to the pilotage service that owns habilitations: the
// mapping from a caller to the survey units they may touch, per role.
type PilotageClient struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

func NewPilotageClient(cfg *config.Config, log *zap.Logger) *PilotageClient {
	return &PilotageClient{
		BaseURL: cfg.Pilotage.BaseURL,
		HTTPClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		Logger: log,
	}
}

type habilitationResponse struct {
	Habilitated bool `json:"habilitated"`
}

// CheckHabilitation asks pilotage whether the caller behind token holds role
// on the given survey unit. The caller's token is forwarded as-is.
func (c *PilotageClient) CheckHabilitation(ctx context.Context, token, surveyUnitID, role string) (bool, error) {
	endpoint := fmt.Sprintf("%s/check-habilitation?id=%s&role=%s",
		c.BaseURL, url.QueryEscape(surveyUnitID), url.QueryEscape(role))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("create request: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.Logger.Error("check-habilitation request failed",
			zap.Int("status_code", resp.StatusCode),
			zap.String("survey_unit_id", surveyUnitID),
			zap.String("role", role))
		return false, fmt.Errorf("pilotage returned status %d", resp.StatusCode)
	}

	var result habilitationResponse
	if err := sonic.Unmarshal(body, &result); err != nil {
		return false, fmt.Errorf("unmarshal response: %w", err)
	}
	return result.Habilitated, nil
}
