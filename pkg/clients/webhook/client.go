package webhook

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/salonhq/ledger/internal/domain/models"
)

// Client posts monthly report snapshots to an external webhook (Slack-style
// incoming hooks, automation endpoints, or anything accepting JSON).
type Client interface {
	PostMonthlyReport(ctx context.Context, report models.MonthlyReport) error
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
	url        string
}

// NewClient builds a webhook client targeting the provided URL.
func NewClient(url string) *APIClient {
	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &APIClient{
		httpClient: restyClient,
		url:        url,
	}
}

// PostMonthlyReport sends the snapshot as a JSON payload.
func (c *APIClient) PostMonthlyReport(ctx context.Context, report models.MonthlyReport) error {
	payload := map[string]any{
		"year":          report.Year,
		"month":         report.Month,
		"totalServices": report.TotalServices,
		"totalExpenses": report.TotalExpenses,
		"profit":        report.Profit,
		"text": fmt.Sprintf("Monthly report %d-%02d: income %.2f, expenses %.2f, profit %.2f",
			report.Year, report.Month, report.TotalServices, report.TotalExpenses, report.Profit),
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		Post(c.url)
	if err != nil {
		return fmt.Errorf("post monthly report: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("webhook rejected monthly report: status=%d, body=%s", resp.StatusCode(), resp.String())
	}

	return nil
}
