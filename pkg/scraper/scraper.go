// Package scraper provides the http client shared by every data source
package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("football-statistic-scraper/scraper")

type ClientOptions struct {
	Timeout time.Duration
	// sent when a request does not set its own user-agent
	UserAgent string
	// when set, every http exchange is written to this directory
	DumpDir string
}

// Client wraps a resty client, requests are issued one at a time by callers
type Client struct {
	http *resty.Client
}

func NewClient(opts ClientOptions) (*Client, error) {
	client := resty.New()
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	client.SetTimeout(timeout)
	if opts.UserAgent != "" {
		client.SetHeader("user-agent", opts.UserAgent)
	}

	if opts.DumpDir != "" {
		output, err := NewFilesystemOutput(opts.DumpDir)
		if err != nil {
			return nil, err
		}
		InstrumentClient(client, output)
	}

	return &Client{http: client}, nil
}

// FetchURL downloads a page and returns its body
func (c *Client) FetchURL(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "FetchURL")
	defer span.End()
	span.SetAttributes(attribute.String("url", url))

	slog.DebugContext(ctx, "fetching url", "url", url)

	res, err := c.http.R().
		SetContext(ctx).
		SetHeaders(headers).
		Get(url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return nil, fmt.Errorf("error fetching URL: %w", err)
	}
	if !res.IsSuccess() {
		span.SetStatus(codes.Error, "unexpected status")
		return nil, fmt.Errorf("non-2xx status code: %s", res.Status())
	}

	slog.DebugContext(ctx, "fetched url", "url", url, "status", res.StatusCode(), "bytes", len(res.Body()))
	return res.Body(), nil
}

// PostForm submits an urlencoded form and returns the response body
func (c *Client) PostForm(ctx context.Context, url string, form map[string]string, headers map[string]string) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "PostForm")
	defer span.End()
	span.SetAttributes(attribute.String("url", url))

	slog.DebugContext(ctx, "posting form", "url", url)

	res, err := c.http.R().
		SetContext(ctx).
		SetHeaders(headers).
		SetFormData(form).
		Post(url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return nil, fmt.Errorf("error posting form: %w", err)
	}
	if !res.IsSuccess() {
		span.SetStatus(codes.Error, "unexpected status")
		return nil, fmt.Errorf("non-2xx status code: %s", res.Status())
	}
	return res.Body(), nil
}

// SaveContentToFile writes content to a file, creating parent directories
func SaveContentToFile(filename string, content []byte) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return os.WriteFile(filename, content, 0644)
}
