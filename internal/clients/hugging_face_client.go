package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spacesedan/commentlens/internal/models"
)

const DEFAULT_SENTIMENT_API_URL = "https://spacesedan-sentiment-analyzer.hf.space"

var (
	huggingFaceInstance *HuggingFaceClient
	huggingFaceOnce     sync.Once
)

// HuggingFaceClient talks to the remote batch sentiment service. It
// implements analysis.Classifier.
type HuggingFaceClient struct {
	Client  *http.Client
	baseURL string
}

func GetHuggingFaceClient() *HuggingFaceClient {
	var timeout time.Duration
	env := os.Getenv("APP_ENV")
	if env == "production" {
		timeout = 10 * time.Second
	} else {
		timeout = 60 * time.Second
	}
	huggingFaceOnce.Do(func() {
		baseURL := os.Getenv("SENTIMENT_API_URL")
		if baseURL == "" {
			baseURL = DEFAULT_SENTIMENT_API_URL
		}
		slog.Info("[HuggingFaceClient] Initializing Client",
			slog.Duration("timeout", timeout),
			slog.String("env", env),
			slog.String("base_url", baseURL))
		huggingFaceInstance = &HuggingFaceClient{
			Client: &http.Client{
				Timeout: timeout,
			},
			baseURL: baseURL,
		}
	})
	return huggingFaceInstance
}

// ClassifyBatch submits one batch to the analyze endpoint. Each text is
// tagged with a generated content id and the response is re-associated
// through an id map, so the label order we return matches the input order no
// matter how the service orders its response.
func (h *HuggingFaceClient) ClassifyBatch(ctx context.Context, texts []string) ([]models.SentimentLabel, error) {
	request := make(models.SentimentAnalysisBatchRequest, len(texts))
	ids := make([]string, len(texts))
	for i, text := range texts {
		ids[i] = uuid.NewString()
		request[i] = models.SentimentAnalysisRequest{
			ContentID: ids[i],
			Text:      text,
		}
	}

	var response models.SentimentAnalysisBatchResponse
	start := time.Now()
	if err := h.postJSON(ctx, h.baseURL+"/analyze_batch", request, &response); err != nil {
		slog.Error("[HuggingFaceClient] Sentiment Analysis request failed",
			slog.Duration("elapsed", time.Since(start)))
		return nil, err
	}

	byID := make(map[string]models.SentimentAnalysisResponse, len(response))
	for _, item := range response {
		byID[item.ContentID] = item
	}

	labels := make([]models.SentimentLabel, len(texts))
	for i, id := range ids {
		item, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("sentiment service returned no result for text %d", i)
		}
		labels[i] = models.SentimentLabel(item.SentimentLabel)
	}

	slog.Info("[HuggingFaceClient] Sentiment Analysis request successful",
		slog.Int("texts", len(texts)),
		slog.Duration("elapsed", time.Since(start)))
	return labels, nil
}

// AnalyzerHealthCheck reports whether the sentiment service answers its
// health endpoint.
func (h *HuggingFaceClient) AnalyzerHealthCheck() bool {
	req, err := http.NewRequest(http.MethodGet, h.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", USER_AGENT)

	resp, err := h.Client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

func (h *HuggingFaceClient) DoWithRetry(req *http.Request) (*http.Response, error) {
	var resp *http.Response
	var err error
	backoff := INITIAL_BACKOFF

	for attempt := 0; attempt < MAX_RETRIES; attempt++ {
		resp, err = h.Client.Do(req)
		if err == nil && resp.StatusCode < 500 {
			return resp, nil
		}

		if resp != nil {
			resp.Body.Close()
		}

		slog.Warn("[HuggingFaceClient] Request failed, will retry",
			slog.Int("attempt", attempt+1),
			slog.String("error", errMsg(err, resp)))

		time.Sleep(backoff)
		backoff *= 2
	}

	return resp, err
}

// helper function for posting data to the sentiment service
func (h *HuggingFaceClient) postJSON(ctx context.Context, endpoint string, input interface{}, output interface{}) error {
	body, err := json.Marshal(input)
	if err != nil {
		slog.Error("[HuggingFaceClient] Failed to marshal input",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to marshal input: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		slog.Error("[HuggingFaceClient] Failed to build request",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", USER_AGENT)

	resp, err := h.DoWithRetry(req)
	if err != nil {
		slog.Error("[HuggingFaceClient] Failed request after retries",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()))

		return fmt.Errorf("request failed after retries: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Error("[HuggingFaceClient] Failed to read response",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to read response: %w", err)
	}

	if err := json.Unmarshal(respBody, output); err != nil {
		slog.Error("[HuggingFaceClient] Failed to unmarshal response",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()),
			getPreview(respBody),
			slog.Int("raw_response_length", len(string(respBody))))

		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return nil
}

func getPreview(respBody []byte) slog.Attr {
	raw := string(respBody)
	if len(raw) > 50 {
		raw = raw[:50]
	}
	return slog.String("raw_response", raw)
}

func errMsg(err error, resp *http.Response) string {
	if err != nil {
		return err.Error()
	}
	if resp != nil {
		return fmt.Sprintf("status code %d", resp.StatusCode)
	}
	return "unknown error"
}
