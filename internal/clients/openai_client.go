package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"

	"github.com/spacesedan/commentlens/internal/models"
)

const DEFAULT_OPENAI_MODEL = "gpt-5-mini"

var (
	openAIClientInstance *OpenAIClient
	openAIOnce           sync.Once
)

// OpenAIClient classifies comment batches through the Responses API with a
// strict JSON-schema output. It implements analysis.Classifier.
type OpenAIClient struct {
	Client *openai.Client
	model  string
}

func GetOpenAIClient() *OpenAIClient {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		slog.Error("[OpenAIClient] Missing OPENAI_API_KEY in environment variables")
		panic("[OpenAIClient] Missing OPENAI_API_KEY in environment variables")
	}
	openAIOnce.Do(func() {
		model := os.Getenv("OPENAI_MODEL")
		if model == "" {
			model = DEFAULT_OPENAI_MODEL
		}
		client := openai.NewClient(option.WithAPIKey(apiKey))
		openAIClientInstance = &OpenAIClient{
			Client: &client,
			model:  model,
		}
		slog.Info("[OpenAIClient] OpenAI client initialized", slog.String("model", model))
	})
	return openAIClientInstance
}

type sentimentLabelsOutput struct {
	Labels []string `json:"labels" jsonschema:"enum=positive,enum=neutral,enum=negative"`
}

var sentimentLabelsSchema = generateSchema[sentimentLabelsOutput]()

const classifyInstructions = "You are a sentiment classifier for social media comments. " +
	"You receive a JSON array of comment texts. Label each comment positive, neutral or negative. " +
	"Return a JSON object with a \"labels\" array holding exactly one label per comment, in the same order as the input."

func (o *OpenAIClient) ClassifyBatch(ctx context.Context, texts []string) ([]models.SentimentLabel, error) {
	input, err := json.Marshal(texts)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal batch input: %w", err)
	}

	format := responses.ResponseFormatTextConfigUnionParam{
		OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
			Name:        "SentimentLabels",
			Schema:      sentimentLabelsSchema,
			Strict:      openai.Bool(true),
			Description: openai.String("One sentiment label per input comment"),
			Type:        "json_schema",
		},
	}

	params := responses.ResponseNewParams{
		Model:        o.model,
		Instructions: openai.String(classifyInstructions),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(string(input), responses.EasyInputMessageRoleUser),
			},
		},
		Text: responses.ResponseTextConfigParam{
			Format: format,
		},
	}

	resp, err := o.callWithRetry(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("classification request failed: %w", err)
	}

	var out sentimentLabelsOutput
	if err := json.Unmarshal([]byte(resp.OutputText()), &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal classification output: %w", err)
	}
	if len(out.Labels) != len(texts) {
		return nil, fmt.Errorf("model returned %d labels for %d texts", len(out.Labels), len(texts))
	}

	labels := make([]models.SentimentLabel, len(out.Labels))
	for i, raw := range out.Labels {
		labels[i] = models.SentimentLabel(raw)
	}
	return labels, nil
}

func (o *OpenAIClient) callWithRetry(ctx context.Context, params responses.ResponseNewParams) (*responses.Response, error) {
	const maxRetries = 3
	rateLimitWaitTimes := []time.Duration{65 * time.Second, 100 * time.Second, 135 * time.Second}
	serverErrorWaitTimes := []time.Duration{5 * time.Second, 30 * time.Second, 60 * time.Second}

	for attempt := 0; attempt < maxRetries; attempt++ {
		resp, err := o.Client.Responses.New(ctx, params)
		if err != nil {
			if isRateLimitError(err) {
				if attempt < maxRetries-1 {
					slog.Warn("[OpenAIClient] Rate limited, will retry",
						slog.Int("attempt", attempt+1))
					time.Sleep(rateLimitWaitTimes[attempt])
					continue
				}
			} else if isServerError(err) {
				if attempt < maxRetries-1 {
					slog.Warn("[OpenAIClient] Server error, will retry",
						slog.Int("attempt", attempt+1),
						slog.String("error", err.Error()))
					time.Sleep(serverErrorWaitTimes[attempt])
					continue
				}
			}
			return nil, err
		}
		return resp, nil
	}
	return nil, fmt.Errorf("failed after %d attempts due to OpenAI API issues", maxRetries)
}

func isRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "too many requests")
}

func isServerError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "500") ||
		strings.Contains(errStr, "internal server error") ||
		strings.Contains(errStr, "server_error")
}

func generateSchema[T any]() map[string]interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	var v T
	schema := reflector.Reflect(v)

	b, err := schema.MarshalJSON()
	if err != nil {
		panic(err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		panic(err)
	}
	ensureStrictSchema(m)
	return m
}

// ensureStrictSchema walks the schema and enforces the shape OpenAI strict
// mode expects: objects disallow extra properties and require every field.
func ensureStrictSchema(schema map[string]interface{}) {
	if schemaType, ok := schema["type"].(string); ok && schemaType == "object" {
		schema["additionalProperties"] = false

		props, _ := schema["properties"].(map[string]interface{})
		required := make([]interface{}, 0, len(props))
		for name, prop := range props {
			required = append(required, name)
			if nested, ok := prop.(map[string]interface{}); ok {
				ensureStrictSchema(nested)
			}
		}
		if len(required) > 0 {
			schema["required"] = required
		}
	}
	if items, ok := schema["items"].(map[string]interface{}); ok {
		ensureStrictSchema(items)
	}
}
