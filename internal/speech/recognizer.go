// Package speech wraps the Google Cloud Speech-to-Text v1 recognize call.
package speech

import (
	"context"
	"encoding/base64"
	"strings"

	"audiofields-backend/internal/gcloud"
)

const recognizePath = "/v1/speech:recognize"

// Config mirrors the RecognitionConfig fields this service sets.
type Config struct {
	Encoding          string `json:"encoding"`
	SampleRateHertz   int    `json:"sampleRateHertz"`
	LanguageCode      string `json:"languageCode"`
	AudioChannelCount int    `json:"audioChannelCount"`
	Model             string `json:"model"`
}

// DefaultConfig is the recognition config used for every upload.
func DefaultConfig() Config {
	return Config{
		Encoding:          "MP3",
		SampleRateHertz:   16000,
		LanguageCode:      "en-US",
		AudioChannelCount: 1,
		Model:             "default",
	}
}

// Recognizer turns raw audio bytes into a transcript. An empty transcript with
// a nil error means the backend recognized nothing.
type Recognizer interface {
	Recognize(ctx context.Context, audio []byte) (string, error)
}

type recognizeRequest struct {
	Config Config `json:"config"`
	Audio  struct {
		Content string `json:"content"`
	} `json:"audio"`
}

type recognizeResponse struct {
	Results []struct {
		Alternatives []struct {
			Transcript string  `json:"transcript"`
			Confidence float64 `json:"confidence"`
		} `json:"alternatives"`
	} `json:"results"`
}

// Client is the REST-backed Recognizer.
type Client struct {
	api    *gcloud.Client
	config Config
}

// NewClient builds a speech client over an authenticated gcloud client.
func NewClient(api *gcloud.Client, cfg Config) *Client {
	return &Client{api: api, config: cfg}
}

// Recognize returns the top alternative of the first result, or "" when the
// backend returned no results.
func (c *Client) Recognize(ctx context.Context, audio []byte) (string, error) {
	var req recognizeRequest
	req.Config = c.config
	req.Audio.Content = base64.StdEncoding.EncodeToString(audio)

	var resp recognizeResponse
	if err := c.api.PostJSON(ctx, recognizePath, req, &resp); err != nil {
		return "", err
	}
	if len(resp.Results) == 0 || len(resp.Results[0].Alternatives) == 0 {
		return "", nil
	}
	return strings.TrimSpace(resp.Results[0].Alternatives[0].Transcript), nil
}
