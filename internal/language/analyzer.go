// Package language wraps the Google Cloud Natural Language v1 entity analysis call.
package language

import (
	"context"

	"audiofields-backend/internal/gcloud"
)

const analyzeEntitiesPath = "/v1/documents:analyzeEntities"

// Mention is one occurrence of an entity in the analyzed text.
type Mention struct {
	Text TextSpan `json:"text"`
	// Type is PROPER, COMMON or TYPE_UNKNOWN.
	Type string `json:"type"`
}

// TextSpan is a piece of the analyzed text.
type TextSpan struct {
	Content     string `json:"content"`
	BeginOffset int    `json:"beginOffset"`
}

// Entity is a recognized entity with its mentions.
type Entity struct {
	Name string `json:"name"`
	// Type is PERSON, LOCATION, ORGANIZATION, EVENT, WORK_OF_ART,
	// CONSUMER_GOOD, OTHER, PHONE_NUMBER, ADDRESS, DATE, NUMBER, PRICE or UNKNOWN.
	Type     string            `json:"type"`
	Metadata map[string]string `json:"metadata,omitempty"`
	Salience float64           `json:"salience"`
	Mentions []Mention         `json:"mentions"`
}

// Response is the analyzeEntities result.
type Response struct {
	Entities []Entity `json:"entities"`
	Language string   `json:"language"`
}

// Analyzer extracts entities from plain text.
type Analyzer interface {
	AnalyzeEntities(ctx context.Context, text string) (Response, error)
}

type document struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

type analyzeRequest struct {
	Document     document `json:"document"`
	EncodingType string   `json:"encodingType"`
}

// Client is the REST-backed Analyzer.
type Client struct {
	api *gcloud.Client
}

func NewClient(api *gcloud.Client) *Client {
	return &Client{api: api}
}

func (c *Client) AnalyzeEntities(ctx context.Context, text string) (Response, error) {
	req := analyzeRequest{
		Document:     document{Type: "PLAIN_TEXT", Content: text},
		EncodingType: "UTF8",
	}
	var resp Response
	if err := c.api.PostJSON(ctx, analyzeEntitiesPath, req, &resp); err != nil {
		return Response{}, err
	}
	return resp, nil
}
