package foundry

import (
	"context"
	"errors"
	"strings"
)

// ResponseRequest captures the inputs for a Responses API call.
type ResponseRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

// Response is the decoded Responses API result. Output items carry typed
// content parts; only output_text parts contribute to the aggregate text.
type Response struct {
	ID     string `json:"id"`
	Model  string `json:"model"`
	Status string `json:"status"`
	Output []struct {
		Type    string `json:"type"`
		Role    string `json:"role"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
	Usage Usage `json:"usage"`
}

// OutputText concatenates every output_text part across output items.
func (r *Response) OutputText() string {
	if r == nil {
		return ""
	}
	var b strings.Builder
	for _, item := range r.Output {
		for _, part := range item.Content {
			if part.Type == "output_text" {
				b.WriteString(part.Text)
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// CreateResponse invokes the Responses API once.
func (c *Client) CreateResponse(ctx context.Context, req ResponseRequest) (*Response, error) {
	if strings.TrimSpace(req.Model) == "" {
		return nil, errors.New("foundry: model is required")
	}
	if strings.TrimSpace(req.Input) == "" {
		return nil, errors.New("foundry: input is required")
	}
	var out Response
	if err := c.postJSON(ctx, "/responses", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
