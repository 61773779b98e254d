package foundry

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// JobStatus is the server-assigned state of an asynchronous video job.
type JobStatus string

const (
	StatusQueued     = JobStatus("queued")
	StatusInProgress = JobStatus("processing")
	StatusCompleted  = JobStatus("completed")
	StatusFailed     = JobStatus("failed")
	StatusCancelled  = JobStatus("cancelled")
)

// Terminal reports whether s is a state the server never transitions out of.
func (s JobStatus) Terminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

// VideoRequest captures the creation-time parameters of a video job. They are
// immutable after submission.
type VideoRequest struct {
	Model   string `json:"model"`
	Prompt  string `json:"prompt"`
	Size    string `json:"size,omitempty"`
	Seconds string `json:"seconds,omitempty"`
}

// VideoJob is the server-side representation of a generation job. The local
// copy is only ever replaced wholesale by a fresh retrieve; nothing here is
// written locally.
type VideoJob struct {
	ID        string    `json:"id"`
	Status    JobStatus `json:"status"`
	Progress  int       `json:"progress"`
	Model     string    `json:"model"`
	Prompt    string    `json:"prompt"`
	Size      string    `json:"size"`
	Seconds   string    `json:"seconds"`
	CreatedAt int64     `json:"created_at"`
}

// CreateVideo submits a new video generation job and returns its initial state.
func (c *Client) CreateVideo(ctx context.Context, req VideoRequest) (*VideoJob, error) {
	if strings.TrimSpace(req.Model) == "" {
		return nil, errors.New("foundry: model is required")
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, errors.New("foundry: prompt is required")
	}
	var out VideoJob
	if err := c.postJSON(ctx, "/videos", req, &out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, errors.New("foundry: video job created without an id")
	}
	return &out, nil
}

// RetrieveVideo fetches the current state of a video job.
func (c *Client) RetrieveVideo(ctx context.Context, id string) (*VideoJob, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.New("foundry: video id is required")
	}
	var out VideoJob
	if err := c.getJSON(ctx, "/videos/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DownloadVideoContent fetches the binary artifact of a completed job. The
// variant selects which rendition to download; "video" is the main output.
func (c *Client) DownloadVideoContent(ctx context.Context, id, variant string) ([]byte, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.New("foundry: video id is required")
	}
	path := fmt.Sprintf("/videos/%s/content", url.PathEscape(id))
	if variant != "" {
		path += "?variant=" + url.QueryEscape(variant)
	}
	return c.downloadBytes(ctx, path)
}
