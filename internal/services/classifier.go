package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// ClassifierService is a thin client for the external waste-image
// classification model. The model is opaque; this only speaks its
// fixed request/response contract.
type ClassifierService struct {
	endpoint string
	client   *http.Client
}

// ClassificationResult is the model's fixed response shape
type ClassificationResult struct {
	Category        string  `json:"category"`
	Confidence      float64 `json:"confidence"`
	Description     string  `json:"description"`
	Disposal        string  `json:"disposal"`
	OverallAccuracy float64 `json:"overallAccuracy"`
	Timestamp       string  `json:"timestamp"`
	ModelVersion    string  `json:"modelVersion"`
}

// NewClassifierService creates a classifier client for the given endpoint
func NewClassifierService(endpoint string) *ClassifierService {
	return &ClassifierService{
		endpoint: endpoint,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Classify uploads an image as multipart form data and returns the
// model's classification.
func (s *ClassifierService) Classify(ctx context.Context, filename string, image io.Reader) (*ClassificationResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("classifier request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("classifier returned status %d", resp.StatusCode)
	}

	var result ClassificationResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse classifier response: %w", err)
	}

	return &result, nil
}
