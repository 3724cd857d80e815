package kie

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ferixdi/kie-studio/internal/entity"
)

const DefaultBaseURL = "https://api.kie.ai/api/v1"

// APIError — ошибка удалённого сервиса: транспортная, HTTP-уровня или
// прикладная (code != 200 в конверте ответа).
type APIError struct {
	Code int
	Msg  string
}

func (e *APIError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("kie api: %s (code %d)", e.Msg, e.Code)
	}
	return "kie api: " + e.Msg
}

// Client — единственная сетевая граница к генеративному API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	base := strings.TrimRight(baseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    base,
	}
}

type createTaskRequest struct {
	Model entity.Model     `json:"model"`
	Input entity.TaskInput `json:"input"`
}

// envelope — общий конверт ответов API: {code, msg, data}.
type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

// CreateTask отправляет задачу и возвращает её идентификатор. Успехом
// считается только 2xx по HTTP и code == 200 в конверте: сервис иногда
// отвечает HTTP 200 с прикладной ошибкой внутри.
func (c *Client) CreateTask(ctx context.Context, apiKey string, model entity.Model, input entity.TaskInput) (string, error) {
	body, err := json.Marshal(createTaskRequest{Model: model, Input: input})
	if err != nil {
		return "", err
	}

	data, err := c.post(ctx, apiKey, "/jobs/createTask", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}

	var payload struct {
		TaskID string `json:"taskId"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", &APIError{Msg: "malformed createTask response"}
	}
	if payload.TaskID == "" {
		return "", &APIError{Msg: "createTask returned empty taskId"}
	}
	return payload.TaskID, nil
}

// GetTaskStatus возвращает текущее состояние задачи. Ошибка здесь
// трактуется вызывающим как временная: опрос продолжается.
func (c *Client) GetTaskStatus(ctx context.Context, apiKey, taskID string) (*entity.TaskRecord, error) {
	endpoint := c.baseURL + "/jobs/recordInfo?taskId=" + url.QueryEscape(taskID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)

	data, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var record entity.TaskRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, &APIError{Msg: "malformed recordInfo response"}
	}
	return &record, nil
}

// UploadFile загружает локальный файл и возвращает его размещённый URL.
func (c *Client) UploadFile(ctx context.Context, apiKey, filename string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	data, err := c.post(ctx, apiKey, "/file/upload", writer.FormDataContentType(), &buf)
	if err != nil {
		return "", err
	}

	var payload struct {
		URL     string `json:"url"`
		FileURL string `json:"fileUrl"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", &APIError{Msg: "malformed upload response"}
	}
	if payload.URL != "" {
		return payload.URL, nil
	}
	if payload.FileURL != "" {
		return payload.FileURL, nil
	}
	return "", &APIError{Msg: "upload returned no file url"}
}

func (c *Client) post(ctx context.Context, apiKey, path, contentType string, body io.Reader) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+apiKey)
	return c.do(req)
}

func (c *Client) do(req *http.Request) (json.RawMessage, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("kie api: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, &APIError{Code: resp.StatusCode, Msg: fmt.Sprintf("http %d", resp.StatusCode)}
		}
		return nil, &APIError{Msg: "malformed response body"}
	}
	// Сначала HTTP-статус, затем прикладной код: любой из двух — отказ
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := env.Msg
		if msg == "" {
			msg = fmt.Sprintf("http %d", resp.StatusCode)
		}
		return nil, &APIError{Code: resp.StatusCode, Msg: msg}
	}
	if env.Code != 200 {
		msg := env.Msg
		if msg == "" {
			msg = "request rejected"
		}
		return nil, &APIError{Code: env.Code, Msg: msg}
	}
	return env.Data, nil
}
