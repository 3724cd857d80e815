package kie

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ferixdi/kie-studio/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCreateTask проверяет обе стороны контракта успеха: HTTP-статус
// и прикладной code внутри конверта
func TestCreateTask(t *testing.T) {
	tests := []struct {
		name       string
		httpStatus int
		body       string
		expectID   string
		expectErr  bool
		expectCode int
	}{
		{
			name:       "success",
			httpStatus: http.StatusOK,
			body:       `{"code":200,"msg":"success","data":{"taskId":"task-123"}}`,
			expectID:   "task-123",
		},
		{
			name:       "embedded code failure despite http 200",
			httpStatus: http.StatusOK,
			body:       `{"code":422,"msg":"insufficient credits","data":null}`,
			expectErr:  true,
			expectCode: 422,
		},
		{
			name:       "http error",
			httpStatus: http.StatusInternalServerError,
			body:       `{"code":500,"msg":"internal error"}`,
			expectErr:  true,
			expectCode: 500,
		},
		{
			name:       "http error without json body",
			httpStatus: http.StatusBadGateway,
			body:       "bad gateway",
			expectErr:  true,
			expectCode: 502,
		},
		{
			name:       "missing task id",
			httpStatus: http.StatusOK,
			body:       `{"code":200,"msg":"success","data":{}}`,
			expectErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/jobs/createTask", r.URL.Path)
				assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

				var payload map[string]interface{}
				require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
				assert.Equal(t, string(entity.ModelNanoBanana), payload["model"])

				w.WriteHeader(tt.httpStatus)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewClient(srv.URL, 5*time.Second)
			input := entity.NanoInput{
				Prompt:       "кот в сапогах",
				AspectRatio:  entity.RatioHorizontal169,
				Resolution:   entity.Resolution4K,
				OutputFormat: entity.FormatPNG,
			}

			taskID, err := client.CreateTask(context.Background(), "test-key", entity.ModelNanoBanana, input)

			if tt.expectErr {
				require.Error(t, err)
				if tt.expectCode != 0 {
					var apiErr *APIError
					require.True(t, errors.As(err, &apiErr))
					assert.Equal(t, tt.expectCode, apiErr.Code)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectID, taskID)
		})
	}
}

// TestGetTaskStatus проверяет разбор записи recordInfo
func TestGetTaskStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/jobs/recordInfo", r.URL.Path)
		assert.Equal(t, "task-9", r.URL.Query().Get("taskId"))

		w.Write([]byte(`{"code":200,"msg":"success","data":{"taskId":"task-9","state":"success","resultJson":"{\"resultUrls\":[\"https://a/x.png\"]}"}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)

	record, err := client.GetTaskStatus(context.Background(), "test-key", "task-9")
	require.NoError(t, err)
	assert.Equal(t, entity.TaskStateSuccess, record.State)
	assert.Equal(t, []string{"https://a/x.png"}, ParseResultJSON(record.ResultJSON))
}

// TestGetTaskStatusFail пробрасывает failMsg удалённой ошибки
func TestGetTaskStatusFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":200,"msg":"success","data":{"taskId":"task-9","state":"fail","failMsg":"content policy violation"}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)

	record, err := client.GetTaskStatus(context.Background(), "test-key", "task-9")
	require.NoError(t, err)
	assert.Equal(t, entity.TaskStateFail, record.State)
	assert.Equal(t, "content policy violation", record.FailMsg)
}

// TestUploadFile проверяет multipart-загрузку и оба варианта поля с URL
func TestUploadFile(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{
			name:     "url field",
			body:     `{"code":200,"msg":"success","data":{"url":"https://files/a.mp4"}}`,
			expected: "https://files/a.mp4",
		},
		{
			name:     "fileUrl field",
			body:     `{"code":200,"msg":"success","data":{"fileUrl":"https://files/b.mp4"}}`,
			expected: "https://files/b.mp4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/file/upload", r.URL.Path)
				file, header, err := r.FormFile("file")
				require.NoError(t, err)
				defer file.Close()
				assert.Equal(t, "clip.mp4", header.Filename)

				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewClient(srv.URL, 5*time.Second)

			url, err := client.UploadFile(context.Background(), "test-key", "clip.mp4", bytes.NewReader([]byte("fake video bytes")))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, url)
		})
	}
}
