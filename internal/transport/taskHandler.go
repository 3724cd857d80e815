package transport

import (
	"io"
	"net/http"
	"strings"

	"github.com/ferixdi/kie-studio/internal/entity"
	"github.com/gin-gonic/gin"
)

// Generate принимает форму генерации (JSON или multipart с файлами),
// ставит задачу и сразу возвращает запись истории в статусе waiting.
func (h *Handler) Generate(c *gin.Context) {
	req, err := bindGenerateRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req.APIKey = bearerToken(c)
	req.ClientID = c.GetHeader("X-Client-ID")

	entry, err := h.tasks.Submit(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, entry)
}

func (h *Handler) TaskStatus(c *gin.Context) {
	entry, err := h.tasks.Status(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *Handler) History(c *gin.Context) {
	entries, err := h.tasks.History(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": entries})
}

func (h *Handler) ClearHistory(c *gin.Context) {
	if err := h.tasks.ClearHistory(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "history cleared"})
}

func bindGenerateRequest(c *gin.Context) (*entity.GenerateRequest, error) {
	if strings.HasPrefix(c.ContentType(), "application/json") {
		var req entity.GenerateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, err
		}
		return &req, nil
	}

	req := &entity.GenerateRequest{
		Model:         c.PostForm("model"),
		Prompt:        c.PostForm("prompt"),
		AspectRatio:   c.PostForm("aspect_ratio"),
		Resolution:    c.PostForm("resolution"),
		OutputFormat:  c.PostForm("output_format"),
		ImageURL:      c.PostForm("image_url"),
		VideoURL:      c.PostForm("video_url"),
		UpscaleFactor: c.PostForm("upscale_factor"),
	}

	if data, _, err := formFileBytes(c, "image"); err != nil {
		return nil, err
	} else if data != nil {
		req.ImageData = data
	}

	if data, filename, err := formFileBytes(c, "video"); err != nil {
		return nil, err
	} else if data != nil {
		req.VideoData = data
		req.VideoFilename = filename
	}

	return req, nil
}

func formFileBytes(c *gin.Context, field string) ([]byte, string, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		// Файл не обязателен
		return nil, "", nil
	}
	file, err := fileHeader.Open()
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", err
	}
	return data, fileHeader.Filename, nil
}

func bearerToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return ""
}
