package builder

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/ferixdi/kie-studio/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBuildValidation проверяет, что невалидная форма отклоняется
// до любого сетевого вызова с понятным сообщением
func TestBuildValidation(t *testing.T) {
	tests := []struct {
		name string
		req  entity.GenerateRequest
	}{
		{
			name: "nano empty prompt",
			req:  entity.GenerateRequest{Model: string(entity.ModelNanoBanana)},
		},
		{
			name: "nano whitespace prompt",
			req:  entity.GenerateRequest{Model: string(entity.ModelNanoBanana), Prompt: "   "},
		},
		{
			name: "sora missing video",
			req:  entity.GenerateRequest{Model: string(entity.ModelSoraRemover)},
		},
		{
			name: "topaz missing video",
			req:  entity.GenerateRequest{Model: string(entity.ModelTopazVideo)},
		},
		{
			name: "topaz bad upscale factor",
			req: entity.GenerateRequest{
				Model:         string(entity.ModelTopazVideo),
				VideoURL:      "https://a/v.mp4",
				UpscaleFactor: "3",
			},
		},
		{
			name: "unknown model",
			req:  entity.GenerateRequest{Model: "dall-e-9000", Prompt: "something"},
		},
		{
			name: "nano bad aspect ratio",
			req: entity.GenerateRequest{
				Model:       string(entity.ModelNanoBanana),
				Prompt:      "пейзаж",
				AspectRatio: "7:5",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input, err := Build(&tt.req)

			require.Error(t, err)
			assert.Nil(t, input)

			var validationErr *entity.ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}
}

// TestBuildNano собирает вход image-генерации с дефолтами как в веб-клиенте
func TestBuildNano(t *testing.T) {
	req := entity.GenerateRequest{
		Model:  string(entity.ModelNanoBanana),
		Prompt: "  кот в сапогах  ",
	}

	input, err := Build(&req)
	require.NoError(t, err)

	nano, ok := input.(entity.NanoInput)
	require.True(t, ok)
	assert.Equal(t, "кот в сапогах", nano.Prompt)
	assert.Empty(t, nano.ImageInput)
	assert.Equal(t, entity.RatioHorizontal169, nano.AspectRatio)
	assert.Equal(t, entity.Resolution4K, nano.Resolution)
	assert.Equal(t, entity.FormatPNG, nano.OutputFormat)
}

// TestBuildNanoWithImageURL ссылка на референс уходит как есть
func TestBuildNanoWithImageURL(t *testing.T) {
	req := entity.GenerateRequest{
		Model:    string(entity.ModelNanoBanana),
		Prompt:   "портрет",
		ImageURL: "https://a/ref.png",
	}

	input, err := Build(&req)
	require.NoError(t, err)

	nano := input.(entity.NanoInput)
	assert.Equal(t, []string{"https://a/ref.png"}, nano.ImageInput)
}

// TestBuildNanoWithImageFile файл перекодируется в raw base64 JPEG
func TestBuildNanoWithImageFile(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.NRGBA{R: 255, A: 0}) // полностью прозрачный
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	req := entity.GenerateRequest{
		Model:     string(entity.ModelNanoBanana),
		Prompt:    "постер",
		ImageData: buf.Bytes(),
	}

	input, err := Build(&req)
	require.NoError(t, err)

	nano := input.(entity.NanoInput)
	require.Len(t, nano.ImageInput, 1)

	decoded, err := base64.StdEncoding.DecodeString(nano.ImageInput[0])
	require.NoError(t, err)
	// JPEG SOI-маркер: перекодирование действительно произошло
	require.True(t, len(decoded) > 2)
	assert.Equal(t, []byte{0xFF, 0xD8}, decoded[:2])
}

// TestBuildNanoWithBrokenImage мусор вместо картинки — ошибка валидации
func TestBuildNanoWithBrokenImage(t *testing.T) {
	req := entity.GenerateRequest{
		Model:     string(entity.ModelNanoBanana),
		Prompt:    "постер",
		ImageData: []byte("definitely not an image"),
	}

	_, err := Build(&req)

	var validationErr *entity.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

// TestBuildVideoVariants видео-модели получают ссылку и фактор
func TestBuildVideoVariants(t *testing.T) {
	soraInput, err := Build(&entity.GenerateRequest{
		Model:    string(entity.ModelSoraRemover),
		VideoURL: "https://sora/clip",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.SoraInput{VideoURL: "https://sora/clip"}, soraInput)

	topazInput, err := Build(&entity.GenerateRequest{
		Model:         string(entity.ModelTopazVideo),
		VideoURL:      "https://a/v.mp4",
		UpscaleFactor: "4",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.TopazInput{
		VideoURL:      "https://a/v.mp4",
		UpscaleFactor: entity.Upscale4x,
	}, topazInput)

	// Фактор по умолчанию — 2x
	topazDefault, err := Build(&entity.GenerateRequest{
		Model:    string(entity.ModelTopazVideo),
		VideoURL: "https://a/v.mp4",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.Upscale2x, topazDefault.(entity.TopazInput).UpscaleFactor)
}
