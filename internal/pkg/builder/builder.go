package builder

import (
	"bytes"
	"strings"

	"github.com/ferixdi/kie-studio/internal/entity"
	"github.com/ferixdi/kie-studio/internal/pkg/encoder"
)

// Build превращает сырые поля формы в типизированный вход задачи для
// выбранной модели или возвращает ошибку валидации. Никаких сетевых
// вызовов; единственный побочный эффект — перекодирование файла картинки.
func Build(req *entity.GenerateRequest) (entity.TaskInput, error) {
	model := entity.Model(req.Model)
	switch model {
	case entity.ModelNanoBanana:
		return buildNano(req)
	case entity.ModelSoraRemover:
		videoURL, err := videoReference(req)
		if err != nil {
			return nil, err
		}
		return entity.SoraInput{VideoURL: videoURL}, nil
	case entity.ModelTopazVideo:
		return buildTopaz(req)
	}
	return nil, entity.NewValidationError("неизвестная модель")
}

func buildNano(req *entity.GenerateRequest) (entity.TaskInput, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return nil, entity.NewValidationError("введите описание (промпт)")
	}

	var images []string
	if len(req.ImageData) > 0 {
		raw, err := encoder.FlattenToJPEG(bytes.NewReader(req.ImageData))
		if err != nil {
			return nil, entity.NewValidationError("не удалось обработать изображение")
		}
		images = append(images, raw)
	} else if req.ImageURL != "" {
		images = append(images, req.ImageURL)
	}

	ratio := entity.AspectRatio(req.AspectRatio)
	if req.AspectRatio == "" {
		ratio = entity.RatioHorizontal169
	} else if !ratio.Valid() {
		return nil, entity.NewValidationError("неподдерживаемое соотношение сторон")
	}

	resolution := entity.Resolution(req.Resolution)
	if req.Resolution == "" {
		resolution = entity.Resolution4K
	} else if !resolution.Valid() {
		return nil, entity.NewValidationError("неподдерживаемое разрешение")
	}

	format := entity.OutputFormat(req.OutputFormat)
	if req.OutputFormat == "" {
		format = entity.FormatPNG
	} else if !format.Valid() {
		return nil, entity.NewValidationError("неподдерживаемый формат вывода")
	}

	return entity.NanoInput{
		Prompt:       prompt,
		ImageInput:   images,
		AspectRatio:  ratio,
		Resolution:   resolution,
		OutputFormat: format,
	}, nil
}

func buildTopaz(req *entity.GenerateRequest) (entity.TaskInput, error) {
	videoURL, err := videoReference(req)
	if err != nil {
		return nil, err
	}

	factor := entity.UpscaleFactor(req.UpscaleFactor)
	if req.UpscaleFactor == "" {
		factor = entity.Upscale2x
	} else if !factor.Valid() {
		return nil, entity.NewValidationError("коэффициент увеличения: 2 или 4")
	}

	return entity.TopazInput{VideoURL: videoURL, UpscaleFactor: factor}, nil
}

// Видео-варианты требуют ссылку; файл должен быть загружен на хостинг
// до сборки входа (см. TaskService.Submit).
func videoReference(req *entity.GenerateRequest) (string, error) {
	videoURL := strings.TrimSpace(req.VideoURL)
	if videoURL == "" {
		return "", entity.NewValidationError("укажите ссылку на видео или загрузите файл")
	}
	return videoURL, nil
}
