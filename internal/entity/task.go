package entity

// Model определяет, какая генеративная модель вызывается.
// Закрытый набор: добавление модели требует правки всех switch по Model.
type Model string

const (
	ModelNanoBanana  Model = "nano-banana-pro"
	ModelSoraRemover Model = "sora-watermark-remover"
	ModelTopazVideo  Model = "topaz/video-upscale"
)

// Price возвращает фиксированную цену запуска задачи в рублях.
func (m Model) Price() int {
	switch m {
	case ModelNanoBanana:
		return 19
	case ModelSoraRemover:
		return 29
	case ModelTopazVideo:
		return 49
	}
	return 0
}

func (m Model) Valid() bool {
	switch m {
	case ModelNanoBanana, ModelSoraRemover, ModelTopazVideo:
		return true
	}
	return false
}

type AspectRatio string

const (
	RatioSquare        AspectRatio = "1:1"
	RatioPortrait23    AspectRatio = "2:3"
	RatioLandscape32   AspectRatio = "3:2"
	RatioPortrait34    AspectRatio = "3:4"
	RatioLandscape43   AspectRatio = "4:3"
	RatioPortrait45    AspectRatio = "4:5"
	RatioLandscape54   AspectRatio = "5:4"
	RatioVertical916   AspectRatio = "9:16"
	RatioHorizontal169 AspectRatio = "16:9"
	RatioCinematic219  AspectRatio = "21:9"
)

func (r AspectRatio) Valid() bool {
	switch r {
	case RatioSquare, RatioPortrait23, RatioLandscape32, RatioPortrait34,
		RatioLandscape43, RatioPortrait45, RatioLandscape54,
		RatioVertical916, RatioHorizontal169, RatioCinematic219:
		return true
	}
	return false
}

type Resolution string

const (
	Resolution1K Resolution = "1K"
	Resolution2K Resolution = "2K"
	Resolution4K Resolution = "4K"
)

func (r Resolution) Valid() bool {
	switch r {
	case Resolution1K, Resolution2K, Resolution4K:
		return true
	}
	return false
}

type OutputFormat string

const (
	FormatPNG OutputFormat = "png"
	FormatJPG OutputFormat = "jpg"
)

func (f OutputFormat) Valid() bool {
	return f == FormatPNG || f == FormatJPG
}

type UpscaleFactor string

const (
	Upscale2x UpscaleFactor = "2"
	Upscale4x UpscaleFactor = "4"
)

func (u UpscaleFactor) Valid() bool {
	return u == Upscale2x || u == Upscale4x
}

// TaskInput — закрытое объединение входов, по одному варианту на модель.
type TaskInput interface {
	taskInput()
}

type NanoInput struct {
	Prompt       string       `json:"prompt"`
	ImageInput   []string     `json:"image_input,omitempty"` // URL или raw base64
	AspectRatio  AspectRatio  `json:"aspect_ratio"`
	Resolution   Resolution   `json:"resolution"`
	OutputFormat OutputFormat `json:"output_format"`
}

type SoraInput struct {
	VideoURL string `json:"video_url"`
}

type TopazInput struct {
	VideoURL      string        `json:"video_url"`
	UpscaleFactor UpscaleFactor `json:"upscale_factor"`
}

func (NanoInput) taskInput()  {}
func (SoraInput) taskInput()  {}
func (TopazInput) taskInput() {}

// TaskState — состояние удалённой задачи; терминальные success и fail.
type TaskState string

const (
	TaskStateWaiting TaskState = "waiting"
	TaskStateSuccess TaskState = "success"
	TaskStateFail    TaskState = "fail"
)

// TaskRecord — ответ recordInfo. ResultJson — сериализованный JSON,
// форма которого меняется от модели к модели (см. kie.ParseResultJSON).
type TaskRecord struct {
	TaskID       string    `json:"taskId"`
	Model        string    `json:"model"`
	State        TaskState `json:"state"`
	Param        string    `json:"param,omitempty"`
	ResultJSON   string    `json:"resultJson,omitempty"`
	FailCode     string    `json:"failCode,omitempty"`
	FailMsg      string    `json:"failMsg,omitempty"`
	CostTime     int64     `json:"costTime,omitempty"`
	CompleteTime int64     `json:"completeTime,omitempty"`
	CreateTime   int64     `json:"createTime,omitempty"`
}

// GenerateRequest — сырые поля формы генерации до валидации.
type GenerateRequest struct {
	Model         string `json:"model"`
	Prompt        string `json:"prompt"`
	AspectRatio   string `json:"aspect_ratio"`
	Resolution    string `json:"resolution"`
	OutputFormat  string `json:"output_format"`
	ImageURL      string `json:"image_url"`
	ImageData     []byte `json:"-"`
	VideoURL      string `json:"video_url"`
	VideoData     []byte `json:"-"`
	VideoFilename string `json:"-"`
	UpscaleFactor string `json:"upscale_factor"`
	APIKey        string `json:"-"`
	ClientID      string `json:"-"`
}
