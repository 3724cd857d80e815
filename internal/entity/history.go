package entity

type HistoryStatus string

const (
	HistoryWaiting HistoryStatus = "waiting"
	HistorySuccess HistoryStatus = "success"
	HistoryFail    HistoryStatus = "fail"
)

// HistoryEntry — клиентская запись об одной отправленной задаче.
// Создаётся в статусе waiting, обновляется на месте по ID при терминальном
// состоянии. Список хранится от новых к старым, не более 50 записей.
type HistoryEntry struct {
	ID            string        `json:"id"`
	TaskID        string        `json:"taskId"`
	Model         Model         `json:"model"`
	Prompt        string        `json:"prompt,omitempty"`
	VideoInputURL string        `json:"videoInputUrl,omitempty"`
	Status        HistoryStatus `json:"status"`
	ResultURL     string        `json:"resultUrl,omitempty"`
	FailMsg       string        `json:"failMsg,omitempty"`
	Timestamp     int64         `json:"timestamp"`
}

const HistoryLimit = 50
