package entity

// PromoRate возвращает номинал одноразового промокода, 0 — код неизвестен.
func PromoRate(code string) int {
	switch code {
	case "ferixdi100":
		return 100
	case "f1erixdi500":
		return 500
	case "f2erixdi1000":
		return 1000
	}
	return 0
}

type WalletState struct {
	Balance int `json:"balance"`
}

type RedeemResult struct {
	Credited int `json:"credited"`
	Balance  int `json:"balance"`
}

// TaskEvent публикуется в шину событий на создании задачи и на каждом
// терминальном переходе.
type TaskEvent struct {
	Event     string `json:"event"` // task.created | task.success | task.fail
	TaskID    string `json:"task_id"`
	HistoryID string `json:"history_id"`
	Model     Model  `json:"model"`
	ResultURL string `json:"result_url,omitempty"`
	FailMsg   string `json:"fail_msg,omitempty"`
	Timestamp int64  `json:"timestamp"`
}
