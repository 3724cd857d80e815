package kie

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Поля с одиночным URL проверяются в фиксированном порядке приоритета.
var singleURLFields = []string{"url", "image_url", "video_url", "output", "link", "download_url"}

// ParseResultJSON извлекает URL результатов из resultJson, форма которого
// не самоописываема: массив строк, объект с resultUrls, объект с одним из
// известных полей или голая строка-URL. Тотальная функция: любой мусор
// даёт пустой список, порядок элементов источника сохраняется.
func ParseResultJSON(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var parsed interface{}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		if strings.HasPrefix(raw, "http") {
			return []string{raw}
		}
		logrus.Debugf("result json is not parseable: %v", err)
		return nil
	}

	switch value := parsed.(type) {
	case []interface{}:
		urls := make([]string, 0, len(value))
		for _, item := range value {
			urls = append(urls, fmt.Sprint(item))
		}
		return urls
	case map[string]interface{}:
		if list, ok := value["resultUrls"].([]interface{}); ok {
			urls := make([]string, 0, len(list))
			for _, item := range list {
				if s, ok := item.(string); ok {
					urls = append(urls, s)
				}
			}
			return urls
		}
		for _, field := range singleURLFields {
			if s, ok := value[field].(string); ok && s != "" {
				return []string{s}
			}
		}
	}

	return nil
}
