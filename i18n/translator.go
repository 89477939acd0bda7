package i18n

import "strings"

// Translator retrieves localized messages for diagnostic codes.
// data provides optional metadata to embed in the message (for example,
// "content_type" or "path").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	var msg string
	switch t.lang {
	case "ja":
		switch code {
		case "parse_error":
			msg = "リクエストボディを解析できません"
		case "unsupported_media_type":
			msg = "未対応のContent-Typeです: {content_type}"
		case "protected_skip":
			msg = "保護された値は上書きされません"
		case "body_read":
			msg = "リクエストボディを読み込めません"
		case "file_unavailable":
			msg = "アップロードファイルを保存できません"
		}
	default: // "en"
		switch code {
		case "parse_error":
			msg = "request body could not be parsed"
		case "unsupported_media_type":
			msg = "unsupported content type: {content_type}"
		case "protected_skip":
			msg = "protected value not overwritten"
		case "body_read":
			msg = "request body could not be read"
		case "file_unavailable":
			msg = "uploaded file could not be stored"
		}
	}
	if msg == "" {
		return code
	}
	return expand(msg, data)
}

// expand replaces {key} placeholders with values from data.
func expand(msg string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(msg, "{") {
		return msg
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// Message fetches a message for the given code using the current Translator.
func Message(code string, data map[string]string) string {
	return currentTranslator.Message(code, data)
}
