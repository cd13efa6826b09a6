package dto

import (
	"fmt"
	"strings"

	"github.com/fadilmartias/mock-interview/internal/model"
	"github.com/fadilmartias/mock-interview/internal/usecase"
)

// StatusText is the line shown under the interviewer's avatar.
func StatusText(persona *model.Persona, status usecase.InterviewerStatus, emotion string, evaluated bool) string {
	if persona == nil {
		return "Đang kết nối..."
	}
	if emotion != "" && evaluated {
		return fmt.Sprintf("%s cảm thấy %s về câu trả lời của bạn.", persona.Name, strings.ToLower(emotion))
	}
	switch status {
	case usecase.StatusListening:
		return persona.Name + " đang chăm chú lắng nghe từng lời của bạn..."
	case usecase.StatusThinking:
		return persona.Name + " đang cân nhắc kỹ lưỡng câu trả lời..."
	case usecase.StatusSpeaking:
		return persona.Name + " đang chia sẻ nhận xét chi tiết..."
	default:
		return persona.Name + " đang chờ tín hiệu từ bạn..."
	}
}

// EmotionEmoji maps a free-form emotion to one of four faces.
func EmotionEmoji(emotion string) string {
	if emotion == "" {
		return ""
	}
	lower := strings.ToLower(emotion)
	switch {
	case containsAny(lower, "impressed", "happy", "satisfied"):
		return "🤩"
	case containsAny(lower, "skeptical", "confused", "worried"):
		return "🤨"
	case containsAny(lower, "disappointed", "sad", "angry"):
		return "😞"
	default:
		return "🙂"
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
