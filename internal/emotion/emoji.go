package emotion

// UnknownEmoji marks emotions missing from the emoji table.
const UnknownEmoji = "❓"

var emojis = map[string]string{
	"기쁨":  "😊",
	"슬픔":  "😢",
	"화남":  "😠",
	"불안":  "😰",
	"공허함": "😶",
	"평온":  "😌",
	"지침":  "😩",
	"설렘":  "😍",
}

// EmojiFor maps an emotion name to its emoji.
func EmojiFor(emotion string) string {
	if e, ok := emojis[emotion]; ok {
		return e
	}
	return UnknownEmoji
}
