package composer

import (
	"fmt"

	ctypes "trendmindAPI/internal/types/composer"
)

const promptTemplate = `You are an elite, top-tier LinkedIn ghostwriter for a technical startup founder.
Write a viral-ready LinkedIn post based on these exact parameters:

Topic: %s
Format: %s
Industry Focus: %s
Tone of Voice: %s

STRICT RULES:
1. MAXIMUM LENGTH: 120 words. Be ruthlessly concise.
2. No corporate jargon. Speak like a blunt, experienced hacker/founder.
3. Start with a 1-sentence scroll-stopping hook.
4. Use heavy line breaks (white space) between every single sentence.
5. Include exactly 2 relevant hashtags at the bottom.
6. Do NOT use emojis unless the tone specifically asks for them.
7. OUTPUT ONLY THE POST. No introductions, no metadata, no conversational filler.
`

// BuildPrompt embeds the four fields verbatim. Nothing is validated or escaped.
func BuildPrompt(req ctypes.GenerateRequest) string {
	return fmt.Sprintf(promptTemplate, req.Topic, req.ContentType, req.Industry, req.Tone)
}
