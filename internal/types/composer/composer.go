package composer

const (
	ErrConnect      = "Failed to connect to AI engine."
	FallbackContent = "Generation failed."

	DefaultContentType = "Actionable Advice"
	DefaultIndustry    = "Technology / SaaS"
	DefaultTone        = "Direct & Hacker"
)

type GenerateRequest struct {
	Topic       string `json:"topic"`
	ContentType string `json:"content_type"`
	Industry    string `json:"industry"`
	Tone        string `json:"tone"`
}

type GenerateResult struct {
	Success bool   `json:"success"`
	Content string `json:"content,omitempty"`
	Error   string `json:"error,omitempty"`
}

type GenerateAndSaveRequest struct {
	GenerateRequest
	Date string `json:"date"`
	Time string `json:"time"`
}
