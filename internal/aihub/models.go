package aihub

// Request and response shapes for the OpenAI-compatible chat completions
// endpoint. Image generation rides the same endpoint: the request lists
// "image" in modalities and the response carries the result in the
// multi_mod_content extension instead of plain content.

// ChatRequest is a chat completions call.
type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Modalities  []string  `json:"modalities,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
}

// Message is one conversation turn. Content is either a plain string or a
// []ContentPart for multimodal turns.
type Message struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

// ContentPart is one element of a multimodal message.
type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// ImageURL carries an image reference, typically a base64 data URL.
type ImageURL struct {
	URL string `json:"url"`
}

// ChatResponse is the completion result.
type ChatResponse struct {
	ID      string   `json:"id"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
}

// Choice is one completion candidate.
type Choice struct {
	Index   int             `json:"index"`
	Message ResponseMessage `json:"message"`
}

// ResponseMessage is the assistant turn of a choice.
type ResponseMessage struct {
	Role            string         `json:"role"`
	Content         string         `json:"content"`
	MultiModContent []MultiModPart `json:"multi_mod_content,omitempty"`
}

// MultiModPart is one element of a multimodal response.
type MultiModPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inline_data,omitempty"`
}

// InlineData is base64-encoded binary payload embedded in a response part.
type InlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}
