package v1

// Template is a reference email template from the corpus.
type Template struct {
	ID          string   `json:"id"`
	Subject     string   `json:"subject"`
	Content     string   `json:"content"`
	UseCase     string   `json:"use_case"`
	Tone        string   `json:"tone"`
	Industry    string   `json:"industry"`
	Tags        []string `json:"tags,omitempty"`
	SuccessRate float64  `json:"success_rate,omitempty"`
	WordCount   int      `json:"word_count"`
}

// QueryResult is a similarity search hit.
type QueryResult struct {
	Template Template `json:"template"`
	Score    float64  `json:"score"`
}

// Statistics summarizes the loaded corpus.
type Statistics struct {
	TotalTemplates   int            `json:"total_templates"`
	UseCases         map[string]int `json:"use_cases"`
	Tones            map[string]int `json:"tones"`
	Industries       map[string]int `json:"industries"`
	AverageWordCount float64        `json:"average_word_count"`
}
