// internal/workers/chat/match-faq/models.go
package matchfaq

type Input struct {
	Message string `json:"message"`
}

type Output struct {
	Found    bool   `json:"found"`
	FAQID    string `json:"faqId,omitempty"`
	Question string `json:"question,omitempty"`
	Answer   string `json:"answer,omitempty"`
	Category string `json:"category,omitempty"`
	Overlap  int    `json:"overlap"`
}
