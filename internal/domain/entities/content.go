package entities

// GeneratedContent holds the SEO copy derived deterministically from a
// (service, city) pair. It is recomputed on every render, never persisted.
type GeneratedContent struct {
	H1              string `json:"h1"`
	MetaTitle       string `json:"metaTitle"`
	MetaDescription string `json:"metaDescription"`
	Introduction    string `json:"introduction"`
	WhyChooseCity   string `json:"whyChooseCity"`
}

// FAQItem is a single question/answer pair
type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
