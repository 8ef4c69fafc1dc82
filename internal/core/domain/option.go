package domain

// Option is a single voting card. Image holds an opaque reference returned
// by the upload endpoint; the core never inspects it.
type Option struct {
	ID    int    `json:"id"`
	Text  string `json:"text"`
	Image string `json:"image"`
}
