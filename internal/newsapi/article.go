package newsapi

// Article is one news item as returned by NewsAPI. Fields are decoded
// verbatim; optional fields arrive as null and decode to "".
type Article struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URLToImage  string `json:"urlToImage"`
}

// HasImage reports whether the article carries an image URL.
func (a Article) HasImage() bool {
	return a.URLToImage != ""
}

// response is the envelope shared by both endpoints. Only Articles is used on
// success; Code and Message are filled on error responses.
type response struct {
	Status       string    `json:"status"`
	TotalResults int       `json:"totalResults"`
	Articles     []Article `json:"articles"`
	Code         string    `json:"code"`
	Message      string    `json:"message"`
}
