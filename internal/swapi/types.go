package swapi

// FilmsKey is the resource key of the film collection.
const FilmsKey = "films"

// Film is one entry of the films collection.
type Film struct {
	Title        string   `json:"title"`
	EpisodeID    int      `json:"episode_id"`
	ReleaseDate  string   `json:"release_date"`
	Characters   []string `json:"characters"`
	Director     string   `json:"director,omitempty"`
	Producer     string   `json:"producer,omitempty"`
	OpeningCrawl string   `json:"opening_crawl,omitempty"`
	URL          string   `json:"url,omitempty"`
}

// FilmList is the first page of the films collection. Next and Previous
// are decoded but never followed.
type FilmList struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []Film  `json:"results"`
}

// Person is a character resource. Only the name is rendered.
type Person struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}
