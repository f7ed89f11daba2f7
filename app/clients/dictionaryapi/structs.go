package dictionaryapi

// WordResponse holds a single entry of a successful API response
type WordResponse struct {
	Word      string     `json:"word"`
	Phonetic  string     `json:"phonetic"`
	Phonetics []Phonetic `json:"phonetics"`
	Origin    string     `json:"origin"`
	Meanings  []Meaning  `json:"meanings"`
}

// Phonetic holds pronunciation data
type Phonetic struct {
	Text  string  `json:"text"`
	Audio *string `json:"audio"`
}

// Meaning groups definitions by part of speech
type Meaning struct {
	PartOfSpeech string       `json:"partOfSpeech"`
	Definitions  []Definition `json:"definitions"`
}

// Definition holds a single definition with optional example
type Definition struct {
	Definition string   `json:"definition"`
	Example    *string  `json:"example"`
	Synonyms   []string `json:"synonyms"`
	Antonyms   []string `json:"antonyms"`
}

// errorResponse is the object returned instead of an array when the API reports an error
type errorResponse struct {
	Title      *string `json:"title"`
	Message    string  `json:"message"`
	Resolution string  `json:"resolution"`
}
