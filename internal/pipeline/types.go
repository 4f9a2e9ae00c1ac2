package pipeline

// Segment is one speaker-attributed slice of the transcript. Start and End
// are offsets into the source audio in seconds.
type Segment struct {
	Speaker string  `json:"speaker"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Text    string  `json:"text"`
}
