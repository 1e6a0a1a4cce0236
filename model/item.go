package model

// TextItem is a single recognized text fragment produced by an OCR engine.
// X and Y are the page coordinates of the fragment's top-left anchor point.
// Confidence is the engine's recognition confidence in [0, 1].
type TextItem struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
}
