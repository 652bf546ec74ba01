package viron

// Field names of the response envelopes the dashboard reads.
const (
	TableListKey   = "list"
	NumberValueKey = "number"
)

// NumberResponse is the success envelope for endpoints feeding a number widget.
type NumberResponse struct {
	Number float64 `json:"number"`
}

// TableResponse is the success envelope for endpoints feeding a table widget.
type TableResponse[T any] struct {
	List []T `json:"list"`
}
