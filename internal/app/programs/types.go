package programs

// ItemInput is one submitted program entry. Order is nil when the client sent no numeric
// order; the item's position in the list is used instead.
type ItemInput struct {
	Title string
	Body  string
	Link  string
	Order *float64
}
