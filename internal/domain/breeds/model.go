package breeds

// Breed es dato de referencia puro: id más nombre de display localizado.
type Breed struct {
	ID   int64
	Name string
}
