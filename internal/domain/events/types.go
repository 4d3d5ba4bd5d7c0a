package events

// Vocabulario fijo de tipos de evento (datos de referencia, tabla event_types).
const (
	TypeVaccination  int64 = 1
	TypeDeworming    int64 = 2
	TypeMedicalVisit int64 = 3
	TypeLabResult    int64 = 4

	// TypeFoodPurchase es el ID distinguido que usa la ruta de
	// próxima compra de alimento.
	TypeFoodPurchase int64 = 5
)

var typeTitles = map[int64]string{
	TypeVaccination:  "Vacunación",
	TypeDeworming:    "Desparasitación",
	TypeMedicalVisit: "Cita médica",
	TypeLabResult:    "Resultado de laboratorio",
	TypeFoodPurchase: "Compra de alimento",
}

// TypeTitle devuelve el título de display del tipo, o "" si no es conocido.
func TypeTitle(id int64) string {
	return typeTitles[id]
}
