package pets

import "time"

// Pet representa el perfil de una mascota registrada.
type Pet struct {
	ID   string
	Name string // opcional: revisiones tempranas del esquema no lo tenían

	// BirthDate es requerida al registrar (las consultas por edad la
	// necesitan), pero filas de revisiones viejas pueden no tenerla.
	BirthDate *time.Time

	MainOwnerID string
	VetID       string
	BreedID     int64

	CreatedAt time.Time
}

// Summary son los agregados de la población de mascotas.
type Summary struct {
	Total            int
	AverageAgeYears  float64
	JuvenileFraction float64 // porcentaje sobre el total
	Juveniles        []Pet
}
