package patients

import "time"

// Species atendidas por la clínica.
// @Enum dog, cat, bird, rabbit, reptile, other
type Species string

const (
	SpeciesDog     Species = "dog"
	SpeciesCat     Species = "cat"
	SpeciesBird    Species = "bird"
	SpeciesRabbit  Species = "rabbit"
	SpeciesReptile Species = "reptile"
	SpeciesOther   Species = "other"
)

func (s Species) Valid() bool {
	switch s {
	case SpeciesDog, SpeciesCat, SpeciesBird, SpeciesRabbit, SpeciesReptile, SpeciesOther:
		return true
	}
	return false
}

// Sex del paciente.
// @Enum male, female, unknown
type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

// Owner es el responsable del animal (contacto para recordatorios).
type Owner struct {
	Name  string
	Phone string
	Email string
}

// Patient es el animal al que apunta el subject_id de una cita.
type Patient struct {
	ID string

	Name    string
	Species Species
	Breed   string
	Sex     Sex

	BirthDate *time.Time
	Owner     Owner

	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}
