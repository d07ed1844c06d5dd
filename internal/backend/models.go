package backend

// Round lifecycle states as the backend spells them.
const (
	RondaPendiente  = "pendiente"
	RondaEnCurso    = "en_curso"
	RondaFinalizada = "finalizada"
)

type Participante struct {
	ID              int    `json:"id"`
	NombreCompleto  string `json:"nombreCompleto"`
	CarnetIdentidad string `json:"carnetIdentidad"`
	FechaNacimiento string `json:"fechaNacimiento"`
	Departamento    string `json:"departamento"`
	Provincia       string `json:"provincia"`
	Municipio       string `json:"municipio"`
}

type Tutor struct {
	ID              int    `json:"id"`
	NombreCompleto  string `json:"nombreCompleto"`
	CarnetIdentidad string `json:"carnetIdentidad"`
}

type Equipo struct {
	ID           int    `json:"id"`
	NombreEquipo string `json:"nombreEquipo"`
}

// EquipoDetalle is the denormalized view from GET /equipos/details, with
// members and tutors pre-joined into display strings.
type EquipoDetalle struct {
	ID            int    `json:"id"`
	NombreEquipo  string `json:"nombreEquipo"`
	Participantes string `json:"participantes"`
	Tutores       string `json:"tutores"`
}

type EquipoParticipante struct {
	ID             int `json:"id"`
	EquipoID       int `json:"equipoId"`
	ParticipanteID int `json:"participanteId"`
}

type Pista struct {
	ID          int    `json:"id"`
	NombrePista string `json:"nombrePista"`
}

type Puntaje struct {
	ID       int `json:"id"`
	Puntaje  int `json:"puntaje"`
	RondaID  int `json:"rondaId"`
	EquipoID int `json:"equipoId"`
}

// PuntajeDetalle is the denormalized view from GET /puntajes/details,
// also served to the public results board.
type PuntajeDetalle struct {
	ID           int    `json:"id"`
	Participante string `json:"participante"`
	Puntaje      int    `json:"puntaje"`
	Departamento string `json:"departamento"`
	Provincia    string `json:"provincia"`
	Municipio    string `json:"municipio"`
}

type PistaRef struct {
	ID          int    `json:"id"`
	NombrePista string `json:"nombrePista,omitempty"`
}

type EquipoRef struct {
	ID           int    `json:"id"`
	NombreEquipo string `json:"nombreEquipo,omitempty"`
}

// Ronda is the raw record shape. GET /rondas/:id inlines the referenced
// names; list responses may carry bare ids only.
type Ronda struct {
	ID         int       `json:"id"`
	Estado     string    `json:"estado"`
	Pista      PistaRef  `json:"pista"`
	EquipoRojo EquipoRef `json:"equipo_rojo"`
	EquipoAzul EquipoRef `json:"equipo_azul"`
}

// RondaDetalle is the denormalized view from GET /rondas/details (one row
// per round with names pre-joined, same pattern as /equipos/details).
type RondaDetalle struct {
	ID         int    `json:"id"`
	Estado     string `json:"estado"`
	Pista      string `json:"pista"`
	EquipoRojo string `json:"equipoRojo"`
	EquipoAzul string `json:"equipoAzul"`
}

type Usuario struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Rol      string `json:"rol"`
}

// Clasificado is one row of the top-N ranking returned by
// POST /competencia/detener.
type Clasificado struct {
	ID             int    `json:"id"`
	NombreCompleto string `json:"nombreCompleto"`
	PuntajeTotal   int    `json:"puntajeTotal"`
	Equipo         string `json:"equipo"`
}

// Creation / partial-update payloads. Update structs use pointers so only
// supplied fields are serialized; the backend patches what it receives.

type CrearParticipante struct {
	NombreCompleto  string `json:"nombreCompleto"`
	CarnetIdentidad string `json:"carnetIdentidad"`
	FechaNacimiento string `json:"fechaNacimiento"`
	Departamento    string `json:"departamento"`
	Provincia       string `json:"provincia"`
	Municipio       string `json:"municipio"`
}

type ActualizarParticipante struct {
	NombreCompleto  *string `json:"nombreCompleto,omitempty"`
	CarnetIdentidad *string `json:"carnetIdentidad,omitempty"`
	FechaNacimiento *string `json:"fechaNacimiento,omitempty"`
	Departamento    *string `json:"departamento,omitempty"`
	Provincia       *string `json:"provincia,omitempty"`
	Municipio       *string `json:"municipio,omitempty"`
}

type CrearTutor struct {
	NombreCompleto  string `json:"nombreCompleto"`
	CarnetIdentidad string `json:"carnetIdentidad"`
}

type ActualizarTutor struct {
	NombreCompleto  *string `json:"nombreCompleto,omitempty"`
	CarnetIdentidad *string `json:"carnetIdentidad,omitempty"`
}

type CrearEquipo struct {
	NombreEquipo string `json:"nombreEquipo"`
}

type ActualizarEquipo struct {
	NombreEquipo *string `json:"nombreEquipo,omitempty"`
}

type CrearEquipoParticipante struct {
	EquipoID       int `json:"equipoId"`
	ParticipanteID int `json:"participanteId"`
}

type ActualizarEquipoParticipante struct {
	Equipo       *int `json:"equipo,omitempty"`
	Participante *int `json:"participante,omitempty"`
}

type CrearPista struct {
	NombrePista string `json:"nombrePista"`
}

type ActualizarPista struct {
	NombrePista *string `json:"nombrePista,omitempty"`
}

type CrearPuntaje struct {
	Puntaje  int `json:"puntaje"`
	RondaID  int `json:"rondaId"`
	EquipoID int `json:"equipoId"`
}

type ActualizarPuntaje struct {
	Puntaje *int `json:"puntaje,omitempty"`
	Ronda   *int `json:"ronda,omitempty"`
	Equipo  *int `json:"equipo,omitempty"`
}

type CrearRonda struct {
	Estado       string `json:"estado"`
	PistaID      int    `json:"pistaId"`
	EquipoRojoID int    `json:"equipoRojoId"`
	EquipoAzulID int    `json:"equipoAzulId"`
}

type ActualizarRonda struct {
	Estado     *string `json:"estado,omitempty"`
	Pista      *int    `json:"pista,omitempty"`
	EquipoRojo *int    `json:"equipo_rojo,omitempty"`
	EquipoAzul *int    `json:"equipo_azul,omitempty"`
}

type CrearUsuario struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Rol      string `json:"rol,omitempty"`
}

type ActualizarUsuario struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	Rol      *string `json:"rol,omitempty"`
}
