package auth

// Claims del usuario de la consola (personal de la clínica).
type Claims struct {
	UserID   string
	Email    string
	ClinicID string
	Role     string
}
