package models

import "errors"

// Business-rule failures raised at the point of violation and translated to
// HTTP status codes at the Fiber boundary.
var (
	ErrInvalidEmailFormat = errors.New("format d'email invalide")
	ErrInvalidCredentials = errors.New("les identifiants sont invalides")
	ErrAccountNotActive   = errors.New("le compte utilisateur n'est pas actif")
	ErrEmailTaken         = errors.New("cet email est déjà utilisé")
	ErrAlreadyActive      = errors.New("l'utilisateur est déjà actif")
	ErrAlreadyApproved    = errors.New("l'utilisateur est déjà approuvé")
	ErrForbidden          = errors.New("accès refusé")
	ErrUnauthenticated    = errors.New("authentification requise")
	ErrNotFound           = errors.New("ressource introuvable")
	ErrDuplicate          = errors.New("cette entrée existe déjà")
	ErrAdminRequiresStaff = errors.New("seuls les comptes staff ou superuser peuvent recevoir le rôle admin")
	ErrPlayerRoleRequired = errors.New("un profil joueur ne peut être créé que pour un compte avec le rôle player")
)

// NotApprovedError carries the role so login can phrase the message.
type NotApprovedError struct {
	Role string
}

func (e *NotApprovedError) Error() string {
	switch e.Role {
	case RolePlayer:
		return "ton compte joueur est en attente d'approbation par un administrateur"
	case RoleAdmin:
		return "ce compte administrateur n'est pas encore activé"
	}
	return "ce compte n'est pas encore approuvé"
}

// ValidationErrors aggregates field-level violations: every broken rule is
// collected before the request is rejected, not just the first one.
type ValidationErrors struct {
	Fields map[string][]string `json:"errors"`
}

func NewValidationErrors() *ValidationErrors {
	return &ValidationErrors{Fields: map[string][]string{}}
}

func (v *ValidationErrors) Add(field, message string) {
	v.Fields[field] = append(v.Fields[field], message)
}

func (v *ValidationErrors) HasErrors() bool {
	return len(v.Fields) > 0
}

func (v *ValidationErrors) Error() string {
	for field, msgs := range v.Fields {
		if len(msgs) > 0 {
			return field + ": " + msgs[0]
		}
	}
	return "validation échouée"
}

// ErrOrNil lets validators return a plain error without a typed-nil pitfall.
func (v *ValidationErrors) ErrOrNil() error {
	if v.HasErrors() {
		return v
	}
	return nil
}
