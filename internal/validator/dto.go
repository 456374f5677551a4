package validator

// AdminLoginRequest carries admin credentials. Wire names match the legacy
// frontend (senha = password).
type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"senha" validate:"required"`
}

// StudentCreateRequest creates a student; plan falls back to freemium when
// omitted.
type StudentCreateRequest struct {
	Name     string  `json:"nome" validate:"required,max=100"`
	Email    string  `json:"email" validate:"required,email,max=255"`
	Password string  `json:"senha" validate:"required"`
	Plan     string  `json:"plano" validate:"omitempty,oneof=freemium premium"`
	PhotoURL *string `json:"url_foto" validate:"omitempty,max=500"`
}

// StudentUpdateRequest is a patch: only non-nil fields are applied.
type StudentUpdateRequest struct {
	Name     *string `json:"nome" validate:"omitempty,max=100"`
	Email    *string `json:"email" validate:"omitempty,email,max=255"`
	Password *string `json:"senha" validate:"omitempty"`
	Plan     *string `json:"plano" validate:"omitempty,oneof=freemium premium"`
	PhotoURL *string `json:"url_foto" validate:"omitempty,max=500"`
}

// IsEmpty reports whether the patch supplies no fields at all.
func (r *StudentUpdateRequest) IsEmpty() bool {
	return r.Name == nil && r.Email == nil && r.Password == nil &&
		r.Plan == nil && r.PhotoURL == nil
}
