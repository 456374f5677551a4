package models

// Plan is a student's subscription tier.
type Plan string

const (
	PlanFreemium Plan = "freemium"
	PlanPremium  Plan = "premium"
)

// Student is a learner account managed by the admin panel. Column and JSON
// names follow the legacy schema consumed by the existing frontend.
type Student struct {
	ID           uint    `json:"id_aluno" gorm:"column:id_aluno;primaryKey"`
	Name         string  `json:"nome" gorm:"column:nome;not null;size:100"`
	Email        string  `json:"email" gorm:"column:email;uniqueIndex;not null;size:255"`
	PasswordHash string  `json:"-" gorm:"column:senha;not null;size:255"`
	Plan         Plan    `json:"plano" gorm:"column:plano;not null;default:freemium;size:20"`
	PhotoURL     *string `json:"url_foto" gorm:"column:url_foto;size:500"`
}

func (Student) TableName() string {
	return "alunos"
}
