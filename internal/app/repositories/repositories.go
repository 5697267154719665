package repositories

import (
	"github.com/prop101/strataops/internal/db"
)

// Repositories holds all the repository instances.
type Repositories struct {
	PropertyRepository      *PropertyRepository
	MeetingRepository       *MeetingRepository
	ActionCommentRepository *ActionCommentRepository
	ContractorRepository    *ContractorRepository
	UserRepository          *UserRepository
}

// NewRepositories initializes all repositories.
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		PropertyRepository:      NewPropertyRepository(database),
		MeetingRepository:       NewMeetingRepository(database),
		ActionCommentRepository: NewActionCommentRepository(database),
		ContractorRepository:    NewContractorRepository(database),
		UserRepository:          NewUserRepository(database),
	}
}
