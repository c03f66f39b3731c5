package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories is the container for all repository instances
type Repositories struct {
	UserRepository       *UserRepository
	AcademyRepository    *AcademyRepository
	CourseRepository     *CourseRepository
	AttendanceRepository *AttendanceRepository
	PostRepository       *PostRepository
	FriendshipRepository *FriendshipRepository
	ChatRepository       *ChatRepository
	AnalyticsRepository  *AnalyticsRepository
}

// NewRepositories creates all repositories sharing a single pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(db),
		AcademyRepository:    NewAcademyRepository(db),
		CourseRepository:     NewCourseRepository(db),
		AttendanceRepository: NewAttendanceRepository(db),
		PostRepository:       NewPostRepository(db),
		FriendshipRepository: NewFriendshipRepository(db),
		ChatRepository:       NewChatRepository(db),
		AnalyticsRepository:  NewAnalyticsRepository(db),
	}
}
