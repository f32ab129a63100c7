package services

import (
	"github.com/yigit/psychcourse/internal/app/repositories"
	"github.com/yigit/psychcourse/internal/pkg/auth"
	"github.com/yigit/psychcourse/internal/pkg/filestorage"
	"github.com/yigit/psychcourse/internal/pkg/slides"
)

// Services holds every application service
type Services struct {
	Auth         AuthService
	Course       CourseService
	Week         WeekService
	Lesson       LessonService
	Asset        AssetService
	Presentation PresentationService
}

// NewServices wires the services to their repositories
func NewServices(
	repos *repositories.Repositories,
	jwtService *auth.JWTService,
	storage filestorage.FileStorage,
	registry *slides.Registry,
) *Services {
	return &Services{
		Auth:         NewAuthService(repos.AdminUserRepository, jwtService),
		Course:       NewCourseService(repos.CourseRepository, repos.WeekRepository, repos.LessonRepository, repos.AssetRepository, storage),
		Week:         NewWeekService(repos.CourseRepository, repos.WeekRepository),
		Lesson:       NewLessonService(repos.WeekRepository, repos.LessonRepository),
		Asset:        NewAssetService(repos.CourseRepository, repos.WeekRepository, repos.LessonRepository, repos.AssetRepository, storage),
		Presentation: NewPresentationService(repos.CourseRepository, repos.LessonRepository, registry),
	}
}
