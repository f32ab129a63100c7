package seed

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/psychcourse/internal/app/models"
	"github.com/yigit/psychcourse/internal/app/repositories"
	"github.com/yigit/psychcourse/internal/config"
	"github.com/yigit/psychcourse/internal/pkg/apperrors"
	"github.com/yigit/psychcourse/internal/pkg/auth"
	"github.com/yigit/psychcourse/internal/pkg/slides"
)

// Each fake embeds its interface; only the methods the seeder calls are implemented.

type fakeAdmins struct {
	repositories.IAdminUserRepository
	created []*models.AdminUser
}

func (f *fakeAdmins) EmailExists(_ context.Context, email string) (bool, error) {
	for _, a := range f.created {
		if a.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAdmins) Create(_ context.Context, u *models.AdminUser) error {
	u.ID = int64(len(f.created) + 1)
	f.created = append(f.created, u)
	return nil
}

type fakeCourses struct {
	repositories.ICourseRepository
	created []*models.Course
}

func (f *fakeCourses) GetBySlug(_ context.Context, slug string) (*models.Course, error) {
	for _, c := range f.created {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, apperrors.ErrCourseNotFound
}

func (f *fakeCourses) Create(_ context.Context, c *models.Course) error {
	c.ID = int64(len(f.created) + 1)
	f.created = append(f.created, c)
	return nil
}

type fakeWeeks struct {
	repositories.IWeekRepository
	created []*models.CourseWeek
}

func (f *fakeWeeks) Create(_ context.Context, w *models.CourseWeek) error {
	w.ID = int64(len(f.created) + 10)
	w.Position = len(f.created) + 1
	f.created = append(f.created, w)
	return nil
}

type fakeLessons struct {
	repositories.ILessonRepository
	created []*models.CourseLesson
}

func (f *fakeLessons) Create(_ context.Context, l *models.CourseLesson) error {
	l.ID = int64(len(f.created) + 100)
	l.Position = len(f.created) + 1
	f.created = append(f.created, l)
	return nil
}

type fixture struct {
	admins  *fakeAdmins
	courses *fakeCourses
	weeks   *fakeWeeks
	lessons *fakeLessons
	seeder  *Seeder
}

func newFixture() *fixture {
	f := &fixture{admins: &fakeAdmins{}, courses: &fakeCourses{}, weeks: &fakeWeeks{}, lessons: &fakeLessons{}}
	f.seeder = NewSeeder(f.admins, f.courses, f.weeks, f.lessons).WithBcryptCost(4)
	return f
}

func testRegistry(t *testing.T) *slides.Registry {
	t.Helper()
	reg, err := slides.NewRegistry(fstest.MapFS{
		"decks/sleep-and-memory.json": {Data: []byte(`{"title": "Sleep and Memory", "slides": [{"type": "title", "content": {"title": "Sleep"}}]}`)},
		"decks/cognitive-biases.json": {Data: []byte(`[{"type": "title", "content": {"title": "Biases"}}]`)},
	}, "decks")
	require.NoError(t, err)
	return reg
}

func TestEnsureAdmin(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	require.NoError(t, f.seeder.EnsureAdmin(ctx, " Admin@PsychCourse.local ", "s3cret-pass", "Admin"))
	require.Len(t, f.admins.created, 1)
	assert.Equal(t, "admin@psychcourse.local", f.admins.created[0].Email)
	assert.True(t, auth.CheckPassword(f.admins.created[0].PasswordHash, "s3cret-pass"))

	require.NoError(t, f.seeder.EnsureAdmin(ctx, "admin@psychcourse.local", "other", "Admin"))
	assert.Len(t, f.admins.created, 1)

	require.NoError(t, f.seeder.EnsureAdmin(ctx, "second@psychcourse.local", "", "Admin"))
	assert.Len(t, f.admins.created, 1)
}

func TestEnsureDemoCourse(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	reg := testRegistry(t)

	require.NoError(t, f.seeder.EnsureDemoCourse(ctx, reg))
	require.Len(t, f.courses.created, 1)
	assert.True(t, f.courses.created[0].IsPublished)
	require.Len(t, f.lessons.created, 2)

	assert.Equal(t, "cognitive-biases", f.lessons.created[0].Slug)
	assert.Equal(t, "Cognitive biases", f.lessons.created[0].Title)
	assert.True(t, f.lessons.created[0].IsFreePreview)
	assert.Equal(t, "Sleep and Memory", f.lessons.created[1].Title)
	assert.Equal(t, f.weeks.created[0].ID, f.lessons.created[1].WeekID)

	require.NoError(t, f.seeder.EnsureDemoCourse(ctx, reg))
	assert.Len(t, f.courses.created, 1)
}

func TestCreateDefaultData_DemoCourseOptional(t *testing.T) {
	f := newFixture()
	cfg := &config.Config{}
	cfg.Admin.Email = "admin@psychcourse.local"
	cfg.Admin.Password = "s3cret-pass"

	require.NoError(t, f.seeder.CreateDefaultData(context.Background(), cfg, testRegistry(t)))
	assert.Len(t, f.admins.created, 1)
	assert.Empty(t, f.courses.created)

	cfg.Admin.SeedDemoCourse = true
	require.NoError(t, f.seeder.CreateDefaultData(context.Background(), cfg, testRegistry(t)))
	assert.Len(t, f.courses.created, 1)
}
