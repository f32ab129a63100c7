package services

import (
	"context"
	"mime/multipart"
	"sort"
	"strings"
	"time"

	"github.com/yigit/psychcourse/internal/app/models"
	"github.com/yigit/psychcourse/internal/app/repositories"
	"github.com/yigit/psychcourse/internal/pkg/apperrors"
	"github.com/yigit/psychcourse/internal/pkg/filestorage"
)

// memStore backs every fake repository with the same in-memory tables
type memStore struct {
	nextID  int64
	courses map[int64]*models.Course
	weeks   map[int64]*models.CourseWeek
	lessons map[int64]*models.CourseLesson
	assets  map[int64]*models.CourseAsset
	admins  map[int64]*models.AdminUser

	// savedPositions records every position change written through Save
	savedPositions []repositories.PositionChange
	saveCalls      int
}

func newMemStore() *memStore {
	return &memStore{
		courses: map[int64]*models.Course{},
		weeks:   map[int64]*models.CourseWeek{},
		lessons: map[int64]*models.CourseLesson{},
		assets:  map[int64]*models.CourseAsset{},
		admins:  map[int64]*models.AdminUser{},
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

// --- courses ---

type fakeCourseRepo struct{ m *memStore }

func (r fakeCourseRepo) Create(_ context.Context, c *models.Course) error {
	for _, existing := range r.m.courses {
		if existing.Slug == c.Slug {
			return apperrors.ErrCourseSlugExists
		}
	}
	c.ID = r.m.id()
	c.CreatedAt, c.UpdatedAt = time.Now(), time.Now()
	cp := *c
	r.m.courses[c.ID] = &cp
	return nil
}

func (r fakeCourseRepo) GetByID(_ context.Context, id int64) (*models.Course, error) {
	c, ok := r.m.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	cp := *c
	cp.Weeks, cp.Assets = nil, nil
	return &cp, nil
}

func (r fakeCourseRepo) GetBySlug(ctx context.Context, slug string) (*models.Course, error) {
	for id, c := range r.m.courses {
		if c.Slug == slug {
			return r.GetByID(ctx, id)
		}
	}
	return nil, apperrors.ErrCourseNotFound
}

func (r fakeCourseRepo) GetByWeekID(ctx context.Context, weekID int64) (*models.Course, error) {
	w, ok := r.m.weeks[weekID]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return r.GetByID(ctx, w.CourseID)
}

func (r fakeCourseRepo) List(ctx context.Context, offset, limit uint64) ([]*models.Course, int64, error) {
	ids := make([]int64, 0, len(r.m.courses))
	for id := range r.m.courses {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })

	out := []*models.Course{}
	for i := offset; i < uint64(len(ids)) && i < offset+limit; i++ {
		c, _ := r.GetByID(ctx, ids[i])
		out = append(out, c)
	}
	return out, int64(len(ids)), nil
}

func (r fakeCourseRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.m.courses[id]; !ok {
		return apperrors.ErrCourseNotFound
	}
	for _, w := range r.m.weeks {
		if w.CourseID == id {
			return apperrors.ErrCourseHasWeeks
		}
	}
	delete(r.m.courses, id)
	for aid, a := range r.m.assets {
		if a.CourseID == id {
			delete(r.m.assets, aid)
		}
	}
	return nil
}

func (r fakeCourseRepo) Save(_ context.Context, c *models.Course, weekChanges, lessonChanges []repositories.PositionChange) error {
	r.m.saveCalls++
	if c != nil {
		for _, existing := range r.m.courses {
			if existing.ID != c.ID && existing.Slug == c.Slug {
				return apperrors.ErrCourseSlugExists
			}
		}
		cp := *c
		cp.Weeks, cp.Assets = nil, nil
		cp.UpdatedAt = time.Now()
		r.m.courses[c.ID] = &cp
	}
	for _, ch := range weekChanges {
		r.m.weeks[ch.ID].Position = ch.Position
		r.m.savedPositions = append(r.m.savedPositions, ch)
	}
	for _, ch := range lessonChanges {
		r.m.lessons[ch.ID].Position = ch.Position
		r.m.savedPositions = append(r.m.savedPositions, ch)
	}
	return nil
}

// --- weeks ---

type fakeWeekRepo struct{ m *memStore }

func (r fakeWeekRepo) Create(_ context.Context, w *models.CourseWeek) error {
	if _, ok := r.m.courses[w.CourseID]; !ok {
		return apperrors.ErrCourseNotFound
	}
	highest := 0
	for _, existing := range r.m.weeks {
		if existing.CourseID == w.CourseID && existing.Position > highest {
			highest = existing.Position
		}
	}
	w.ID, w.Position = r.m.id(), highest+1
	cp := *w
	r.m.weeks[w.ID] = &cp
	return nil
}

func (r fakeWeekRepo) GetByID(_ context.Context, id int64) (*models.CourseWeek, error) {
	w, ok := r.m.weeks[id]
	if !ok {
		return nil, apperrors.ErrWeekNotFound
	}
	cp := *w
	cp.Lessons = nil
	return &cp, nil
}

func (r fakeWeekRepo) ListByCourse(ctx context.Context, courseID int64) ([]*models.CourseWeek, error) {
	out := []*models.CourseWeek{}
	for id, w := range r.m.weeks {
		if w.CourseID == courseID {
			cp, _ := r.GetByID(ctx, id)
			out = append(out, cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (r fakeWeekRepo) Update(_ context.Context, w *models.CourseWeek) error {
	if _, ok := r.m.weeks[w.ID]; !ok {
		return apperrors.ErrWeekNotFound
	}
	cp := *w
	r.m.weeks[w.ID] = &cp
	return nil
}

func (r fakeWeekRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.m.weeks[id]; !ok {
		return apperrors.ErrWeekNotFound
	}
	for _, l := range r.m.lessons {
		if l.WeekID == id {
			return apperrors.ErrWeekHasLessons
		}
	}
	delete(r.m.weeks, id)
	return nil
}

// --- lessons ---

type fakeLessonRepo struct{ m *memStore }

func (r fakeLessonRepo) nextPosition(weekID int64) int {
	highest := 0
	for _, l := range r.m.lessons {
		if l.WeekID == weekID && l.Position > highest {
			highest = l.Position
		}
	}
	return highest + 1
}

func (r fakeLessonRepo) slugTaken(slug string, exceptID int64) bool {
	for _, l := range r.m.lessons {
		if l.ID != exceptID && l.Slug == slug {
			return true
		}
	}
	return false
}

func (r fakeLessonRepo) Create(_ context.Context, l *models.CourseLesson) error {
	if _, ok := r.m.weeks[l.WeekID]; !ok {
		return apperrors.ErrWeekNotFound
	}
	if r.slugTaken(l.Slug, 0) {
		return apperrors.ErrLessonSlugExists
	}
	l.ID, l.Position = r.m.id(), r.nextPosition(l.WeekID)
	cp := *l
	r.m.lessons[l.ID] = &cp
	return nil
}

func (r fakeLessonRepo) GetByID(_ context.Context, id int64) (*models.CourseLesson, error) {
	l, ok := r.m.lessons[id]
	if !ok {
		return nil, apperrors.ErrLessonNotFound
	}
	cp := *l
	return &cp, nil
}

func (r fakeLessonRepo) GetBySlug(ctx context.Context, slug string) (*models.CourseLesson, error) {
	for id, l := range r.m.lessons {
		if l.Slug == slug {
			return r.GetByID(ctx, id)
		}
	}
	return nil, apperrors.ErrLessonNotFound
}

func (r fakeLessonRepo) ListByCourse(ctx context.Context, courseID int64) ([]*models.CourseLesson, error) {
	out := []*models.CourseLesson{}
	for id, l := range r.m.lessons {
		if w, ok := r.m.weeks[l.WeekID]; ok && w.CourseID == courseID {
			cp, _ := r.GetByID(ctx, id)
			out = append(out, cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		wi, wj := r.m.weeks[out[i].WeekID].Position, r.m.weeks[out[j].WeekID].Position
		if wi != wj {
			return wi < wj
		}
		return out[i].Position < out[j].Position
	})
	return out, nil
}

func (r fakeLessonRepo) Update(_ context.Context, l *models.CourseLesson, moveTo *int64) error {
	existing, ok := r.m.lessons[l.ID]
	if !ok {
		return apperrors.ErrLessonNotFound
	}
	if r.slugTaken(l.Slug, l.ID) {
		return apperrors.ErrLessonSlugExists
	}
	from := existing.WeekID
	if moveTo != nil {
		if _, ok := r.m.weeks[*moveTo]; !ok {
			return apperrors.ErrWeekNotFound
		}
		l.WeekID, l.Position = *moveTo, r.nextPosition(*moveTo)
	}
	cp := *l
	r.m.lessons[l.ID] = &cp
	if moveTo != nil {
		r.compact(from)
	}
	return nil
}

func (r fakeLessonRepo) compact(weekID int64) {
	var siblings []*models.CourseLesson
	for _, l := range r.m.lessons {
		if l.WeekID == weekID {
			siblings = append(siblings, l)
		}
	}
	sort.Slice(siblings, func(i, j int) bool { return siblings[i].Position < siblings[j].Position })
	for i, l := range siblings {
		l.Position = i + 1
	}
}

func (r fakeLessonRepo) Delete(_ context.Context, id int64) error {
	l, ok := r.m.lessons[id]
	if !ok {
		return apperrors.ErrLessonNotFound
	}
	delete(r.m.lessons, id)
	r.compact(l.WeekID)
	return nil
}

// --- assets ---

type fakeAssetRepo struct{ m *memStore }

func (r fakeAssetRepo) Create(_ context.Context, a *models.CourseAsset) error {
	a.ID, a.CreatedAt = r.m.id(), time.Now()
	cp := *a
	r.m.assets[a.ID] = &cp
	return nil
}

func (r fakeAssetRepo) GetByID(_ context.Context, id int64) (*models.CourseAsset, error) {
	a, ok := r.m.assets[id]
	if !ok {
		return nil, apperrors.ErrAssetNotFound
	}
	cp := *a
	return &cp, nil
}

func (r fakeAssetRepo) ListByCourse(_ context.Context, courseID int64) ([]*models.CourseAsset, error) {
	out := []*models.CourseAsset{}
	for _, a := range r.m.assets {
		if a.CourseID == courseID {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakeAssetRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.m.assets[id]; !ok {
		return apperrors.ErrAssetNotFound
	}
	delete(r.m.assets, id)
	return nil
}

// --- admin users ---

type fakeAdminRepo struct{ m *memStore }

func (r fakeAdminRepo) Create(_ context.Context, u *models.AdminUser) error {
	u.ID = r.m.id()
	cp := *u
	r.m.admins[u.ID] = &cp
	return nil
}

func (r fakeAdminRepo) GetByID(_ context.Context, id int64) (*models.AdminUser, error) {
	u, ok := r.m.admins[id]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	cp := *u
	return &cp, nil
}

func (r fakeAdminRepo) GetByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	for id, u := range r.m.admins {
		if u.Email == strings.ToLower(email) {
			return r.GetByID(ctx, id)
		}
	}
	return nil, apperrors.ErrResourceNotFound
}

func (r fakeAdminRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	return err == nil, nil
}

// --- storage ---

type fakeStorage struct {
	saved   []string
	deleted []string
}

func (s *fakeStorage) SaveFileWithPath(fh *multipart.FileHeader, subPath string) (*filestorage.StoredFile, error) {
	path := subPath + "/" + fh.Filename
	s.saved = append(s.saved, path)
	return &filestorage.StoredFile{
		Path:     path,
		URL:      "/uploads/" + path,
		Filename: fh.Filename,
		FileSize: fh.Size,
		MimeType: "application/pdf",
	}, nil
}

func (s *fakeStorage) DeleteFile(relPath string) error {
	s.deleted = append(s.deleted, relPath)
	return nil
}

var (
	_ repositories.ICourseRepository    = fakeCourseRepo{}
	_ repositories.IWeekRepository      = fakeWeekRepo{}
	_ repositories.ILessonRepository    = fakeLessonRepo{}
	_ repositories.IAssetRepository     = fakeAssetRepo{}
	_ repositories.IAdminUserRepository = fakeAdminRepo{}
	_ filestorage.FileStorage           = (*fakeStorage)(nil)
)

// fixture wires every service to one memStore
type fixture struct {
	m       *memStore
	storage *fakeStorage
	courses CourseService
	weeks   WeekService
	lessons LessonService
	assets  AssetService
}

func newFixture() *fixture {
	m := newMemStore()
	st := &fakeStorage{}
	cr, wr, lr, ar := fakeCourseRepo{m}, fakeWeekRepo{m}, fakeLessonRepo{m}, fakeAssetRepo{m}
	return &fixture{
		m:       m,
		storage: st,
		courses: NewCourseService(cr, wr, lr, ar, st),
		weeks:   NewWeekService(cr, wr),
		lessons: NewLessonService(wr, lr),
		assets:  NewAssetService(cr, wr, lr, ar, st),
	}
}
