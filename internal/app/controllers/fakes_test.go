package controllers

import (
	"context"
	"mime/multipart"

	"github.com/yigit/psychcourse/internal/app/models/dto"
	"github.com/yigit/psychcourse/internal/app/services"
)

type fakeCourseService struct {
	list    func(page, size int) (*dto.CourseListResponse, error)
	create  func(req *dto.CreateCourseRequest) (*dto.CourseDetailResponse, error)
	get     func(id int64) (*dto.CourseDetailResponse, error)
	update  func(id int64, req *dto.UpdateCourseRequest) (*dto.CourseDetailResponse, error)
	remove  func(id int64) error
	outline func(slug string) (*dto.CourseOutlineResponse, error)
}

func (f *fakeCourseService) ListCourses(_ context.Context, page, size int) (*dto.CourseListResponse, error) {
	return f.list(page, size)
}

func (f *fakeCourseService) CreateCourse(_ context.Context, req *dto.CreateCourseRequest) (*dto.CourseDetailResponse, error) {
	return f.create(req)
}

func (f *fakeCourseService) GetCourse(_ context.Context, id int64) (*dto.CourseDetailResponse, error) {
	return f.get(id)
}

func (f *fakeCourseService) UpdateCourse(_ context.Context, id int64, req *dto.UpdateCourseRequest) (*dto.CourseDetailResponse, error) {
	return f.update(id, req)
}

func (f *fakeCourseService) DeleteCourse(_ context.Context, id int64) error {
	return f.remove(id)
}

func (f *fakeCourseService) GetPublishedOutline(_ context.Context, slug string) (*dto.CourseOutlineResponse, error) {
	return f.outline(slug)
}

type fakeLessonService struct {
	create func(weekID int64, req *dto.CreateLessonRequest) (*dto.LessonResponse, error)
	update func(id int64, req *dto.UpdateLessonRequest) (*dto.LessonResponse, error)
}

func (f *fakeLessonService) CreateLesson(_ context.Context, weekID int64, req *dto.CreateLessonRequest) (*dto.LessonResponse, error) {
	return f.create(weekID, req)
}

func (f *fakeLessonService) GetLesson(_ context.Context, id int64) (*dto.LessonResponse, error) {
	return &dto.LessonResponse{ID: id}, nil
}

func (f *fakeLessonService) UpdateLesson(_ context.Context, id int64, req *dto.UpdateLessonRequest) (*dto.LessonResponse, error) {
	return f.update(id, req)
}

func (f *fakeLessonService) DeleteLesson(_ context.Context, _ int64) error {
	return nil
}

type fakeAssetService struct {
	uploaded   *multipart.FileHeader
	uploadedTo *int64
}

func (f *fakeAssetService) ListAssets(_ context.Context, courseID int64) (*dto.AssetListResponse, error) {
	return &dto.AssetListResponse{Assets: []dto.AssetResponse{{ID: 1, CourseID: courseID}}}, nil
}

func (f *fakeAssetService) UploadAsset(_ context.Context, courseID int64, lessonID *int64, file *multipart.FileHeader) (*dto.AssetResponse, error) {
	f.uploaded, f.uploadedTo = file, lessonID
	return &dto.AssetResponse{ID: 9, CourseID: courseID, LessonID: lessonID, FileName: file.Filename, FileSize: file.Size}, nil
}

func (f *fakeAssetService) DeleteAsset(_ context.Context, _ int64) error {
	return nil
}

type fakePresentationService struct {
	deck *dto.DeckResponse
	err  error
}

func (f *fakePresentationService) GetDeck(_ context.Context, _ string) (*dto.DeckResponse, error) {
	return f.deck, f.err
}

type fakeAuthService struct {
	login   func(req *dto.LoginRequest) (*dto.AuthResponse, error)
	profile func(adminID int64) (*dto.AdminResponse, error)
}

func (f *fakeAuthService) Login(_ context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	return f.login(req)
}

func (f *fakeAuthService) Profile(_ context.Context, adminID int64) (*dto.AdminResponse, error) {
	return f.profile(adminID)
}

var (
	_ services.CourseService       = (*fakeCourseService)(nil)
	_ services.LessonService       = (*fakeLessonService)(nil)
	_ services.AssetService        = (*fakeAssetService)(nil)
	_ services.PresentationService = (*fakePresentationService)(nil)
	_ services.AuthService         = (*fakeAuthService)(nil)
)
