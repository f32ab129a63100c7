package services

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/psychcourse/internal/app/models/dto"
	"github.com/yigit/psychcourse/internal/pkg/apperrors"
)

func TestUploadAndDeleteAsset(t *testing.T) {
	f := newFixture()
	detail, _, lessonIDs := seedCourse(t, f)
	ctx := context.Background()

	asset, err := f.assets.UploadAsset(ctx, detail.ID, &lessonIDs[0], &multipart.FileHeader{Filename: "handout.pdf", Size: 1024})
	require.NoError(t, err)
	assert.Equal(t, "handout.pdf", asset.FileName)
	assert.Equal(t, lessonIDs[0], *asset.LessonID)
	assert.Len(t, f.storage.saved, 1)

	list, err := f.assets.ListAssets(ctx, detail.ID)
	require.NoError(t, err)
	require.Len(t, list.Assets, 1)

	require.NoError(t, f.assets.DeleteAsset(ctx, asset.ID))
	assert.Equal(t, f.storage.saved, f.storage.deleted)

	err = f.assets.DeleteAsset(ctx, asset.ID)
	assert.True(t, errors.Is(err, apperrors.ErrAssetNotFound))
}

func TestUploadAsset_Rejections(t *testing.T) {
	f := newFixture()
	detail, _, _ := seedCourse(t, f)
	ctx := context.Background()

	_, err := f.assets.UploadAsset(ctx, detail.ID, nil, nil)
	assert.True(t, errors.Is(err, apperrors.ErrFileRequired))

	_, err = f.assets.UploadAsset(ctx, 404, nil, &multipart.FileHeader{Filename: "a.pdf"})
	assert.True(t, errors.Is(err, apperrors.ErrCourseNotFound))

	other, err := f.courses.CreateCourse(ctx, &dto.CreateCourseRequest{Title: "Other course"})
	require.NoError(t, err)
	otherWeek, err := f.weeks.CreateWeek(ctx, other.ID, &dto.CreateWeekRequest{Title: "Other week"})
	require.NoError(t, err)
	foreign, err := f.lessons.CreateLesson(ctx, otherWeek.ID, &dto.CreateLessonRequest{Title: "Foreign lesson"})
	require.NoError(t, err)

	_, err = f.assets.UploadAsset(ctx, detail.ID, &foreign.ID, &multipart.FileHeader{Filename: "a.pdf"})
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))
	assert.Empty(t, f.storage.saved)
}

func TestDeleteCourseRemovesAssetFiles(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	course, err := f.courses.CreateCourse(ctx, &dto.CreateCourseRequest{Title: "Short course"})
	require.NoError(t, err)
	_, err = f.assets.UploadAsset(ctx, course.ID, nil, &multipart.FileHeader{Filename: "cover.png"})
	require.NoError(t, err)

	require.NoError(t, f.courses.DeleteCourse(ctx, course.ID))
	assert.Equal(t, f.storage.saved, f.storage.deleted)
	assert.Empty(t, f.m.assets)
}
