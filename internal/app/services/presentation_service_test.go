package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/psychcourse/internal/app/models/dto"
	"github.com/yigit/psychcourse/internal/pkg/apperrors"
	"github.com/yigit/psychcourse/internal/pkg/slides"
)

func testRegistry(t *testing.T) *slides.Registry {
	t.Helper()
	reg, err := slides.NewRegistry(fstest.MapFS{
		"decks/research-methods.json": {Data: []byte(`{"title": "Methods deck", "slides": [
			{"type": "title", "content": {"title": "Methods"}},
			{"type": "text", "content": {"text": "Observe, then test."}}
		]}`)},
	}, "decks")
	require.NoError(t, err)
	return reg
}

func publishAll(t *testing.T, f *fixture, courseID int64, lessonIDs []int64) {
	t.Helper()
	ctx := context.Background()
	_, err := f.courses.UpdateCourse(ctx, courseID, &dto.UpdateCourseRequest{IsPublished: boolPtr(true)})
	require.NoError(t, err)
	for _, id := range lessonIDs {
		_, err := f.lessons.UpdateLesson(ctx, id, &dto.UpdateLessonRequest{IsPublished: boolPtr(true)})
		require.NoError(t, err)
	}
}

func newPresentation(t *testing.T, f *fixture) PresentationService {
	return NewPresentationService(fakeCourseRepo{f.m}, fakeLessonRepo{f.m}, testRegistry(t))
}

func TestGetDeck_FallsBackToBuiltin(t *testing.T) {
	f := newFixture()
	detail, _, lessonIDs := seedCourse(t, f)
	publishAll(t, f, detail.ID, lessonIDs)

	deck, err := newPresentation(t, f).GetDeck(context.Background(), "research-methods")
	require.NoError(t, err)

	assert.Equal(t, dto.DeckSourceBuiltin, deck.Source)
	assert.Equal(t, "Methods deck", deck.Title)
	assert.Equal(t, detail.Slug, deck.CourseSlug)
	assert.Len(t, deck.Slides, 2)
}

func TestGetDeck_LessonSlidesTakePrecedence(t *testing.T) {
	f := newFixture()
	detail, _, lessonIDs := seedCourse(t, f)
	publishAll(t, f, detail.ID, lessonIDs)

	_, err := f.lessons.UpdateLesson(context.Background(), lessonIDs[1], &dto.UpdateLessonRequest{Slides: json.RawMessage(validDeck)})
	require.NoError(t, err)

	deck, err := newPresentation(t, f).GetDeck(context.Background(), "research-methods")
	require.NoError(t, err)
	assert.Equal(t, dto.DeckSourceLesson, deck.Source)
	assert.Equal(t, "Research methods", deck.Title)
	assert.Equal(t, slides.TypeBullets, deck.Slides[1].Type)
}

func TestGetDeck_HiddenStates(t *testing.T) {
	f := newFixture()
	detail, _, lessonIDs := seedCourse(t, f)
	svc := newPresentation(t, f)
	ctx := context.Background()

	// lesson unpublished
	_, err := svc.GetDeck(ctx, "research-methods")
	assert.True(t, errors.Is(err, apperrors.ErrLessonNotFound))
	assert.True(t, IsHiddenLesson(err))

	// lesson published, course not
	_, err = f.lessons.UpdateLesson(ctx, lessonIDs[1], &dto.UpdateLessonRequest{IsPublished: boolPtr(true)})
	require.NoError(t, err)
	_, err = svc.GetDeck(ctx, "research-methods")
	assert.True(t, errors.Is(err, apperrors.ErrCourseNotPublished))
	assert.True(t, IsHiddenLesson(err))

	// published, but no deck anywhere
	publishAll(t, f, detail.ID, lessonIDs)
	_, err = svc.GetDeck(ctx, "ethics")
	assert.True(t, errors.Is(err, apperrors.ErrDeckNotFound))

	_, err = svc.GetDeck(ctx, "no-such-lesson")
	assert.True(t, IsHiddenLesson(err))
}
