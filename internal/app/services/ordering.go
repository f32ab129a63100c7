package services

import (
	"fmt"

	"github.com/yigit/psychcourse/internal/app/models"
	"github.com/yigit/psychcourse/internal/app/repositories"
	"github.com/yigit/psychcourse/internal/pkg/apperrors"
)

// planOrder turns a desired id order into position changes. currentPositions
// maps every existing child id to its stored position. The desired list must
// be a permutation of those ids. Positions are 1-based; rows already at their
// target position produce no change.
func planOrder(kind string, currentPositions map[int64]int, desired []int64) ([]repositories.PositionChange, error) {
	if len(desired) != len(currentPositions) {
		return nil, fmt.Errorf("%s order lists %d ids but there are %d", kind, len(desired), len(currentPositions))
	}

	seen := make(map[int64]bool, len(desired))
	var changes []repositories.PositionChange
	for i, id := range desired {
		current, ok := currentPositions[id]
		if !ok {
			return nil, fmt.Errorf("%s %d does not belong here", kind, id)
		}
		if seen[id] {
			return nil, fmt.Errorf("%s %d is listed more than once", kind, id)
		}
		seen[id] = true

		if target := i + 1; current != target {
			changes = append(changes, repositories.PositionChange{ID: id, Position: target})
		}
	}
	return changes, nil
}

// planWeekOrder validates a course's week order against the loaded tree
func planWeekOrder(course *models.Course, weekOrder []int64) ([]repositories.PositionChange, error) {
	if weekOrder == nil {
		return nil, nil
	}

	current := make(map[int64]int, len(course.Weeks))
	for _, w := range course.Weeks {
		current[w.ID] = w.Position
	}

	changes, err := planOrder("week", current, weekOrder)
	if err != nil {
		return nil, apperrors.NewValidationError(fmt.Sprintf("%s: %s", apperrors.ErrInvalidWeekOrder, err), map[string]interface{}{
			"field": "weekOrder",
		})
	}
	return changes, nil
}

// planLessonOrder validates per-week lesson orders against the loaded tree
func planLessonOrder(course *models.Course, lessonOrder map[int64][]int64) ([]repositories.PositionChange, error) {
	var all []repositories.PositionChange
	for weekID, order := range lessonOrder {
		week := course.FindWeek(weekID)
		if week == nil {
			return nil, apperrors.NewValidationError(
				fmt.Sprintf("%s: week %d does not belong to this course", apperrors.ErrInvalidLessonOrder, weekID),
				map[string]interface{}{"field": "lessonOrder", "weekId": weekID},
			)
		}

		current := make(map[int64]int, len(week.Lessons))
		for _, l := range week.Lessons {
			current[l.ID] = l.Position
		}

		changes, err := planOrder("lesson", current, order)
		if err != nil {
			return nil, apperrors.NewValidationError(
				fmt.Sprintf("%s: %s", apperrors.ErrInvalidLessonOrder, err),
				map[string]interface{}{"field": "lessonOrder", "weekId": weekID},
			)
		}
		all = append(all, changes...)
	}
	return all, nil
}
