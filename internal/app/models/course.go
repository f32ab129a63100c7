package models

import "time"

// Course represents a sellable course and the root of its content tree.
type Course struct {
	ID             int64          `json:"id" db:"id"`
	Slug           string         `json:"slug" db:"slug"`
	Title          string         `json:"title" db:"title"`
	Subtitle       *string        `json:"subtitle,omitempty" db:"subtitle"`
	Description    *string        `json:"description,omitempty" db:"description"`
	PriceCents     int64          `json:"priceCents" db:"price_cents"`
	SalePriceCents *int64         `json:"salePriceCents,omitempty" db:"sale_price_cents"` // Nullable
	Currency       string         `json:"currency" db:"currency"`
	IsPublished    bool           `json:"isPublished" db:"is_published"`
	Metadata       map[string]any `json:"metadata,omitempty" db:"metadata"`
	CreatedAt      time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time      `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Weeks  []*CourseWeek  `json:"weeks,omitempty"`
	Assets []*CourseAsset `json:"assets,omitempty"`
}

// EffectivePriceCents returns the sale price when one is set, otherwise the list price.
func (c *Course) EffectivePriceCents() int64 {
	if c.SalePriceCents != nil {
		return *c.SalePriceCents
	}
	return c.PriceCents
}

// FindLesson looks a lesson up in the populated week tree.
func (c *Course) FindLesson(lessonID int64) *CourseLesson {
	for _, w := range c.Weeks {
		for _, l := range w.Lessons {
			if l.ID == lessonID {
				return l
			}
		}
	}
	return nil
}

// FindWeek looks a week up in the populated week tree.
func (c *Course) FindWeek(weekID int64) *CourseWeek {
	for _, w := range c.Weeks {
		if w.ID == weekID {
			return w
		}
	}
	return nil
}
