// Package category validates and assigns palette labels to tasks.
package category

import (
	"github.com/fentz26/vibetasks/internal/models"
)

// Parse resolves every label against the palette. The first unknown label
// is reported in an InvalidCategoryError. The result is de-duplicated and
// sorted in palette order.
func Parse(labels []string) ([]models.Category, error) {
	set := make(map[models.Category]bool, len(labels))
	for _, label := range labels {
		c, err := models.ParseCategory(label)
		if err != nil {
			return nil, err
		}
		set[c] = true
	}

	var out []models.Category
	for _, c := range models.Palette() {
		if set[c] {
			out = append(out, c)
		}
	}
	return out, nil
}

// Assign replaces the task's categories with labels. Nothing is changed if
// any label is invalid. An empty list clears the categories.
func Assign(task *models.Task, labels []string) error {
	cats, err := Parse(labels)
	if err != nil {
		return err
	}
	task.Categories = cats
	return nil
}

// Set replaces the task's categories with already-parsed values.
func Set(task *models.Task, cats []models.Category) error {
	labels := make([]string, 0, len(cats))
	for _, c := range cats {
		if !c.Valid() {
			return &models.InvalidCategoryError{Label: c.String()}
		}
		labels = append(labels, c.String())
	}
	return Assign(task, labels)
}
