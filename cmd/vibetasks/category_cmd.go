package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fentz26/vibetasks/internal/category"
	"github.com/fentz26/vibetasks/internal/models"
	"github.com/fentz26/vibetasks/internal/prompt"
	"github.com/fentz26/vibetasks/internal/render"
)

var addCategoriesCmd = &cobra.Command{
	Use:   "add-categories [task-id] [label...]",
	Short: "Replace the categories of a task",
	Long: `Replace the categories of a task with the given labels.
Labels may be separated by spaces or commas. Without labels, a selection
prompt is shown when running in a terminal.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAddCategories,
}

var clearCategories bool

func init() {
	addCategoriesCmd.Flags().BoolVar(&clearCategories, "clear", false, "Remove all categories")
}

func splitLabels(args []string) []string {
	var labels []string
	for _, arg := range args {
		for _, l := range strings.Split(arg, ",") {
			if l = strings.TrimSpace(l); l != "" {
				labels = append(labels, l)
			}
		}
	}
	return labels
}

func runAddCategories(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	labels := splitLabels(args[1:])
	switch {
	case clearCategories:
		labels = nil
	case len(labels) == 0:
		if !prompt.IsInteractive(os.Stdin) {
			return &models.ValidationError{Field: "categories", Reason: "no labels given (use --clear to remove all)"}
		}
		labels, err = promptCategories(id)
		if err != nil {
			return err
		}
	}

	cats, err := category.Parse(labels)
	if err != nil {
		return err
	}

	inputs := map[string]interface{}{"id": id, "categories": labels}
	return mutate("task.categories", inputs, func(s *session) (outcome, error) {
		task, err := s.store.Get(id)
		if err != nil {
			return outcome{taskID: id}, err
		}
		if err := category.Set(task, cats); err != nil {
			return outcome{taskID: id}, err
		}

		names := make([]string, 0, len(task.Categories))
		for _, c := range task.Categories {
			names = append(names, render.Category(c))
		}
		if len(names) == 0 {
			fmt.Printf("🏷️ Categories cleared for task %d\n", id)
		} else {
			fmt.Printf("🏷️ Categories updated for task %d: %s\n", id, strings.Join(names, ", "))
		}
		return outcome{taskID: id, details: categoryList(task.Categories)}, nil
	})
}

func promptCategories(id int) ([]string, error) {
	task, err := currentTask(id)
	if err != nil {
		return nil, err
	}

	palette := models.Palette()
	names := make([]string, len(palette))
	var preselected []int
	for i, c := range palette {
		names[i] = c.String()
		if task.HasCategory(c) {
			preselected = append(preselected, i)
		}
	}

	chosen, err := prompt.Stdio().MultiSelect("Select categories", names, preselected)
	if err != nil {
		return nil, err
	}
	labels := make([]string, 0, len(chosen))
	for _, i := range chosen {
		labels = append(labels, names[i])
	}
	return labels, nil
}

func categoryList(cats []models.Category) string {
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = c.String()
	}
	return strings.Join(names, ",")
}
