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

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new task",
	Long:  `Add a new task. Missing title, description, due date, priority and categories are prompted for when run from a terminal.`,
	Args:  cobra.NoArgs,
	RunE:  runAdd,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tasks",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var showCmd = &cobra.Command{
	Use:   "show [task-id]",
	Short: "Show task details",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var completeCmd = &cobra.Command{
	Use:   "complete [task-id]",
	Short: "Mark a task as done",
	Args:  cobra.ExactArgs(1),
	RunE:  runComplete,
}

var statusCmd = &cobra.Command{
	Use:   "status [task-id]",
	Short: "Change task status",
	Args:  cobra.ExactArgs(1),
	RunE:  runStatus,
}

var priorityCmd = &cobra.Command{
	Use:   "priority [task-id]",
	Short: "Change task priority",
	Args:  cobra.ExactArgs(1),
	RunE:  runPriority,
}

var deleteCmd = &cobra.Command{
	Use:     "delete [task-id]",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	RunE:    runDelete,
}

var (
	taskTitle      string
	taskDesc       string
	taskPriority   string
	taskDue        string
	taskCategories []string
	filterStatus   string
	setStatus      string
	setPriority    string
)

func init() {
	addCmd.Flags().StringVar(&taskTitle, "title", "", "Task title")
	addCmd.Flags().StringVar(&taskDesc, "desc", "", "Task description")
	addCmd.Flags().StringVar(&taskPriority, "priority", "", "Priority (low, medium, high, urgent)")
	addCmd.Flags().StringVar(&taskDue, "due", "", "Due date (YYYY-MM-DD [HH:MM])")
	addCmd.Flags().StringSliceVar(&taskCategories, "category", nil, "Category label, repeatable (Work, Personal, Study, Health, Shopping)")

	listCmd.Flags().StringVar(&filterStatus, "status", "", "Filter by status (todo, in-progress, done)")

	statusCmd.Flags().StringVar(&setStatus, "set", "", "New status (todo, in-progress, done)")
	priorityCmd.Flags().StringVar(&setPriority, "set", "", "New priority (low, medium, high, urgent)")

	rootCmd.AddCommand(priorityCmd)
}

type addInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Priority    string   `json:"priority"`
	Due         string   `json:"due,omitempty"`
	Categories  []string `json:"categories,omitempty"`
}

func runAdd(cmd *cobra.Command, args []string) error {
	in := addInput{
		Title:       taskTitle,
		Description: taskDesc,
		Priority:    taskPriority,
		Due:         taskDue,
		Categories:  taskCategories,
	}

	// Prompt before the store is locked.
	if strings.TrimSpace(in.Title) == "" && prompt.IsInteractive(os.Stdin) {
		if err := promptAdd(prompt.Stdio(), &in); err != nil {
			return err
		}
	}

	priority := models.PriorityLow
	if in.Priority != "" {
		p, err := models.ParsePriority(in.Priority)
		if err != nil {
			return err
		}
		priority = p
	}
	due, err := parseDue(in.Due)
	if err != nil {
		return err
	}
	cats, err := category.Parse(in.Categories)
	if err != nil {
		return err
	}

	return mutate("task.add", in, func(s *session) (outcome, error) {
		task, err := s.store.Add(in.Title, in.Description, priority, due)
		if err != nil {
			return outcome{}, err
		}
		if err := category.Set(task, cats); err != nil {
			return outcome{taskID: task.ID}, err
		}
		fmt.Printf("✨ Task added with ID: %d\n", task.ID)
		return outcome{taskID: task.ID, details: task.Title}, nil
	})
}

// asker is the part of prompt.Prompter used by add.
type asker interface {
	Input(label string, allowEmpty bool) (string, error)
	Select(label string, options []string, def int) (int, error)
	MultiSelect(label string, options []string, preselected []int) ([]int, error)
}

func promptAdd(p asker, in *addInput) error {
	title, err := p.Input("Task title", false)
	if err != nil {
		return err
	}
	in.Title = title

	if in.Description == "" {
		desc, err := p.Input("Description (optional)", true)
		if err != nil {
			return err
		}
		in.Description = desc
	}

	if in.Due == "" {
		due, err := p.Input("Due date (YYYY-MM-DD HH:MM, optional)", true)
		if err != nil {
			return err
		}
		if _, err := parseDue(due); err != nil {
			return err
		}
		in.Due = due
	}

	if in.Priority == "" {
		levels := models.Priorities()
		names := make([]string, len(levels))
		for i, l := range levels {
			names[i] = l.String()
		}
		i, err := p.Select("Select priority", names, 0)
		if err != nil {
			return err
		}
		in.Priority = names[i]
	}

	if len(in.Categories) == 0 {
		palette := models.Palette()
		names := make([]string, len(palette))
		for i, c := range palette {
			names[i] = c.String()
		}
		chosen, err := p.MultiSelect("Select categories", names, nil)
		if err != nil {
			return err
		}
		for _, i := range chosen {
			in.Categories = append(in.Categories, names[i])
		}
	}
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	var status *models.Status
	if filterStatus != "" {
		st, err := models.ParseStatus(filterStatus)
		if err != nil {
			return err
		}
		status = &st
	}

	return view(func(s *session) error {
		tasks := s.store.List()
		if status != nil {
			tasks = s.store.Filter(*status)
		}
		render.TaskList(os.Stdout, tasks, s.now)
		return nil
	})
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return view(func(s *session) error {
		task, err := s.store.Get(id)
		if err != nil {
			return err
		}
		fmt.Print(render.Task(task, s.now))
		return nil
	})
}

func runComplete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return mutate("task.complete", map[string]int{"id": id}, func(s *session) (outcome, error) {
		if err := s.store.SetStatus(id, models.StatusDone); err != nil {
			return outcome{taskID: id}, err
		}
		fmt.Printf("🎉 Task %d marked as done!\n", id)
		return outcome{taskID: id}, nil
	})
}

func runStatus(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	value := setStatus
	if value == "" {
		if !prompt.IsInteractive(os.Stdin) {
			return showStatus(id)
		}
		current, err := currentTask(id)
		if err != nil {
			return err
		}
		statuses := models.Statuses()
		names := make([]string, len(statuses))
		for i, st := range statuses {
			names[i] = st.Label()
		}
		i, err := prompt.Stdio().Select("Select new status", names, int(current.Status))
		if err != nil {
			return err
		}
		value = statuses[i].String()
	}

	status, err := models.ParseStatus(value)
	if err != nil {
		return err
	}

	inputs := map[string]interface{}{"id": id, "status": status.String()}
	return mutate("task.status", inputs, func(s *session) (outcome, error) {
		if err := s.store.SetStatus(id, status); err != nil {
			return outcome{taskID: id}, err
		}
		fmt.Printf("✅ Task %d status updated to %s\n", id, status.Label())
		return outcome{taskID: id, details: status.String()}, nil
	})
}

func runPriority(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	value := setPriority
	if value == "" {
		if !prompt.IsInteractive(os.Stdin) {
			return &models.ValidationError{Field: "priority", Reason: "--set is required when not running in a terminal"}
		}
		current, err := currentTask(id)
		if err != nil {
			return err
		}
		levels := models.Priorities()
		names := make([]string, len(levels))
		for i, l := range levels {
			names[i] = l.String()
		}
		i, err := prompt.Stdio().Select("Select new priority", names, current.Priority.Rank())
		if err != nil {
			return err
		}
		value = names[i]
	}

	priority, err := models.ParsePriority(value)
	if err != nil {
		return err
	}

	inputs := map[string]interface{}{"id": id, "priority": priority.String()}
	return mutate("task.priority", inputs, func(s *session) (outcome, error) {
		if err := s.store.SetPriority(id, priority); err != nil {
			return outcome{taskID: id}, err
		}
		fmt.Printf("✅ Task %d priority set to %s\n", id, priority)
		return outcome{taskID: id, details: priority.String()}, nil
	})
}

func runDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return mutate("task.delete", map[string]int{"id": id}, func(s *session) (outcome, error) {
		task, err := s.store.Get(id)
		if err != nil {
			return outcome{taskID: id}, err
		}
		title := task.Title
		if err := s.store.Delete(id); err != nil {
			return outcome{taskID: id}, err
		}
		fmt.Printf("🗑️ Task %d deleted\n", id)
		return outcome{taskID: id, details: title}, nil
	})
}

// currentTask returns a snapshot of the task for prompt defaults. The store
// lock is released before the prompt runs.
func currentTask(id int) (models.Task, error) {
	var task models.Task
	err := view(func(s *session) error {
		t, err := s.store.Get(id)
		if err != nil {
			return err
		}
		task = *t
		return nil
	})
	return task, err
}

func showStatus(id int) error {
	task, err := currentTask(id)
	if err != nil {
		return err
	}
	fmt.Printf("Task %d: %s\n", id, render.Status(task.Status))
	return nil
}
