// Package progress maps task statuses to progress values and folds them
// up into sprint and project percentages.
package progress

import "math"

// Task statuses recognised by the progress table.
const (
	StatusTodo       = "todo"
	StatusInProgress = "in_progress"
	StatusReview     = "review"
	StatusDone       = "done"
)

var statusValues = map[string]int{
	StatusTodo:       0,
	StatusInProgress: 50,
	StatusReview:     75,
	StatusDone:       100,
}

// StatusValue returns the progress value for a task status. Unknown
// statuses degrade to 0 rather than erroring.
func StatusValue(status string) int {
	return statusValues[status]
}

// RoundedMean returns the rounded arithmetic mean of the values, or 0 for
// an empty slice.
func RoundedMean(values []int) int {
	if len(values) == 0 {
		return 0
	}

	sum := 0
	for _, v := range values {
		sum += v
	}
	return int(math.Round(float64(sum) / float64(len(values))))
}

// FlatMean folds per-sprint task values into a project percentage by
// averaging every task equally, regardless of which sprint it sits in.
// This is the canonical project-level formula.
func FlatMean(sprintTaskValues [][]int) int {
	all := make([]int, 0)
	for _, tasks := range sprintTaskValues {
		all = append(all, tasks...)
	}
	return RoundedMean(all)
}

// MeanOfSprintMeans folds per-sprint task values by averaging the sprint
// percentages instead of the tasks. The historical read path used this
// formula; it diverges from FlatMean when sprints hold unequal task
// counts and is kept only to document that behaviour.
func MeanOfSprintMeans(sprintTaskValues [][]int) int {
	means := make([]int, 0, len(sprintTaskValues))
	for _, tasks := range sprintTaskValues {
		means = append(means, RoundedMean(tasks))
	}
	return RoundedMean(means)
}
