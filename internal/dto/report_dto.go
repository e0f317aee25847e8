package dto

// TaskReport is one task inside a report tree, with its progress value.
type TaskReport struct {
	TaskID      uint   `json:"task_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Progress    int    `json:"progress"`
}

// SprintReport is one sprint inside a report tree.
type SprintReport struct {
	SprintID       uint         `json:"sprint_id"`
	SprintName     string       `json:"sprint_name"`
	SprintProgress int          `json:"sprint_progress"`
	Tasks          []TaskReport `json:"tasks"`
}

// ProjectReport is the nested progress tree served for one project and
// persisted (sprints only) as the rollup detail payload.
type ProjectReport struct {
	ProjectID          uint                    `json:"project_id"`
	ProjectName        string                  `json:"project_name"`
	ProjectDescription string                  `json:"project_description"`
	ProgressPercentage int                     `json:"progress_percentage"`
	Details            []SprintReport          `json:"details"`
	Members            []ProjectMemberResponse `json:"project_members"`
}
