package models

import "time"

// Project groups tasks and project-scoped labels.
// Names are not unique; OwnerID only scopes visibility.
type Project struct {
	ID                          int
	Name                        string
	Description                 string
	IsActive                    bool
	AllowOverlappingAnnotations bool
	RequireAllLabels            bool
	OwnerID                     *string
	CreatedAt                   time.Time
	UpdatedAt                   time.Time
}

// ProjectStats is a point-in-time summary of a project's annotation progress
type ProjectStats struct {
	ProjectID            int
	TaskCount            int
	CompletedTaskCount   int
	CompletionPercentage float64
	AnnotationCount      int
	EntityCount          int
	LabelDistribution    map[string]int
}

// GlobalStats summarizes every project in the store
type GlobalStats struct {
	TotalProjects     int
	TotalTasks        int
	CompletedTasks    int
	TotalAnnotations  int
	CompletionRate    float64
	LabelDistribution map[string]int
}
