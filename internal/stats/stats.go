// Package stats computes label distributions and completion figures.
package stats

import (
	"encoding/json"
	"sort"

	"github.com/kdpii/nerlabel/internal/models"
)

// Distribution counts annotations per label value
type Distribution map[string]int

// Add counts each label once
func (d Distribution) Add(labels []string) {
	for _, l := range labels {
		d[l]++
	}
}

// AddPayload decodes a stored label list and counts it. Payloads that are
// not a JSON list of strings contribute nothing and report false.
func (d Distribution) AddPayload(raw string) bool {
	var labels []string
	if err := json.Unmarshal([]byte(raw), &labels); err != nil {
		return false
	}
	d.Add(labels)
	return true
}

// LabelDistribution counts labels across every annotation of every task
func LabelDistribution(annotationsByTask map[int][]*models.Annotation) map[string]int {
	d := Distribution{}
	for _, annotations := range annotationsByTask {
		for _, a := range annotations {
			d.Add(a.Labels)
		}
	}
	return d
}

// DistributionFromPayloads counts labels from raw stored payloads, skipping malformed ones
func DistributionFromPayloads(payloads []string) map[string]int {
	d := Distribution{}
	for _, p := range payloads {
		d.AddPayload(p)
	}
	return d
}

// CompletionPercentage is completed/total*100, or 0 when there are no tasks
func CompletionPercentage(completed, total int) float64 {
	if total == 0 {
		return 0.0
	}
	return float64(completed) / float64(total) * 100
}

// Counts are the raw numbers a project snapshot is built from
type Counts struct {
	TaskCount          int
	CompletedTaskCount int
	AnnotationCount    int
	EntityCount        int
}

// ProjectStatistics assembles a snapshot from counts read at one instant
func ProjectStatistics(projectID int, c Counts, distribution map[string]int) *models.ProjectStats {
	if distribution == nil {
		distribution = map[string]int{}
	}
	return &models.ProjectStats{
		ProjectID:            projectID,
		TaskCount:            c.TaskCount,
		CompletedTaskCount:   c.CompletedTaskCount,
		CompletionPercentage: CompletionPercentage(c.CompletedTaskCount, c.TaskCount),
		AnnotationCount:      c.AnnotationCount,
		EntityCount:          c.EntityCount,
		LabelDistribution:    distribution,
	}
}

// GlobalStatistics assembles the store-wide figures
func GlobalStatistics(projects, tasks, completed, annotations int, distribution map[string]int) *models.GlobalStats {
	if distribution == nil {
		distribution = map[string]int{}
	}
	return &models.GlobalStats{
		TotalProjects:     projects,
		TotalTasks:        tasks,
		CompletedTasks:    completed,
		TotalAnnotations:  annotations,
		CompletionRate:    CompletionPercentage(completed, tasks),
		LabelDistribution: distribution,
	}
}

// LabelCount is one row of a sorted distribution
type LabelCount struct {
	Label string
	Count int
}

// Sorted orders a distribution by count descending, then label ascending
func Sorted(distribution map[string]int) []LabelCount {
	rows := make([]LabelCount, 0, len(distribution))
	for label, count := range distribution {
		rows = append(rows, LabelCount{Label: label, Count: count})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Label < rows[j].Label
	})
	return rows
}
