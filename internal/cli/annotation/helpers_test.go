package annotation

import taskservice "github.com/kdpii/nerlabel/internal/services/task"

func taskRequest(projectID int, text string) taskservice.CreateTaskRequest {
	return taskservice.CreateTaskRequest{ProjectID: projectID, Text: text}
}
