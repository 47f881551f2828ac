package dto

import "todo_backend/internal/feature/tasks/domain/entity"

// ListTasksQuery represents the query parameters for GET /tasks.
// page/limitは文字列として受け取り、ハンドラー側で数値化します。
// 不正な値はリクエストを拒否せず、ユースケースのデフォルトに丸められます。
type ListTasksQuery struct {
	Page   string `form:"page"`
	Limit  string `form:"limit"`
	Status string `form:"status" binding:"omitempty,oneof=TODO IN_PROGRESS COMPLETED"`
	Search string `form:"search"`
}

// PaginationRes describes the pagination metadata of a task listing.
type PaginationRes struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// TaskListRes represents the response body for GET /tasks.
type TaskListRes struct {
	Tasks      []entity.Task `json:"tasks"`
	Pagination PaginationRes `json:"pagination"`
}
