// Package dto defines data transfer objects for the tasks feature's HTTP transport layer.
package dto

// CreateTaskReq represents the request body for POST /tasks.
// Status is optional and defaults to TODO; unknown values are rejected.
type CreateTaskReq struct {
	Title       string `json:"title" binding:"required,min=1"`
	Description string `json:"description" binding:"omitempty,max=1024"`
	Status      string `json:"status" binding:"omitempty,oneof=TODO IN_PROGRESS COMPLETED"`
}
