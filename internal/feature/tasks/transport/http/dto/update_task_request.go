package dto

// UpdateTaskReq represents the request body for PUT /tasks/:id.
// すべてのフィールドは任意で、指定されたものだけが更新されます。
type UpdateTaskReq struct {
	Title       *string `json:"title" binding:"omitempty,min=1"`
	Description *string `json:"description" binding:"omitempty,max=1024"`
	Status      *string `json:"status" binding:"omitempty,oneof=TODO IN_PROGRESS COMPLETED"`
}
