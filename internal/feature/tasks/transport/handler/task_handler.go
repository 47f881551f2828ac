// Package handler はtasksフィーチャーのHTTPハンドラーを提供します。
// すべてのエンドポイントはAuthRequiredミドルウェアの内側にあり、
// トークンの再検証はせずコンテキストのユーザーIDのみを読み取ります。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"todo_backend/internal/feature/tasks/domain/entity"
	"todo_backend/internal/feature/tasks/transport/http/dto"
	"todo_backend/internal/feature/tasks/usecase"
	jwtmw "todo_backend/internal/platform/jwt"
)

// TaskUsecase はタスク操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type TaskUsecase interface {
	Create(ctx context.Context, userID uint, title, description string, status entity.Status) (*entity.Task, error)
	List(ctx context.Context, userID uint, page, limit int, status entity.Status, search string) (*usecase.TaskList, error)
	GetByID(ctx context.Context, userID, id uint) (*entity.Task, error)
	Update(ctx context.Context, userID, id uint, input usecase.UpdateInput) (*entity.Task, error)
	Delete(ctx context.Context, userID, id uint) error
	ToggleStatus(ctx context.Context, userID, id uint) (*entity.Task, error)
}

// TaskHandler はタスク操作のHTTPリクエストを処理します。
type TaskHandler struct {
	tasks TaskUsecase
}

// NewTaskHandler はTaskHandlerの新しいインスタンスを生成します。
func NewTaskHandler(tasks TaskUsecase) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// userID returns the authenticated user ID attached by the middleware.
// 設定されていない場合はミドルウェアの適用漏れなので401で打ち切ります。
func userID(c *gin.Context) (uint, bool) {
	id, ok := jwtmw.UserIDFromContext(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "access token required"})
	}
	return id, ok
}

// intOrZero parses a numeric query parameter value.
// 数値でない値は0にし、ユースケース側のデフォルト(page=1, limit=10)に
// 丸めます。一覧取得はページング指定が壊れていても拒否しません。
func intOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// taskID parses the :id path parameter.
// 数値でないIDは存在しないIDと区別せず404にします（フェイルクローズ）。
func taskID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return 0, false
	}
	return uint(id), true
}

// Create はタスク作成APIエンドポイントを処理します。
func (h *TaskHandler) Create(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	var req dto.CreateTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("create task validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), uid, req.Title, req.Description, entity.Status(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmptyTitle), errors.Is(err, usecase.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			slog.Error("create task failed", "error", err, "user_id", uid)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, task)
}

// List はタスク一覧APIエンドポイントを処理します。
// page/limit/status/searchをクエリパラメータとして受け付けます。
func (h *TaskHandler) List(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	var query dto.ListTasksQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, err := h.tasks.List(c.Request.Context(), uid, intOrZero(query.Page), intOrZero(query.Limit), entity.Status(query.Status), query.Search)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		slog.Error("list tasks failed", "error", err, "user_id", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	// tasksは空でもnullではなく[]を返す
	if list.Tasks == nil {
		list.Tasks = []entity.Task{}
	}

	c.JSON(http.StatusOK, dto.TaskListRes{
		Tasks: list.Tasks,
		Pagination: dto.PaginationRes{
			Total:      list.Total,
			Page:       list.Page,
			Limit:      list.Limit,
			TotalPages: list.TotalPages,
		},
	})
}

// GetByID はタスク取得APIエンドポイントを処理します。
func (h *TaskHandler) GetByID(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	id, ok := taskID(c)
	if !ok {
		return
	}

	task, err := h.tasks.GetByID(c.Request.Context(), uid, id)
	if err != nil {
		h.renderTaskError(c, uid, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// Update はタスク部分更新APIエンドポイントを処理します。
func (h *TaskHandler) Update(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	id, ok := taskID(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := usecase.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Status != nil {
		status := entity.Status(*req.Status)
		input.Status = &status
	}

	task, err := h.tasks.Update(c.Request.Context(), uid, id, input)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmptyTitle), errors.Is(err, usecase.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.renderTaskError(c, uid, err)
		}
		return
	}

	c.JSON(http.StatusOK, task)
}

// Delete はタスク削除APIエンドポイントを処理します。
func (h *TaskHandler) Delete(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	id, ok := taskID(c)
	if !ok {
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), uid, id); err != nil {
		h.renderTaskError(c, uid, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "task deleted successfully"})
}

// ToggleStatus はタスクの完了状態切り替えAPIエンドポイントを処理します。
func (h *TaskHandler) ToggleStatus(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	id, ok := taskID(c)
	if !ok {
		return
	}

	task, err := h.tasks.ToggleStatus(c.Request.Context(), uid, id)
	if err != nil {
		h.renderTaskError(c, uid, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// renderTaskError はユースケースのエラーをHTTPステータスにマッピングします。
// 他ユーザーのタスクと存在しないタスクはどちらも404です。
func (h *TaskHandler) renderTaskError(c *gin.Context, uid uint, err error) {
	if errors.Is(err, usecase.ErrTaskNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	slog.Error("task operation failed", "error", err, "user_id", uid)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
