// Package usecase はtasksフィーチャーのビジネスロジックを実装します。
// すべての操作は認証済みユーザーIDでスコープされ、他ユーザーのタスクには
// 一切アクセスできません。
package usecase

import (
	"context"
	"strings"

	"todo_backend/internal/feature/tasks/domain/entity"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// Filter narrows a task listing. Zero values mean "no filter".
type Filter struct {
	// Status filters by exact status match when non-empty.
	Status entity.Status
	// Search filters by substring match on the title when non-empty.
	Search string
}

// Page describes the requested page of a task listing.
// Values are assumed to be already coerced to sane bounds.
type Page struct {
	Page  int
	Limit int
}

// TaskRepository はタスクエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type TaskRepository interface {
	// Create persists a new task.
	Create(ctx context.Context, task *entity.Task) error

	// Find returns the user's tasks matching the filter, newest first,
	// along with the total count before pagination.
	Find(ctx context.Context, userID uint, filter Filter, page Page) ([]entity.Task, int64, error)

	// FindByIDAndUser returns the task only if it is owned by the user.
	// It returns ErrTaskNotFound otherwise.
	FindByIDAndUser(ctx context.Context, id, userID uint) (*entity.Task, error)

	// UpdateByIDAndUser applies the given fields with a single conditional
	// statement scoped by id AND owner, and returns the affected row count.
	// 所有権チェックと更新を1つの条件付き文にまとめることでcheck-then-actの
	// レースを避けます。
	UpdateByIDAndUser(ctx context.Context, id, userID uint, fields map[string]interface{}) (int64, error)

	// DeleteByIDAndUser deletes with the same ownership-scoped semantics and
	// returns the affected row count.
	DeleteByIDAndUser(ctx context.Context, id, userID uint) (int64, error)
}

// TaskList is the result of a paginated listing.
type TaskList struct {
	Tasks      []entity.Task
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// UpdateInput carries the optional fields of a partial task update.
// Nil pointers mean "leave unchanged".
type UpdateInput struct {
	Title       *string
	Description *string
	Status      *entity.Status
}

// taskUsecase はタスクのビジネスロジックを実装します。
type taskUsecase struct {
	tasks TaskRepository
}

// NewTaskUsecase はtaskUsecaseの新しいインスタンスを生成します。
func NewTaskUsecase(tasks TaskRepository) *taskUsecase {
	return &taskUsecase{tasks: tasks}
}

// Create は認証済みユーザーをオーナーとして新しいタスクを永続化します。
// ステータス未指定時はTODO、不正な値はErrInvalidStatusで拒否します。
func (u *taskUsecase) Create(ctx context.Context, userID uint, title, description string, status entity.Status) (*entity.Task, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrEmptyTitle
	}
	if status == "" {
		status = entity.StatusTodo
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	task := &entity.Task{
		Title:       title,
		Description: description,
		Status:      status,
		UserID:      userID,
	}
	if err := u.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// List はユーザーのタスクを新しい順にページングして返します。
// page/limitの不正値はエラーにせず、デフォルト値(page=1, limit=10)に
// フォールバックします（意図的な寛容ポリシー）。
func (u *taskUsecase) List(ctx context.Context, userID uint, page, limit int, status entity.Status, search string) (*TaskList, error) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if status != "" && !status.Valid() {
		return nil, ErrInvalidStatus
	}

	tasks, total, err := u.tasks.Find(ctx, userID,
		Filter{Status: status, Search: search},
		Page{Page: page, Limit: limit},
	)
	if err != nil {
		return nil, err
	}

	// totalPages = ceil(total/limit)
	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &TaskList{
		Tasks:      tasks,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// GetByID はユーザー自身のタスクのみ返します。
// 他ユーザーのタスクは存在自体を秘匿するためErrTaskNotFoundになります。
func (u *taskUsecase) GetByID(ctx context.Context, userID, id uint) (*entity.Task, error) {
	return u.tasks.FindByIDAndUser(ctx, id, userID)
}

// Update は指定されたフィールドのみを更新します。
// 更新は(id AND userID)でスコープされるため、0行更新はErrTaskNotFoundです。
func (u *taskUsecase) Update(ctx context.Context, userID, id uint, input UpdateInput) (*entity.Task, error) {
	fields := map[string]interface{}{}
	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrEmptyTitle
		}
		fields["title"] = *input.Title
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		fields["status"] = *input.Status
	}

	// フィールド未指定の更新は何も変えずに現在のタスクを返す
	if len(fields) == 0 {
		return u.tasks.FindByIDAndUser(ctx, id, userID)
	}

	rows, err := u.tasks.UpdateByIDAndUser(ctx, id, userID, fields)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrTaskNotFound
	}

	return u.tasks.FindByIDAndUser(ctx, id, userID)
}

// Delete はユーザー自身のタスクを削除します。0行削除はErrTaskNotFoundです。
func (u *taskUsecase) Delete(ctx context.Context, userID, id uint) error {
	rows, err := u.tasks.DeleteByIDAndUser(ctx, id, userID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// ToggleStatus はタスクの完了状態を二値で切り替えます。
// COMPLETEDはTODOへ、それ以外（IN_PROGRESSを含む）はCOMPLETEDへ遷移します。
func (u *taskUsecase) ToggleStatus(ctx context.Context, userID, id uint) (*entity.Task, error) {
	task, err := u.tasks.FindByIDAndUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	next := task.Status.Toggle()
	rows, err := u.tasks.UpdateByIDAndUser(ctx, id, userID, map[string]interface{}{"status": next})
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		// 取得と更新の間に削除された場合
		return nil, ErrTaskNotFound
	}

	task.Status = next
	return task, nil
}
