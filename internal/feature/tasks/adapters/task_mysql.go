// Package adapters はtasksフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"todo_backend/internal/feature/tasks/domain/entity"
	"todo_backend/internal/feature/tasks/usecase"
)

// taskMySQL はTaskRepositoryインターフェースのMySQL実装です。
// GORMを使用してデータベース操作を行います。
type taskMySQL struct {
	db *gorm.DB
}

// taskMySQLがTaskRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.TaskRepository = (*taskMySQL)(nil)

// NewTaskMySQL は指定されたgorm.DB接続でtaskMySQLの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewTaskMySQL(db *gorm.DB) *taskMySQL {
	return &taskMySQL{db: db}
}

// Create はタスクをデータベースに追加します。
func (r *taskMySQL) Create(ctx context.Context, task *entity.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// Find はフィルタに一致するユーザーのタスクを新しい順に取得します。
// ページング前の総件数も合わせて返します。
func (r *taskMySQL) Find(ctx context.Context, userID uint, filter usecase.Filter, page usecase.Page) ([]entity.Task, int64, error) {
	q := r.db.WithContext(ctx).Model(&entity.Task{}).Where("user_id = ?", userID)
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		q = q.Where("title LIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tasks []entity.Task
	offset := (page.Page - 1) * page.Limit
	// created_atが同一の場合に順序が安定するようidで二次ソート
	if err := q.Order("created_at DESC, id DESC").Limit(page.Limit).Offset(offset).Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// FindByIDAndUser は(id, userID)でタスクを取得します。
// 存在しない、または他ユーザー所有の場合はusecase.ErrTaskNotFoundを返します。
func (r *taskMySQL) FindByIDAndUser(ctx context.Context, id, userID uint) (*entity.Task, error) {
	var task entity.Task
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

// UpdateByIDAndUser は所有権チェックと更新を単一のUPDATE文で実行します。
// WHERE id = ? AND user_id = ? により、チェックと更新の間のレースは発生しません。
func (r *taskMySQL) UpdateByIDAndUser(ctx context.Context, id, userID uint, fields map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).Model(&entity.Task{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(fields)
	return res.RowsAffected, res.Error
}

// DeleteByIDAndUser は所有権チェックと削除を単一のDELETE文で実行します。
func (r *taskMySQL) DeleteByIDAndUser(ctx context.Context, id, userID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&entity.Task{})
	return res.RowsAffected, res.Error
}
