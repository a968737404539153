// internal/service/task/task.go
package task

import (
	"context"
	"strings"
	"time"

	"crm-client/internal/domain/task"
	"crm-client/internal/pkg/calendar"
	xerrors "crm-client/internal/pkg/errors"
	"crm-client/internal/pkg/result"
	"crm-client/internal/query"
	"crm-client/internal/remotesync"
	"crm-client/internal/repository/memory"
	"crm-client/internal/validation"

	"go.uber.org/zap"
)

const resultKey = "task"

type TaskService struct {
	store  *memory.Collection[task.Task]
	syncer *remotesync.Syncer
	names  query.NameLookup
	now    func() time.Time
	logger *zap.Logger
}

// NewTaskService seeds the collection with initial. names resolves customer
// references at read and push time; now may be nil.
func NewTaskService(initial []task.Task, syncer *remotesync.Syncer, names query.NameLookup, now func() time.Time, logger *zap.Logger) *TaskService {
	if now == nil {
		now = time.Now
	}
	return &TaskService{
		store:  memory.NewCollection("task", initial),
		syncer: syncer,
		names:  names,
		now:    now,
		logger: logger,
	}
}

func (s *TaskService) today() calendar.Date {
	return calendar.Of(s.now())
}

// Add creates a task. Priority defaults to Medium and status to Pending.
func (s *TaskService) Add(ctx context.Context, req task.CreateTaskRequest, connected bool) result.Result[task.Task] {
	due, err := calendar.Parse(req.DueDate)
	if err != nil {
		return result.Fail[task.Task](resultKey, xerrors.Wrap(xerrors.ErrInvalidInput, "dueDate"))
	}

	t, err := s.store.Insert(func(id int64) (task.Task, error) {
		priority := req.Priority
		if priority == "" {
			priority = task.PriorityMedium
		}
		status := req.Status
		if status == "" {
			status = task.StatusPending
		}
		return task.Task{
			ID:              id,
			Title:           strings.TrimSpace(req.Title),
			Description:     req.Description,
			CustomerID:      req.CustomerID,
			AssignedTo:      req.AssignedTo,
			AssignedToEmail: req.AssignedToEmail,
			Priority:        priority,
			Status:          status,
			DueDate:         due,
			Created:         s.today(),
			Tags:            validation.ParseTags(req.Tags),
		}, nil
	})
	if err != nil {
		s.logger.Error("failed to add task", zap.Error(err))
		return result.Fail[task.Task](resultKey, err)
	}

	s.logger.Info("task added",
		zap.Int64("task_id", t.ID),
		zap.String("assigned_to", t.AssignedTo),
	)

	s.push(ctx, remotesync.Mutation{
		Resource: resultKey,
		Op:       remotesync.OpCreate,
		Path:     remotesync.PathTasks,
		Body:     remotesync.NewTaskPayload(t, s.names.Resolve(t.CustomerID), false),
	}, connected)

	return result.OK(resultKey, t)
}

// Update merges the non-nil fields of req into the task.
func (s *TaskService) Update(ctx context.Context, id int64, req task.UpdateTaskRequest, connected bool) result.Result[task.Task] {
	t, err := s.store.Update(id, func(t *task.Task) error {
		return applyUpdate(t, req)
	})
	if err != nil {
		s.logger.Warn("failed to update task", zap.Int64("task_id", id), zap.Error(err))
		return result.Fail[task.Task](resultKey, err)
	}

	s.logger.Info("task updated", zap.Int64("task_id", id))

	s.push(ctx, remotesync.Mutation{
		Resource: resultKey,
		Op:       remotesync.OpUpdate,
		Path:     remotesync.PathTasks,
		Body:     remotesync.NewTaskPayload(t, s.names.Resolve(t.CustomerID), true),
	}, connected)

	return result.OK(resultKey, t)
}

func applyUpdate(t *task.Task, req task.UpdateTaskRequest) error {
	if req.DueDate != nil {
		due, err := calendar.Parse(*req.DueDate)
		if err != nil {
			return xerrors.Wrap(xerrors.ErrInvalidInput, "dueDate")
		}
		t.DueDate = due
	}
	if req.Title != nil {
		t.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.ClearCustomer {
		t.CustomerID = nil
	} else if req.CustomerID != nil {
		id := *req.CustomerID
		t.CustomerID = &id
	}
	if req.AssignedTo != nil {
		t.AssignedTo = *req.AssignedTo
	}
	if req.AssignedToEmail != nil {
		t.AssignedToEmail = *req.AssignedToEmail
	}
	if req.Priority != nil {
		t.Priority = *req.Priority
	}
	if req.Status != nil {
		t.Status = *req.Status
	}
	if req.Tags != nil {
		t.Tags = validation.ParseTags(*req.Tags)
	}
	return nil
}

func (s *TaskService) Delete(ctx context.Context, id int64, connected bool) result.Result[task.Task] {
	t, err := s.store.Delete(id)
	if err != nil {
		s.logger.Warn("failed to delete task", zap.Int64("task_id", id), zap.Error(err))
		return result.Fail[task.Task](resultKey, err)
	}

	s.logger.Info("task deleted", zap.Int64("task_id", id))

	s.push(ctx, remotesync.DeleteByID(resultKey, remotesync.PathTasks, "taskId", id), connected)

	return result.OK(resultKey, t)
}

func (s *TaskService) UpdateStatus(ctx context.Context, id int64, status task.Status, connected bool) result.Result[struct{}] {
	if _, err := s.store.Update(id, func(t *task.Task) error {
		t.Status = status
		return nil
	}); err != nil {
		s.logger.Warn("failed to update task status", zap.Int64("task_id", id), zap.Error(err))
		return result.Fail[struct{}]("", err)
	}

	s.logger.Info("task status updated",
		zap.Int64("task_id", id),
		zap.String("status", string(status)),
	)

	s.push(ctx, remotesync.Mutation{
		Resource: resultKey,
		Op:       remotesync.OpUpdate,
		Path:     remotesync.PathTaskStatus,
		Body:     remotesync.TaskStatusPayload{ID: id, Status: string(status)},
	}, connected)

	return result.Done()
}

// Assign hands the task to a staff member. The email is only replaced when
// one is given.
func (s *TaskService) Assign(ctx context.Context, id int64, req task.AssignRequest, connected bool) result.Result[struct{}] {
	if _, err := s.store.Update(id, func(t *task.Task) error {
		t.AssignedTo = req.AssignedTo
		if req.AssignedToEmail != "" {
			t.AssignedToEmail = req.AssignedToEmail
		}
		return nil
	}); err != nil {
		s.logger.Warn("failed to assign task", zap.Int64("task_id", id), zap.Error(err))
		return result.Fail[struct{}]("", err)
	}

	s.logger.Info("task assigned",
		zap.Int64("task_id", id),
		zap.String("assigned_to", req.AssignedTo),
	)

	s.push(ctx, remotesync.Mutation{
		Resource: resultKey,
		Op:       remotesync.OpUpdate,
		Path:     remotesync.PathTaskAssign,
		Body:     remotesync.TaskAssignPayload{ID: id, AssignedTo: req.AssignedTo},
	}, connected)

	return result.Done()
}

// BulkUpdate applies one patch to every listed task. Unknown ids are skipped.
func (s *TaskService) BulkUpdate(ctx context.Context, req task.BulkUpdateRequest, connected bool) result.Result[struct{}] {
	wanted := make(map[int64]bool, len(req.TaskIDs))
	for _, id := range req.TaskIDs {
		wanted[id] = true
	}
	patch := req.Updates

	n := s.store.UpdateWhere(
		func(t task.Task) bool { return wanted[t.ID] },
		func(t *task.Task) {
			if patch.Status != nil {
				t.Status = *patch.Status
			}
			if patch.Priority != nil {
				t.Priority = *patch.Priority
			}
			if patch.AssignedTo != nil {
				t.AssignedTo = *patch.AssignedTo
			}
		},
	)

	s.logger.Info("tasks bulk updated",
		zap.Int("requested", len(req.TaskIDs)),
		zap.Int("updated", n),
	)

	s.push(ctx, remotesync.Mutation{
		Resource: resultKey,
		Op:       remotesync.OpUpdate,
		Path:     remotesync.PathTaskBulkUpdate,
		Body:     remotesync.TaskBulkPayload{TaskIDs: req.TaskIDs, Updates: patch},
	}, connected)

	return result.Done()
}

// RemoveByCustomer drops the tasks of a deleted customer. Local only.
func (s *TaskService) RemoveByCustomer(customerID int64) int {
	removed := s.store.DeleteWhere(func(t task.Task) bool { return t.BelongsTo(customerID) })
	if len(removed) > 0 {
		s.logger.Info("tasks removed with customer",
			zap.Int64("customer_id", customerID),
			zap.Int("count", len(removed)),
		)
	}
	return len(removed)
}

func (s *TaskService) Find(id int64) (task.Task, bool) {
	return s.store.Find(id)
}

// View returns one task with its customer name and urgency.
func (s *TaskService) View(id int64) (task.View, bool) {
	t, ok := s.store.Find(id)
	if !ok {
		return task.View{}, false
	}
	return query.ViewTask(t, s.names, s.today()), true
}

func (s *TaskService) List() []task.Task {
	return s.store.All()
}

func (s *TaskService) FindByCustomer(customerID int64) []task.Task {
	return s.store.Filter(func(t task.Task) bool { return t.BelongsTo(customerID) })
}

func (s *TaskService) FindByAssignee(assignee string) []task.Task {
	return s.store.Filter(func(t task.Task) bool { return t.AssignedTo == assignee })
}

func (s *TaskService) FilterByStatus(status task.Status) []task.Task {
	return s.store.Filter(func(t task.Task) bool { return t.Status == status })
}

func (s *TaskService) Overdue() []task.Task {
	today := s.today()
	return s.store.Filter(func(t task.Task) bool { return t.IsOverdue(today) })
}

// DueToday lists open tasks due today.
func (s *TaskService) DueToday() []task.Task {
	today := s.today()
	return s.store.Filter(func(t task.Task) bool {
		return t.IsDueOn(today) && t.Status != task.StatusCompleted
	})
}

func (s *TaskService) Stats() task.TaskStats {
	return query.TaskStats(s.store.All(), s.today())
}

// Filter returns the task board: matching tasks, sorted, with urgency.
func (s *TaskService) Filter(f query.TaskFilter) []task.View {
	return query.FilterTasks(s.store.All(), f, s.names, s.today())
}

func (s *TaskService) Urgency(t task.Task) task.UrgencyInfo {
	return query.Urgency(t, s.today())
}

func (s *TaskService) Today() calendar.Date {
	return s.today()
}

// LoadFromBackend replaces the local tasks with the backend's.
func (s *TaskService) LoadFromBackend(ctx context.Context) result.Result[[]task.Task] {
	if s.syncer == nil {
		return result.Fail[[]task.Task]("tasks", xerrors.ErrBackendUnavailable)
	}
	rows, err := s.syncer.LoadTasks(ctx)
	if err != nil {
		s.logger.Error("failed to load tasks", zap.Error(err))
		return result.Fail[[]task.Task]("tasks", err)
	}

	loaded := make([]task.Task, 0, len(rows))
	for _, row := range rows {
		loaded = append(loaded, row.ToTask())
	}
	s.store.Replace(loaded)

	s.logger.Info("tasks loaded", zap.Int("count", len(loaded)))
	return result.OK("tasks", loaded)
}

func (s *TaskService) push(ctx context.Context, m remotesync.Mutation, connected bool) {
	if s.syncer == nil {
		return
	}
	s.syncer.Push(ctx, m, connected)
}
