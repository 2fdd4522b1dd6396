package validation

import (
	"opdash/internal/config"
	"opdash/internal/domain"
)

// WorkedUnitsRequiredMessage is shown when a status change is attempted on a
// task with no worked units.
const WorkedUnitsRequiredMessage = "must enter worked units before changing status"

// TaskValidator provides validation for Task-related operations
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator: NewValidator(),
	}
}

// NewTaskValidatorWithConfig creates a task validator honouring configured limits
func NewTaskValidatorWithConfig(cfg *config.Config) *TaskValidator {
	return &TaskValidator{
		validator: NewValidatorWithConfig(cfg),
	}
}

// ValidateTaskInput checks the fields collected by the task form. Only
// presence and structural shape are checked; lifecycle rules are not
// applied on this path.
func (tv *TaskValidator) ValidateTaskInput(task domain.Task) error {
	validationError := NewValidationError()

	if !tv.validator.IsNonEmptyString(task.Name) {
		validationError.AddRequiredError("name")
	} else if !tv.validator.IsValidNameLength(task.Name) {
		validationError.AddInvalidLengthError("name", task.Name, tv.validator.MaxNameLength())
	}

	if !tv.validator.IsNonEmptyString(task.Owner) {
		validationError.AddRequiredError("owner")
	}

	if !tv.validator.IsNonNegative(task.AssignedCount) {
		validationError.AddInvalidValueError("assigned_count", task.AssignedCount, "must not be negative")
	}
	if !tv.validator.IsNonNegative(task.WorkedCount) {
		validationError.AddInvalidValueError("worked_count", task.WorkedCount, "must not be negative")
	}

	if task.Country == "" {
		validationError.AddRequiredError("country")
	} else if !task.Country.IsValid() {
		validationError.AddInvalidValueError("country", task.Country, "unknown country")
	}

	if task.Priority == "" {
		validationError.AddRequiredError("priority")
	} else if !task.Priority.IsValid() {
		validationError.AddInvalidValueError("priority", task.Priority, "unknown priority")
	}

	if task.Status == "" {
		validationError.AddRequiredError("status")
	} else if !task.Status.IsValid() {
		validationError.AddInvalidValueError("status", task.Status, "unknown status")
	}

	tv.validateDate(validationError, "start_date", task.StartDate)
	tv.validateDate(validationError, "due_date", task.DueDate)

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

func (tv *TaskValidator) validateDate(ve *ValidationError, field, value string) {
	if !tv.validator.IsNonEmptyString(value) {
		ve.AddRequiredError(field)
		return
	}
	if !tv.validator.IsValidDate(value) {
		ve.AddInvalidFormatError(field, value, DateLayout)
	}
}

// ValidateStatusChange enforces that a task must have worked units before
// it leaves Pending.
func (tv *TaskValidator) ValidateStatusChange(task domain.Task, newStatus domain.Status) error {
	validationError := NewValidationError()

	if !newStatus.IsValid() {
		validationError.AddInvalidValueError("status", newStatus, "unknown status")
		return validationError
	}

	if newStatus != domain.StatusPending && task.WorkedCount <= 0 {
		validationError.AddInvalidStateError("worked_count", task.WorkedCount, WorkedUnitsRequiredMessage)
		return validationError
	}

	return nil
}

// ValidateTaskID validates a task identifier supplied by a caller
func (tv *TaskValidator) ValidateTaskID(id string) error {
	if !tv.validator.IsNonEmptyString(id) {
		validationError := NewValidationError()
		validationError.AddRequiredError("task_id")
		return validationError
	}
	return nil
}
