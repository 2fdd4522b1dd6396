package cli

import (
	"opdash/internal/domain"
	"opdash/internal/errors"
)

// TaskForm holds the task fields given on the command line. A nil field was
// not given and keeps its current value.
type TaskForm struct {
	Name      *string
	Owner     *string
	Assigned  *int
	Worked    *int
	Country   *string
	Priority  *string
	StartDate *string
	DueDate   *string
	Status    *string
}

// Apply copies the given fields onto task, parsing enum values
func (f TaskForm) Apply(task domain.Task) (domain.Task, error) {
	if f.Name != nil {
		task.Name = *f.Name
	}
	if f.Owner != nil {
		task.Owner = *f.Owner
	}
	if f.Assigned != nil {
		task.AssignedCount = *f.Assigned
	}
	if f.Worked != nil {
		task.WorkedCount = *f.Worked
	}
	if f.Country != nil {
		country, err := domain.ParseCountry(*f.Country)
		if err != nil {
			return task, errors.NewInvalidInputError("country", *f.Country, "must be SV, GT, CR or Reg")
		}
		task.Country = country
	}
	if f.Priority != nil {
		priority, err := domain.ParsePriority(*f.Priority)
		if err != nil {
			return task, errors.NewInvalidInputError("priority", *f.Priority, "must be Alta, Media or Baja")
		}
		task.Priority = priority
	}
	if f.StartDate != nil {
		task.StartDate = *f.StartDate
	}
	if f.DueDate != nil {
		task.DueDate = *f.DueDate
	}
	if f.Status != nil {
		status, err := domain.ParseStatus(*f.Status)
		if err != nil {
			return task, errors.NewInvalidInputError("status", *f.Status, "must be Pendiente, En Proceso or Terminado")
		}
		task.Status = status
	}
	return task, nil
}

// IsEmpty reports whether no field was given
func (f TaskForm) IsEmpty() bool {
	return f.Name == nil && f.Owner == nil && f.Assigned == nil && f.Worked == nil &&
		f.Country == nil && f.Priority == nil && f.StartDate == nil && f.DueDate == nil && f.Status == nil
}
