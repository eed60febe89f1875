package entity

import "strconv"

type Task struct {
	ID        int    `json:"id" validate:"required,gt=0"`
	ProjectID int    `json:"projectId" validate:"required,gt=0"`
	Title     string `json:"title" validate:"required"`
	Status    string `json:"status,omitempty"`
	CreatedAt string `json:"createdAt" validate:"required"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

func (t *Task) RecordID() int        { return t.ID }
func (t *Task) CreatedAtISO() string { return t.CreatedAt }
func (t *Task) Touch(iso string)     { t.UpdatedAt = iso }

func (t *Task) LookupFields() map[string]string {
	return map[string]string{"projectId": strconv.Itoa(t.ProjectID)}
}
