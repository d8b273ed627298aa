package rest

import "encoding/json"

type SignupIn struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginIn struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateTaskIn struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	To          StringList `json:"to"`
}

type UpdateTaskIn struct {
	TaskID      int64   `json:"taskId"`
	Status      *string `json:"status,omitempty"`
	Progress    *int    `json:"progress,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	Desc        *string `json:"desc,omitempty"`
	Description *string `json:"description,omitempty"` // alias for desc
	AssignedTo  *string `json:"assignedTo,omitempty"`  // email of an assignee to append
}

// DescriptionPatch returns the supplied description, under either body key.
// The update body historically abbreviates the field to "desc".
func (in UpdateTaskIn) DescriptionPatch() *string {
	if in.Desc != nil {
		return in.Desc
	}
	return in.Description
}

// StringList accepts either a JSON array of strings or a bare string; the
// task creation body historically carried a single assignee email.
type StringList []string

func (l *StringList) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '[' {
		return json.Unmarshal(b, (*[]string)(l))
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*l = StringList{s}
	return nil
}
