// file: internals/features/lessons/families/dto/family_dto.go
package dto

import (
	"github.com/google/uuid"

	model "tutorku_backend/internals/features/lessons/families/model"
)

type FamilyStudentPayload struct {
	ID   uuid.UUID `json:"id"   validate:"required"`
	Name string    `json:"name"`
}

type CreateFamilyRequest struct {
	FamilyParentName  string                 `json:"family_parent_name"  validate:"required"`
	FamilyParentEmail string                 `json:"family_parent_email" validate:"required,email"`
	FamilyStudents    []FamilyStudentPayload `json:"family_students"     validate:"dive"`
}

func (r *CreateFamilyRequest) ToModel() (*model.Family, error) {
	f := &model.Family{
		FamilyParentName:  r.FamilyParentName,
		FamilyParentEmail: r.FamilyParentEmail,
	}
	students := make([]model.FamilyStudent, 0, len(r.FamilyStudents))
	for _, s := range r.FamilyStudents {
		students = append(students, model.FamilyStudent{ID: s.ID, Name: s.Name})
	}
	if err := f.SetStudents(students); err != nil {
		return nil, err
	}
	return f, nil
}

type UpdateFamilyRequest struct {
	FamilyParentName  *string                 `json:"family_parent_name"`
	FamilyParentEmail *string                 `json:"family_parent_email" validate:"omitempty,email"`
	FamilyStudents    *[]FamilyStudentPayload `json:"family_students"     validate:"omitempty,dive"`
}

func (r *UpdateFamilyRequest) ApplyTo(f *model.Family) error {
	if r.FamilyParentName != nil {
		f.FamilyParentName = *r.FamilyParentName
	}
	if r.FamilyParentEmail != nil {
		f.FamilyParentEmail = *r.FamilyParentEmail
	}
	if r.FamilyStudents != nil {
		students := make([]model.FamilyStudent, 0, len(*r.FamilyStudents))
		for _, s := range *r.FamilyStudents {
			students = append(students, model.FamilyStudent{ID: s.ID, Name: s.Name})
		}
		if err := f.SetStudents(students); err != nil {
			return err
		}
	}
	return nil
}

type FamilyResponse struct {
	FamilyID          uuid.UUID             `json:"family_id"`
	FamilyParentName  string                `json:"family_parent_name"`
	FamilyParentEmail string                `json:"family_parent_email"`
	FamilyStudents    []model.FamilyStudent `json:"family_students"`
}

func FromModelFamily(f *model.Family) (*FamilyResponse, error) {
	students, err := f.Students()
	if err != nil {
		return nil, err
	}
	return &FamilyResponse{
		FamilyID:          f.FamilyID,
		FamilyParentName:  f.FamilyParentName,
		FamilyParentEmail: f.FamilyParentEmail,
		FamilyStudents:    students,
	}, nil
}
