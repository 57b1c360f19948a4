// file: internals/features/lessons/families/service/membership_test.go
package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "tutorku_backend/internals/features/lessons/families/model"
)

func mkFamily(t *testing.T, parent string, studentIDs ...uuid.UUID) model.Family {
	t.Helper()
	students := make([]model.FamilyStudent, 0, len(studentIDs))
	for _, id := range studentIDs {
		students = append(students, model.FamilyStudent{ID: id})
	}
	f := model.Family{
		FamilyID:         uuid.New(),
		FamilyParentName: parent,
	}
	require.NoError(t, f.SetStudents(students))
	return f
}

func TestFindStudentFamily(t *testing.T) {
	s1 := uuid.New()
	s2 := uuid.New()
	stranger := uuid.New()

	f1 := mkFamily(t, "Brown", s1)
	f2 := mkFamily(t, "Patel", s2)
	families := []model.Family{f1, f2}

	got := FindStudentFamily(families, s1)
	require.NotNil(t, got)
	assert.Equal(t, f1.FamilyID, got.FamilyID)

	got = FindStudentFamily(families, s2)
	require.NotNil(t, got)
	assert.Equal(t, f2.FamilyID, got.FamilyID)

	assert.Nil(t, FindStudentFamily(families, stranger))
	assert.Nil(t, FindStudentFamily(nil, s1))
}

func TestFindStudentFamily_FirstMatchAfterSort(t *testing.T) {
	// a student listed in two families resolves to the family with the
	// smaller id, regardless of slice order
	shared := uuid.New()
	a := mkFamily(t, "A", shared)
	b := mkFamily(t, "B", shared)

	families := []model.Family{b, a}
	SortFamilies(families)

	want := a.FamilyID
	if b.FamilyID.String() < a.FamilyID.String() {
		want = b.FamilyID
	}

	got := FindStudentFamily(families, shared)
	require.NotNil(t, got)
	assert.Equal(t, want, got.FamilyID)
}

func TestSortFamilies_Deterministic(t *testing.T) {
	families := []model.Family{
		mkFamily(t, "C"), mkFamily(t, "A"), mkFamily(t, "B"),
	}
	shuffled := []model.Family{families[2], families[0], families[1]}

	SortFamilies(families)
	SortFamilies(shuffled)

	require.Len(t, shuffled, 3)
	for i := range families {
		assert.Equal(t, families[i].FamilyID, shuffled[i].FamilyID)
	}
}
