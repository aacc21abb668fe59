package student

import (
	"testing"

	"github.com/getmockd/roster/pkg/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() Form {
	return Form{
		FirstName:  "Ada",
		LastName:   "Lovelace",
		Email:      "ada@example.edu",
		Department: "Mathematics",
		GPA:        "97.5",
	}
}

func TestStudent_Field(t *testing.T) {
	t.Parallel()

	s := Student{ID: 7, FirstName: "Ada", LastName: "Lovelace", Email: "ada@x.edu", Department: "CS", GPA: 95}

	assert.Equal(t, int64(7), s.Field(FieldID))
	assert.Equal(t, "Ada", s.Field(FieldFirstName))
	assert.Equal(t, 95.0, s.Field(FieldGPA))
	assert.Nil(t, s.Field("nickname"))
	assert.Equal(t, "95", grid.Stringify(s.Field(FieldGPA)))
	assert.Equal(t, "7", grid.RowKey(s, 0))

	assert.Equal(t, NewStudent{FirstName: "Ada", LastName: "Lovelace", Email: "ada@x.edu", Department: "CS", GPA: 95}, s.Input())
	assert.Equal(t, "#7 Ada Lovelace <ada@x.edu>", s.String())
	assert.Len(t, s.Map(), 6)
}

func TestColumns(t *testing.T) {
	t.Parallel()

	keys := func(cols []grid.Column) []string {
		out := make([]string, len(cols))
		for i, c := range cols {
			out[i] = c.Key
			assert.True(t, c.Sortable && c.Filterable, c.Key)
			assert.True(t, IsField(c.Key), c.Key)
		}
		return out
	}
	assert.Equal(t, []string{"id", "firstName", "lastName", "email", "department", "gpa"}, keys(AllColumns))
	assert.Equal(t, []string{"email", "department", "gpa"}, keys(HonorColumns))
	assert.False(t, IsField("nickname"))
}

func TestForm_Valid(t *testing.T) {
	t.Parallel()

	f := validForm()
	f.FirstName = "  Ada "
	assert.Empty(t, f.Validate())

	s, err := f.Student()
	require.NoError(t, err)
	assert.Equal(t, NewStudent{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.edu", Department: "Mathematics", GPA: 97.5}, s)
}

func TestForm_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		field string
		value string
		want  string
	}{
		{"first name blank", FieldFirstName, "", MsgFirstNameRequired},
		{"first name spaces", FieldFirstName, "   ", MsgFirstNameRequired},
		{"last name blank", FieldLastName, "", MsgLastNameRequired},
		{"email blank", FieldEmail, "", MsgEmailRequired},
		{"email without at", FieldEmail, "ada.example.edu", MsgEmailInvalid},
		{"email with space", FieldEmail, "ada @example.edu", MsgEmailInvalid},
		{"email without domain", FieldEmail, "ada@", MsgEmailInvalid},
		{"department blank", FieldDepartment, "", MsgDepartmentRequired},
		{"gpa blank", FieldGPA, "", MsgGPARequired},
		{"gpa negative", FieldGPA, "-0.1", MsgGPARange},
		{"gpa too high", FieldGPA, "100.5", MsgGPARange},
		{"gpa text", FieldGPA, "abc", MsgGPANotNumber},
		{"gpa nan", FieldGPA, "NaN", MsgGPANotNumber},
		{"gpa inf", FieldGPA, "Inf", MsgGPANotNumber},
		{"gpa plus inf", FieldGPA, "+Inf", MsgGPANotNumber},
		{"gpa minus inf", FieldGPA, "-Inf", MsgGPANotNumber},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := validForm().With(tt.field, tt.value)

			errs := f.Validate()
			require.Len(t, errs, 1, errs)
			assert.Equal(t, tt.field, errs[0].Field)
			assert.Equal(t, tt.want, errs[0].Message)

			_, err := f.Student()
			var fieldErrs FieldErrors
			require.ErrorAs(t, err, &fieldErrs)
			assert.Equal(t, tt.want, fieldErrs.For(tt.field))
		})
	}
}

func TestForm_BoundaryGPA(t *testing.T) {
	t.Parallel()

	for _, gpa := range []string{"0", "100", "89.9"} {
		assert.Empty(t, validForm().With(FieldGPA, gpa).Validate(), gpa)
	}
}

func TestForm_AllBlankInFormOrder(t *testing.T) {
	t.Parallel()

	errs := Form{}.Validate()
	assert.Equal(t, FieldErrors{
		{Field: FieldFirstName, Message: MsgFirstNameRequired},
		{Field: FieldLastName, Message: MsgLastNameRequired},
		{Field: FieldEmail, Message: MsgEmailRequired},
		{Field: FieldDepartment, Message: MsgDepartmentRequired},
		{Field: FieldGPA, Message: MsgGPARequired},
	}, errs)
	assert.Contains(t, errs.Error(), "Email is required")
}

func TestForm_ValidateField(t *testing.T) {
	t.Parallel()

	f := Form{Email: "nope"}
	require.EqualError(t, f.ValidateField(FieldEmail), MsgEmailInvalid)
	require.EqualError(t, f.ValidateField(FieldFirstName), MsgFirstNameRequired)
	assert.NoError(t, validForm().ValidateField(FieldGPA))
}

func TestFormFrom(t *testing.T) {
	t.Parallel()

	f := FormFrom(NewStudent{FirstName: "A", LastName: "B", Email: "a@b", Department: "CS", GPA: 90})
	assert.Equal(t, "90", f.GPA)
	assert.Equal(t, "a@b", f.Value(FieldEmail))
	assert.Equal(t, "", f.Value("nickname"))
	assert.Empty(t, f.Validate())
}
