package inquiry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_AcceptsNameAndPhone(t *testing.T) {
	drafts := []Draft{
		{ClientName: "Jane Doe", ClientPhone: "0100000000"},
		{ClientName: " Jane ", ClientPhone: " 0100 ", Budget: "0"},
		// min > max não é checado
		{ClientName: "A", ClientPhone: "1", MinUnitArea: "500", MaxUnitArea: "100"},
		{ClientName: "A", ClientPhone: "1", Budget: "-10", Rooms: "abc", UnitType: "Castle"},
	}
	for _, d := range drafts {
		res := Validate(d)
		assert.True(t, res.Accepted, "draft %+v", d)
		assert.Empty(t, res.Missing)
		assert.NoError(t, res.Err())
	}
}

func TestValidate_RejectsMissingFields(t *testing.T) {
	cases := []struct {
		name    string
		draft   Draft
		missing []string
	}{
		{"both empty", Draft{}, []string{LabelClientName, LabelClientPhone}},
		{"name blank", Draft{ClientName: "   ", ClientPhone: "0100"}, []string{LabelClientName}},
		{"phone blank", Draft{ClientName: "Jane", ClientPhone: "\t"}, []string{LabelClientPhone}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Validate(tc.draft)
			assert.False(t, res.Accepted)
			assert.Equal(t, tc.missing, res.Missing)

			err := res.Err()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))

			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tc.missing, ve.Missing)
		})
	}
}
