package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceOrRef_UnmarshalJSON(t *testing.T) {
	t.Run("string becomes reference", func(t *testing.T) {
		var p PlaceOrRef
		require.NoError(t, json.Unmarshal([]byte(`"cristo-rey"`), &p))
		assert.True(t, p.IsRef())
		assert.Equal(t, "cristo-rey", p.Ref)
		assert.Nil(t, p.Place)
	})

	t.Run("object becomes embedded place", func(t *testing.T) {
		raw := `{"key":"cristo-rey","name":"Cristo Rey","type":"tourism","location":{"lat":3.4372,"lng":-76.5635}}`
		var p PlaceOrRef
		require.NoError(t, json.Unmarshal([]byte(raw), &p))
		assert.False(t, p.IsRef())
		require.NotNil(t, p.Place)
		assert.Equal(t, "Cristo Rey", p.Place.Name)
		assert.Empty(t, p.Ref)
	})

	t.Run("malformed object errors", func(t *testing.T) {
		var p PlaceOrRef
		assert.Error(t, json.Unmarshal([]byte(`{"key":`), &p))
	})
}

func TestPlaceOrRef_MarshalJSON(t *testing.T) {
	t.Run("reference marshals to string", func(t *testing.T) {
		out, err := json.Marshal(PlaceOrRef{Ref: "cristo-rey"})
		require.NoError(t, err)
		assert.JSONEq(t, `"cristo-rey"`, string(out))
	})

	t.Run("embedded place marshals to object", func(t *testing.T) {
		out, err := json.Marshal(PlaceOrRef{Place: &Place{Key: "x", Name: "X"}})
		require.NoError(t, err)
		assert.Contains(t, string(out), `"name":"X"`)
	})

	t.Run("round trip inside a travel plan", func(t *testing.T) {
		plan := TravelPlan{
			TotalDays: 1,
			Days: []Day{{
				DayNumber: 1,
				Title:     "Día 1",
				Activities: []Activity{
					{Time: "08:00", Category: "desayuno", Place: PlaceOrRef{Ref: "c1"}},
					{Time: "10:00", Category: "turismo", Place: PlaceOrRef{Place: &Place{Key: "t1", Name: "Museo"}}},
				},
			}},
		}

		raw, err := json.Marshal(plan)
		require.NoError(t, err)

		var decoded TravelPlan
		require.NoError(t, json.Unmarshal(raw, &decoded))
		require.Len(t, decoded.Days, 1)
		require.Len(t, decoded.Days[0].Activities, 2)
		assert.True(t, decoded.Days[0].Activities[0].Place.IsRef())
		assert.False(t, decoded.Days[0].Activities[1].Place.IsRef())
	})
}
