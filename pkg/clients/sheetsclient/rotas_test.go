package sheetsclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRota() *PublishedRota {
	return &PublishedRota{
		RunID:  "run-1",
		Title:  "Rota Mon Sep 01 2025 - Tue Sep 02 2025",
		Shifts: []string{"regular_weekday", "night_weekday"},
		Rows: []PublishedRotaRow{
			{Day: 1, Date: "Mon Sep 01 2025", Interns: []string{"Intern 1", "Intern 2"}},
			{Day: 2, Date: "Tue Sep 02 2025", Interns: []string{"Intern 3"}},
		},
	}
}

func TestBuildRotaValues_NewTab(t *testing.T) {
	values := buildRotaValues(testRota(), nil)

	require.Len(t, values, 5)
	assert.Empty(t, values[0])
	assert.Empty(t, values[1])
	assert.Equal(t, []interface{}{"Day", "Date", "regular_weekday", "night_weekday"}, values[2])
	assert.Equal(t, []interface{}{1, "Mon Sep 01 2025", "Intern 1", "Intern 2"}, values[3])
	assert.Equal(t, []interface{}{2, "Tue Sep 02 2025", "Intern 3", ""}, values[4])
}

func TestBuildRotaValues_PreservesExtraColumns(t *testing.T) {
	existing := [][]interface{}{
		{},
		{},
		{"Day", "Date", "regular_weekday", "night_weekday", "Notes"},
		{"1", "Mon Sep 01 2025", "Intern 9", "Intern 8", "swap agreed"},
		{"2", "Tue Sep 02 2025", "Intern 7", "Intern 6"},
	}

	values := buildRotaValues(testRota(), existing)

	require.Len(t, values, 5)
	assert.Equal(t, []interface{}{"Day", "Date", "regular_weekday", "night_weekday", "Notes"}, values[2])
	assert.Equal(t, []interface{}{1, "Mon Sep 01 2025", "Intern 1", "Intern 2", "swap agreed"}, values[3])
	assert.Equal(t, []interface{}{2, "Tue Sep 02 2025", "Intern 3", ""}, values[4])
}

func TestExtraCells(t *testing.T) {
	existing := [][]interface{}{{"a", "b", "c"}}

	assert.Equal(t, []interface{}{"c"}, extraCells(existing, 0, 2))
	assert.Nil(t, extraCells(existing, 0, 3))
	assert.Nil(t, extraCells(existing, 5, 1))
}
