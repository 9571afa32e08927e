package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/fixitfast/adminseed/internal/admin"
)

func sampleAccounts() []admin.Account {
	created := time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)
	return []admin.Account{
		{
			Name: "Chennai Admin", Username: "chennai_chennai_admin",
			Email: "chennai_chennai_admin@fixitfast.gov.in", PasswordHash: "$2a$12$hash",
			PlainPassword: "Secret@123", City: "Chennai", District: "Chennai",
			State: "Tamil Nadu", Pincode: "600001", CreatedAt: created, UpdatedAt: created,
		},
		{
			Name: "Madurai Admin", Username: "madurai_madurai_admin",
			Email: "madurai_madurai_admin@fixitfast.gov.in", PasswordHash: "$2a$12$hash",
			PlainPassword: "Secret@123", City: "Madurai", District: "Madurai",
			State: "Tamil Nadu", Pincode: "625001", CreatedAt: created, UpdatedAt: created,
		},
	}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admins.csv")
	require.NoError(t, WriteCSV(path, sampleAccounts()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	require.Equal(t, admin.ExportColumns, rows[0])
	require.Equal(t, "Chennai", rows[1][0])
	require.Equal(t, "chennai_chennai_admin@fixitfast.gov.in", rows[1][4])
	require.Equal(t, "Secret@123", rows[1][5], "export must carry the one-time plaintext")
	require.Equal(t, "2026-09-01 10:30:00", rows[1][10])
}

func TestWriteCSVFailsOnBadPath(t *testing.T) {
	err := WriteCSV(filepath.Join(t.TempDir(), "missing", "admins.csv"), sampleAccounts())
	require.Error(t, err)
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admins.xlsx")
	require.NoError(t, WriteXLSX(path, sampleAccounts()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	require.Contains(t, f.GetSheetList(), SheetName)

	header, err := f.GetCellValue(SheetName, "A1")
	require.NoError(t, err)
	require.Equal(t, "City", header)

	password, err := f.GetCellValue(SheetName, "F2")
	require.NoError(t, err)
	require.Equal(t, "Secret@123", password)

	city, err := f.GetCellValue(SheetName, "A3")
	require.NoError(t, err)
	require.Equal(t, "Madurai", city)
}
