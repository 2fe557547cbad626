package codec

import (
	"strings"
	"testing"
)

func TestLoadCoefficientsCSV(t *testing.T) {
	csv := "# comment\n1,2,3\n4;5;6\n  7 , 8 , 9  \n\n-1,-2,-3\n"
	table, err := LoadCoefficientsCSV(strings.NewReader(csv), 2, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.Len() != 4 {
		t.Fatalf("want 4 rows, got %d", table.Len())
	}
	want := [][]int32{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}, {-1, -2, -3}}
	for i, row := range want {
		got := table.Row(i)
		for j := range row {
			if got[j] != row[j] {
				t.Errorf("row %d col %d = %d, want %d", i, j, got[j], row[j])
			}
		}
	}
}

func TestLoadCoefficientsCSVWrongRowCount(t *testing.T) {
	csv := "1,2,3\n4,5,6\n"
	_, err := LoadCoefficientsCSV(strings.NewReader(csv), 2, 1)
	if err == nil {
		t.Fatal("expected InvalidCoefficients error")
	}
	if err.Kind != InvalidCoefficients {
		t.Errorf("got kind %v, want InvalidCoefficients", err.Kind)
	}
}

func TestLoadCoefficientsCSVBadColumnCount(t *testing.T) {
	csv := "1,2\n3,4\n"
	_, err := LoadCoefficientsCSV(strings.NewReader(csv), 1, 1)
	if err == nil {
		t.Fatal("expected error for wrong column count")
	}
}

func TestLoadCoefficientsCSVNonInteger(t *testing.T) {
	csv := "1,x,3\n4,5,6\n"
	_, err := LoadCoefficientsCSV(strings.NewReader(csv), 1, 1)
	if err == nil {
		t.Fatal("expected error for non-integer cell")
	}
}

func TestLoadCoefficientsCSVFunType5(t *testing.T) {
	csv := "1,2,3,4\n5,6,7,8\n"
	table, err := LoadCoefficientsCSV(strings.NewReader(csv), 1, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.Len() != 2 {
		t.Fatalf("want 2 rows, got %d", table.Len())
	}
	if len(table.Row(0)) != 4 {
		t.Fatalf("want 4 columns, got %d", len(table.Row(0)))
	}
}
