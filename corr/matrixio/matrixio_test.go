package matrixio

import (
	"strings"
	"testing"
)

func TestLoadJSON(t *testing.T) {
	r := strings.NewReader(`[[1,2],[3,4]]`)
	m, err := LoadJSON(r)
	if err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	want := [][]byte{{1, 2}, {3, 4}}
	got := m.Rows()
	if len(got) != len(want) {
		t.Fatalf("rows = %v, want %v", got, want)
	}
	for i := range want {
		for j := range want[i] {
			if got[i][j] != want[i][j] {
				t.Errorf("cell [%d][%d] = %d, want %d", i, j, got[i][j], want[i][j])
			}
		}
	}
}

func TestLoadJSONRejectsOutOfRangeCell(t *testing.T) {
	r := strings.NewReader(`[[1,256]]`)
	if _, err := LoadJSON(r); err == nil {
		t.Error("expected an error for a cell outside 0-255, got nil")
	}
}

func TestLoadJSONRejectsMalformed(t *testing.T) {
	r := strings.NewReader(`not json`)
	if _, err := LoadJSON(r); err == nil {
		t.Error("expected a decode error for malformed JSON, got nil")
	}
}
