package gitea

import (
	"errors"
	"testing"
)

// TestFetchAll тестирует накопление страниц и условия остановки
func TestFetchAll(t *testing.T) {
	tests := []struct {
		name          string
		pages         [][]int
		limit         int
		maxPages      int
		wantItems     int
		wantTruncated bool
		wantFetches   int
	}{
		{
			name:        "single short page",
			pages:       [][]int{{1, 2, 3}},
			limit:       5,
			maxPages:    10,
			wantItems:   3,
			wantFetches: 1,
		},
		{
			name:        "full page then short page",
			pages:       [][]int{{1, 2, 3, 4, 5}, {6, 7}},
			limit:       5,
			maxPages:    10,
			wantItems:   7,
			wantFetches: 2,
		},
		{
			name:        "full page then empty page",
			pages:       [][]int{{1, 2, 3, 4, 5}, {}},
			limit:       5,
			maxPages:    10,
			wantItems:   5,
			wantFetches: 2,
		},
		{
			name:        "empty first page",
			pages:       [][]int{{}},
			limit:       5,
			maxPages:    10,
			wantItems:   0,
			wantFetches: 1,
		},
		{
			name:          "ceiling reached",
			pages:         [][]int{{1, 2}, {3, 4}, {5, 6}, {7, 8}},
			limit:         2,
			maxPages:      3,
			wantItems:     6,
			wantTruncated: true,
			wantFetches:   3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetches := 0
			fetch := func(page, limit int) ([]int, error) {
				fetches++
				if page > len(tt.pages) {
					return nil, nil
				}
				return tt.pages[page-1], nil
			}

			items, truncated, err := fetchAll(fetch, tt.limit, tt.maxPages)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(items) != tt.wantItems {
				t.Errorf("Expected %d items, got %d", tt.wantItems, len(items))
			}
			if truncated != tt.wantTruncated {
				t.Errorf("Expected truncated=%v, got %v", tt.wantTruncated, truncated)
			}
			if fetches != tt.wantFetches {
				t.Errorf("Expected %d fetches, got %d", tt.wantFetches, fetches)
			}
		})
	}
}

// TestFetchAllError тестирует остановку при ошибке страницы
func TestFetchAllError(t *testing.T) {
	pageErr := errors.New("boom")
	fetch := func(page, limit int) ([]int, error) {
		if page == 2 {
			return nil, pageErr
		}
		return []int{1, 2}, nil
	}

	items, truncated, err := fetchAll(fetch, 2, 10)
	if !errors.Is(err, pageErr) {
		t.Fatalf("Expected page error, got %v", err)
	}
	if items != nil {
		t.Errorf("Expected nil items on error, got %v", items)
	}
	if truncated {
		t.Error("Expected truncated=false on error")
	}
}

// TestFetchAllPageNumbering тестирует нумерацию страниц с единицы
func TestFetchAllPageNumbering(t *testing.T) {
	var seenPages []int
	fetch := func(page, limit int) ([]int, error) {
		seenPages = append(seenPages, page)
		if page < 3 {
			return []int{1, 2}, nil
		}
		return nil, nil
	}

	if _, _, err := fetchAll(fetch, 2, 10); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	want := []int{1, 2, 3}
	if len(seenPages) != len(want) {
		t.Fatalf("Expected pages %v, got %v", want, seenPages)
	}
	for i := range want {
		if seenPages[i] != want[i] {
			t.Errorf("Expected page %d at position %d, got %d", want[i], i, seenPages[i])
		}
	}
}
