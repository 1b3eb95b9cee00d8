package pagination

import "testing"

func TestGetMeta(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		total      int64
		totalPages int
		hasNext    bool
		hasPrev    bool
	}{
		{"empty", 1, 20, 0, 0, false, false},
		{"single partial page", 1, 20, 5, 1, false, false},
		{"exact boundary", 1, 20, 40, 2, true, false},
		{"middle page", 2, 10, 35, 4, true, true},
		{"last page", 4, 10, 35, 4, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := GetMeta(&Params{Page: tt.page, Limit: tt.limit}, tt.total)
			if meta.TotalPages != tt.totalPages {
				t.Errorf("TotalPages = %d, want %d", meta.TotalPages, tt.totalPages)
			}
			if meta.HasNext != tt.hasNext || meta.HasPrev != tt.hasPrev {
				t.Errorf("HasNext/HasPrev = %v/%v, want %v/%v",
					meta.HasNext, meta.HasPrev, tt.hasNext, tt.hasPrev)
			}
		})
	}
}
