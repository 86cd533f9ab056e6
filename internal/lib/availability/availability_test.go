package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinhyan/elite-fitness/internal/models"
)

func catalog(ids ...string) []models.Class {
	result := make([]models.Class, 0, len(ids))
	for _, id := range ids {
		result = append(result, models.Class{ClassID: id, Price: 25})
	}
	return result
}

func cart(username string, ids ...string) []models.CartLine {
	result := make([]models.CartLine, 0, len(ids))
	for _, id := range ids {
		result = append(result, models.CartLine{Username: username, ClassID: id, PriceAtAdd: 25})
	}
	return result
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		catalog []models.Class
		lines   []models.CartLine
		want    []string
		wantErr error
	}{
		{
			name:    "empty cart returns full catalog",
			catalog: catalog("CF001", "KB002", "PL003", "YG004"),
			lines:   nil,
			want:    []string{"CF001", "KB002", "PL003", "YG004"},
		},
		{
			name:    "booked classes excluded",
			catalog: catalog("CF001", "KB002", "PL003", "YG004"),
			lines:   cart("alice", "KB002", "YG004"),
			want:    []string{"CF001", "PL003"},
		},
		{
			name:    "single booked class excluded",
			catalog: catalog("CF001"),
			lines:   cart("alice", "CF001"),
			wantErr: ErrExhausted,
		},
		{
			name:    "empty catalog regardless of cart",
			catalog: nil,
			lines:   cart("alice", "CF001"),
			wantErr: ErrCatalogEmpty,
		},
		{
			name:    "empty catalog and empty cart",
			catalog: nil,
			lines:   nil,
			wantErr: ErrCatalogEmpty,
		},
		{
			name:    "all classes booked",
			catalog: catalog("CF001", "KB002"),
			lines:   cart("alice", "CF001", "KB002"),
			wantErr: ErrExhausted,
		},
		{
			name:    "cart lines outside catalog are ignored",
			catalog: catalog("CF001", "KB002"),
			lines:   cart("alice", "XX999"),
			want:    []string{"CF001", "KB002"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.catalog, tt.lines)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			ids := make([]string, 0, len(got))
			for _, c := range got {
				ids = append(ids, c.ClassID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

// Разность каталога и корзины: |result| + |S ∩ C| = |C| при S ⊆ C.
func TestResolve_SetDifferenceProperty(t *testing.T) {
	full := catalog("CF001", "KB002", "PL003", "YG004")

	subsets := [][]string{
		{},
		{"CF001"},
		{"KB002", "YG004"},
		{"CF001", "KB002", "PL003"},
	}

	for _, subset := range subsets {
		lines := cart("alice", subset...)
		got, err := Resolve(full, lines)
		require.NoError(t, err)
		assert.Equal(t, len(full), len(got)+len(subset))

		booked := make(map[string]struct{}, len(subset))
		for _, id := range subset {
			booked[id] = struct{}{}
		}
		for _, c := range got {
			_, ok := booked[c.ClassID]
			assert.False(t, ok, "class %s should have been excluded", c.ClassID)
		}
	}
}

func TestResolve_PreservesCatalogOrder(t *testing.T) {
	full := catalog("YG004", "CF001", "PL003", "KB002")

	got, err := Resolve(full, cart("alice", "PL003"))
	require.NoError(t, err)

	ids := make([]string, 0, len(got))
	for _, c := range got {
		ids = append(ids, c.ClassID)
	}
	assert.Equal(t, []string{"YG004", "CF001", "KB002"}, ids)
}
