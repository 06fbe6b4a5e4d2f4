package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapAccessors(t *testing.T) {
	m := Map{"id": 1, "name": "chair"}

	v, ok := m.Get("name")
	assert.True(t, ok)
	assert.Equal(t, "chair", v)

	_, ok = m.Get("missing")
	assert.False(t, ok)

	m.Set("name", "table")
	v, _ = m.Get("name")
	assert.Equal(t, "table", v)

	// Fields is sorted for deterministic iteration
	assert.Equal(t, []string{"id", "name"}, m.Fields())
}

func TestMapClone(t *testing.T) {
	m := Map{"id": 1}
	c := m.Clone()
	c.Set("id", 2)

	v, _ := m.Get("id")
	assert.Equal(t, 1, v)
}

func TestCopyFields(t *testing.T) {
	tests := []struct {
		name string
		src  Map
		dst  Map
		want Map
	}{
		{
			name: "overwrites shared fields",
			src:  Map{"id": 2, "name": "new"},
			dst:  Map{"id": 1, "name": "old"},
			want: Map{"id": 2, "name": "new"},
		},
		{
			name: "source-only fields are not created",
			src:  Map{"id": 2, "extra": "x"},
			dst:  Map{"id": 1},
			want: Map{"id": 2},
		},
		{
			name: "destination-only fields are untouched",
			src:  Map{"id": 2},
			dst:  Map{"id": 1, "kept": "y"},
			want: Map{"id": 2, "kept": "y"},
		},
		{
			name: "explicit nil overwrites like any value",
			src:  Map{"id": 2, "name": nil},
			dst:  Map{"id": 1, "name": "old"},
			want: Map{"id": 2, "name": nil},
		},
		{
			name: "unset destination fields are still copy targets",
			src:  Map{"id": 2, "name": "new"},
			dst:  Map{"id": Unset, "name": Unset},
			want: Map{"id": 2, "name": "new"},
		},
		{
			name: "overwrite happens even when source value is nil",
			src:  Map{"name": nil},
			dst:  Map{"name": "old"},
			want: Map{"name": nil},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			CopyFields(tt.src, tt.dst)
			assert.Equal(t, tt.want, tt.dst)
		})
	}
}
