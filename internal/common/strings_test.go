package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExported(t *testing.T) {
	tests := []struct {
		in, expected string
	}{
		{"name", "Name"},
		{"Name", "Name"},
		{"createdAt", "CreatedAt"},
		{"_hidden", "_hidden"},
		{"été", "Été"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, Exported(tt.in))
		})
	}
}

func TestPkgAlias(t *testing.T) {
	assert.Equal(t, "warehouse", PkgAlias("view-binder/warehouse"))
	assert.Empty(t, PkgAlias(""))
}
