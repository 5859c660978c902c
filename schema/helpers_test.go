package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanField(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		// Basic cases
		{"Booster Pack", "Booster Pack"}, // already clean
		{"  Dice Set  ", "Dice Set"},     // leading/trailing spaces
		{"Main   Warehouse", "Main Warehouse"}, // inner run of spaces
		{"Online\t", "Online"},           // trailing tab
		{" ", ""},                   // NBSP counts as whitespace and collapses away

		// BOM handling
		{"\uFEFFitem_name", "item_name"}, // UTF-8 BOM from Excel exports

		// Mixed whitespace
		{" Card  Sleeves \n", "Card Sleeves"},
		{"\tPlaymat\tXL\t", "Playmat XL"},

		// Unicode contents survive
		{"Jeu de Société", "Jeu de Société"},
		{"棋盘游戏", "棋盘游戏"},

		// Empty
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanField(tt.name))
		})
	}
}

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Units_Sold", "units_sold"},
		{" Item_Name ", "item_name"},
		{"\uFEFFDate", "date"},
		{"LOCATION", "location"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeHeader(tt.name))
		})
	}
}

func TestFormatUnits(t *testing.T) {
	tests := []struct {
		name  string
		units float64
		prec  int
		want  string
	}{
		{"whole number", 10, 2, "10"},
		{"half unit", 10.5, 2, "10.5"},
		{"rounds at precision", 10.456, 2, "10.46"},
		{"zero", 0, 2, "0"},
		{"precision zero", 9.7, 0, "10"},
		{"negative precision treated as zero", 9.7, -3, "10"},
		{"trailing zeros trimmed", 3.10, 2, "3.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatUnits(tt.units, tt.prec))
		})
	}
}
