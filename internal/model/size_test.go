package model_test

import (
	"testing"

	"github.com/handiism/mint-backgrounds/internal/model"
	"github.com/m-mizutani/gt"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		token string
		want  int64
	}{
		{"16.5M", 17301504},
		{"13M", 13631488},
		{"512K", 524288},
		{"2K", 2048},
		{"1.5K", 1536},
		{"0.3K", 307},
		{"1G", 1073741824},
		{" 16M ", 16777216},
		{"", 0},
		{"-", 0},
		{"16.5", 0},
		{"M", 0},
		{"16.5MB", 0},
		{"16,5M", 0},
		{"abc", 0},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			gt.Equal(t, model.ParseSize(tt.token), tt.want)
		})
	}
}

func TestSizeFilter_Accept(t *testing.T) {
	f := model.NewSizeFilter(model.DefaultMinSizeBytes)

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{"exactly threshold", "13M", true},
		{"above threshold", "16.5M", true},
		{"kilobyte exactly threshold", "13312K", true},
		{"one byte below threshold", "13311.9990234375K", false},
		{"just below in megabytes", "12.9M", false},
		{"far below", "512K", false},
		{"gigabyte", "1.1G", true},
		{"missing token", "", false},
		{"garbage", "n/a", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Equal(t, f.Accept(tt.token), tt.want)
		})
	}
}

func TestSizeFilter_UnparsableAlwaysRejected(t *testing.T) {
	for _, min := range []int64{1, 1024, model.DefaultMinSizeBytes} {
		f := model.SizeFilter{MinBytes: min}
		gt.Equal(t, f.Accept(""), false)
		gt.Equal(t, f.Accept("-"), false)
		gt.Equal(t, f.Accept("12 MB"), false)
	}
}

func TestNewSizeFilter_Default(t *testing.T) {
	gt.Equal(t, model.NewSizeFilter(0).MinBytes, model.DefaultMinSizeBytes)
	gt.Equal(t, model.NewSizeFilter(-5).MinBytes, model.DefaultMinSizeBytes)
	gt.Equal(t, model.NewSizeFilter(2048).MinBytes, int64(2048))
}

func TestSizeFilter_Split(t *testing.T) {
	archives := []model.RemoteArchive{
		{Filename: "a.tar.gz", SizeToken: "16.5M"},
		{Filename: "b.tar.gz", SizeToken: "2K"},
		{Filename: "c.tar.gz", SizeToken: ""},
		{Filename: "d.tar.gz", SizeToken: "20M"},
	}

	accepted, rejected := model.NewSizeFilter(0).Split(archives)
	gt.Equal(t, len(accepted), 2)
	gt.Equal(t, accepted[0].Filename, "a.tar.gz")
	gt.Equal(t, accepted[1].Filename, "d.tar.gz")
	gt.Equal(t, len(rejected), 2)
}
