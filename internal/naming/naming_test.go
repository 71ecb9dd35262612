package naming

import (
	"testing"

	"tugboat/internal/release"
)

func TestNormalizeAudioTokens(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Film.2023.DDP.5.1.x264-GRP", "Film.2023.DDP5.1.x264-GRP"},
		{"Film.2023.DD.5.1.x264-GRP", "Film.2023.DD5.1.x264-GRP"},
		{"Film.2023.AC3.2.0.x264-GRP", "Film.2023.AC32.0.x264-GRP"},
		{"Film.2023.DTS.5.1.x264-GRP", "Film.2023.DTS5.1.x264-GRP"},
		{"Film.2023.DDP5.1.x264-GRP", "Film.2023.DDP5.1.x264-GRP"},
		{"No.Audio.Tokens.Here", "No.Audio.Tokens.Here"},
	}

	for _, tt := range tests {
		if got := NormalizeAudioTokens(tt.in); got != tt.want {
			t.Errorf("NormalizeAudioTokens(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Amélie", "Amelie"},
		{"Mission: Impossible", "Mission Impossible"},
		{"What's  Up,  Doc?", "What's Up Doc"},
		{"Spider-Man", "Spider-Man"},
	}

	for _, tt := range tests {
		if got := CleanTitle(tt.in); got != tt.want {
			t.Errorf("CleanTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuilderName(t *testing.T) {
	tests := []struct {
		name string
		meta *release.Meta
		want string
	}{
		{
			name: "movie",
			meta: &release.Meta{
				Title:       "Example Film",
				Year:        "2023",
				Category:    "MOVIE",
				Type:        "ENCODE",
				Source:      "BluRay",
				Resolution:  "1080p",
				VideoEncode: "x264",
				Tag:         "-GRP",
			},
			want: "Example.Film.2023.1080p.BluRay.x264-GRP",
		},
		{
			name: "tv episode skips year",
			meta: &release.Meta{
				Title:       "Example Show",
				Year:        "2021",
				Category:    "TV",
				Season:      "S02",
				Episode:     "E05",
				Type:        "WEBDL",
				Resolution:  "1080p",
				VideoEncode: "H264",
				Tag:         "-GRP",
			},
			want: "Example.Show.S02E05.1080p.WEB-DL.H264-GRP",
		},
		{
			name: "hdr block",
			meta: &release.Meta{
				Title:       "Example Film",
				Year:        "2023",
				Category:    "MOVIE",
				Type:        "WEBDL",
				Resolution:  "2160p",
				HDR:         "DV HDR10",
				VideoEncode: "H265",
				Tag:         "-GRP",
			},
			want: "Example.Film.2023.2160p.WEB-DL.DV.HDR10.H265-GRP",
		},
		{
			name: "accented title transliterated",
			meta: &release.Meta{
				Title:       "Amélie",
				Year:        "2001",
				Category:    "MOVIE",
				Type:        "ENCODE",
				Source:      "BluRay",
				Resolution:  "1080p",
				VideoEncode: "x264",
				Tag:         "-GRP",
			},
			want: "Amelie.2001.1080p.BluRay.x264-GRP",
		},
		{
			name: "no tag",
			meta: &release.Meta{
				Title:       "Example Film",
				Year:        "2023",
				Category:    "MOVIE",
				Type:        "ENCODE",
				Source:      "BluRay",
				Resolution:  "1080p",
				VideoEncode: "x264",
			},
			want: "Example.Film.2023.1080p.BluRay.x264",
		},
	}

	b := NewBuilder()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := b.Name(tt.meta)
			if err != nil {
				t.Fatalf("Name returned error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Name() = %q, want %q", got, tt.want)
			}
		})
	}
}
