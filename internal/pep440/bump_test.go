package pep440

import (
	"errors"
	"testing"
)

func TestNextMajorMinorMicro(t *testing.T) {
	tests := []struct {
		name  string
		input string
		bump  func(Version) Version
		want  string
	}{
		{"major", "1.2.3", Version.NextMajor, "2.0.0"},
		{"major strips pre", "1.2.3rc1", Version.NextMajor, "2.0.0"},
		{"major strips post and dev", "1.2.3.post1.dev2", Version.NextMajor, "2.0.0"},
		{"major keeps epoch", "1!1.2.3", Version.NextMajor, "1!2.0.0"},
		{"major short release", "1", Version.NextMajor, "2"},
		{"minor", "1.2.3", Version.NextMinor, "1.3.0"},
		{"minor pads release", "1", Version.NextMinor, "1.1"},
		{"minor strips local", "1.2.3+build", Version.NextMinor, "1.3.0"},
		{"micro", "1.2.3", Version.NextMicro, "1.2.4"},
		{"micro pads release", "1.2", Version.NextMicro, "1.2.1"},
		{"micro strips pre", "1.2.3a1", Version.NextMicro, "1.2.4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.bump(MustParse(tt.input)).String()
			if got != tt.want {
				t.Errorf("bump(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNextPreRelease(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		bump    func(Version) (Version, error)
		want    string
		wantErr bool
	}{
		{"alpha from final", "1.2.3", Version.NextAlpha, "1.2.4a1", false},
		{"alpha from alpha", "1.2.4a1", Version.NextAlpha, "1.2.4a2", false},
		{"alpha from beta", "1.2.4b1", Version.NextAlpha, "", true},
		{"alpha from rc", "1.2.4rc1", Version.NextAlpha, "", true},
		{"beta from final", "1.2.3", Version.NextBeta, "1.2.4b1", false},
		{"beta from alpha", "1.2.4a2", Version.NextBeta, "1.2.4b1", false},
		{"beta from beta", "1.2.4b1", Version.NextBeta, "1.2.4b2", false},
		{"beta from rc", "1.2.4rc1", Version.NextBeta, "", true},
		{"rc from final", "1.2.3", Version.NextReleaseCandidate, "1.2.4rc1", false},
		{"rc from alpha", "1.2.4a1", Version.NextReleaseCandidate, "1.2.4rc1", false},
		{"rc from beta", "1.2.4b3", Version.NextReleaseCandidate, "1.2.4rc1", false},
		{"rc from rc", "1.2.4rc1", Version.NextReleaseCandidate, "1.2.4rc2", false},
		{"alpha pads short release", "1.2", Version.NextAlpha, "1.2.1a1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.bump(MustParse(tt.input))
			if tt.wantErr {
				if !errors.Is(err, ErrPreReleaseMismatch) {
					t.Fatalf("bump(%q) error = %v, want ErrPreReleaseMismatch", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("bump(%q) error: %v", tt.input, err)
			}
			if got.String() != tt.want {
				t.Errorf("bump(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFinalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1.2.3rc1", "1.2.3"},
		{"1.2.3a1.dev2", "1.2.3"},
		{"1.2.3.post1", "1.2.3"},
		{"1.2.3+local", "1.2.3"},
		{"1.2.3", "1.2.3"},
		{"2!1.2", "2!1.2"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := MustParse(tt.input).Finalize().String(); got != tt.want {
				t.Errorf("Finalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNextPostAndDev(t *testing.T) {
	tests := []struct {
		name  string
		input string
		bump  func(Version) Version
		want  string
	}{
		{"post from final", "1.2.3", Version.NextPost, "1.2.3.post1"},
		{"post increments", "1.2.3.post1", Version.NextPost, "1.2.3.post2"},
		{"post keeps pre", "1.2.3rc1", Version.NextPost, "1.2.3rc1.post1"},
		{"dev from final", "1.2.3", Version.NextDev, "1.2.3.dev1"},
		{"dev increments", "1.2.3.dev4", Version.NextDev, "1.2.3.dev5"},
		{"dev keeps post", "1.2.3.post1", Version.NextDev, "1.2.3.post1.dev1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.bump(MustParse(tt.input)).String(); got != tt.want {
				t.Errorf("bump(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNextEpoch(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1.2.3", "1!1"},
		{"2!1.2.3rc1", "3!1"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := MustParse(tt.input).NextEpoch().String(); got != tt.want {
				t.Errorf("NextEpoch(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestBumpDoesNotMutateReceiver(t *testing.T) {
	v := MustParse("1.2.3.post1")
	_ = v.NextPost()
	_ = v.NextDev()
	_ = v.NextMajor()
	if got := v.String(); got != "1.2.3.post1" {
		t.Errorf("receiver mutated: %q", got)
	}
}
