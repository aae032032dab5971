package pep440

import (
	"fmt"
)

// Release part indices for the bump operations.
const (
	partMajor = 0
	partMinor = 1
	partMicro = 2
)

// NextMajor increments the major part, zeroes everything after it and
// strips pre-release, post, dev and local segments.
func (v Version) NextMajor() Version {
	return v.bumpReleasePart(partMajor)
}

// NextMinor increments the minor part, zeroes everything after it and
// strips pre-release, post, dev and local segments.
func (v Version) NextMinor() Version {
	return v.bumpReleasePart(partMinor)
}

// NextMicro increments the micro part and strips pre-release, post, dev
// and local segments.
func (v Version) NextMicro() Version {
	return v.bumpReleasePart(partMicro)
}

func (v Version) bumpReleasePart(part int) Version {
	size := max(len(v.Release), part+1)
	release := make([]int, size)
	for i := range release {
		switch {
		case i < part:
			release[i] = v.releaseSegment(i)
		case i == part:
			release[i] = v.releaseSegment(i) + 1
		default:
			release[i] = 0
		}
	}
	return Version{Epoch: v.Epoch, Release: release}
}

// NextAlpha moves the version to its next alpha pre-release.
// A final version gets a micro bump and becomes "a1"; an existing alpha
// increments its number. Beta or rc versions cannot go back to alpha and
// return an error wrapping ErrPreReleaseMismatch.
func (v Version) NextAlpha() (Version, error) {
	return v.nextPreRelease(PreAlpha, "an alpha", v.IsAlpha)
}

// NextBeta moves the version to its next beta pre-release.
// Valid from final versions, alphas (becomes "b1") and betas (number
// increments); rc versions return an error wrapping ErrPreReleaseMismatch.
func (v Version) NextBeta() (Version, error) {
	return v.nextPreRelease(PreBeta, "an alpha or beta", func() bool {
		return v.IsAlpha() || v.IsBeta()
	})
}

// NextReleaseCandidate moves the version to its next release candidate.
// Valid from any final or pre-release version.
func (v Version) NextReleaseCandidate() (Version, error) {
	return v.nextPreRelease(PreReleaseCandidate, "a pre-release", func() bool {
		return v.Pre != nil
	})
}

func (v Version) nextPreRelease(letter, kind string, compatible func() bool) (Version, error) {
	pre := PreRelease{Letter: letter, Number: 1}
	release := v.paddedRelease()

	if v.Pre != nil {
		if !compatible() {
			return Version{}, fmt.Errorf("%w: %s is not %s version", ErrPreReleaseMismatch, v, kind)
		}
		if v.Pre.Letter == letter {
			pre.Number = v.Pre.Number + 1
		}
	} else {
		// Starting a new pre-release cycle targets the next micro.
		release[partMicro]++
	}

	return Version{Epoch: v.Epoch, Release: release, Pre: &pre}, nil
}

// Finalize strips pre-release, post, dev and local segments, keeping the
// release untouched.
func (v Version) Finalize() Version {
	return Version{Epoch: v.Epoch, Release: v.copyRelease()}
}

// NextPost increments the post-release number, or starts at ".post1".
// The remaining segments are preserved.
func (v Version) NextPost() Version {
	post := 1
	if v.Post != nil {
		post = *v.Post + 1
	}
	next := v
	next.Release = v.copyRelease()
	next.Post = &post
	return next
}

// NextDev increments the development release number, or starts at ".dev1".
// The remaining segments are preserved.
func (v Version) NextDev() Version {
	dev := 1
	if v.Dev != nil {
		dev = *v.Dev + 1
	}
	next := v
	next.Release = v.copyRelease()
	next.Dev = &dev
	return next
}

// NextEpoch increments the epoch and resets the rest of the version to
// the default release.
func (v Version) NextEpoch() Version {
	next := Default()
	next.Epoch = v.Epoch + 1
	return next
}

// paddedRelease returns a copy of the release segments padded with zeros
// to at least major.minor.micro length.
func (v Version) paddedRelease() []int {
	size := max(len(v.Release), 3)
	release := make([]int, size)
	copy(release, v.Release)
	return release
}

func (v Version) copyRelease() []int {
	release := make([]int, len(v.Release))
	copy(release, v.Release)
	return release
}
