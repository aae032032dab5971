package pep440

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrInvalidVersion is returned when a string cannot be parsed as a
	// PEP 440 version identifier.
	ErrInvalidVersion = errors.New("invalid PEP 440 version")

	// ErrPreReleaseMismatch is returned when a pre-release bump would move
	// backwards in the alpha -> beta -> rc cycle.
	ErrPreReleaseMismatch = errors.New("pre-release kind mismatch")
)

// Pre-release letters in canonical form and cycle order.
const (
	PreAlpha            = "a"
	PreBeta             = "b"
	PreReleaseCandidate = "rc"
)

// PreRelease is the pre-release segment of a version: a canonical letter
// ("a", "b" or "rc") and a non-negative number.
type PreRelease struct {
	Letter string
	Number int
}

// Version is an immutable PEP 440 version identifier split into its five
// segments. The zero value is not a valid version; use Parse or Default.
type Version struct {
	// Epoch is the version epoch ("N!"), normally 0.
	Epoch int

	// Release holds the dotted release segments ("1.2.3" -> [1, 2, 3]).
	Release []int

	// Pre is the optional pre-release segment ("rc1").
	Pre *PreRelease

	// Post is the optional post-release number (".post2").
	Post *int

	// Dev is the optional development release number (".dev3").
	Dev *int

	// Local is the optional local version label ("+ubuntu.1").
	Local string
}

// versionPattern is the permissive pattern published by the packaging
// project for PEP 440, accepting inputs that require normalization.
var versionPattern = regexp.MustCompile(`(?i)^\s*v?` +
	`(?:(?P<epoch>[0-9]+)!)?` +
	`(?P<release>[0-9]+(?:\.[0-9]+)*)` +
	`(?:[-_\.]?(?P<pre_l>a|b|c|rc|alpha|beta|pre|preview)[-_\.]?(?P<pre_n>[0-9]+)?)?` +
	`(?:(?:-(?P<post_n1>[0-9]+))|(?:[-_\.]?(?P<post_l>post|rev|r)[-_\.]?(?P<post_n2>[0-9]+)?))?` +
	`(?:[-_\.]?(?P<dev_l>dev)[-_\.]?(?P<dev_n>[0-9]+)?)?` +
	`(?:\+(?P<local>[a-z0-9]+(?:[-_\.][a-z0-9]+)*))?` +
	`\s*$`)

// Parse parses a version string, normalizing alternate spellings to their
// canonical form ("alpha" -> "a", "v1.0" -> "1.0", "1.0-post-2" -> "1.0.post2").
// Returns an error wrapping ErrInvalidVersion for malformed input.
func Parse(s string) (Version, error) {
	match := versionPattern.FindStringSubmatch(s)
	if match == nil {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}

	group := func(name string) string {
		return match[versionPattern.SubexpIndex(name)]
	}

	var v Version
	if epoch := group("epoch"); epoch != "" {
		n, err := strconv.Atoi(epoch)
		if err != nil {
			return Version{}, fmt.Errorf("%w: %q: %v", ErrInvalidVersion, s, err)
		}
		v.Epoch = n
	}

	for _, seg := range strings.Split(group("release"), ".") {
		n, err := strconv.Atoi(seg)
		if err != nil {
			return Version{}, fmt.Errorf("%w: %q: %v", ErrInvalidVersion, s, err)
		}
		v.Release = append(v.Release, n)
	}

	if preL := group("pre_l"); preL != "" {
		n := 0
		if preN := group("pre_n"); preN != "" {
			parsed, err := strconv.Atoi(preN)
			if err != nil {
				return Version{}, fmt.Errorf("%w: %q: %v", ErrInvalidVersion, s, err)
			}
			n = parsed
		}
		v.Pre = &PreRelease{Letter: canonicalPreLetter(preL), Number: n}
	}

	if postN1 := group("post_n1"); postN1 != "" {
		n, err := strconv.Atoi(postN1)
		if err != nil {
			return Version{}, fmt.Errorf("%w: %q: %v", ErrInvalidVersion, s, err)
		}
		v.Post = &n
	} else if group("post_l") != "" {
		n := 0
		if postN2 := group("post_n2"); postN2 != "" {
			parsed, err := strconv.Atoi(postN2)
			if err != nil {
				return Version{}, fmt.Errorf("%w: %q: %v", ErrInvalidVersion, s, err)
			}
			n = parsed
		}
		v.Post = &n
	}

	if group("dev_l") != "" {
		n := 0
		if devN := group("dev_n"); devN != "" {
			parsed, err := strconv.Atoi(devN)
			if err != nil {
				return Version{}, fmt.Errorf("%w: %q: %v", ErrInvalidVersion, s, err)
			}
			n = parsed
		}
		v.Dev = &n
	}

	if local := group("local"); local != "" {
		v.Local = strings.ToLower(strings.NewReplacer("-", ".", "_", ".").Replace(local))
	}

	return v, nil
}

// canonicalPreLetter maps the accepted pre-release spellings to their
// canonical letter per PEP 440 normalization rules.
func canonicalPreLetter(letter string) string {
	switch strings.ToLower(letter) {
	case "a", "alpha":
		return PreAlpha
	case "b", "beta":
		return PreBeta
	default: // c, rc, pre, preview
		return PreReleaseCandidate
	}
}

// CanParse reports whether s is a parseable PEP 440 version.
func CanParse(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// MustParse parses s and panics on failure. For tests and constants only.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Default returns the version a project starts from when none exists yet.
func Default() Version {
	return Version{Release: []int{1}}
}

// String returns the canonical PEP 440 representation.
func (v Version) String() string {
	var sb strings.Builder

	if v.Epoch > 0 {
		fmt.Fprintf(&sb, "%d!", v.Epoch)
	}

	for i, seg := range v.Release {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(strconv.Itoa(seg))
	}

	if v.Pre != nil {
		fmt.Fprintf(&sb, "%s%d", v.Pre.Letter, v.Pre.Number)
	}
	if v.Post != nil {
		fmt.Fprintf(&sb, ".post%d", *v.Post)
	}
	if v.Dev != nil {
		fmt.Fprintf(&sb, ".dev%d", *v.Dev)
	}
	if v.Local != "" {
		fmt.Fprintf(&sb, "+%s", v.Local)
	}

	return sb.String()
}

// releaseSegment returns the n-th release segment, treating missing
// trailing segments as zero ("1.2" == "1.2.0").
func (v Version) releaseSegment(n int) int {
	if n < len(v.Release) {
		return v.Release[n]
	}
	return 0
}

// Major returns the first release segment.
func (v Version) Major() int { return v.releaseSegment(0) }

// Minor returns the second release segment.
func (v Version) Minor() int { return v.releaseSegment(1) }

// Micro returns the third release segment.
func (v Version) Micro() int { return v.releaseSegment(2) }

// IsPreRelease reports whether the version carries a pre-release or
// development segment.
func (v Version) IsPreRelease() bool { return v.Pre != nil || v.Dev != nil }

// IsDevRelease reports whether the version carries a development segment.
func (v Version) IsDevRelease() bool { return v.Dev != nil }

// IsPostRelease reports whether the version carries a post-release segment.
func (v Version) IsPostRelease() bool { return v.Post != nil }

// IsLocal reports whether the version carries a local label.
func (v Version) IsLocal() bool { return v.Local != "" }

// IsFinal reports whether the version is a final release.
func (v Version) IsFinal() bool {
	return v.Pre == nil && v.Post == nil && v.Dev == nil && v.Local == ""
}

// IsAlpha reports whether the pre-release segment is an alpha.
func (v Version) IsAlpha() bool { return v.Pre != nil && v.Pre.Letter == PreAlpha }

// IsBeta reports whether the pre-release segment is a beta.
func (v Version) IsBeta() bool { return v.Pre != nil && v.Pre.Letter == PreBeta }

// IsReleaseCandidate reports whether the pre-release segment is a
// release candidate.
func (v Version) IsReleaseCandidate() bool {
	return v.Pre != nil && v.Pre.Letter == PreReleaseCandidate
}

// Stage sentinels for ordering versions that differ only in their
// non-release segments: dev < pre < final < post.
const (
	cmpBeforeAll = -1 << 30
	cmpAfterAll  = 1 << 30
)

// Compare returns -1 if v < other, 0 if equal, +1 if v > other,
// following PEP 440 ordering. Local labels are compared segment-wise
// with numeric segments greater than alphanumeric ones.
func (v Version) Compare(other Version) int {
	if d := compareInt(v.Epoch, other.Epoch); d != 0 {
		return d
	}
	for i := 0; i < len(v.Release) || i < len(other.Release); i++ {
		if d := compareInt(v.releaseSegment(i), other.releaseSegment(i)); d != 0 {
			return d
		}
	}
	vPre, oPre := v.preKey(), other.preKey()
	if d := compareInt(vPre[0], oPre[0]); d != 0 {
		return d
	}
	if d := compareInt(vPre[1], oPre[1]); d != 0 {
		return d
	}
	if d := compareInt(v.postKey(), other.postKey()); d != 0 {
		return d
	}
	if d := compareInt(v.devKey(), other.devKey()); d != 0 {
		return d
	}
	return compareLocal(v.Local, other.Local)
}

// preKey orders the pre-release segment: a dev-only version sorts before
// any pre-release, a version without pre-release after all of them.
func (v Version) preKey() [2]int {
	if v.Pre == nil {
		if v.Post == nil && v.Dev != nil {
			return [2]int{cmpBeforeAll, 0}
		}
		return [2]int{cmpAfterAll, 0}
	}
	return [2]int{preLetterRank(v.Pre.Letter), v.Pre.Number}
}

func (v Version) postKey() int {
	if v.Post == nil {
		return cmpBeforeAll
	}
	return *v.Post
}

func (v Version) devKey() int {
	if v.Dev == nil {
		return cmpAfterAll
	}
	return *v.Dev
}

func preLetterRank(letter string) int {
	switch letter {
	case PreAlpha:
		return 0
	case PreBeta:
		return 1
	default:
		return 2
	}
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareLocal(a, b string) int {
	if a == b {
		return 0
	}
	// Absent local label sorts before any present one.
	if a == "" {
		return -1
	}
	if b == "" {
		return 1
	}
	aSegs := strings.Split(a, ".")
	bSegs := strings.Split(b, ".")
	n := min(len(aSegs), len(bSegs))
	for i := range n {
		if d := compareLocalSegment(aSegs[i], bSegs[i]); d != 0 {
			return d
		}
	}
	return compareInt(len(aSegs), len(bSegs))
}

// compareLocalSegment compares one dotted local-label segment; numeric
// segments are greater than alphanumeric ones per PEP 440.
func compareLocalSegment(a, b string) int {
	aNum, bNum := isDigits(a), isDigits(b)
	switch {
	case aNum && bNum:
		an, _ := strconv.Atoi(a)
		bn, _ := strconv.Atoi(b)
		return compareInt(an, bn)
	case aNum:
		return 1
	case bNum:
		return -1
	default:
		return strings.Compare(a, b)
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
