package roster

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/bigtalents/featured/internal/content"
)

func TestLoad_ValidRoster(t *testing.T) {
	creators, err := Load(filepath.Join("testdata", "roster.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(creators) != 2 {
		t.Fatalf("expected 2 creators, got %d", len(creators))
	}

	nova := creators[0]
	if nova.ID != "nova" || nova.Name != "Nova" || nova.Tier != content.TierElite {
		t.Errorf("creator not parsed: %+v", nova)
	}
	yt, ok := nova.Platforms[content.PlatformYouTube]
	if !ok {
		t.Fatal("nova should have a youtube profile")
	}
	if yt.Handle != "UCnova123" || yt.Followers != 250000 {
		t.Errorf("youtube profile not parsed: %+v", yt)
	}
	if creators[1].Tier != content.TierAcademy {
		t.Errorf("second creator tier = %s", creators[1].Tier)
	}
}

func TestParse_RejectsDuplicateIDs(t *testing.T) {
	_, err := Parse([]byte(`
creators:
  - id: dup
    name: One
    tier: elite
    platforms:
      youtube: {handle: UC1, followers: 10}
  - id: dup
    name: Two
    tier: elite
    platforms:
      youtube: {handle: UC2, followers: 10}
`))
	if err == nil || !strings.Contains(err.Error(), "duplicate id") {
		t.Errorf("expected duplicate id error, got %v", err)
	}
}

func TestParse_RejectsUnknownTier(t *testing.T) {
	_, err := Parse([]byte(`
creators:
  - id: a
    name: A
    tier: legendary
    platforms:
      youtube: {handle: UC1, followers: 10}
`))
	if err == nil || !strings.Contains(err.Error(), "unknown tier") {
		t.Errorf("expected unknown tier error, got %v", err)
	}
}

func TestParse_RejectsCreatorWithoutPlatforms(t *testing.T) {
	_, err := Parse([]byte(`
creators:
  - id: a
    name: A
    tier: elite
`))
	if err == nil || !strings.Contains(err.Error(), "no platforms") {
		t.Errorf("expected no platforms error, got %v", err)
	}
}

func TestParse_RejectsUnknownPlatform(t *testing.T) {
	_, err := Parse([]byte(`
creators:
  - id: a
    name: A
    tier: elite
    platforms:
      myspace: {handle: tom, followers: 10}
`))
	if err == nil || !strings.Contains(err.Error(), "unknown platform") {
		t.Errorf("expected unknown platform error, got %v", err)
	}
}

func TestParse_RejectsMalformedYAML(t *testing.T) {
	if _, err := Parse([]byte("creators: [")); err == nil {
		t.Error("expected a parse error")
	}
}
