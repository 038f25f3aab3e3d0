package config

import (
	"path/filepath"
	"testing"
)

func TestLoadMissingFileIsEmpty(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "config"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.IsBare() {
		t.Error("IsBare true for an empty config")
	}
}

func TestSetBareRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	c := Default(true)
	if !c.IsBare() {
		t.Error("Default(true).IsBare() = false")
	}

	if err := c.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reloaded.IsBare() {
		t.Error("reloaded config lost core.bare = true")
	}
}

func TestAddRemoteRefusesDuplicate(t *testing.T) {
	c := Default(false)
	if err := c.AddRemote("origin", "https://example.com/repo.git"); err != nil {
		t.Fatalf("AddRemote: %v", err)
	}
	if err := c.AddRemote("origin", "https://example.com/other.git"); err == nil {
		t.Error("AddRemote allowed a duplicate remote name")
	}

	url, ok := c.RemoteURL("origin")
	if !ok || url != "https://example.com/repo.git" {
		t.Errorf("RemoteURL(origin) = (%q, %v)", url, ok)
	}
}

func TestRemotesListsAll(t *testing.T) {
	c := Default(false)
	if err := c.AddRemote("origin", "url-a"); err != nil {
		t.Fatalf("AddRemote: %v", err)
	}
	if err := c.AddRemote("upstream", "url-b"); err != nil {
		t.Fatalf("AddRemote: %v", err)
	}

	remotes := c.Remotes()
	if remotes["origin"] != "url-a" || remotes["upstream"] != "url-b" {
		t.Errorf("Remotes() = %v", remotes)
	}
}
