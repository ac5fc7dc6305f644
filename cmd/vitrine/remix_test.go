package main

import (
	"os"
	"path/filepath"
	"testing"

	"vitrine/internal/testsupport"
)

// Two identities share one ledger: alice publishes a remixable chamber, bob
// remixes it. Sequential invocations so the ledger's advisory lock is free
// between commands.
func TestCLIRemixFlow(t *testing.T) {
	alice := setupCLITestEnv(t, testsupport.WithCreator("alice"))
	scenePath := writeSceneFile(t, alice.baseDir, "scene.json")
	thumbPath := writeThumbnail(t, alice.baseDir)

	bobCfg := *alice.cfg
	bobCfg.Identity.Creator = "bob"
	bobCfg.Paths.DataDir = filepath.Join(alice.baseDir, "bob-data")
	if err := os.MkdirAll(bobCfg.Paths.DataDir, 0o755); err != nil {
		t.Fatalf("create bob data dir: %v", err)
	}
	bobConfigPath := filepath.Join(alice.baseDir, "bob-config.toml")
	writeTestConfig(t, bobConfigPath, &bobCfg)

	out, _, err := runCLI(t, []string{
		"publish", "chamber", scenePath,
		"--name", "Gallery",
		"--thumbnail", thumbPath,
		"--remixable",
	}, alice.configPath)
	if err != nil {
		t.Fatalf("alice publish: %v", err)
	}
	requireContains(t, out, "Published chamber record #1")

	out, _, err = runCLI(t, []string{
		"remix", "1", scenePath,
		"--name", "Gallery redux",
		"--thumbnail", thumbPath,
	}, bobConfigPath)
	if err != nil {
		t.Fatalf("bob remix: %v", err)
	}
	requireContains(t, out, "Published remix record #2")
	requireContains(t, out, "fee:      skipped")

	out, _, err = runCLI(t, []string{"show", "2"}, bobConfigPath)
	if err != nil {
		t.Fatalf("show remix: %v", err)
	}
	requireContains(t, out, "Gallery redux")
	requireContains(t, out, "none (root)")
	requireContains(t, out, "bob")

	// A remix defaults to non-remixable, so remixing the remix is rejected.
	_, _, err = runCLI(t, []string{
		"remix", "2", scenePath,
		"--name", "Third hand",
		"--thumbnail", thumbPath,
	}, alice.configPath)
	if err == nil {
		t.Fatal("expected remix of non-remixable record to fail")
	}
	requireContains(t, err.Error(), "disallows remix")
}

func TestCLIRemixOwnChamberRejected(t *testing.T) {
	env := setupCLITestEnv(t)
	scenePath := writeSceneFile(t, env.baseDir, "scene.json")
	thumbPath := writeThumbnail(t, env.baseDir)

	if _, _, err := runCLI(t, []string{
		"publish", "chamber", scenePath,
		"--name", "Studio",
		"--thumbnail", thumbPath,
		"--remixable",
	}, env.configPath); err != nil {
		t.Fatalf("publish chamber: %v", err)
	}

	_, _, err := runCLI(t, []string{
		"remix", "1", scenePath,
		"--thumbnail", thumbPath,
	}, env.configPath)
	if err == nil {
		t.Fatal("expected remixing own chamber to fail")
	}
	requireContains(t, err.Error(), "save a version instead")
}
