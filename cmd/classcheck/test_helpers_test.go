package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"classcheck/internal/config"
	"classcheck/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
	dataDir    string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t, opts...)
	base := testsupport.BaseDir(cfg)
	t.Setenv("HOME", filepath.Join(base, "home"))
	t.Setenv("CLASSCHECK_LOG_LEVEL", "")
	t.Setenv("CLASSCHECK_EXPORT_DIR", "")

	configPath := filepath.Join(base, "config.toml")
	testsupport.WriteConfig(t, configPath, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		baseDir:    base,
		dataDir:    t.TempDir(),
	}
}

// writeScenario writes two room rosters and one submission export.
func (e *cliTestEnv) writeScenario(t *testing.T) (rosterDir, exportPath string) {
	t.Helper()
	rosterDir = filepath.Join(e.dataDir, "rosters")
	testsupport.WriteCSV(t, rosterDir, "ม.1-1.csv", [][]string{
		{"เลขที่", "ชื่อ-นามสกุล"},
		{"5", "เด็กชายสมชาย ใจดี"},
		{"6", "เด็กหญิงสมหญิง รักเรียน"},
	})
	testsupport.WriteCSV(t, rosterDir, "ม.1-2.csv", [][]string{
		{"เลขที่", "ชื่อ-นามสกุล"},
		{"1", "นายอนันต์ มีสุข"},
	})
	exportPath = testsupport.WriteCSV(t, e.dataDir, "export.csv", [][]string{
		{"Timestamp", "ข้อความ", "ห้อง"},
		{"2024-06-01", "เลขที่5 1.3 สมชายใจดี", "11"},
		{"2024-06-01", "เลขที่9 1.3 สมชายใจดี", ""},
		{"2024-06-02", "สวัสดีครับ", "11"},
		{"2024-06-03", "1.2 สมหญิง รักเรียน", "12"},
	})
	return rosterDir, exportPath
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
