// Copyright 2025 The Sigstore Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	sha256ABC = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	md5ABC    = "900150983cd24fb0d6963f7d28e17f72"
	sha1Empty = "da39a3ee5e6b4b0d3255bfef95601890afd80709"
)

// run executes the root command with args and returns what it wrote to
// stdout and stderr.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := New()
	var stdout, stderr bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("MkdirAll() error = %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
	}
	return root
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sums")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func wantExitCode(t *testing.T, err error, code int) {
	t.Helper()
	var ee *ExitError
	if !errors.As(err, &ee) {
		t.Fatalf("error = %v, want *ExitError", err)
	}
	if ee.ExitCode() != code {
		t.Errorf("ExitCode() = %d, want %d", ee.ExitCode(), code)
	}
}

func TestSum_Stdin(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"default", []string{"sum"}, sha256ABC + "  -\n"},
		{"dash", []string{"sum", "-"}, sha256ABC + "  -\n"},
		{"md5", []string{"sum", "-a", "md5"}, md5ABC + "  -\n"},
		{"binary", []string{"sum", "-a", "MD5", "-b"}, md5ABC + " *-\n"},
		{"tag", []string{"sum", "-f", "tag"}, "SHA256 (-) = " + sha256ABC + "\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := run(t, "abc", tt.args...)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if out != tt.want {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestSum_RootDigest(t *testing.T) {
	out, _, err := run(t, "abc", "sum", "--root-digest")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	want := sha256ABC + "  -\n# root sha256:4f8b42c22dd3729b519ba6f68d2da7cc5b2d606d05daed5ad5128cc03e6c6358\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}

	if _, _, err := run(t, "abc", "sum", "--root-digest", "-f", "json"); err == nil {
		t.Error("--root-digest with json error = nil")
	}
}

func TestSum_Directory(t *testing.T) {
	root := writeFiles(t, map[string]string{
		"a.txt":     "abc",
		"sub/e":     "",
		".git/HEAD": "ref",
	})

	out, _, err := run(t, "", "sum", "-a", "sha1", root)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	dir := filepath.ToSlash(root)
	want := "a9993e364706816aba3e25717850c26c9cd0d89d  " + dir + "/a.txt\n" +
		sha1Empty + "  " + dir + "/sub/e\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestSum_JSON(t *testing.T) {
	root := writeFiles(t, map[string]string{"model.bin": "abcdefghij"})

	out, _, err := run(t, "", "sum", "-f", "json", "--shard-size", "4", "-a", "md5", root)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	var doc struct {
		Serialization map[string]any `json:"serialization"`
		Resources     []struct {
			Name      string `json:"name"`
			Algorithm string `json:"algorithm"`
		} `json:"resources"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("json.Unmarshal() error = %v\n%s", err, out)
	}
	if doc.Serialization["method"] != "shards" || doc.Serialization["shard_size"] != float64(4) {
		t.Errorf("serialization = %v, want shards of 4", doc.Serialization)
	}
	if len(doc.Resources) != 3 || doc.Resources[2].Name != "model.bin:8:10" || doc.Resources[2].Algorithm != "md5-sharded-4" {
		t.Errorf("resources = %+v", doc.Resources)
	}
}

func TestSum_ShardSizeRequiresJSON(t *testing.T) {
	root := writeFiles(t, map[string]string{"f": "x"})
	if _, _, err := run(t, "", "sum", "--shard-size", "4", root); err == nil {
		t.Error("Execute() error = nil")
	}
}

func TestSum_OutputFile(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out.sha256")

	out, _, err := run(t, "abc", "--output-file", dest, "sum")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out != "" {
		t.Errorf("stdout = %q, want empty", out)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if got, want := string(data), sha256ABC+"  -\n"; got != want {
		t.Errorf("output file = %q, want %q", got, want)
	}
}

func TestSum_EnvironmentDefaults(t *testing.T) {
	t.Setenv("HASHKIT_ALGORITHM", "md5")

	out, _, err := run(t, "abc", "sum")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if want := md5ABC + "  -\n"; out != want {
		t.Errorf("output = %q, want %q", out, want)
	}

	// The command line wins over the environment.
	out, _, err = run(t, "abc", "sum", "-a", "sha256")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if want := sha256ABC + "  -\n"; out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestCheck_SumFile(t *testing.T) {
	root := writeFiles(t, map[string]string{"a.txt": "abc", "b.txt": "abc"})

	good := writeFile(t, sha256ABC+"  a.txt\nMD5 (b.txt) = "+md5ABC+"\n")
	out, _, err := run(t, "", "check", "--root", root, good)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if want := "a.txt: OK\nb.txt: OK\n"; out != want {
		t.Errorf("output = %q, want %q", out, want)
	}

	out, _, err = run(t, "", "check", "-q", "--root", root, good)
	if err != nil || out != "" {
		t.Errorf("quiet check = %q, %v; want no output", out, err)
	}
}

func TestCheck_Failures(t *testing.T) {
	root := writeFiles(t, map[string]string{"a.txt": "abc"})
	sums := writeFile(t, md5ABC+"  gone.txt\n"+strings.Repeat("0", 32)+"  a.txt\n")

	out, stderr, err := run(t, "", "check", "--root", root, sums)
	wantExitCode(t, err, 1)
	if want := "gone.txt: FAILED open or read\na.txt: FAILED\n"; out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
	if !strings.Contains(stderr, "did NOT match") {
		t.Errorf("stderr = %q, want a mismatch warning", stderr)
	}

	out, _, err = run(t, "", "check", "--status", "--root", root, sums)
	wantExitCode(t, err, 1)
	if out != "" {
		t.Errorf("--status output = %q, want empty", out)
	}
}

func TestCheck_IgnoreMissing(t *testing.T) {
	root := writeFiles(t, map[string]string{"a.txt": "abc"})

	sums := writeFile(t, md5ABC+"  gone.txt\n"+md5ABC+"  a.txt\n")
	out, _, err := run(t, "", "check", "--ignore-missing", "--root", root, sums)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out != "a.txt: OK\n" {
		t.Errorf("output = %q, want %q", out, "a.txt: OK\n")
	}

	// Nothing left to verify is a failure.
	onlyMissing := writeFile(t, md5ABC+"  gone.txt\n")
	_, _, err = run(t, "", "check", "--ignore-missing", "--root", root, onlyMissing)
	wantExitCode(t, err, 1)
}

func TestCheck_Stdin(t *testing.T) {
	root := writeFiles(t, map[string]string{"a.txt": "abc"})
	out, _, err := run(t, sha256ABC+"  a.txt\n", "check", "--root", root, "-")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out != "a.txt: OK\n" {
		t.Errorf("output = %q", out)
	}
}

func TestCheck_Malformed(t *testing.T) {
	root := writeFiles(t, map[string]string{"a.txt": "abc"})
	for _, content := range []string{"", "# only a comment\n", "not a checksum\n"} {
		if _, _, err := run(t, "", "check", "--root", root, writeFile(t, content)); err == nil {
			t.Errorf("check of %q error = nil", content)
		}
	}
}

func TestCheck_Manifest(t *testing.T) {
	root := writeFiles(t, map[string]string{
		"a.txt":     "abc",
		"sub/b.bin": "0123456789",
		".git/HEAD": "ref",
	})

	manifestJSON, _, err := run(t, "", "sum", "-f", "json", "--shard-size", "3", root)
	if err != nil {
		t.Fatalf("sum error = %v", err)
	}
	manifestPath := writeFile(t, manifestJSON)

	out, _, err := run(t, "", "check", "--root", root, manifestPath)
	if err != nil {
		t.Fatalf("check error = %v\n%s", err, out)
	}
	want := "a.txt:0:3: OK\nsub/b.bin:0:3: OK\nsub/b.bin:3:6: OK\nsub/b.bin:6:9: OK\nsub/b.bin:9:10: OK\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}

	if err := os.WriteFile(filepath.Join(root, "sub", "b.bin"), []byte("0123X56789"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "new.txt"), []byte("n"), 0o600); err != nil {
		t.Fatal(err)
	}
	out, _, err = run(t, "", "check", "-q", "--root", root, manifestPath)
	wantExitCode(t, err, 1)
	if want := "sub/b.bin:3:6: FAILED\nnew.txt:0:1: EXTRA\n"; out != want {
		t.Errorf("output = %q, want %q", out, want)
	}

	// Extras alone are tolerated with --ignore-extra.
	if err := os.WriteFile(filepath.Join(root, "sub", "b.bin"), []byte("0123456789"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, _, err := run(t, "", "check", "-q", "--ignore-extra", "--root", root, manifestPath); err != nil {
		t.Errorf("check --ignore-extra error = %v", err)
	}
}

func TestAlgorithms(t *testing.T) {
	out, _, err := run(t, "", "algorithms")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	want := map[string][]string{
		"md4":    {"16", "64"},
		"md5":    {"16", "64"},
		"sha1":   {"20", "64"},
		"sha224": {"28", "64"},
		"sha256": {"32", "64"},
		"sha384": {"48", "128"},
		"sha512": {"64", "128"},
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != len(want)+1 {
		t.Fatalf("output has %d lines, want %d:\n%s", len(lines), len(want)+1, out)
	}
	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		sizes, ok := want[fields[0]]
		if !ok {
			t.Errorf("unexpected algorithm %q", fields[0])
			continue
		}
		if fields[1] != sizes[0] || fields[2] != sizes[1] {
			t.Errorf("%s sizes = %v, want %v", fields[0], fields[1:], sizes)
		}
	}
}

func TestBench(t *testing.T) {
	out, _, err := run(t, "", "bench", "--size", "4096", "-n", "2", "--algorithms", "md4,sha-384")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("output = %q, want header and two rows", out)
	}
	for i, name := range []string{"md4", "sha384"} {
		fields := strings.Fields(lines[i+1])
		if fields[0] != name || fields[1] != "4096" || fields[len(fields)-1] != "yes" {
			t.Errorf("row %d = %v", i, fields)
		}
	}

	if _, _, err := run(t, "", "bench", "-n", "0"); err == nil {
		t.Error("bench -n 0 error = nil")
	}
}

func TestBench_File(t *testing.T) {
	path := writeFile(t, "")
	out, _, err := run(t, "", "bench", "--file", path, "-n", "1", "--algorithms", "sha1")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if fields := strings.Fields(strings.Split(strings.TrimSpace(out), "\n")[1]); fields[2] != "-" {
		t.Errorf("empty input throughput = %q, want -", fields[2])
	}
}

func TestCheck_ImageManifest(t *testing.T) {
	emptySHA256 := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	root := writeFiles(t, map[string]string{
		"model.bin":                   "abc",
		"blobs/sha256/" + emptySHA256: "",
	})
	doc := `{
		"schemaVersion": 2,
		"config": {"mediaType": "application/vnd.oci.image.config.v1+json", "digest": "sha256:` + emptySHA256 + `", "size": 0},
		"layers": [
			{"mediaType": "application/octet-stream", "digest": "sha256:` + sha256ABC + `", "size": 3,
			 "annotations": {"org.opencontainers.image.title": "model.bin"}}
		]
	}`
	path := writeFile(t, doc)

	out, _, err := run(t, "", "check", "--root", root, path)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out != "model.bin: OK\n" {
		t.Errorf("output = %q, want %q", out, "model.bin: OK\n")
	}

	out, _, err = run(t, "", "check", "--include-config", "--root", root, path)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if want := "blobs/sha256/" + emptySHA256 + ": OK\nmodel.bin: OK\n"; out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}
