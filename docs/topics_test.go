package docs

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const (
	bashRun      = "bash run"
	consoleCheck = "console check"
)

func TestTopics(t *testing.T) {
	// Every topic listed in readme.md can be loaded, and every .md file is
	// listed in readme.md.
	content, err := GetTopic(readme)
	if err != nil {
		t.Fatalf("GetTopic(readme) error = %v", err)
	}
	topicRegex := regexp.MustCompile(`(?m)^\*\s+([^:]+):.*$`)
	var listed []string
	for _, m := range topicRegex.FindAllStringSubmatch(content, -1) {
		listed = append(listed, strings.TrimSpace(m[1]))
	}

	for _, topic := range listed {
		if _, err := GetTopic(topic); err != nil {
			t.Errorf("GetTopic(%q) error = %v", topic, err)
		}
	}

	all, err := AllTopics()
	if err != nil {
		t.Fatalf("AllTopics() error = %v", err)
	}
	slices.Sort(listed)
	if !slices.Equal(all, listed) {
		t.Errorf("AllTopics() = %v, want the topics listed in readme.md %v", all, listed)
	}
}

func TestGetTopics(t *testing.T) {
	got, err := GetTopics("*")
	if err != nil {
		t.Fatalf("GetTopics(*) error = %v", err)
	}
	for _, heading := range []string{"# Rebalancing", "# Plan", "# Prices"} {
		if !strings.Contains(got, heading) {
			t.Errorf("GetTopics(*) does not contain %q", heading)
		}
	}
	if _, err := GetTopics("missing"); err == nil {
		t.Errorf("GetTopics(missing) error = nil, want an error")
	}
}

func TestCodeBlocks(t *testing.T) {
	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatal(err)
	}

	bin := t.TempDir()
	build := exec.Command("go", "build", "-o", filepath.Join(bin, "rbl"), "../rbl/")
	if out, err := build.CombinedOutput(); err != nil {
		t.Fatalf("failed to build rbl: %v\n%s", err, out)
	}
	env := append(os.Environ(), fmt.Sprintf("PATH=%s%c%s", bin, os.PathListSeparator, os.Getenv("PATH")))

	for _, file := range files {
		t.Run(file, func(t *testing.T) {
			var previousOutput string
			for _, block := range parseMarkdown(t, file) {
				switch block.Type {
				case bashRun:
					cmd := exec.Command("bash", "-c", "set -e; "+block.Content)
					cmd.Dir = t.TempDir()
					cmd.Env = env
					out, err := cmd.CombinedOutput()
					if err != nil {
						t.Fatalf("%s:%d: %s failed: %v with output:\n%s", block.File, block.Line, block.Type, err, out)
					}
					previousOutput = string(out)
				case consoleCheck:
					want := strings.TrimSpace(block.Content)
					got := strings.TrimSpace(previousOutput)
					if want != got {
						t.Errorf("%s:%d: output mismatch:\ngot:\n\n%s\n\nwant:\n\n%s\n\ngot :%q\nwant:%q\n", block.File, block.Line, got, want, got, want)
					}
				}
			}
		})
	}
}

// Block represents a fenced code block in the markdown file.
type Block struct {
	Type    string
	Content string
	File    string
	Line    int
}

// parseMarkdown parses a markdown file and returns the executable blocks.
func parseMarkdown(t *testing.T, file string) []*Block {
	t.Helper()

	content, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("failed to read %s: %v", file, err)
	}
	root := goldmark.DefaultParser().Parse(text.NewReader(content))

	var blocks []*Block
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !ok || fcb.Info == nil {
			return ast.WalkContinue, nil
		}
		lang := string(fcb.Info.Segment.Value(content))
		if lang != bashRun && lang != consoleCheck {
			return ast.WalkContinue, nil
		}
		var b strings.Builder
		for i := 0; i < fcb.Lines().Len(); i++ {
			line := fcb.Lines().At(i)
			b.WriteString(string(line.Value(content)))
		}
		blocks = append(blocks, &Block{
			Type:    lang,
			Content: b.String(),
			File:    file,
			Line:    bytes.Count(content[:fcb.Info.Segment.Start], []byte{'\n'}) + 1,
		})
		return ast.WalkContinue, nil
	})
	return blocks
}
