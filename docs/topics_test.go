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
	bashSetup    = "bash setup"
	bashRun      = "bash run"
	consoleCheck = "console check"
	bashCheck    = "bash check"
)

// topicItem matches a topic entry of the index, "* name: summary".
var topicItem = regexp.MustCompile(`^\*\s+([^:]+):.*$`)

// listedTopics returns the topic names listed by the index.
func listedTopics(t *testing.T) []string {
	t.Helper()
	index, err := GetTopic(Index)
	if err != nil {
		t.Fatalf("GetTopic(%q) failed: %v", Index, err)
	}
	var names []string
	for line := range strings.Lines(index) {
		if m := topicItem.FindStringSubmatch(strings.TrimRight(line, "\r\n")); m != nil {
			names = append(names, strings.TrimSpace(m[1]))
		}
	}
	return names
}

func TestTopics(t *testing.T) {
	listed := listedTopics(t)
	for _, topic := range listed {
		if _, err := GetTopic(topic); err != nil {
			t.Errorf("GetTopic(%q) = %v; the index lists a missing topic", topic, err)
		}
	}

	all, err := GetAllTopics()
	if err != nil {
		t.Fatalf("GetAllTopics() failed: %v", err)
	}
	for _, topic := range all {
		if !slices.Contains(listed, topic) {
			t.Errorf("topic %q is not listed in %s.md", topic, Index)
		}
	}
	if len(all) != len(listed) {
		t.Errorf("GetAllTopics() = %v; the index lists %v", all, listed)
	}
}

func TestTopicTitles(t *testing.T) {
	// Every topic starts with a level 1 heading, so that "cfo topic '*'"
	// reads as a single manual.
	topics, err := GetAllTopics()
	if err != nil {
		t.Fatal(err)
	}
	for _, topic := range append(topics, Index) {
		t.Run(topic, func(t *testing.T) {
			content, err := GetTopic(topic)
			if err != nil {
				t.Fatal(err)
			}
			source := []byte(content)
			root := goldmark.DefaultParser().Parse(text.NewReader(source))
			h, ok := root.FirstChild().(*ast.Heading)
			if !ok || h.Level != 1 {
				t.Errorf("topic %q does not start with a level 1 heading", topic)
			}
		})
	}
}

func TestGetTopic_Unknown(t *testing.T) {
	if _, err := GetTopic("no-such-topic"); err == nil {
		t.Error("GetTopic(\"no-such-topic\") succeeded; want an error")
	}
}

func TestGetTopics_All(t *testing.T) {
	all, err := GetTopic("*")
	if err != nil {
		t.Fatal(err)
	}
	for _, title := range []string{"# Collection", "# Healing", "# Valuation"} {
		if !strings.Contains(all, title) {
			t.Errorf("GetTopic(\"*\") does not contain %q", title)
		}
	}
	if strings.Contains(all, "# cfo user manual") {
		t.Errorf("GetTopic(\"*\") contains the index")
	}
}

func TestCodeBlocks(t *testing.T) {
	if testing.Short() {
		t.Skip("builds cfo and runs shell scenarios")
	}
	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatal(err)
	}
	files = append(files, "../README.md")

	bin := t.TempDir()
	build := exec.Command("go", "build", "-o", filepath.Join(bin, "cfo"), "../cfo/")
	if out, err := build.CombinedOutput(); err != nil {
		t.Fatalf("cannot build cfo: %v\n%s", err, out)
	}
	env := append(os.Environ(), "PATH="+bin+string(os.PathListSeparator)+os.Getenv("PATH"))

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			steps, err := readSteps(file)
			if err != nil {
				t.Fatal(err)
			}
			s := scenario{env: env, dir: t.TempDir()}
			for _, step := range steps {
				s.play(t, step)
			}
		})
	}
}

// step is a fenced block of a topic that takes part in its scenario.
type step struct {
	kind   string // one of the block kinds above
	script string
	pos    string // file:line of the block
}

// readSteps returns the scenario blocks of a markdown file, in order.
func readSteps(file string) ([]step, error) {
	source, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	var steps []step
	root := goldmark.DefaultParser().Parse(text.NewReader(source))
	err = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		block, ok := n.(*ast.FencedCodeBlock)
		if !entering || !ok || block.Info == nil {
			return ast.WalkContinue, nil
		}
		kind := string(block.Info.Segment.Value(source))
		switch kind {
		case bashSetup, bashRun, consoleCheck, bashCheck:
		default:
			return ast.WalkContinue, nil
		}
		var script strings.Builder
		lines := block.Lines()
		for i := range lines.Len() {
			seg := lines.At(i)
			script.Write(seg.Value(source))
		}
		line := bytes.Count(source[:block.Info.Segment.Start], []byte("\n")) + 1
		steps = append(steps, step{kind: kind, script: script.String(), pos: fmt.Sprintf("%s:%d", file, line)})
		return ast.WalkSkipChildren, nil
	})
	return steps, err
}

// scenario is the shell state shared by the steps of a file.
type scenario struct {
	env  []string
	dir  string // working folder, renewed by each setup
	last string // output of the last run
}

func (s *scenario) play(t *testing.T, st step) {
	t.Helper()
	if st.kind == consoleCheck {
		got := strings.ReplaceAll(strings.TrimSpace(s.last), "\t", "        ")
		if want := strings.TrimSpace(st.script); got != want {
			t.Errorf("%s: output mismatch:\ngot:\n\n%s\n\nwant:\n\n%s\n\ngot :%q\nwant:%q", st.pos, got, want, got, want)
		}
		return
	}
	if st.kind == bashSetup {
		s.dir = t.TempDir()
	}

	sh := exec.Command("bash", "-c", "set -e; "+st.script)
	sh.Dir = s.dir
	sh.Env = s.env
	out, err := sh.CombinedOutput()
	if st.kind == bashRun {
		s.last = string(out)
	}
	if err == nil {
		return
	}
	if st.kind == bashCheck {
		t.Errorf("%s: check failed: %v\n%s", st.pos, err, out)
		return
	}
	t.Fatalf("%s: %s failed: %v\n%s", st.pos, st.kind, err, out)
}
