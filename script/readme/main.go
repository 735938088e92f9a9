package main

import (
	"bytes"
	"log"
	"os"
	"os/exec"
	"regexp"
	"strings"

	"github.com/mitchellh/go-wordwrap"
)

const (
	command    = "./fixsyntax"
	readmeFile = "README.md"
	wrapWidth  = 80
)

func commandOutput(args ...string) string {
	var cmdOutput bytes.Buffer
	cmd := exec.Command(command, args...)
	cmd.Stdout = &cmdOutput

	if err := cmd.Run(); err != nil {
		log.Fatalf("Failed to run %q: %v", strings.Join(append([]string{command}, args...), " "), err)
	}

	return wordwrap.WrapString(strings.TrimSpace(cmdOutput.String()), wrapWidth)
}

func replaceBlock(content, name, text string) string {
	begin := "<!-- BEGIN " + name + " -->"
	end := "<!-- END " + name + " -->"

	re := regexp.MustCompile(`(?s)` + regexp.QuoteMeta(begin) + `.*` + regexp.QuoteMeta(end))
	if !re.MatchString(content) {
		log.Fatalf("No %s block in %q", name, readmeFile)
	}

	return re.ReplaceAllLiteralString(content, begin+"\n```none\n"+text+"\n```\n"+end)
}

func main() {
	content, err := os.ReadFile(readmeFile)
	if err != nil {
		log.Fatalf("Failed to read %q: %v", readmeFile, err)
	}

	updatedContent := replaceBlock(string(content), "USAGE", commandOutput("--help"))
	updatedContent = replaceBlock(updatedContent, "STEPS", commandOutput("--list"))

	if err := os.WriteFile(readmeFile, []byte(updatedContent), 0644); err != nil {
		log.Fatalf("Failed to write %q: %v", readmeFile, err)
	}
}
