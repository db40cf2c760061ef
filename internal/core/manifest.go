package core

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

const (
	headerExportPackage         = "Export-Package"
	headerName                  = "Name"
	headerSpecificationVersion  = "Specification-Version"
	headerImplementationVersion = "Implementation-Version"
)

// Attributes holds manifest attributes keyed case-insensitively.
type Attributes map[string]string

func (a Attributes) Get(name string) string {
	return a[strings.ToLower(name)]
}

func (a Attributes) set(name string, value string) {
	a[strings.ToLower(name)] = value
}

// Manifest is a parsed META-INF/MANIFEST.MF.
type Manifest struct {
	Main    Attributes
	Entries map[string]Attributes
	// Names keeps the named sections in file order.
	Names []string
}

// ParseManifest parses jar manifest syntax: "Name: value" lines, values
// continued on lines starting with a single space, and sections separated
// by blank lines. The first section holds the main attributes; later
// sections are keyed by their Name attribute.
func ParseManifest(data []byte) (Manifest, error) {
	sections := []Attributes{{}}
	current := sections[0]
	var lastKey string

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		if line == "" {
			current = nil
			lastKey = ""
			continue
		}
		if strings.HasPrefix(line, " ") {
			if current == nil || lastKey == "" {
				return Manifest{}, manifestError(lineNo, "continuation line without attribute")
			}
			current.set(lastKey, current.Get(lastKey)+line[1:])
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return Manifest{}, manifestError(lineNo, fmt.Sprintf("invalid attribute line %q", line))
		}
		if current == nil {
			current = Attributes{}
			sections = append(sections, current)
		}
		current.set(key, strings.TrimPrefix(value, " "))
		lastKey = key
	}
	if err := scanner.Err(); err != nil {
		return Manifest{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to read manifest").
			WithCause(err)
	}

	manifest := Manifest{
		Main:    sections[0],
		Entries: map[string]Attributes{},
	}
	for _, section := range sections[1:] {
		name := strings.TrimSpace(section.Get(headerName))
		if name == "" {
			continue
		}
		if _, seen := manifest.Entries[name]; !seen {
			manifest.Names = append(manifest.Names, name)
		}
		manifest.Entries[name] = section
	}
	return manifest, nil
}

func manifestError(line int, msg string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("malformed manifest at line %d: %s", line, msg))
}
